package jobtitlestore

import (
	dbmodels "hirex-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.JobTitle, err error)
	FindByName(name string) (list []dbmodels.JobTitle, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.JobTitle, error) {
	rec := dbmodels.JobTitle{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindByName(name string) (list []dbmodels.JobTitle, err error) {
	list = []dbmodels.JobTitle{}
	tx := i.db.Model(&dbmodels.JobTitle{})
	if name != "" {
		tx = tx.Where("LOWER(name) like ?", "%"+strings.ToLower(name)+"%")
	}
	err = tx.
		Order("name ASC").
		Limit(50).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
