package jobdescriptionstore

import (
	dbmodels "hirex-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.JobDescription) (id string, err error)
	GetByJobRequisitionID(jobRequisitionID string) (rec *dbmodels.JobDescription, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobDescription) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByJobRequisitionID(jobRequisitionID string) (*dbmodels.JobDescription, error) {
	rec := dbmodels.JobDescription{}
	err := i.db.
		Where("job_requisition_id = ?", jobRequisitionID).
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
