package notificationlogstore

import (
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.NotificationLog) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	ListRetryable(maxAttempts, limit int) (list []dbmodels.NotificationLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.NotificationLog) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.NotificationLog{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) ListRetryable(maxAttempts, limit int) (list []dbmodels.NotificationLog, err error) {
	list = []dbmodels.NotificationLog{}
	err = i.db.
		Where("status = ?", models.NotificationStatusFailed).
		Where("attempts < ?", maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
