package db

import (
	dbmodels "hirex-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "failed to migrate User")
	}
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "failed to migrate Department")
	}
	if err := DB.AutoMigrate(&dbmodels.JobTitle{}); err != nil {
		return errors.Wrap(err, "failed to migrate JobTitle")
	}
	if err := DB.AutoMigrate(&dbmodels.JobRequisition{}); err != nil {
		return errors.Wrap(err, "failed to migrate JobRequisition")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalHistory{}); err != nil {
		return errors.Wrap(err, "failed to migrate ApprovalHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.JobDescription{}); err != nil {
		return errors.Wrap(err, "failed to migrate JobDescription")
	}
	if err := DB.AutoMigrate(&dbmodels.NotificationLog{}); err != nil {
		return errors.Wrap(err, "failed to migrate NotificationLog")
	}
	log.Info("migrations finished")
	return nil
}
