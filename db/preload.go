package db

import (
	"hirex-backend/config"
	departmentstore "hirex-backend/lib/dicts/department/store"
	usersstore "hirex-backend/lib/users/store"
	"hirex-backend/models"

	log "github.com/sirupsen/logrus"
)

// InitPreload checks the approver master data the workflow depends on.
// Master data itself is seeded outside of the service.
func InitPreload() {
	checkCoo()
	checkDepartments()
}

func checkCoo() {
	userStore := usersstore.NewInstance(DB)
	coo, err := userStore.FindFirstActiveByRole(models.COORole)
	if err != nil {
		log.WithError(err).Error("failed to look up COO user")
		return
	}
	if coo == nil && config.Conf.Workflow.CooEmail == "" {
		log.Warn("no active COO user and COO_EMAIL is empty, COO approval requests will not be sent")
	}
}

func checkDepartments() {
	departmentStore := departmentstore.NewInstance(DB)
	list, err := departmentStore.List()
	if err != nil {
		log.WithError(err).Error("failed to load departments")
		return
	}
	for _, dep := range list {
		logger := log.
			WithField("department_id", dep.ID).
			WithField("department_code", dep.Code)
		if dep.DUHeadID == nil {
			logger.Warn("department has no DU Head configured")
		}
		if dep.CDOID == nil {
			logger.Warn("department has no CDO configured")
		}
		if dep.RecruiterLeadID == nil {
			logger.Warn("department has no Recruiter Lead configured")
		}
	}
}
