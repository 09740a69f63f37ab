package approvalworkflow

import (
	usersstore "hirex-backend/lib/users/store"
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NextApprover is the outcome of DetermineNextApprover. Approver fields stay
// empty for the terminal step and when the department has no approver set.
type NextApprover struct {
	NextStatus    models.JRStatus
	ApproverID    *string
	ApproverEmail string
	ApproverName  string
	ApproverRole  models.UserRole
}

func (a NextApprover) HasApprover() bool {
	return a.ApproverEmail != ""
}

func (a NextApprover) GetApproverID() string {
	if a.ApproverID == nil {
		return ""
	}
	return *a.ApproverID
}

// isSubmitterAtOrAboveStage reports whether the submitter already holds the
// authority of the stage. Such a stage would be a self approval and is skipped.
func isSubmitterAtOrAboveStage(submitterRole models.UserRole, stage models.JRStatus) bool {
	stageRole, ok := stage.StageRole()
	return ok && submitterRole == stageRole
}

func (i impl) DetermineNextApprover(jr dbmodels.JobRequisition) (NextApprover, error) {
	switch jr.Status {
	case models.JRStatusDraft, models.JRStatusSubmitted:
		submitter := jr.GetSubmitter()
		if submitter != nil && isSubmitterAtOrAboveStage(submitter.Role, models.JRStatusPendingDUHeadApproval) {
			return departmentApprover(jr, models.JRStatusPendingCDOApproval), nil
		}
		return departmentApprover(jr, models.JRStatusPendingDUHeadApproval), nil
	case models.JRStatusPendingDUHeadApproval:
		return departmentApprover(jr, models.JRStatusPendingCDOApproval), nil
	case models.JRStatusPendingCDOApproval:
		next := NextApprover{
			NextStatus:   models.JRStatusPendingCOOApproval,
			ApproverRole: models.COORole,
		}
		coo, err := i.coo.Resolve()
		if err != nil {
			return NextApprover{}, err
		}
		if coo == nil {
			log.WithField("rec_id", jr.ID).Warn("no active COO user and no COO_EMAIL configured, approval chain dead-ends")
			return next, nil
		}
		next.ApproverID = coo.ID
		next.ApproverEmail = coo.Email
		next.ApproverName = coo.Name
		return next, nil
	case models.JRStatusPendingCOOApproval:
		return NextApprover{NextStatus: models.JRStatusApproved}, nil
	}
	return NextApprover{}, models.NewInvalidStateError("Cannot determine next approver for status: %v", jr.Status)
}

// departmentApprover fills the approver of a department scoped stage.
func departmentApprover(jr dbmodels.JobRequisition, stage models.JRStatus) NextApprover {
	role, _ := stage.StageRole()
	next := NextApprover{
		NextStatus:   stage,
		ApproverRole: role,
	}
	var user *dbmodels.User
	if jr.Department != nil {
		switch role {
		case models.DUHeadRole:
			user = jr.Department.DUHead
		case models.CDORole:
			user = jr.Department.CDO
		}
	}
	if user == nil || !user.IsActive {
		log.WithFields(log.Fields{
			"rec_id":        jr.ID,
			"department_id": jr.DepartmentID,
			"approver_role": role,
		}).Warn("department has no active approver configured, approval chain dead-ends")
		return next
	}
	next.ApproverID = &user.ID
	next.ApproverEmail = user.Email
	next.ApproverName = user.GetFullName()
	return next
}

type approverIdentity struct {
	ID    *string
	Email string
	Name  string
}

// cooResolver finds the organisation wide final approver.
type cooResolver interface {
	Resolve() (*approverIdentity, error)
}

type firstActiveCoo struct {
	userStore     usersstore.Provider
	fallbackEmail string
	fallbackName  string
}

func (r firstActiveCoo) Resolve() (*approverIdentity, error) {
	user, err := r.userStore.FindFirstActiveByRole(models.COORole)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up COO")
	}
	if user != nil {
		return &approverIdentity{
			ID:    &user.ID,
			Email: user.Email,
			Name:  user.GetFullName(),
		}, nil
	}
	if r.fallbackEmail == "" {
		return nil, nil
	}
	name := r.fallbackName
	if name == "" {
		name = models.COORole.ToHuman()
	}
	return &approverIdentity{
		Email: r.fallbackEmail,
		Name:  name,
	}, nil
}
