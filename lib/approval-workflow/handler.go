package approvalworkflow

import (
	"context"
	"fmt"
	"hirex-backend/config"
	"hirex-backend/db"
	approvalhistorystore "hirex-backend/lib/approval-workflow/history-store"
	"hirex-backend/lib/notification"
	usersstore "hirex-backend/lib/users/store"
	"hirex-backend/lib/utils/helpers"
	initchecker "hirex-backend/lib/utils/init-checker"
	"hirex-backend/lib/utils/lock"
	remindermark "hirex-backend/lib/utils/reminder-mark"
	"hirex-backend/models"
	approvalapimodels "hirex-backend/models/api/approval"
	dbmodels "hirex-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	lockWait                 = 10 * time.Second
	defaultWaitingPeriodDays = 2
)

type Provider interface {
	DetermineNextApprover(jr dbmodels.JobRequisition) (NextApprover, error)
	InitiateApprovalWorkflow(ctx context.Context, jobRequisitionID string) error
	ProcessApprovalDecision(ctx context.Context, jobRequisitionID string, decision Decision) error
	CreateJobDescription(jr dbmodels.JobRequisition) error
	SendPendingApprovalReminders(ctx context.Context) (sent int, err error)
	CanApprove(jr dbmodels.JobRequisition, userID string, role models.UserRole) (ok bool, reason string)
	CheckCanApprove(jobRequisitionID, userID string) (approvalapimodels.CanApproveView, error)
	History(jobRequisitionID string) ([]approvalapimodels.ApprovalHistoryView, error)
	Revise(ctx context.Context, jobRequisitionID, userID string) error
}

// Decision is an approver's action on a pending requisition.
type Decision struct {
	Action     models.ApprovalDecisionType
	Comments   string
	ApproverID string
}

type Settings struct {
	CooEmail          string
	CooName           string
	ReminderEnabled   bool
	WaitingPeriodDays int
}

type Deps struct {
	InTx      TxFunc
	Stores    Stores
	UserStore usersstore.Provider
	Sink      notification.Sink
	Marks     remindermark.Provider
	Settings  Settings
	Now       func() time.Time
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(Deps{
		InTx:      GormTx(db.DB),
		Stores:    GormStores(db.DB),
		UserStore: usersstore.NewInstance(db.DB),
		Sink:      notification.Instance,
		Marks:     remindermark.Instance,
		Settings: Settings{
			CooEmail:          config.Conf.Workflow.CooEmail,
			CooName:           config.Conf.Workflow.CooName,
			ReminderEnabled:   config.Conf.ReminderEnabled(),
			WaitingPeriodDays: config.Conf.Workflow.ApprovalWaitingPeriodDays,
		},
	})
}

func NewInstance(deps Deps) Provider {
	initchecker.CheckInit(
		"tx", deps.InTx,
		"jobRequisitionStore", deps.Stores.JobRequisitions,
		"historyStore", deps.Stores.History,
		"jobDescriptionStore", deps.Stores.JobDescriptions,
		"userStore", deps.UserStore,
		"notificationSink", deps.Sink,
		"reminderMarks", deps.Marks,
	)
	if deps.Settings.WaitingPeriodDays <= 0 {
		deps.Settings.WaitingPeriodDays = defaultWaitingPeriodDays
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return impl{
		inTx:      deps.InTx,
		store:     deps.Stores,
		userStore: deps.UserStore,
		coo: firstActiveCoo{
			userStore:     deps.UserStore,
			fallbackEmail: deps.Settings.CooEmail,
			fallbackName:  deps.Settings.CooName,
		},
		sink:     deps.Sink,
		marks:    deps.Marks,
		settings: deps.Settings,
		now:      deps.Now,
	}
}

type impl struct {
	inTx      TxFunc
	store     Stores
	userStore usersstore.Provider
	coo       cooResolver
	sink      notification.Sink
	marks     remindermark.Provider
	settings  Settings
	now       func() time.Time
}

func (i impl) GetLogger(jobRequisitionID string) *log.Entry {
	return log.WithField("rec_id", jobRequisitionID)
}

func lockKey(jobRequisitionID string) string {
	return "job_requisition:" + jobRequisitionID
}

func (i impl) InitiateApprovalWorkflow(ctx context.Context, jobRequisitionID string) error {
	logger := i.GetLogger(jobRequisitionID)
	var outbox []notification.Notification
	err := lock.Do(ctx, lockKey(jobRequisitionID), lockWait, func() error {
		return i.inTx(func(s Stores) error {
			jr, err := s.JobRequisitions.GetByID(jobRequisitionID)
			if err != nil {
				return errors.Wrap(err, "failed to load job requisition")
			}
			if jr == nil {
				return models.NewNotFoundError("Job requisition not found")
			}
			if jr.GetJrID() == "" {
				return models.NewNotFoundError("Job requisition number not found")
			}
			if !jr.Status.IsPreSubmission() {
				return models.NewInvalidStateError("Approval workflow already started (current status: %v)", jr.Status)
			}
			next, err := i.DetermineNextApprover(*jr)
			if err != nil {
				return err
			}
			err = s.JobRequisitions.UpdateStatus(jr.ID, jr.Status, next.NextStatus, nil)
			if err != nil {
				return err
			}
			err = i.appendPending(s, *jr, jr.Status, next)
			if err != nil {
				return err
			}
			jr.Status = next.NextStatus
			if next.HasApprover() {
				outbox = append(outbox, approvalRequest(*jr, next))
			}
			logger.
				WithField("status", next.NextStatus).
				Info("approval workflow started")
			return nil
		})
	})
	if err != nil {
		return err
	}
	i.notify(ctx, logger, outbox)
	return nil
}

func (i impl) ProcessApprovalDecision(ctx context.Context, jobRequisitionID string, decision Decision) error {
	logger := i.GetLogger(jobRequisitionID).
		WithField("approver_id", decision.ApproverID).
		WithField("action", decision.Action)
	if !decision.Action.IsValid() {
		return models.NewValidationError("Unknown approval action: %v", decision.Action)
	}
	var outbox []notification.Notification
	err := lock.Do(ctx, lockKey(jobRequisitionID), lockWait, func() error {
		return i.inTx(func(s Stores) error {
			jr, err := s.JobRequisitions.GetByID(jobRequisitionID)
			if err != nil {
				return errors.Wrap(err, "failed to load job requisition")
			}
			if jr == nil {
				return models.NewNotFoundError("Job requisition not found")
			}
			approver, err := i.userStore.GetByID(decision.ApproverID)
			if err != nil {
				return errors.Wrap(err, "failed to load approver")
			}
			if approver == nil {
				return models.NewNotFoundError("Approver not found")
			}
			if !jr.Status.IsPendingApproval() {
				return models.NewInvalidStateError("Requisition is not awaiting approval (current status: %v)", jr.Status)
			}
			if ok, reason := i.CanApprove(*jr, approver.ID, approver.Role); !ok {
				return models.NewForbiddenError("%s", reason)
			}
			if decision.Action == models.DecisionReject {
				outbox, err = i.handleRejection(s, *jr, *approver, decision.Comments)
			} else {
				outbox, err = i.handleApproval(s, *jr, *approver, decision.Comments)
			}
			return err
		})
	})
	if err != nil {
		return err
	}
	logger.Info("approval decision processed")
	i.notify(ctx, logger, outbox)
	return nil
}

func (i impl) handleRejection(s Stores, jr dbmodels.JobRequisition, approver dbmodels.User, comments string) ([]notification.Notification, error) {
	if comments == "" {
		comments = models.DefaultRejectComment
	}
	err := s.JobRequisitions.UpdateStatus(jr.ID, jr.Status, models.JRStatusRejected, nil)
	if err != nil {
		return nil, err
	}
	_, err = s.History.Create(dbmodels.ApprovalHistory{
		JobRequisitionID: jr.ID,
		ApproverRole:     approver.Role,
		ApproverID:       &approver.ID,
		Action:           models.ApprovalActionRejected,
		Comments:         comments,
		PreviousStatus:   jr.Status,
		NewStatus:        models.JRStatusRejected,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to write approval history")
	}
	jr.Status = models.JRStatusRejected
	return []notification.Notification{rejectedNotice(jr, approver, comments)}, nil
}

func (i impl) handleApproval(s Stores, jr dbmodels.JobRequisition, approver dbmodels.User, comments string) ([]notification.Notification, error) {
	next, err := i.DetermineNextApprover(jr)
	if err != nil {
		return nil, err
	}
	err = s.JobRequisitions.UpdateStatus(jr.ID, jr.Status, next.NextStatus, nil)
	if err != nil {
		return nil, err
	}
	_, err = s.History.Create(dbmodels.ApprovalHistory{
		JobRequisitionID: jr.ID,
		ApproverRole:     approver.Role,
		ApproverID:       &approver.ID,
		Action:           models.ApprovalActionApproved,
		Comments:         comments,
		PreviousStatus:   jr.Status,
		NewStatus:        next.NextStatus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to write approval history")
	}
	previousStatus := jr.Status
	jr.Status = next.NextStatus
	outbox := []notification.Notification{grantedNotice(jr, approver, comments, next.NextStatus)}

	if next.NextStatus == models.JRStatusApproved {
		final, err := i.handleFinalApproval(s, jr)
		if err != nil {
			return nil, err
		}
		return append(outbox, final...), nil
	}
	err = i.appendPending(s, jr, previousStatus, next)
	if err != nil {
		return nil, err
	}
	if next.HasApprover() {
		outbox = append(outbox, approvalRequest(jr, next))
	}
	return outbox, nil
}

func (i impl) handleFinalApproval(s Stores, jr dbmodels.JobRequisition) ([]notification.Notification, error) {
	var outbox []notification.Notification
	var lead *dbmodels.User
	if jr.Department != nil && jr.Department.RecruiterLead != nil && jr.Department.RecruiterLead.IsActive {
		lead = jr.Department.RecruiterLead
	}
	if lead != nil {
		err := s.JobRequisitions.Update(jr.ID, map[string]interface{}{
			"recruiter_lead_id": lead.ID,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to assign recruiter lead")
		}
		jr.RecruiterLeadID = &lead.ID
		jr.RecruiterLead = lead
		outbox = append(outbox,
			recruiterAssignedNotice(jr, *lead),
			statusChangedNotice(jr, models.AssignedToRecruiterLabel))
	} else {
		i.GetLogger(jr.ID).
			WithField("department_id", jr.DepartmentID).
			Warn("department has no active recruiter lead, requisition stays unassigned")
	}
	err := i.createJobDescription(s, jr)
	if err != nil {
		return nil, err
	}
	return outbox, nil
}

// appendPending records the stage the requisition now waits on.
func (i impl) appendPending(s Stores, jr dbmodels.JobRequisition, previousStatus models.JRStatus, next NextApprover) error {
	_, err := s.History.Create(dbmodels.ApprovalHistory{
		JobRequisitionID: jr.ID,
		ApproverRole:     next.ApproverRole,
		ApproverID:       next.ApproverID,
		Action:           models.ApprovalActionPending,
		PreviousStatus:   previousStatus,
		NewStatus:        next.NextStatus,
	})
	if err != nil {
		return errors.Wrap(err, "failed to write approval history")
	}
	return nil
}

func (i impl) CreateJobDescription(jr dbmodels.JobRequisition) error {
	err := i.inTx(func(s Stores) error {
		return i.createJobDescription(s, jr)
	})
	if err != nil && helpers.IsUniqueViolation(err) {
		return nil
	}
	return err
}

func (i impl) createJobDescription(s Stores, jr dbmodels.JobRequisition) error {
	existing, err := s.JobDescriptions.GetByJobRequisitionID(jr.ID)
	if err != nil {
		return errors.Wrap(err, "failed to check job description")
	}
	if existing != nil {
		return nil
	}
	rec := dbmodels.JobDescription{
		JobRequisitionID:  jr.ID,
		JrID:              jr.GetJrID(),
		JobTitle:          jr.GetJobTitleName(),
		PrimarySkills:     jr.PrimarySkills,
		SecondarySkills:   jr.SecondarySkills,
		Qualifications:    jr.Qualifications,
		MinExperience:     jr.MinExperience,
		MaxExperience:     jr.MaxExperience,
		NumberOfPositions: jr.NumberOfPositions,
		OnboardingFrom:    jr.OnboardingFrom,
		OnboardingTo:      jr.OnboardingTo,
		WorkLocations:     jr.WorkLocations,
		Shift:             jr.Shift,
		JobPurpose:        jr.JobPurpose,
		Duties:            jr.Duties,
		JobSpecification:  jr.JobSpecification,
		WorkArrangement:   jr.WorkArrangement,
		RequestedDate:     jr.RequestedDate,
		DepartmentID:      jr.DepartmentID,
		HiringManagerID:   jr.HiringManagerID,
		RecruiterLeadID:   jr.RecruiterLeadID,
	}
	if submitterID := jr.GetSubmitterID(); submitterID != "" {
		rec.SubmittedByID = &submitterID
	}
	_, err = s.JobDescriptions.Create(rec)
	if err != nil {
		return errors.Wrap(err, "failed to create job description")
	}
	return nil
}

func (i impl) CanApprove(jr dbmodels.JobRequisition, userID string, role models.UserRole) (bool, string) {
	switch {
	case jr.Status == models.JRStatusPendingDUHeadApproval && role == models.DUHeadRole:
		if jr.Department != nil && helpers.PtrValue(jr.Department.DUHeadID) == userID {
			return true, ""
		}
	case jr.Status == models.JRStatusPendingCDOApproval && role == models.CDORole:
		if jr.Department != nil && helpers.PtrValue(jr.Department.CDOID) == userID {
			return true, ""
		}
	case jr.Status == models.JRStatusPendingCOOApproval && role == models.COORole:
		return true, ""
	}
	return false, fmt.Sprintf("You are not authorized to approve this requisition in its current status: %v", jr.Status)
}

func (i impl) CheckCanApprove(jobRequisitionID, userID string) (approvalapimodels.CanApproveView, error) {
	jr, err := i.store.JobRequisitions.GetByID(jobRequisitionID)
	if err != nil {
		return approvalapimodels.CanApproveView{}, errors.Wrap(err, "failed to load job requisition")
	}
	if jr == nil {
		return approvalapimodels.CanApproveView{}, models.NewNotFoundError("Job requisition not found")
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		return approvalapimodels.CanApproveView{}, errors.Wrap(err, "failed to load user")
	}
	if user == nil {
		return approvalapimodels.CanApproveView{}, models.NewNotFoundError("User not found")
	}
	ok, reason := i.CanApprove(*jr, user.ID, user.Role)
	return approvalapimodels.CanApproveView{
		CanApprove:    ok,
		Reason:        reason,
		CurrentStatus: jr.Status,
	}, nil
}

func (i impl) History(jobRequisitionID string) ([]approvalapimodels.ApprovalHistoryView, error) {
	jr, err := i.store.JobRequisitions.GetByID(jobRequisitionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load job requisition")
	}
	if jr == nil {
		return nil, models.NewNotFoundError("Job requisition not found")
	}
	list, err := i.store.History.List(jobRequisitionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load approval history")
	}
	approvalhistorystore.SortLedger(list)
	result := make([]approvalapimodels.ApprovalHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, approvalapimodels.ApprovalHistoryConvert(rec))
	}
	return result, nil
}

func (i impl) Revise(ctx context.Context, jobRequisitionID, userID string) error {
	logger := i.GetLogger(jobRequisitionID).WithField("user_id", userID)
	err := lock.Do(ctx, lockKey(jobRequisitionID), lockWait, func() error {
		return i.inTx(func(s Stores) error {
			jr, err := s.JobRequisitions.GetByID(jobRequisitionID)
			if err != nil {
				return errors.Wrap(err, "failed to load job requisition")
			}
			if jr == nil {
				return models.NewNotFoundError("Job requisition not found")
			}
			if userID == "" || (userID != jr.GetSubmitterID() && userID != jr.HiringManagerID) {
				return models.NewForbiddenError("Only the submitter or the hiring manager can revise this requisition")
			}
			if jr.Status != models.JRStatusRejected {
				return models.NewInvalidStateError("Only rejected requisitions can be revised (current status: %v)", jr.Status)
			}
			return s.JobRequisitions.UpdateStatus(jr.ID, models.JRStatusRejected, models.JRStatusDraft, nil)
		})
	})
	if err != nil {
		return err
	}
	logger.Info("requisition returned to draft")
	return nil
}

// notify runs after commit. Delivery problems are logged and never returned.
func (i impl) notify(ctx context.Context, logger *log.Entry, outbox []notification.Notification) {
	for _, n := range outbox {
		if n.RecipientEmail == "" {
			logger.
				WithField("kind", n.Kind).
				Warn("notification skipped, recipient has no email")
			continue
		}
		if err := i.sink.Send(ctx, n); err != nil {
			logger.
				WithError(err).
				WithField("kind", n.Kind).
				Warn("notification failed, left for retry")
		}
	}
}
