package jobrequisitionhandler

import (
	"bytes"
	"context"
	"fmt"
	"hirex-backend/db"
	approvalworkflow "hirex-backend/lib/approval-workflow"
	departmentstore "hirex-backend/lib/dicts/department/store"
	jobtitlestore "hirex-backend/lib/dicts/job-title/store"
	xlsexport "hirex-backend/lib/export/xls"
	jobrequisitionstore "hirex-backend/lib/job-requisition/store"
	usersstore "hirex-backend/lib/users/store"
	"hirex-backend/lib/utils/helpers"
	initchecker "hirex-backend/lib/utils/init-checker"
	"hirex-backend/models"
	jobrequisitionapimodels "hirex-backend/models/api/job-requisition"
	dbmodels "hirex-backend/models/db"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	maxNumberAttempts = 3
	maxSerial         = 999
	exportPageSize    = 100
	maxExportRows     = 5000
)

type Provider interface {
	Create(ctx context.Context, userID string, data jobrequisitionapimodels.JobRequisitionCreateData) (id string, err error)
	GetByID(id string) (item jobrequisitionapimodels.JobRequisitionView, err error)
	Update(ctx context.Context, id, userID string, data jobrequisitionapimodels.JobRequisitionEditData) error
	Delete(id, userID string) error
	List(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) (list []jobrequisitionapimodels.JobRequisitionView, rowCount int64, err error)
	Revise(ctx context.Context, id, userID string) (item jobrequisitionapimodels.JobRequisitionView, err error)
	ExportXls(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(Deps{
		Store:           jobrequisitionstore.NewInstance(db.DB),
		DepartmentStore: departmentstore.NewInstance(db.DB),
		UserStore:       usersstore.NewInstance(db.DB),
		JobTitleStore:   jobtitlestore.NewInstance(db.DB),
		Workflow:        approvalworkflow.Instance,
		Xls:             xlsexport.Instance,
	})
}

type Deps struct {
	Store           jobrequisitionstore.Provider
	DepartmentStore departmentstore.Provider
	UserStore       usersstore.Provider
	JobTitleStore   jobtitlestore.Provider
	Workflow        approvalworkflow.Provider
	Xls             xlsexport.Provider
	Now             func() time.Time
}

func NewInstance(deps Deps) Provider {
	initchecker.CheckInit(
		"jobRequisitionStore", deps.Store,
		"departmentStore", deps.DepartmentStore,
		"userStore", deps.UserStore,
		"jobTitleStore", deps.JobTitleStore,
		"approvalWorkflow", deps.Workflow,
		"xlsExport", deps.Xls,
	)
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return impl{
		store:           deps.Store,
		departmentStore: deps.DepartmentStore,
		userStore:       deps.UserStore,
		jobTitleStore:   deps.JobTitleStore,
		workflow:        deps.Workflow,
		xls:             deps.Xls,
		now:             deps.Now,
	}
}

type impl struct {
	store           jobrequisitionstore.Provider
	departmentStore departmentstore.Provider
	userStore       usersstore.Provider
	jobTitleStore   jobtitlestore.Provider
	workflow        approvalworkflow.Provider
	xls             xlsexport.Provider
	now             func() time.Time
}

func (i impl) checkDependency(data jobrequisitionapimodels.JobRequisitionData) (*dbmodels.Department, error) {
	department, err := i.departmentStore.GetByID(data.DepartmentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load department")
	}
	if department == nil {
		return nil, models.NewValidationError("Department not found")
	}
	hiringManager, err := i.userStore.GetByID(data.HiringManagerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load hiring manager")
	}
	if hiringManager == nil || !hiringManager.IsActive {
		return nil, models.NewValidationError("Hiring manager not found")
	}
	if data.JobTitleID != "" {
		jobTitle, err := i.jobTitleStore.GetByID(data.JobTitleID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load job title")
		}
		if jobTitle == nil {
			return nil, models.NewValidationError("Job title not found")
		}
	}
	return department, nil
}

func (i impl) Create(ctx context.Context, userID string, data jobrequisitionapimodels.JobRequisitionCreateData) (id string, err error) {
	logger := log.WithField("user_id", userID)
	if err = data.Validate(); err != nil {
		return "", models.NewValidationError("%s", err.Error())
	}
	data.JobRequisitionData = data.Normalize()
	department, err := i.checkDependency(data.JobRequisitionData)
	if err != nil {
		return "", err
	}
	rec := newRecord(data.JobRequisitionData)
	rec.Status = models.JRStatusDraft
	rec.SubmittedByID = &userID
	if !data.Submit {
		id, err = i.store.Create(rec)
	} else {
		rec.Status = models.JRStatusSubmitted
		err = i.withJrID(department.Code, func(jrID string) error {
			rec.JrID = &jrID
			id, err = i.store.Create(rec)
			return err
		})
	}
	if err != nil {
		logger.
			WithField("request", fmt.Sprintf("%+v", data)).
			WithError(err).
			Error("failed to create job requisition")
		return "", err
	}
	logger = logger.WithField("rec_id", id)
	logger.
		WithField("status", rec.Status).
		Info("job requisition created")
	if data.Submit {
		if err = i.workflow.InitiateApprovalWorkflow(ctx, id); err != nil {
			logger.WithError(err).Error("failed to start approval workflow")
			return id, err
		}
	}
	return id, nil
}

func (i impl) GetByID(id string) (jobrequisitionapimodels.JobRequisitionView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return jobrequisitionapimodels.JobRequisitionView{}, err
	}
	return jobrequisitionapimodels.JobRequisitionConvert(*rec), nil
}

func (i impl) Update(ctx context.Context, id, userID string, data jobrequisitionapimodels.JobRequisitionEditData) error {
	logger := log.WithField("rec_id", id).WithField("user_id", userID)
	if err := data.Validate(); err != nil {
		return models.NewValidationError("%s", err.Error())
	}
	data.JobRequisitionData = data.Normalize()
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if userID != rec.GetSubmitterID() && userID != rec.HiringManagerID {
		return models.NewForbiddenError("Only the submitter or the hiring manager can edit this requisition")
	}
	// Submitted without a workflow happens only when starting it failed, editing then retries it
	if !rec.Status.IsPreSubmission() {
		return models.NewInvalidStateError("Only draft requisitions can be edited (current status: %v)", rec.Status)
	}
	department, err := i.checkDependency(data.JobRequisitionData)
	if err != nil {
		return err
	}
	updMap := updateMap(data.JobRequisitionData)
	switch {
	case !data.Submit:
		err = i.store.Update(id, updMap)
	case rec.JrID == nil:
		err = i.withJrID(department.Code, func(jrID string) error {
			updMap["jr_id"] = jrID
			return i.store.UpdateStatus(id, rec.Status, models.JRStatusSubmitted, updMap)
		})
	default:
		err = i.store.UpdateStatus(id, rec.Status, models.JRStatusSubmitted, updMap)
	}
	if err != nil {
		logger.WithError(err).Error("failed to update job requisition")
		return err
	}
	logger.Info("job requisition updated")
	if data.Submit {
		if err = i.workflow.InitiateApprovalWorkflow(ctx, id); err != nil {
			logger.WithError(err).Error("failed to start approval workflow")
			return err
		}
	}
	return nil
}

func (i impl) Delete(id, userID string) error {
	logger := log.WithField("rec_id", id).WithField("user_id", userID)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if userID != rec.GetSubmitterID() {
		return models.NewForbiddenError("Only the submitter can delete this requisition")
	}
	if !rec.Status.IsEditable() || rec.JrID != nil {
		return models.NewInvalidStateError("Only drafts that were never submitted can be deleted (current status: %v)", rec.Status)
	}
	err = i.store.Delete(id)
	if err != nil {
		return errors.Wrap(err, "failed to delete job requisition")
	}
	logger.Info("job requisition deleted")
	return nil
}

func (i impl) List(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) ([]jobrequisitionapimodels.JobRequisitionView, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, models.NewValidationError("%s", err.Error())
	}
	rowCount, err := i.store.ListCount(userID, role, filter)
	if err != nil {
		return nil, 0, err
	}
	list, err := i.store.List(userID, role, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list job requisitions")
	}
	result := make([]jobrequisitionapimodels.JobRequisitionView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobrequisitionapimodels.JobRequisitionConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Revise(ctx context.Context, id, userID string) (jobrequisitionapimodels.JobRequisitionView, error) {
	err := i.workflow.Revise(ctx, id, userID)
	if err != nil {
		return jobrequisitionapimodels.JobRequisitionView{}, err
	}
	return i.GetByID(id)
}

func (i impl) ExportXls(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) (*bytes.Buffer, error) {
	if err := filter.Validate(); err != nil {
		return nil, models.NewValidationError("%s", err.Error())
	}
	filter.Limit = exportPageSize
	list := []dbmodels.JobRequisition{}
	for page := 1; len(list) < maxExportRows; page++ {
		filter.Page = page
		rows, err := i.store.List(userID, role, filter)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list job requisitions")
		}
		list = append(list, rows...)
		if len(rows) < exportPageSize {
			break
		}
	}
	if len(list) > maxExportRows {
		list = list[:maxExportRows]
	}
	return i.xls.ExportJobRequisitionList(list)
}

func (i impl) getRec(id string) (*dbmodels.JobRequisition, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load job requisition")
	}
	if rec == nil {
		return nil, models.NewNotFoundError("Job requisition not found")
	}
	return rec, nil
}

// withJrID hands write a fresh requisition number, retrying when another
// request took the same number first.
func (i impl) withJrID(departmentCode string, write func(jrID string) error) error {
	for attempt := 1; ; attempt++ {
		jrID, err := i.nextJrID(departmentCode)
		if err != nil {
			return err
		}
		err = write(jrID)
		if err == nil {
			return nil
		}
		if !helpers.IsUniqueViolation(err) || attempt == maxNumberAttempts {
			return errors.Wrapf(err, "failed to store requisition number %v", jrID)
		}
		log.
			WithField("jr_id", jrID).
			WithField("attempt", attempt).
			Warn("requisition number already taken, retrying")
	}
}

// nextJrID returns EXP-<year>-<department code>-<serial>, the serial being one
// above the highest used for that year and department.
func (i impl) nextJrID(departmentCode string) (string, error) {
	if departmentCode == "" {
		return "", models.NewValidationError("Department has no code, requisition number cannot be assigned")
	}
	prefix := fmt.Sprintf("EXP-%d-%s-", i.now().Year(), departmentCode)
	used, err := i.store.ListJrIDsByPrefix(prefix)
	if err != nil {
		return "", errors.Wrap(err, "failed to load requisition numbers")
	}
	last := 0
	for _, jrID := range used {
		serial, err := strconv.Atoi(strings.TrimPrefix(jrID, prefix))
		if err != nil {
			continue
		}
		if serial > last {
			last = serial
		}
	}
	if last >= maxSerial {
		return "", models.NewConflictError("Requisition numbers for %v%v are exhausted", prefix, maxSerial)
	}
	return fmt.Sprintf("%s%03d", prefix, last+1), nil
}

func newRecord(data jobrequisitionapimodels.JobRequisitionData) dbmodels.JobRequisition {
	return dbmodels.JobRequisition{
		JobTitleID:        optionalID(data.JobTitleID),
		DepartmentID:      data.DepartmentID,
		HiringManagerID:   data.HiringManagerID,
		FormStep:          data.FormStep,
		PrimarySkills:     data.PrimarySkills,
		SecondarySkills:   data.SecondarySkills,
		Qualifications:    data.Qualifications,
		MinExperience:     data.MinExperience,
		MaxExperience:     data.MaxExperience,
		NumberOfPositions: data.NumberOfPositions,
		OnboardingFrom:    data.OnboardingFrom,
		OnboardingTo:      data.OnboardingTo,
		WorkLocations:     data.WorkLocations,
		Shift:             data.Shift,
		JobPurpose:        data.JobPurpose,
		Duties:            data.Duties,
		JobSpecification:  data.JobSpecification,
		WorkArrangement:   data.WorkArrangement,
		RequestedDate:     data.RequestedDate,
		Priority:          data.Priority,
		ClientName:        data.ClientName,
		BudgetMin:         data.BudgetMin,
		BudgetMax:         data.BudgetMax,
	}
}

func updateMap(data jobrequisitionapimodels.JobRequisitionData) map[string]interface{} {
	return map[string]interface{}{
		"job_title_id":        optionalID(data.JobTitleID),
		"department_id":       data.DepartmentID,
		"hiring_manager_id":   data.HiringManagerID,
		"form_step":           data.FormStep,
		"primary_skills":      pq.StringArray(data.PrimarySkills),
		"secondary_skills":    pq.StringArray(data.SecondarySkills),
		"qualifications":      pq.StringArray(data.Qualifications),
		"min_experience":      data.MinExperience,
		"max_experience":      data.MaxExperience,
		"number_of_positions": data.NumberOfPositions,
		"onboarding_from":     data.OnboardingFrom,
		"onboarding_to":       data.OnboardingTo,
		"work_locations":      pq.StringArray(data.WorkLocations),
		"shift":               data.Shift,
		"job_purpose":         data.JobPurpose,
		"duties":              data.Duties,
		"job_specification":   data.JobSpecification,
		"work_arrangement":    data.WorkArrangement,
		"requested_date":      data.RequestedDate,
		"priority":            data.Priority,
		"client_name":         data.ClientName,
		"budget_min":          data.BudgetMin,
		"budget_max":          data.BudgetMax,
	}
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
