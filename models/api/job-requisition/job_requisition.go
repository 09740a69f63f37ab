package jobrequisitionapimodels

import (
	"hirex-backend/models"
	apimodels "hirex-backend/models/api"
	dbmodels "hirex-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type JobRequisitionData struct {
	JobTitleID        string                 `json:"job_title_id"`      // job title dictionary id
	DepartmentID      string                 `json:"department_id"`     // department id
	HiringManagerID   string                 `json:"hiring_manager_id"` // hiring manager user id
	PrimarySkills     []string               `json:"primary_skills"`
	SecondarySkills   []string               `json:"secondary_skills"`
	Qualifications    []string               `json:"qualifications"`
	MinExperience     *int                   `json:"min_experience"` // years
	MaxExperience     *int                   `json:"max_experience"` // years
	NumberOfPositions int                    `json:"number_of_positions"`
	OnboardingFrom    *time.Time             `json:"onboarding_from"`
	OnboardingTo      *time.Time             `json:"onboarding_to"`
	WorkLocations     []string               `json:"work_locations"`
	Shift             models.JRShift         `json:"shift"`
	JobPurpose        string                 `json:"job_purpose"`
	Duties            string                 `json:"duties"`
	JobSpecification  string                 `json:"job_specification"`
	WorkArrangement   models.WorkArrangement `json:"work_arrangement"`
	RequestedDate     *time.Time             `json:"requested_date"`
	Priority          models.JRPriority      `json:"priority"`
	ClientName        string                 `json:"client_name"`
	BudgetMin         *float64               `json:"budget_min"`
	BudgetMax         *float64               `json:"budget_max"`
	FormStep          int                    `json:"form_step"` // last completed step of the multi-step form
}

// Validate checks what a draft needs to be stored.
func (v JobRequisitionData) Validate() error {
	if v.DepartmentID == "" {
		return errors.New("department is required")
	}
	if v.HiringManagerID == "" {
		return errors.New("hiring manager is required")
	}
	if v.MinExperience != nil && *v.MinExperience < 0 {
		return errors.New("minimum experience must not be negative")
	}
	if v.MaxExperience != nil && *v.MaxExperience < 0 {
		return errors.New("maximum experience must not be negative")
	}
	if v.MinExperience != nil && v.MaxExperience != nil && *v.MinExperience > *v.MaxExperience {
		return errors.New("minimum experience is greater than maximum experience")
	}
	if v.NumberOfPositions < 0 {
		return errors.New("number of positions must not be negative")
	}
	if v.OnboardingFrom != nil && v.OnboardingTo != nil && v.OnboardingTo.Before(*v.OnboardingFrom) {
		return errors.New("onboarding window ends before it starts")
	}
	if v.BudgetMin != nil && v.BudgetMax != nil && *v.BudgetMin > *v.BudgetMax {
		return errors.New("minimum budget is greater than maximum budget")
	}
	if err := v.Shift.Validate(); err != nil {
		return err
	}
	if err := v.WorkArrangement.Validate(); err != nil {
		return err
	}
	return v.Priority.Validate()
}

// ValidateForSubmit checks what the approvers need to see.
func (v JobRequisitionData) ValidateForSubmit() error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.JobTitleID == "" {
		return errors.New("job title is required")
	}
	if v.NumberOfPositions <= 0 {
		return errors.New("number of positions is required")
	}
	if len(cleanList(v.PrimarySkills)) == 0 {
		return errors.New("at least one primary skill is required")
	}
	if len(cleanList(v.WorkLocations)) == 0 {
		return errors.New("at least one work location is required")
	}
	return nil
}

func (v JobRequisitionData) Normalize() JobRequisitionData {
	v.PrimarySkills = cleanList(v.PrimarySkills)
	v.SecondarySkills = cleanList(v.SecondarySkills)
	v.Qualifications = cleanList(v.Qualifications)
	v.WorkLocations = cleanList(v.WorkLocations)
	return v
}

type JobRequisitionCreateData struct {
	JobRequisitionData
	Submit bool `json:"submit"` // submit for approval right away
}

func (v JobRequisitionCreateData) Validate() error {
	if v.Submit {
		return v.JobRequisitionData.ValidateForSubmit()
	}
	return v.JobRequisitionData.Validate()
}

type JobRequisitionEditData = JobRequisitionCreateData

type JobRequisitionView struct {
	JobRequisitionData
	ID                string          `json:"id"`
	JrID              string          `json:"jr_id"`
	Status            models.JRStatus `json:"status"`
	JobTitle          string          `json:"job_title"`
	DepartmentName    string          `json:"department_name"`
	DepartmentCode    string          `json:"department_code"`
	HiringManagerName string          `json:"hiring_manager_name"`
	SubmittedByID     string          `json:"submitted_by_id"`
	SubmittedByName   string          `json:"submitted_by_name"`
	RecruiterLeadID   string          `json:"recruiter_lead_id"`
	RecruiterLeadName string          `json:"recruiter_lead_name"`
	CreationDate      time.Time       `json:"creation_date"`
	UpdateDate        time.Time       `json:"update_date"`
}

func JobRequisitionConvert(rec dbmodels.JobRequisition) JobRequisitionView {
	result := JobRequisitionView{
		JobRequisitionData: JobRequisitionData{
			DepartmentID:      rec.DepartmentID,
			HiringManagerID:   rec.HiringManagerID,
			PrimarySkills:     rec.PrimarySkills,
			SecondarySkills:   rec.SecondarySkills,
			Qualifications:    rec.Qualifications,
			MinExperience:     rec.MinExperience,
			MaxExperience:     rec.MaxExperience,
			NumberOfPositions: rec.NumberOfPositions,
			OnboardingFrom:    rec.OnboardingFrom,
			OnboardingTo:      rec.OnboardingTo,
			WorkLocations:     rec.WorkLocations,
			Shift:             rec.Shift,
			JobPurpose:        rec.JobPurpose,
			Duties:            rec.Duties,
			JobSpecification:  rec.JobSpecification,
			WorkArrangement:   rec.WorkArrangement,
			RequestedDate:     rec.RequestedDate,
			Priority:          rec.Priority,
			ClientName:        rec.ClientName,
			BudgetMin:         rec.BudgetMin,
			BudgetMax:         rec.BudgetMax,
			FormStep:          rec.FormStep,
		},
		ID:           rec.ID,
		JrID:         rec.GetJrID(),
		Status:       rec.Status,
		JobTitle:     rec.GetJobTitleName(),
		CreationDate: rec.CreatedAt,
		UpdateDate:   rec.UpdatedAt,
	}
	if rec.JobTitleID != nil {
		result.JobTitleID = *rec.JobTitleID
	}
	if rec.Department != nil {
		result.DepartmentName = rec.Department.Name
		result.DepartmentCode = rec.Department.Code
	}
	if rec.HiringManager != nil {
		result.HiringManagerName = rec.HiringManager.GetFullName()
	}
	result.SubmittedByID = rec.GetSubmitterID()
	if submitter := rec.GetSubmitter(); submitter != nil {
		result.SubmittedByName = submitter.GetFullName()
	}
	if rec.RecruiterLeadID != nil {
		result.RecruiterLeadID = *rec.RecruiterLeadID
	}
	if rec.RecruiterLead != nil {
		result.RecruiterLeadName = rec.RecruiterLead.GetFullName()
	}
	return result
}

type JrFilter struct {
	apimodels.Pagination
	Statuses        []models.JRStatus `json:"statuses"`
	DepartmentID    string            `json:"department_id"`
	HiringManagerID string            `json:"hiring_manager_id"`
	Search          string            `json:"search"` // job title or JR number
	CreatedFrom     *time.Time        `json:"created_from"`
	CreatedTo       *time.Time        `json:"created_to"`
	OnlyMine        bool              `json:"only_mine"`   // submitted by me or where I am the hiring manager
	AwaitingMe      bool              `json:"awaiting_me"` // awaiting my decision
}

func (f JrFilter) Validate() error {
	for _, status := range f.Statuses {
		if !status.IsValid() {
			return errors.Errorf("unknown status: %v", status)
		}
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedTo.Before(*f.CreatedFrom) {
		return errors.New("created_to is before created_from")
	}
	return nil
}

func cleanList(list []string) []string {
	result := make([]string, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
