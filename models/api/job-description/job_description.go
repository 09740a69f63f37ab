package jobdescriptionapimodels

import (
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"time"
)

type JobDescriptionView struct {
	ID                string                 `json:"id"`
	JobRequisitionID  string                 `json:"job_requisition_id"`
	JrID              string                 `json:"jr_id"`
	JobTitle          string                 `json:"job_title"`
	PrimarySkills     []string               `json:"primary_skills"`
	SecondarySkills   []string               `json:"secondary_skills"`
	Qualifications    []string               `json:"qualifications"`
	MinExperience     *int                   `json:"min_experience"`
	MaxExperience     *int                   `json:"max_experience"`
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
	DepartmentID      string                 `json:"department_id"`
	HiringManagerID   string                 `json:"hiring_manager_id"`
	RecruiterLeadID   string                 `json:"recruiter_lead_id"`
	SubmittedByID     string                 `json:"submitted_by_id"`
	CreationDate      time.Time              `json:"creation_date"`
}

func JobDescriptionConvert(rec dbmodels.JobDescription) JobDescriptionView {
	result := JobDescriptionView{
		ID:                rec.ID,
		JobRequisitionID:  rec.JobRequisitionID,
		JrID:              rec.JrID,
		JobTitle:          rec.JobTitle,
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
		DepartmentID:      rec.DepartmentID,
		HiringManagerID:   rec.HiringManagerID,
		CreationDate:      rec.CreatedAt,
	}
	if rec.RecruiterLeadID != nil {
		result.RecruiterLeadID = *rec.RecruiterLeadID
	}
	if rec.SubmittedByID != nil {
		result.SubmittedByID = *rec.SubmittedByID
	}
	return result
}
