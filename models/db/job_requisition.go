package dbmodels

import (
	"hirex-backend/models"
	"time"

	"github.com/lib/pq"
)

type JobRequisition struct {
	BaseModel
	JrID              *string         `gorm:"type:varchar(50);uniqueIndex"`
	Status            models.JRStatus `gorm:"type:varchar(50);index"`
	FormStep          int
	JobTitleID        *string `gorm:"type:varchar(36)"`
	JobTitle          *JobTitle
	DepartmentID      string `gorm:"type:varchar(36);index"`
	Department        *Department
	HiringManagerID   string         `gorm:"type:varchar(36);index"`
	HiringManager     *User          `gorm:"foreignKey:HiringManagerID"`
	SubmittedByID     *string        `gorm:"type:varchar(36);index"`
	SubmittedBy       *User          `gorm:"foreignKey:SubmittedByID"`
	RecruiterLeadID   *string        `gorm:"type:varchar(36)"`
	RecruiterLead     *User          `gorm:"foreignKey:RecruiterLeadID"`
	PrimarySkills     pq.StringArray `gorm:"type:text[]"`
	SecondarySkills   pq.StringArray `gorm:"type:text[]"`
	Qualifications    pq.StringArray `gorm:"type:text[]"`
	MinExperience     *int
	MaxExperience     *int
	NumberOfPositions int
	OnboardingFrom    *time.Time
	OnboardingTo      *time.Time
	WorkLocations     pq.StringArray `gorm:"type:text[]"`
	Shift             models.JRShift `gorm:"type:varchar(50)"`
	JobPurpose        string
	Duties            string
	JobSpecification  string
	WorkArrangement   models.WorkArrangement `gorm:"type:varchar(50)"`
	RequestedDate     *time.Time
	Priority          models.JRPriority `gorm:"type:varchar(50)"`
	ClientName        string            `gorm:"type:varchar(255)"`
	BudgetMin         *float64
	BudgetMax         *float64
}

func (r JobRequisition) GetJobTitleName() string {
	if r.JobTitle == nil {
		return ""
	}
	return r.JobTitle.Name
}

func (r JobRequisition) GetJrID() string {
	if r.JrID == nil {
		return ""
	}
	return *r.JrID
}

// GetSubmitter returns the submitter, falling back to the hiring manager.
func (r JobRequisition) GetSubmitter() *User {
	if r.SubmittedBy != nil {
		return r.SubmittedBy
	}
	return r.HiringManager
}

func (r JobRequisition) GetSubmitterID() string {
	if r.SubmittedByID != nil && *r.SubmittedByID != "" {
		return *r.SubmittedByID
	}
	return r.HiringManagerID
}
