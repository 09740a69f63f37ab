package dbmodels

import (
	"hirex-backend/models"
	"time"

	"github.com/lib/pq"
)

type JobDescription struct {
	BaseModel
	JobRequisitionID  string         `gorm:"type:varchar(36);uniqueIndex"`
	JrID              string         `gorm:"type:varchar(50)"`
	JobTitle          string         `gorm:"type:varchar(255)"`
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
	DepartmentID      string  `gorm:"type:varchar(36)"`
	HiringManagerID   string  `gorm:"type:varchar(36)"`
	RecruiterLeadID   *string `gorm:"type:varchar(36)"`
	SubmittedByID     *string `gorm:"type:varchar(36)"`
}
