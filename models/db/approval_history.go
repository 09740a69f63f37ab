package dbmodels

import (
	"hirex-backend/models"
)

// ApprovalHistory is append-only, rows are never updated or deleted.
type ApprovalHistory struct {
	BaseModel
	JobRequisitionID string                `gorm:"type:varchar(36);index"`
	ApproverRole     models.UserRole       `gorm:"type:varchar(50)"`
	ApproverID       *string               `gorm:"type:varchar(36)"`
	Approver         *User                 `gorm:"foreignKey:ApproverID"`
	Action           models.ApprovalAction `gorm:"type:varchar(20);index"`
	Comments         string
	PreviousStatus   models.JRStatus `gorm:"type:varchar(50)"`
	NewStatus        models.JRStatus `gorm:"type:varchar(50)"`
	JobRequisition   *JobRequisition
}
