package approvalapimodels

import (
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type ApprovalDecisionRequest struct {
	Action   models.ApprovalDecisionType `json:"action"`
	Comments string                      `json:"comments"`
}

func (r ApprovalDecisionRequest) Validate() error {
	if !r.Action.IsValid() {
		return errors.New("action must be one of: approve, reject")
	}
	return nil
}

type CanApproveView struct {
	CanApprove    bool            `json:"canApprove"`
	Reason        string          `json:"reason,omitempty"`
	CurrentStatus models.JRStatus `json:"currentStatus"`
}

type ApprovalHistoryView struct {
	ID             string                `json:"id"`
	ApproverID     string                `json:"approver_id"`
	ApproverName   string                `json:"approver_name"`
	ApproverEmail  string                `json:"approver_email"`
	ApproverRole   models.UserRole       `json:"approver_role"`
	Action         models.ApprovalAction `json:"action"`
	Comments       string                `json:"comments"`
	PreviousStatus models.JRStatus       `json:"previous_status"`
	NewStatus      models.JRStatus       `json:"new_status"`
	CreatedAt      time.Time             `json:"created_at"`
}

func ApprovalHistoryConvert(rec dbmodels.ApprovalHistory) ApprovalHistoryView {
	result := ApprovalHistoryView{
		ID:             rec.ID,
		ApproverRole:   rec.ApproverRole,
		Action:         rec.Action,
		Comments:       rec.Comments,
		PreviousStatus: rec.PreviousStatus,
		NewStatus:      rec.NewStatus,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.ApproverID != nil {
		result.ApproverID = *rec.ApproverID
	}
	if rec.Approver != nil {
		result.ApproverName = rec.Approver.GetFullName()
		result.ApproverEmail = rec.Approver.Email
	}
	return result
}
