package models

type ApprovalAction string

const (
	ApprovalActionPending  ApprovalAction = "pending"
	ApprovalActionApproved ApprovalAction = "approved"
	ApprovalActionRejected ApprovalAction = "rejected"
)

// ApprovalDecisionType is what an approver sends through the approval API.
type ApprovalDecisionType string

const (
	DecisionApprove ApprovalDecisionType = "approve"
	DecisionReject  ApprovalDecisionType = "reject"
)

func (d ApprovalDecisionType) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

const DefaultRejectComment = "No comments provided"

const NotSpecified = "Not specified"
