package models

type JRStatus string

const (
	JRStatusDraft                 JRStatus = "Draft"
	JRStatusSubmitted             JRStatus = "Submitted"
	JRStatusPendingDUHeadApproval JRStatus = "Pending DU Head Approval"
	JRStatusPendingCDOApproval    JRStatus = "Pending CDO Approval"
	JRStatusPendingCOOApproval    JRStatus = "Pending COO Approval"
	JRStatusApproved              JRStatus = "Approved"
	JRStatusRejected              JRStatus = "Rejected"
)

// AssignedToRecruiterLabel is only shown in notifications, it is never stored.
const AssignedToRecruiterLabel = "Assigned to Recruiter"

var AllJRStatuses = []JRStatus{
	JRStatusDraft,
	JRStatusSubmitted,
	JRStatusPendingDUHeadApproval,
	JRStatusPendingCDOApproval,
	JRStatusPendingCOOApproval,
	JRStatusApproved,
	JRStatusRejected,
}

// stageRole is the approver role a pending status waits for.
var stageRole = map[JRStatus]UserRole{
	JRStatusPendingDUHeadApproval: DUHeadRole,
	JRStatusPendingCDOApproval:    CDORole,
	JRStatusPendingCOOApproval:    COORole,
}

func (s JRStatus) IsValid() bool {
	for _, status := range AllJRStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s JRStatus) IsPendingApproval() bool {
	_, ok := stageRole[s]
	return ok
}

// StageRole returns the role expected to decide on a requisition in this status.
func (s JRStatus) StageRole() (UserRole, bool) {
	role, ok := stageRole[s]
	return role, ok
}

func (s JRStatus) IsEditable() bool {
	return s == JRStatusDraft
}

func (s JRStatus) IsPreSubmission() bool {
	return s == JRStatusDraft || s == JRStatusSubmitted
}
