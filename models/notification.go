package models

type NotificationKind string

const (
	NotificationApprovalRequest   NotificationKind = "APPROVAL_REQUEST"
	NotificationApprovalGranted   NotificationKind = "APPROVAL_GRANTED"
	NotificationRejected          NotificationKind = "REJECTED"
	NotificationRecruiterAssigned NotificationKind = "RECRUITER_ASSIGNED"
	NotificationStatusChanged     NotificationKind = "STATUS_CHANGED"
	NotificationApprovalReminder  NotificationKind = "APPROVAL_REMINDER"
)

var notificationSubject = map[NotificationKind]string{
	NotificationApprovalRequest:   "Approval required",
	NotificationApprovalGranted:   "Requisition approved",
	NotificationRejected:          "Requisition rejected",
	NotificationRecruiterAssigned: "Requisition assigned to you",
	NotificationStatusChanged:     "Requisition status changed",
	NotificationApprovalReminder:  "Reminder: approval pending",
}

func (k NotificationKind) Subject() string {
	if subject, ok := notificationSubject[k]; ok {
		return subject
	}
	return string(k)
}

type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "SENT"
	NotificationStatusFailed NotificationStatus = "FAILED"
)

const NotificationMaxAttempts = 5
