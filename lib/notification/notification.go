package notification

import (
	"context"
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
)

//go:generate mockgen -source=notification.go -destination=notification_mock.go -package=notification

// Notification is one message for one recipient about one requisition.
type Notification struct {
	JobRequisitionID string
	RecipientEmail   string
	RecipientName    string
	Kind             models.NotificationKind
	JR               dbmodels.NotificationContext
}

// Sink delivers notifications. Callers treat a returned error as non fatal.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

var Instance Sink
