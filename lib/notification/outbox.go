package notification

import (
	"context"
	notificationlogstore "hirex-backend/lib/notification/store"
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type outboxSink struct {
	next  Sink
	store notificationlogstore.Provider
}

// NewOutboxSink records every attempt of next in the notification log so that
// failed sends can be retried later by the retry worker.
func NewOutboxSink(next Sink, store notificationlogstore.Provider) Sink {
	return &outboxSink{
		next:  next,
		store: store,
	}
}

func (s outboxSink) Send(ctx context.Context, n Notification) error {
	sendErr := s.next.Send(ctx, n)
	now := time.Now()
	rec := dbmodels.NotificationLog{
		JobRequisitionID: n.JobRequisitionID,
		RecipientEmail:   n.RecipientEmail,
		RecipientName:    n.RecipientName,
		Kind:             n.Kind,
		Context:          n.JR,
		Status:           models.NotificationStatusSent,
		Attempts:         1,
		LastAttemptAt:    &now,
	}
	if sendErr != nil {
		rec.Status = models.NotificationStatusFailed
		rec.LastError = sendErr.Error()
	}
	if _, err := s.store.Create(rec); err != nil {
		log.WithError(err).
			WithField("rec_id", n.JobRequisitionID).
			Error("failed to store notification log")
	}
	if sendErr != nil {
		return errors.Wrapf(sendErr, "%v notification to %v failed", n.Kind, n.RecipientEmail)
	}
	return nil
}

// Resend retries one failed log record and stores the outcome.
func Resend(ctx context.Context, sink Sink, store notificationlogstore.Provider, rec dbmodels.NotificationLog) error {
	n := Notification{
		JobRequisitionID: rec.JobRequisitionID,
		RecipientEmail:   rec.RecipientEmail,
		RecipientName:    rec.RecipientName,
		Kind:             rec.Kind,
		JR:               rec.Context,
	}
	sendErr := sink.Send(ctx, n)
	updMap := map[string]interface{}{
		"attempts":        rec.Attempts + 1,
		"last_attempt_at": time.Now(),
	}
	if sendErr != nil {
		updMap["last_error"] = sendErr.Error()
	} else {
		updMap["status"] = models.NotificationStatusSent
		updMap["last_error"] = ""
	}
	if err := store.Update(rec.ID, updMap); err != nil {
		return errors.Wrap(err, "failed to update notification log")
	}
	return sendErr
}
