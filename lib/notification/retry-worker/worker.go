package notificationretryworker

import (
	"context"
	"hirex-backend/db"
	"hirex-backend/lib/notification"
	notificationlogstore "hirex-backend/lib/notification/store"
	baseworker "hirex-backend/lib/utils/base-worker"
	"hirex-backend/lib/utils/helpers"
	"hirex-backend/models"
	"time"
)

const batchSize = 50

// StartWorker resends failed notifications. It uses the raw sink, so a retry
// updates the existing log row instead of writing a new one.
func StartWorker(ctx context.Context, sink notification.Sink) {
	i := newWorker(sink, notificationlogstore.NewInstance(db.DB))
	go i.Run(ctx, i.handle)
}

func newWorker(sink notification.Sink, store notificationlogstore.Provider) *impl {
	return &impl{
		BaseImpl: *baseworker.NewInstance("NotificationRetryWorker", 30*time.Second, 5*time.Minute),
		sink:     sink,
		logStore: store,
	}
}

type impl struct {
	baseworker.BaseImpl
	sink     notification.Sink
	logStore notificationlogstore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.logStore.ListRetryable(models.NotificationMaxAttempts, batchSize)
	if err != nil {
		logger.WithError(err).Error("failed to load failed notifications")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		err = notification.Resend(ctx, i.sink, i.logStore, rec)
		if err != nil {
			logger.
				WithError(err).
				WithField("rec_id", rec.JobRequisitionID).
				WithField("attempt", rec.Attempts+1).
				Warn("notification retry failed")
		}
	}
}
