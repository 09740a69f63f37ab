package approvalworkflow

import (
	"context"
	approvalhistorystore "hirex-backend/lib/approval-workflow/history-store"
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const reminderConcurrency = 4

// SendPendingApprovalReminders nudges approvers whose pending entry is older
// than the waiting period. Each entry is reminded at most once per period.
func (i impl) SendPendingApprovalReminders(ctx context.Context) (int, error) {
	if !i.settings.ReminderEnabled {
		log.Info("approval reminders are disabled")
		return 0, nil
	}
	window := time.Duration(i.settings.WaitingPeriodDays) * 24 * time.Hour
	now := i.now()
	list, err := i.store.History.ListPendingBefore(now.Add(-window))
	if err != nil {
		return 0, errors.Wrap(err, "failed to load pending approvals")
	}
	list = approvalhistorystore.LatestPending(list)
	var sent int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reminderConcurrency)
	for _, entry := range list {
		if gctx.Err() != nil {
			break
		}
		logger := i.GetLogger(entry.JobRequisitionID).WithField("history_id", entry.ID)
		jr := entry.JobRequisition
		if jr == nil || jr.GetJrID() == "" {
			logger.Debug("reminder skipped, requisition or its number is missing")
			continue
		}
		if jr.Status != entry.NewStatus {
			// the stage was already decided
			continue
		}
		approver, err := i.reminderRecipient(entry)
		if err != nil {
			logger.WithError(err).Error("failed to resolve approver for reminder")
			continue
		}
		if approver == nil || approver.Email == "" {
			logger.Warn("reminder skipped, approver is not resolvable")
			continue
		}
		marked, err := i.marks.Mark(gctx, entry.ID, window)
		if err != nil {
			logger.WithError(err).Error("failed to set reminder mark")
			continue
		}
		if !marked {
			continue
		}
		pendingDays := int(now.Sub(entry.CreatedAt).Hours() / 24)
		n := reminderNotice(*jr, *approver, pendingDays)
		g.Go(func() error {
			if err := i.sink.Send(gctx, n); err != nil {
				logger.WithError(err).Warn("reminder failed, left for retry")
				return nil
			}
			atomic.AddInt64(&sent, 1)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return int(sent), err
	}
	log.WithField("sent", sent).Info("approval reminders processed")
	return int(sent), nil
}

func (i impl) reminderRecipient(entry dbmodels.ApprovalHistory) (*approverIdentity, error) {
	if entry.Approver != nil {
		if !entry.Approver.IsActive {
			return nil, nil
		}
		return &approverIdentity{
			ID:    &entry.Approver.ID,
			Email: entry.Approver.Email,
			Name:  entry.Approver.GetFullName(),
		}, nil
	}
	if entry.ApproverRole == models.COORole {
		return i.coo.Resolve()
	}
	return nil, nil
}
