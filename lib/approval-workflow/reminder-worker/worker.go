package reminderworker

import (
	"context"
	approvalworkflow "hirex-backend/lib/approval-workflow"
	baseworker "hirex-backend/lib/utils/base-worker"
	"time"
)

type reminderSender interface {
	SendPendingApprovalReminders(ctx context.Context) (sent int, err error)
}

// StartWorker reminds approvers about requisitions waiting longer than the
// configured period.
func StartWorker(ctx context.Context) {
	i := newWorker(approvalworkflow.Instance)
	go i.Run(ctx, i.handle)
}

func newWorker(workflow reminderSender) *impl {
	return &impl{
		BaseImpl: *baseworker.NewInstance("ApprovalReminderWorker", 1*time.Minute, 1*time.Hour),
		workflow: workflow,
	}
}

type impl struct {
	baseworker.BaseImpl
	workflow reminderSender
}

func (i impl) handle(ctx context.Context) {
	sent, err := i.workflow.SendPendingApprovalReminders(ctx)
	logger := i.GetLogger().WithField("sent", sent)
	if err != nil {
		logger.WithError(err).Error("approval reminder sweep failed")
		return
	}
	logger.Info("approval reminder sweep done")
}
