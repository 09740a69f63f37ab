package approvalhistorystore

import (
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Provider has no update or delete on purpose, the ledger is append-only.
type Provider interface {
	Create(rec dbmodels.ApprovalHistory) (id string, err error)
	List(jobRequisitionID string) (list []dbmodels.ApprovalHistory, err error)
	ListPendingBefore(before time.Time) (list []dbmodels.ApprovalHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalHistory) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// a decision and the pending row for the next stage share one transaction and
// may share created_at, the pending row goes last
const ledgerOrder = "created_at ASC, action = 'pending' ASC"

func (i impl) List(jobRequisitionID string) (list []dbmodels.ApprovalHistory, err error) {
	list = []dbmodels.ApprovalHistory{}
	err = i.db.
		Where("job_requisition_id = ?", jobRequisitionID).
		Order(ledgerOrder).
		Preload("Approver").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListPendingBefore(before time.Time) (list []dbmodels.ApprovalHistory, err error) {
	list = []dbmodels.ApprovalHistory{}
	err = i.db.
		Where("action = ?", models.ApprovalActionPending).
		Where("created_at < ?", before).
		Where("NOT EXISTS (?)", i.db.
			Table("approval_histories AS newer").
			Select("1").
			Where("newer.job_requisition_id = approval_histories.job_requisition_id").
			Where("newer.action = ?", models.ApprovalActionPending).
			Where("newer.created_at > approval_histories.created_at")).
		Order(ledgerOrder).
		Preload("Approver").
		Preload("JobRequisition").
		Preload("JobRequisition.JobTitle").
		Preload("JobRequisition.HiringManager").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// SortLedger puts rows in ledger order, matching the order List returns.
func SortLedger(list []dbmodels.ApprovalHistory) {
	sort.SliceStable(list, func(a, b int) bool {
		if !list[a].CreatedAt.Equal(list[b].CreatedAt) {
			return list[a].CreatedAt.Before(list[b].CreatedAt)
		}
		return list[a].Action != models.ApprovalActionPending && list[b].Action == models.ApprovalActionPending
	})
}

// LatestPending drops pending rows superseded by a newer pending row of the
// same requisition, as happens after a revise and resubmit.
func LatestPending(list []dbmodels.ApprovalHistory) []dbmodels.ApprovalHistory {
	latest := map[string]dbmodels.ApprovalHistory{}
	for _, rec := range list {
		if rec.Action != models.ApprovalActionPending {
			continue
		}
		current, ok := latest[rec.JobRequisitionID]
		if !ok || current.CreatedAt.Before(rec.CreatedAt) {
			latest[rec.JobRequisitionID] = rec
		}
	}
	result := make([]dbmodels.ApprovalHistory, 0, len(latest))
	for _, rec := range list {
		if current, ok := latest[rec.JobRequisitionID]; ok && current.ID == rec.ID {
			result = append(result, rec)
		}
	}
	return result
}
