package approvalhistorystore

import (
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func row(id, jrID string, action models.ApprovalAction, at time.Time) dbmodels.ApprovalHistory {
	return dbmodels.ApprovalHistory{
		BaseModel:        dbmodels.BaseModel{ID: id, CreatedAt: at},
		JobRequisitionID: jrID,
		Action:           action,
	}
}

func ids(list []dbmodels.ApprovalHistory) []string {
	result := make([]string, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ID)
	}
	return result
}

func TestLatestPending(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	list := []dbmodels.ApprovalHistory{
		row("first-cycle", "jr-1", models.ApprovalActionPending, at),
		row("rejected", "jr-1", models.ApprovalActionRejected, at.Add(time.Hour)),
		row("second-cycle", "jr-1", models.ApprovalActionPending, at.Add(2*time.Hour)),
		row("other", "jr-2", models.ApprovalActionPending, at.Add(time.Minute)),
	}
	require.Equal(t, []string{"second-cycle", "other"}, ids(LatestPending(list)))
	require.Empty(t, LatestPending(nil))
}

func TestSortLedger(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	list := []dbmodels.ApprovalHistory{
		row("next-stage", "jr-1", models.ApprovalActionPending, at.Add(time.Hour)),
		row("approved", "jr-1", models.ApprovalActionApproved, at.Add(time.Hour)),
		row("initial", "jr-1", models.ApprovalActionPending, at),
	}
	SortLedger(list)
	require.Equal(t, []string{"initial", "approved", "next-stage"}, ids(list))
}
