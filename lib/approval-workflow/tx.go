package approvalworkflow

import (
	approvalhistorystore "hirex-backend/lib/approval-workflow/history-store"
	jobdescriptionstore "hirex-backend/lib/job-description/store"
	jobrequisitionstore "hirex-backend/lib/job-requisition/store"

	"gorm.io/gorm"
)

// Stores is the set of stores a transition writes through.
type Stores struct {
	JobRequisitions jobrequisitionstore.Provider
	History         approvalhistorystore.Provider
	JobDescriptions jobdescriptionstore.Provider
}

// TxFunc runs fn with stores bound to one transaction. A returned error rolls it back.
type TxFunc func(fn func(s Stores) error) error

func GormStores(DB *gorm.DB) Stores {
	return Stores{
		JobRequisitions: jobrequisitionstore.NewInstance(DB),
		History:         approvalhistorystore.NewInstance(DB),
		JobDescriptions: jobdescriptionstore.NewInstance(DB),
	}
}

func GormTx(DB *gorm.DB) TxFunc {
	return func(fn func(s Stores) error) error {
		return DB.Transaction(func(tx *gorm.DB) error {
			return fn(GormStores(tx))
		})
	}
}
