package jobrequisitionstore

import (
	"fmt"
	"hirex-backend/models"
	jobrequisitionapimodels "hirex-backend/models/api/job-requisition"
	dbmodels "hirex-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.JobRequisition) (id string, err error)
	GetByID(id string) (rec *dbmodels.JobRequisition, err error)
	GetByIDs(ids []string) (list []dbmodels.JobRequisition, err error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateStatus moves the requisition to next only while it is still in expected.
	UpdateStatus(id string, expected, next models.JRStatus, updMap map[string]interface{}) error
	Delete(id string) error
	List(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) (list []dbmodels.JobRequisition, err error)
	ListCount(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) (count int64, err error)
	ListJrIDsByPrefix(prefix string) (list []string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobRequisition) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.JobRequisition, error) {
	rec := dbmodels.JobRequisition{}
	err := i.preload(i.db).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByIDs(ids []string) (list []dbmodels.JobRequisition, err error) {
	list = []dbmodels.JobRequisition{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.preload(i.db).
		Where("id in (?)", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.JobRequisition{}).
		Where("id = ?", id).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return models.NewNotFoundError("Job requisition not found")
	}
	return nil
}

func (i impl) UpdateStatus(id string, expected, next models.JRStatus, updMap map[string]interface{}) error {
	values := map[string]interface{}{}
	for k, v := range updMap {
		values[k] = v
	}
	values["status"] = next
	tx := i.db.
		Model(&dbmodels.JobRequisition{}).
		Where("id = ?", id).
		Where("status = ?", expected).
		Updates(values)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return models.NewConflictError("Requisition was changed by another request (expected status: %v)", expected)
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.JobRequisition{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) (list []dbmodels.JobRequisition, err error) {
	list = []dbmodels.JobRequisition{}
	tx := i.preload(i.db.Model(dbmodels.JobRequisition{}))
	i.addFilter(tx, filter, userID, role)
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.
		Order("job_requisitions.created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.Model(dbmodels.JobRequisition{})
	i.addFilter(tx, filter, userID, role)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("failed to count job requisitions")
		return 0, errors.New("failed to count job requisitions")
	}
	return rowCount, nil
}

func (i impl) ListJrIDsByPrefix(prefix string) (list []string, err error) {
	list = []string{}
	err = i.db.
		Model(dbmodels.JobRequisition{}).
		Unscoped().
		Where("jr_id like ?", prefix+"%").
		Pluck("jr_id", &list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) preload(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("JobTitle").
		Preload("Department").
		Preload("Department.DUHead").
		Preload("Department.CDO").
		Preload("Department.RecruiterLead").
		Preload("HiringManager").
		Preload("SubmittedBy").
		Preload("RecruiterLead")
}

func (i impl) addFilter(tx *gorm.DB, filter jobrequisitionapimodels.JrFilter, userID string, role models.UserRole) {
	if len(filter.Statuses) != 0 {
		tx.Where("job_requisitions.status in (?)", filter.Statuses)
	}
	if filter.DepartmentID != "" {
		tx.Where("job_requisitions.department_id = ?", filter.DepartmentID)
	}
	if filter.HiringManagerID != "" {
		tx.Where("job_requisitions.hiring_manager_id = ?", filter.HiringManagerID)
	}
	if filter.CreatedFrom != nil {
		tx.Where("job_requisitions.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		tx.Where("job_requisitions.created_at <= ?", *filter.CreatedTo)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("(LOWER(job_requisitions.jr_id) like ? or job_requisitions.job_title_id in (?))",
			search,
			i.db.Model(dbmodels.JobTitle{}).Select("id").Where("LOWER(name) like ?", search))
	}
	if filter.OnlyMine {
		tx.Where("(job_requisitions.submitted_by_id = ? or job_requisitions.hiring_manager_id = ?)", userID, userID)
	}
	if filter.AwaitingMe {
		i.addAwaitingFilter(tx, userID, role)
	}
}

// addAwaitingFilter keeps the requisitions the caller can decide on right now.
func (i impl) addAwaitingFilter(tx *gorm.DB, userID string, role models.UserRole) {
	departments := func(column string) *gorm.DB {
		return i.db.Model(dbmodels.Department{}).Select("id").Where(fmt.Sprintf("%v = ?", column), userID)
	}
	switch role {
	case models.DUHeadRole:
		tx.Where("job_requisitions.status = ? and job_requisitions.department_id in (?)",
			models.JRStatusPendingDUHeadApproval, departments("du_head_id"))
	case models.CDORole:
		tx.Where("job_requisitions.status = ? and job_requisitions.department_id in (?)",
			models.JRStatusPendingCDOApproval, departments("cdo_id"))
	case models.COORole:
		tx.Where("job_requisitions.status = ?", models.JRStatusPendingCOOApproval)
	default:
		tx.Where("1 = 0")
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
