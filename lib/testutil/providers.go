package testutil

import (
	approvalhistorystore "hirex-backend/lib/approval-workflow/history-store"
	departmentstore "hirex-backend/lib/dicts/department/store"
	jobtitlestore "hirex-backend/lib/dicts/job-title/store"
	jobdescriptionstore "hirex-backend/lib/job-description/store"
	jobrequisitionstore "hirex-backend/lib/job-requisition/store"
	usersstore "hirex-backend/lib/users/store"
	"hirex-backend/models"
	jobrequisitionapimodels "hirex-backend/models/api/job-requisition"
	dbmodels "hirex-backend/models/db"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func (s *Store) Users() usersstore.Provider { return userStore{s} }
func (s *Store) Departments() departmentstore.Provider { return departmentStore{s} }
func (s *Store) JobTitles() jobtitlestore.Provider { return jobTitleStore{s} }
func (s *Store) JobRequisitions() jobrequisitionstore.Provider { return jrStore{s} }
func (s *Store) History() approvalhistorystore.Provider { return historyStore{s} }
func (s *Store) JobDescriptions() jobdescriptionstore.Provider { return jdStore{s} }

type userStore struct{ s *Store }

func (u userStore) GetByID(userID string) (*dbmodels.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	return u.s.userPtr(&userID), nil
}

func (u userStore) GetByIDs(ids []string) ([]dbmodels.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	list := []dbmodels.User{}
	for _, id := range ids {
		if rec, ok := u.s.users[id]; ok {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (u userStore) FindByEmail(email string) (*dbmodels.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, rec := range u.s.users {
		if strings.EqualFold(rec.Email, email) {
			return &rec, nil
		}
	}
	return nil, nil
}

func (u userStore) FindFirstActiveByRole(role models.UserRole) (*dbmodels.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	var found *dbmodels.User
	for _, rec := range u.s.users {
		if rec.Role != role || !rec.IsActive {
			continue
		}
		if found == nil || rec.CreatedAt.Before(found.CreatedAt) {
			rec := rec
			found = &rec
		}
	}
	return found, nil
}

type departmentStore struct{ s *Store }

func (d departmentStore) Create(rec dbmodels.Department) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = d.s.tick()
	rec.DUHead, rec.CDO, rec.RecruiterLead = nil, nil, nil
	d.s.departments[rec.ID] = rec
	return rec.ID, nil
}

func (d departmentStore) GetByID(id string) (*dbmodels.Department, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	return d.s.loadDepartment(id), nil
}

func (d departmentStore) FindByCode(code string) (*dbmodels.Department, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	for id, rec := range d.s.departments {
		if rec.Code == code {
			return d.s.loadDepartment(id), nil
		}
	}
	return nil, nil
}

func (d departmentStore) Update(id string, updMap map[string]interface{}) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	rec, ok := d.s.departments[id]
	if !ok {
		return models.NewNotFoundError("Department not found")
	}
	for key, value := range updMap {
		switch key {
		case "name":
			rec.Name = value.(string)
		case "code":
			rec.Code = value.(string)
		case "du_head_id":
			rec.DUHeadID = value.(*string)
		case "cdo_id":
			rec.CDOID = value.(*string)
		case "recruiter_lead_id":
			rec.RecruiterLeadID = value.(*string)
		}
	}
	d.s.departments[id] = rec
	return nil
}

func (d departmentStore) List() ([]dbmodels.Department, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	list := []dbmodels.Department{}
	for id := range d.s.departments {
		list = append(list, *d.s.loadDepartment(id))
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Name < list[b].Name })
	return list, nil
}

type jobTitleStore struct{ s *Store }

func (j jobTitleStore) GetByID(id string) (*dbmodels.JobTitle, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	rec, ok := j.s.jobTitles[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (j jobTitleStore) FindByName(name string) ([]dbmodels.JobTitle, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	list := []dbmodels.JobTitle{}
	for _, rec := range j.s.jobTitles {
		if strings.Contains(strings.ToLower(rec.Name), strings.ToLower(name)) {
			list = append(list, rec)
		}
	}
	return list, nil
}

type jrStore struct{ s *Store }

func (j jrStore) Create(rec dbmodels.JobRequisition) (string, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	if j.s.failUnique(rec.JrID) || j.s.jrIDTaken(rec.JrID, "") {
		return "", uniqueViolation()
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = j.s.tick()
	rec.UpdatedAt = rec.CreatedAt
	j.s.jrs[rec.ID] = stripJR(rec)
	return rec.ID, nil
}

func (j jrStore) GetByID(id string) (*dbmodels.JobRequisition, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	if _, ok := j.s.jrs[id]; !ok {
		return nil, nil
	}
	rec := j.s.loadJR(id)
	return &rec, nil
}

func (j jrStore) GetByIDs(ids []string) ([]dbmodels.JobRequisition, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	list := []dbmodels.JobRequisition{}
	for _, id := range ids {
		if _, ok := j.s.jrs[id]; ok {
			list = append(list, j.s.loadJR(id))
		}
	}
	return list, nil
}

func (j jrStore) Update(id string, updMap map[string]interface{}) error {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	rec, ok := j.s.jrs[id]
	if !ok {
		return models.NewNotFoundError("Job requisition not found")
	}
	applyUpdate(&rec, updMap)
	if j.s.jrIDTaken(rec.JrID, id) {
		return uniqueViolation()
	}
	rec.UpdatedAt = j.s.tick()
	j.s.jrs[id] = rec
	return nil
}

func (j jrStore) UpdateStatus(id string, expected, next models.JRStatus, updMap map[string]interface{}) error {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	rec, ok := j.s.jrs[id]
	if !ok || rec.Status != expected {
		return models.NewConflictError("Requisition was changed by another request (expected status: %v)", expected)
	}
	applyUpdate(&rec, updMap)
	if _, ok := updMap["jr_id"]; ok && (j.s.failUnique(rec.JrID) || j.s.jrIDTaken(rec.JrID, id)) {
		return uniqueViolation()
	}
	rec.Status = next
	rec.UpdatedAt = j.s.tick()
	j.s.jrs[id] = rec
	return nil
}

func (j jrStore) Delete(id string) error {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	delete(j.s.jrs, id)
	return nil
}

func (j jrStore) filtered(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) []dbmodels.JobRequisition {
	list := []dbmodels.JobRequisition{}
	for id := range j.s.jrs {
		rec := j.s.loadJR(id)
		if matchesFilter(rec, filter, userID, role) {
			list = append(list, rec)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].CreatedAt.After(list[b].CreatedAt) })
	return list
}

func (j jrStore) List(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) ([]dbmodels.JobRequisition, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	list := j.filtered(userID, role, filter)
	page, limit := filter.GetPage()
	from := (page - 1) * limit
	if from >= len(list) {
		return []dbmodels.JobRequisition{}, nil
	}
	to := from + limit
	if to > len(list) {
		to = len(list)
	}
	return list[from:to], nil
}

func (j jrStore) ListCount(userID string, role models.UserRole, filter jobrequisitionapimodels.JrFilter) (int64, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	return int64(len(j.filtered(userID, role, filter))), nil
}

func (j jrStore) ListJrIDsByPrefix(prefix string) ([]string, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	list := []string{}
	for _, rec := range j.s.jrs {
		if rec.JrID != nil && strings.HasPrefix(*rec.JrID, prefix) {
			list = append(list, *rec.JrID)
		}
	}
	return list, nil
}

type historyStore struct{ s *Store }

func (h historyStore) Create(rec dbmodels.ApprovalHistory) (string, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if rec.JobRequisitionID == "" {
		return "", errors.New("job_requisition_id is required")
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = h.s.tick()
	rec.Approver = nil
	rec.JobRequisition = nil
	h.s.history = append(h.s.history, rec)
	return rec.ID, nil
}

func (h historyStore) List(jobRequisitionID string) ([]dbmodels.ApprovalHistory, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.s.historyOf(jobRequisitionID), nil
}

func (h historyStore) ListPendingBefore(before time.Time) ([]dbmodels.ApprovalHistory, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	list := []dbmodels.ApprovalHistory{}
	latest := approvalhistorystore.LatestPending(h.s.history)
	for _, rec := range latest {
		if !rec.CreatedAt.Before(before) {
			continue
		}
		rec.Approver = h.s.userPtr(rec.ApproverID)
		if _, ok := h.s.jrs[rec.JobRequisitionID]; ok {
			jr := h.s.loadJR(rec.JobRequisitionID)
			rec.JobRequisition = &jr
		}
		list = append(list, rec)
	}
	return list, nil
}

type jdStore struct{ s *Store }

func (j jdStore) Create(rec dbmodels.JobDescription) (string, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	for _, existing := range j.s.jds {
		if existing.JobRequisitionID == rec.JobRequisitionID {
			return "", uniqueViolation()
		}
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = j.s.tick()
	j.s.jds[rec.ID] = rec
	return rec.ID, nil
}

func (j jdStore) GetByJobRequisitionID(jobRequisitionID string) (*dbmodels.JobDescription, error) {
	j.s.mu.Lock()
	defer j.s.mu.Unlock()
	for _, rec := range j.s.jds {
		if rec.JobRequisitionID == jobRequisitionID {
			return &rec, nil
		}
	}
	return nil, nil
}
