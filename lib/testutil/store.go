// Package testutil holds in-memory implementations of the store providers.
// They mirror the preloading done by the gorm stores so handlers can be tested
// without a database.
package testutil

import (
	"fmt"
	approvalhistorystore "hirex-backend/lib/approval-workflow/history-store"
	"hirex-backend/models"
	jobrequisitionapimodels "hirex-backend/models/api/job-requisition"
	dbmodels "hirex-backend/models/db"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type Store struct {
	mu          sync.Mutex
	clock       time.Time
	users       map[string]dbmodels.User
	departments map[string]dbmodels.Department
	jobTitles   map[string]dbmodels.JobTitle
	jrs         map[string]dbmodels.JobRequisition
	history     []dbmodels.ApprovalHistory
	jds         map[string]dbmodels.JobDescription

	// FailUniqueOnce makes the next n requisition writes carrying a jr_id fail
	// with a unique violation.
	FailUniqueOnce int
}

func NewStore() *Store {
	return &Store{
		clock:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		users:       map[string]dbmodels.User{},
		departments: map[string]dbmodels.Department{},
		jobTitles:   map[string]dbmodels.JobTitle{},
		jrs:         map[string]dbmodels.JobRequisition{},
		jds:         map[string]dbmodels.JobDescription{},
	}
}

// Now returns the fake clock. Every created row advances it by a second so
// ordering by created_at is stable.
func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

func (s *Store) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(d)
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) AddUser(firstName, lastName string, role models.UserRole) dbmodels.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := dbmodels.User{
		BaseModel: dbmodels.BaseModel{ID: uuid.NewString(), CreatedAt: s.tick()},
		FirstName: firstName,
		LastName:  lastName,
		Email:     strings.ToLower(firstName+"."+lastName) + "@example.com",
		Role:      role,
		IsActive:  true,
	}
	s.users[rec.ID] = rec
	return rec
}

func (s *Store) SetUserActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.users[id]
	rec.IsActive = active
	s.users[id] = rec
}

func (s *Store) AddDepartment(name, code string, duHead, cdo, recruiterLead *dbmodels.User) dbmodels.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := dbmodels.Department{
		BaseModel: dbmodels.BaseModel{ID: uuid.NewString(), CreatedAt: s.tick()},
		Name:      name,
		Code:      code,
	}
	if duHead != nil {
		rec.DUHeadID = &duHead.ID
	}
	if cdo != nil {
		rec.CDOID = &cdo.ID
	}
	if recruiterLead != nil {
		rec.RecruiterLeadID = &recruiterLead.ID
	}
	s.departments[rec.ID] = rec
	return rec
}

func (s *Store) AddJobTitle(name string) dbmodels.JobTitle {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := dbmodels.JobTitle{
		BaseModel: dbmodels.BaseModel{ID: uuid.NewString(), CreatedAt: s.tick()},
		Name:      name,
	}
	s.jobTitles[rec.ID] = rec
	return rec
}

// PutJobRequisition stores rec as is, generating an id when it has none.
func (s *Store) PutJobRequisition(rec dbmodels.JobRequisition) dbmodels.JobRequisition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.tick()
	}
	s.jrs[rec.ID] = stripJR(rec)
	return s.loadJR(rec.ID)
}

// PutHistory appends a ledger row with an explicit created_at.
func (s *Store) PutHistory(rec dbmodels.ApprovalHistory) dbmodels.ApprovalHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	s.history = append(s.history, rec)
	return rec
}

func (s *Store) JobRequisition(id string) dbmodels.JobRequisition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadJR(id)
}

func (s *Store) HistoryOf(jobRequisitionID string) []dbmodels.ApprovalHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyOf(jobRequisitionID)
}

func (s *Store) JobDescriptionCount(jobRequisitionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, rec := range s.jds {
		if rec.JobRequisitionID == jobRequisitionID {
			count++
		}
	}
	return count
}

func (s *Store) userPtr(id *string) *dbmodels.User {
	if id == nil {
		return nil
	}
	rec, ok := s.users[*id]
	if !ok {
		return nil
	}
	return &rec
}

func (s *Store) loadDepartment(id string) *dbmodels.Department {
	rec, ok := s.departments[id]
	if !ok {
		return nil
	}
	rec.DUHead = s.userPtr(rec.DUHeadID)
	rec.CDO = s.userPtr(rec.CDOID)
	rec.RecruiterLead = s.userPtr(rec.RecruiterLeadID)
	return &rec
}

func (s *Store) loadJR(id string) dbmodels.JobRequisition {
	rec := s.jrs[id]
	if rec.JobTitleID != nil {
		if title, ok := s.jobTitles[*rec.JobTitleID]; ok {
			rec.JobTitle = &title
		}
	}
	rec.Department = s.loadDepartment(rec.DepartmentID)
	rec.HiringManager = s.userPtr(&rec.HiringManagerID)
	rec.SubmittedBy = s.userPtr(rec.SubmittedByID)
	rec.RecruiterLead = s.userPtr(rec.RecruiterLeadID)
	return rec
}

func (s *Store) historyOf(jobRequisitionID string) []dbmodels.ApprovalHistory {
	list := []dbmodels.ApprovalHistory{}
	for _, rec := range s.history {
		if rec.JobRequisitionID == jobRequisitionID {
			rec.Approver = s.userPtr(rec.ApproverID)
			list = append(list, rec)
		}
	}
	approvalhistorystore.SortLedger(list)
	return list
}

func stripJR(rec dbmodels.JobRequisition) dbmodels.JobRequisition {
	rec.JobTitle = nil
	rec.Department = nil
	rec.HiringManager = nil
	rec.SubmittedBy = nil
	rec.RecruiterLead = nil
	return rec
}

func uniqueViolation() error {
	return fmt.Errorf("insert job requisition: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
}

func (s *Store) jrIDTaken(jrID *string, exceptID string) bool {
	if jrID == nil {
		return false
	}
	for id, rec := range s.jrs {
		if id != exceptID && rec.JrID != nil && *rec.JrID == *jrID {
			return true
		}
	}
	return false
}

func (s *Store) failUnique(jrID *string) bool {
	if jrID == nil || s.FailUniqueOnce <= 0 {
		return false
	}
	s.FailUniqueOnce--
	return true
}

// applyUpdate copies the columns the handlers write through update maps.
func applyUpdate(rec *dbmodels.JobRequisition, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.JRStatus)
		case "jr_id":
			jrID := value.(string)
			rec.JrID = &jrID
		case "recruiter_lead_id":
			id := value.(string)
			rec.RecruiterLeadID = &id
		case "submitted_by_id":
			id := value.(string)
			rec.SubmittedByID = &id
		case "form_step":
			rec.FormStep = value.(int)
		case "job_title_id":
			rec.JobTitleID = value.(*string)
		case "department_id":
			rec.DepartmentID = value.(string)
		case "hiring_manager_id":
			rec.HiringManagerID = value.(string)
		case "number_of_positions":
			rec.NumberOfPositions = value.(int)
		case "primary_skills":
			rec.PrimarySkills = toStrings(value)
		case "work_locations":
			rec.WorkLocations = toStrings(value)
		case "job_purpose":
			rec.JobPurpose = value.(string)
		case "client_name":
			rec.ClientName = value.(string)
		}
	}
}

func toStrings(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case pq.StringArray:
		return v
	}
	return nil
}

func matchesFilter(rec dbmodels.JobRequisition, filter jobrequisitionapimodels.JrFilter, userID string, role models.UserRole) bool {
	if len(filter.Statuses) != 0 {
		found := false
		for _, status := range filter.Statuses {
			if status == rec.Status {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.DepartmentID != "" && rec.DepartmentID != filter.DepartmentID {
		return false
	}
	if filter.HiringManagerID != "" && rec.HiringManagerID != filter.HiringManagerID {
		return false
	}
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(rec.GetJrID()), search) &&
			!strings.Contains(strings.ToLower(rec.GetJobTitleName()), search) {
			return false
		}
	}
	if filter.OnlyMine && rec.GetSubmitterID() != userID && rec.HiringManagerID != userID {
		return false
	}
	if filter.AwaitingMe {
		switch {
		case role == models.DUHeadRole && rec.Status == models.JRStatusPendingDUHeadApproval:
			return rec.Department != nil && rec.Department.DUHeadID != nil && *rec.Department.DUHeadID == userID
		case role == models.CDORole && rec.Status == models.JRStatusPendingCDOApproval:
			return rec.Department != nil && rec.Department.CDOID != nil && *rec.Department.CDOID == userID
		case role == models.COORole && rec.Status == models.JRStatusPendingCOOApproval:
			return true
		}
		return false
	}
	return true
}
