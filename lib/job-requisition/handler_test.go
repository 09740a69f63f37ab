package jobrequisitionhandler

import (
	"context"
	approvalworkflow "hirex-backend/lib/approval-workflow"
	xlsexport "hirex-backend/lib/export/xls"
	"hirex-backend/lib/notification"
	"hirex-backend/lib/testutil"
	"hirex-backend/lib/utils/helpers"
	remindermark "hirex-backend/lib/utils/reminder-mark"
	"hirex-backend/models"
	jobrequisitionapimodels "hirex-backend/models/api/job-requisition"
	dbmodels "hirex-backend/models/db"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	store    *testutil.Store
	handler  Provider
	workflow approvalworkflow.Provider

	mu   sync.Mutex
	sent []notification.Notification

	hm     dbmodels.User
	duHead dbmodels.User
	cdo    dbmodels.User
	dept   dbmodels.Department
	title  dbmodels.JobTitle
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{store: testutil.NewStore()}
	f.hm = f.store.AddUser("Harry", "Manager", models.HiringManagerRole)
	f.duHead = f.store.AddUser("Dana", "Head", models.DUHeadRole)
	f.cdo = f.store.AddUser("Carl", "Delivery", models.CDORole)
	f.store.AddUser("Olga", "Operations", models.COORole)
	lead := f.store.AddUser("Lena", "Recruiter", models.RecruiterLeadRole)
	f.title = f.store.AddJobTitle("Data Engineer")
	f.dept = f.store.AddDepartment("Data & AI", "DAI", &f.duHead, &f.cdo, &lead)

	ctrl := gomock.NewController(t)
	sink := notification.NewMockSink(ctrl)
	sink.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n notification.Notification) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.sent = append(f.sent, n)
			return nil
		}).
		AnyTimes()

	stores := approvalworkflow.Stores{
		JobRequisitions: f.store.JobRequisitions(),
		History:         f.store.History(),
		JobDescriptions: f.store.JobDescriptions(),
	}
	f.workflow = approvalworkflow.NewInstance(approvalworkflow.Deps{
		InTx: func(fn func(s approvalworkflow.Stores) error) error {
			return fn(stores)
		},
		Stores:    stores,
		UserStore: f.store.Users(),
		Sink:      sink,
		Marks:     remindermark.NewMemoryInstance(f.store.Now),
		Settings:  approvalworkflow.Settings{ReminderEnabled: true, WaitingPeriodDays: 2},
		Now:       f.store.Now,
	})
	xlsexport.NewHandler()
	f.handler = NewInstance(Deps{
		Store:           f.store.JobRequisitions(),
		DepartmentStore: f.store.Departments(),
		UserStore:       f.store.Users(),
		JobTitleStore:   f.store.JobTitles(),
		Workflow:        f.workflow,
		Xls:             xlsexport.Instance,
		Now:             f.store.Now,
	})
	return f
}

func (f *fixture) data(submit bool) jobrequisitionapimodels.JobRequisitionCreateData {
	return jobrequisitionapimodels.JobRequisitionCreateData{
		JobRequisitionData: jobrequisitionapimodels.JobRequisitionData{
			JobTitleID:        f.title.ID,
			DepartmentID:      f.dept.ID,
			HiringManagerID:   f.hm.ID,
			PrimarySkills:     []string{"Go", " ", "SQL"},
			WorkLocations:     []string{"Pune"},
			NumberOfPositions: 2,
			JobPurpose:        "Build the data platform",
			FormStep:          4,
		},
		Submit: submit,
	}
}

func (f *fixture) create(t *testing.T, userID string, submit bool) dbmodels.JobRequisition {
	t.Helper()
	id, err := f.handler.Create(context.Background(), userID, f.data(submit))
	require.NoError(t, err)
	return f.store.JobRequisition(id)
}

func (f *fixture) putNumbered(jrID string) {
	f.store.PutJobRequisition(dbmodels.JobRequisition{
		JrID:            &jrID,
		Status:          models.JRStatusApproved,
		DepartmentID:    f.dept.ID,
		HiringManagerID: f.hm.ID,
	})
}

func (f *fixture) notifications() []notification.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notification.Notification{}, f.sent...)
}

func requireKind(t *testing.T, err error, kind models.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.IsErrorKind(err, kind), "unexpected error: %v", err)
}

func TestCreateDraft(t *testing.T) {
	f := newFixture(t)
	rec := f.create(t, f.hm.ID, false)

	require.Equal(t, models.JRStatusDraft, rec.Status)
	require.Nil(t, rec.JrID)
	require.Equal(t, f.hm.ID, rec.GetSubmitterID())
	require.Equal(t, []string{"Go", "SQL"}, []string(rec.PrimarySkills))
	require.Equal(t, 4, rec.FormStep)
	require.Empty(t, f.notifications())
	require.Empty(t, f.store.HistoryOf(rec.ID))
}

func TestCreateAndSubmit(t *testing.T) {
	f := newFixture(t)
	rec := f.create(t, f.hm.ID, true)

	require.Equal(t, "EXP-2025-DAI-001", rec.GetJrID())
	require.Equal(t, models.JRStatusPendingDUHeadApproval, rec.Status)
	sent := f.notifications()
	require.Len(t, sent, 1)
	require.Equal(t, models.NotificationApprovalRequest, sent[0].Kind)
	require.Equal(t, f.duHead.Email, sent[0].RecipientEmail)

	second := f.create(t, f.hm.ID, true)
	require.Equal(t, "EXP-2025-DAI-002", second.GetJrID())
}

func TestCreateByDuHeadStartsAtCdo(t *testing.T) {
	f := newFixture(t)
	rec := f.create(t, f.duHead.ID, true)

	require.Equal(t, models.JRStatusPendingCDOApproval, rec.Status)
	require.Equal(t, f.cdo.Email, f.notifications()[0].RecipientEmail)
}

func TestNumberingContinuesFromHighestSerial(t *testing.T) {
	f := newFixture(t)
	f.putNumbered("EXP-2025-DAI-041")
	f.putNumbered("EXP-2025-DAI-007")
	f.putNumbered("EXP-2024-DAI-100")
	other := f.store.AddDepartment("Data Analytics", "DA", &f.duHead, &f.cdo, nil)
	f.store.PutJobRequisition(dbmodels.JobRequisition{
		JrID:         helpers.Ptr("EXP-2025-DA-500"),
		Status:       models.JRStatusApproved,
		DepartmentID: other.ID,
	})

	rec := f.create(t, f.hm.ID, true)
	require.Equal(t, "EXP-2025-DAI-042", rec.GetJrID())

	data := f.data(true)
	data.DepartmentID = other.ID
	id, err := f.handler.Create(context.Background(), f.hm.ID, data)
	require.NoError(t, err)
	require.Equal(t, "EXP-2025-DA-501", f.store.JobRequisition(id).GetJrID())
}

func TestNumberingRetriesOnUniqueViolation(t *testing.T) {
	f := newFixture(t)
	f.store.FailUniqueOnce = 2

	rec := f.create(t, f.hm.ID, true)
	require.Equal(t, "EXP-2025-DAI-001", rec.GetJrID())
	require.Zero(t, f.store.FailUniqueOnce)
}

func TestNumberingGivesUpAfterThreeAttempts(t *testing.T) {
	f := newFixture(t)
	f.store.FailUniqueOnce = 3

	_, err := f.handler.Create(context.Background(), f.hm.ID, f.data(true))
	require.Error(t, err)
	require.True(t, helpers.IsUniqueViolation(err))
	_, count, err := f.handler.List(f.hm.ID, models.HiringManagerRole, jobrequisitionapimodels.JrFilter{})
	require.NoError(t, err)
	require.Zero(t, count)
	require.Empty(t, f.notifications())
}

func TestNumberingExhausted(t *testing.T) {
	f := newFixture(t)
	f.putNumbered("EXP-2025-DAI-999")

	_, err := f.handler.Create(context.Background(), f.hm.ID, f.data(true))
	requireKind(t, err, models.ErrKindConflict)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("submit needs skills", func(t *testing.T) {
		data := f.data(true)
		data.PrimarySkills = []string{" "}
		_, err := f.handler.Create(ctx, f.hm.ID, data)
		requireKind(t, err, models.ErrKindValidation)
	})
	t.Run("draft without skills", func(t *testing.T) {
		data := f.data(false)
		data.PrimarySkills = nil
		_, err := f.handler.Create(ctx, f.hm.ID, data)
		require.NoError(t, err)
	})
	t.Run("unknown department", func(t *testing.T) {
		data := f.data(false)
		data.DepartmentID = "missing"
		_, err := f.handler.Create(ctx, f.hm.ID, data)
		requireKind(t, err, models.ErrKindValidation)
		require.EqualError(t, err, "Department not found")
	})
	t.Run("inactive hiring manager", func(t *testing.T) {
		gone := f.store.AddUser("Gone", "Manager", models.HiringManagerRole)
		f.store.SetUserActive(gone.ID, false)
		data := f.data(false)
		data.HiringManagerID = gone.ID
		_, err := f.handler.Create(ctx, f.hm.ID, data)
		requireKind(t, err, models.ErrKindValidation)
	})
	t.Run("unknown job title", func(t *testing.T) {
		data := f.data(false)
		data.JobTitleID = "missing"
		_, err := f.handler.Create(ctx, f.hm.ID, data)
		requireKind(t, err, models.ErrKindValidation)
	})
	t.Run("experience range", func(t *testing.T) {
		minExp, maxExp := 5, 3
		data := f.data(false)
		data.MinExperience, data.MaxExperience = &minExp, &maxExp
		_, err := f.handler.Create(ctx, f.hm.ID, data)
		requireKind(t, err, models.ErrKindValidation)
	})
}

func TestUpdateDraft(t *testing.T) {
	f := newFixture(t)
	recruiter := f.store.AddUser("Rita", "Recruiter", models.RecruiterRole)
	rec := f.create(t, recruiter.ID, false)

	data := f.data(false)
	data.NumberOfPositions = 5
	data.ClientName = "Acme"
	data.FormStep = 6
	require.NoError(t, f.handler.Update(context.Background(), rec.ID, f.hm.ID, data))

	updated := f.store.JobRequisition(rec.ID)
	require.Equal(t, models.JRStatusDraft, updated.Status)
	require.Equal(t, 5, updated.NumberOfPositions)
	require.Equal(t, "Acme", updated.ClientName)
	require.Equal(t, 6, updated.FormStep)
	require.Nil(t, updated.JrID)

	stranger := f.store.AddUser("Sam", "Stranger", models.HiringManagerRole)
	requireKind(t, f.handler.Update(context.Background(), rec.ID, stranger.ID, data), models.ErrKindForbidden)
	requireKind(t, f.handler.Update(context.Background(), "missing", f.hm.ID, data), models.ErrKindNotFound)
}

func TestUpdateSubmit(t *testing.T) {
	f := newFixture(t)
	rec := f.create(t, f.hm.ID, false)

	require.NoError(t, f.handler.Update(context.Background(), rec.ID, f.hm.ID, f.data(true)))
	updated := f.store.JobRequisition(rec.ID)
	require.Equal(t, "EXP-2025-DAI-001", updated.GetJrID())
	require.Equal(t, models.JRStatusPendingDUHeadApproval, updated.Status)
	require.Len(t, f.notifications(), 1)

	err := f.handler.Update(context.Background(), rec.ID, f.hm.ID, f.data(false))
	requireKind(t, err, models.ErrKindInvalidState)
}

func TestRejectReviseResubmitKeepsNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := f.create(t, f.hm.ID, true)

	err := f.workflow.ProcessApprovalDecision(ctx, rec.ID, approvalworkflow.Decision{
		Action:     models.DecisionReject,
		Comments:   "Budget too high",
		ApproverID: f.duHead.ID,
	})
	require.NoError(t, err)

	view, err := f.handler.Revise(ctx, rec.ID, f.hm.ID)
	require.NoError(t, err)
	require.Equal(t, models.JRStatusDraft, view.Status)
	require.Equal(t, "EXP-2025-DAI-001", view.JrID)

	require.NoError(t, f.handler.Update(ctx, rec.ID, f.hm.ID, f.data(true)))
	updated := f.store.JobRequisition(rec.ID)
	require.Equal(t, "EXP-2025-DAI-001", updated.GetJrID())
	require.Equal(t, models.JRStatusPendingDUHeadApproval, updated.Status)

	_, err = f.handler.Revise(ctx, rec.ID, f.hm.ID)
	requireKind(t, err, models.ErrKindInvalidState)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)

	draft := f.create(t, f.hm.ID, false)
	stranger := f.store.AddUser("Sam", "Stranger", models.HiringManagerRole)
	requireKind(t, f.handler.Delete(draft.ID, stranger.ID), models.ErrKindForbidden)
	require.NoError(t, f.handler.Delete(draft.ID, f.hm.ID))
	_, err := f.handler.GetByID(draft.ID)
	requireKind(t, err, models.ErrKindNotFound)

	submitted := f.create(t, f.hm.ID, true)
	requireKind(t, f.handler.Delete(submitted.ID, f.hm.ID), models.ErrKindInvalidState)

	// submitted but never numbered, e.g. left behind by a failed initiation
	stuck := f.store.PutJobRequisition(dbmodels.JobRequisition{
		Status:          models.JRStatusSubmitted,
		DepartmentID:    f.dept.ID,
		HiringManagerID: f.hm.ID,
		SubmittedByID:   &f.hm.ID,
	})
	requireKind(t, f.handler.Delete(stuck.ID, f.hm.ID), models.ErrKindInvalidState)
}

func TestListAndAwaitingMe(t *testing.T) {
	f := newFixture(t)
	f.create(t, f.hm.ID, false)
	pending := f.create(t, f.hm.ID, true)
	otherLead := f.store.AddUser("Other", "Head", models.DUHeadRole)
	otherDept := f.store.AddDepartment("Cloud", "CLD", &otherLead, &f.cdo, nil)
	data := f.data(true)
	data.DepartmentID = otherDept.ID
	_, err := f.handler.Create(context.Background(), f.hm.ID, data)
	require.NoError(t, err)

	list, count, err := f.handler.List(f.hm.ID, models.HiringManagerRole, jobrequisitionapimodels.JrFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
	require.Len(t, list, 3)
	require.Equal(t, "EXP-2025-CLD-001", list[0].JrID, "newest first")

	list, count, err = f.handler.List(f.duHead.ID, models.DUHeadRole, jobrequisitionapimodels.JrFilter{AwaitingMe: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Equal(t, pending.ID, list[0].ID)
	require.Equal(t, "Data & AI", list[0].DepartmentName)
	require.Equal(t, "Harry Manager", list[0].HiringManagerName)

	_, count, err = f.handler.List(f.hm.ID, models.HiringManagerRole, jobrequisitionapimodels.JrFilter{AwaitingMe: true})
	require.NoError(t, err)
	require.Zero(t, count)

	_, count, err = f.handler.List(f.hm.ID, models.HiringManagerRole, jobrequisitionapimodels.JrFilter{Search: "dai-001"})
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	_, _, err = f.handler.List(f.hm.ID, models.HiringManagerRole, jobrequisitionapimodels.JrFilter{Statuses: []models.JRStatus{"Lost"}})
	requireKind(t, err, models.ErrKindValidation)
}

func TestExportXls(t *testing.T) {
	f := newFixture(t)
	f.create(t, f.hm.ID, true)
	f.create(t, f.hm.ID, false)

	buf, err := f.handler.ExportXls(f.hm.ID, models.HiringManagerRole, jobrequisitionapimodels.JrFilter{})
	require.NoError(t, err)
	file, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer file.Close()
	rows, err := file.GetRows("Job Requisitions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
}
