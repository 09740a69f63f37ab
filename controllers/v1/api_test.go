package apiv1

import (
	"bytes"
	"encoding/json"
	"io"
	approvalworkflow "hirex-backend/lib/approval-workflow"
	xlsexport "hirex-backend/lib/export/xls"
	filestorage "hirex-backend/lib/file-storage"
	jobdescriptionhandler "hirex-backend/lib/job-description"
	jobrequisitionhandler "hirex-backend/lib/job-requisition"
	"hirex-backend/lib/notification"
	"hirex-backend/lib/rbac"
	"hirex-backend/lib/testutil"
	authutils "hirex-backend/lib/utils/auth-utils"
	remindermark "hirex-backend/lib/utils/reminder-mark"
	"hirex-backend/middleware"
	"hirex-backend/models"
	apimodels "hirex-backend/models/api"
	dbmodels "hirex-backend/models/db"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-secret"

type env struct {
	store *testutil.Store
	app   *fiber.App

	hm     dbmodels.User
	duHead dbmodels.User
	cdo    dbmodels.User
	coo    dbmodels.User
	dept   dbmodels.Department
	title  dbmodels.JobTitle
}

func newEnv(t *testing.T) *env {
	e := &env{store: testutil.NewStore()}
	e.hm = e.store.AddUser("Harry", "Manager", models.HiringManagerRole)
	e.duHead = e.store.AddUser("Dana", "Head", models.DUHeadRole)
	e.cdo = e.store.AddUser("Carl", "Delivery", models.CDORole)
	e.coo = e.store.AddUser("Olga", "Operations", models.COORole)
	lead := e.store.AddUser("Lena", "Recruiter", models.RecruiterLeadRole)
	e.title = e.store.AddJobTitle("Data Engineer")
	e.dept = e.store.AddDepartment("Data & AI", "DAI", &e.duHead, &e.cdo, &lead)

	ctrl := gomock.NewController(t)
	sink := notification.NewMockSink(ctrl)
	sink.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	stores := approvalworkflow.Stores{
		JobRequisitions: e.store.JobRequisitions(),
		History:         e.store.History(),
		JobDescriptions: e.store.JobDescriptions(),
	}
	approvalworkflow.Instance = approvalworkflow.NewInstance(approvalworkflow.Deps{
		InTx: func(fn func(s approvalworkflow.Stores) error) error {
			return fn(stores)
		},
		Stores:    stores,
		UserStore: e.store.Users(),
		Sink:      sink,
		Marks:     remindermark.NewMemoryInstance(e.store.Now),
		Settings:  approvalworkflow.Settings{ReminderEnabled: true, WaitingPeriodDays: 2},
		Now:       e.store.Now,
	})
	xlsexport.NewHandler()
	jobrequisitionhandler.Instance = jobrequisitionhandler.NewInstance(jobrequisitionhandler.Deps{
		Store:           e.store.JobRequisitions(),
		DepartmentStore: e.store.Departments(),
		UserStore:       e.store.Users(),
		JobTitleStore:   e.store.JobTitles(),
		Workflow:        approvalworkflow.Instance,
		Xls:             xlsexport.Instance,
		Now:             e.store.Now,
	})
	jobdescriptionhandler.Instance = jobdescriptionhandler.NewInstance(e.store.JobDescriptions(), filestorage.NewInstance(nil, ""))
	rbac.Instance = rbac.NewInstance()

	e.app = fiber.New()
	api := fiber.New()
	api.Use(middleware.AuthorizationWithSecret(testSecret))
	api.Use(middleware.RbacWith(rbac.Instance))
	e.app.Mount("/api/v1", api)
	InitJobRequisitionApiRouters(api)
	InitApprovalApiRouters(api)
	InitJobDescriptionApiRouters(api)
	InitPermissionsApiRouters(api)
	return e
}

func (e *env) do(t *testing.T, user *dbmodels.User, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if user != nil {
		token, err := authutils.SignToken(testSecret, user.ID, user.GetFullName(), user.Role, time.Hour)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) apimodels.Response {
	t.Helper()
	defer resp.Body.Close()
	var result apimodels.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func (e *env) createSubmitted(t *testing.T) string {
	t.Helper()
	resp := e.do(t, &e.hm, http.MethodPost, "/api/v1/job-requisitions", map[string]interface{}{
		"job_title_id":        e.title.ID,
		"department_id":       e.dept.ID,
		"hiring_manager_id":   e.hm.ID,
		"primary_skills":      []string{"Go", "SQL"},
		"work_locations":      []string{"Pune"},
		"number_of_positions": 1,
		"submit":              true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	id, ok := decode(t, resp).Data.(string)
	require.True(t, ok)
	return id
}

func (e *env) decide(t *testing.T, user *dbmodels.User, id, action string) (int, apimodels.Response) {
	t.Helper()
	resp := e.do(t, user, http.MethodPost, "/api/v1/job-requisitions/"+id+"/approval", map[string]string{
		"action":   action,
		"comments": "ok",
	})
	return resp.StatusCode, decode(t, resp)
}

func TestApprovalFlowOverHttp(t *testing.T) {
	e := newEnv(t)
	id := e.createSubmitted(t)
	require.Equal(t, models.JRStatusPendingDUHeadApproval, e.store.JobRequisition(id).Status)
	require.Equal(t, "EXP-2025-DAI-001", e.store.JobRequisition(id).GetJrID())

	t.Run("hiring manager cannot decide", func(t *testing.T) {
		code, _ := e.decide(t, &e.hm, id, "approve")
		require.Equal(t, fiber.StatusForbidden, code)
	})

	t.Run("approver of another stage is forbidden", func(t *testing.T) {
		code, body := e.decide(t, &e.cdo, id, "approve")
		require.Equal(t, fiber.StatusForbidden, code)
		require.Equal(t, "fail", body.Status)
	})

	t.Run("unknown action", func(t *testing.T) {
		code, _ := e.decide(t, &e.duHead, id, "maybe")
		require.Equal(t, fiber.StatusBadRequest, code)
	})

	code, body := e.decide(t, &e.duHead, id, "approve")
	require.Equal(t, fiber.StatusOK, code)
	require.Equal(t, "Requisition approved successfully", body.Message)

	resp := e.do(t, &e.cdo, http.MethodGet, "/api/v1/job-requisitions/"+id+"/can-approve", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	canApprove := decode(t, resp).Data.(map[string]interface{})
	require.Equal(t, true, canApprove["canApprove"])
	require.Equal(t, string(models.JRStatusPendingCDOApproval), canApprove["currentStatus"])

	code, _ = e.decide(t, &e.cdo, id, "approve")
	require.Equal(t, fiber.StatusOK, code)
	code, _ = e.decide(t, &e.coo, id, "approve")
	require.Equal(t, fiber.StatusOK, code)
	require.Equal(t, models.JRStatusApproved, e.store.JobRequisition(id).Status)

	t.Run("decision on approved requisition", func(t *testing.T) {
		code, body := e.decide(t, &e.coo, id, "reject")
		require.Equal(t, fiber.StatusBadRequest, code)
		require.Contains(t, body.Message, "not awaiting approval")
	})

	t.Run("history", func(t *testing.T) {
		resp := e.do(t, &e.hm, http.MethodGet, "/api/v1/job-requisitions/"+id+"/approval-history", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		list := decode(t, resp).Data.([]interface{})
		require.NotEmpty(t, list)
		first := list[0].(map[string]interface{})
		require.Equal(t, string(models.ApprovalActionPending), first["action"])
	})

	t.Run("job description", func(t *testing.T) {
		resp := e.do(t, &e.hm, http.MethodGet, "/api/v1/job-requisitions/"+id+"/job-description", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		jd := decode(t, resp).Data.(map[string]interface{})
		require.Equal(t, "EXP-2025-DAI-001", jd["jr_id"])

		resp = e.do(t, &e.hm, http.MethodGet, "/api/v1/job-requisitions/"+id+"/job-description/pdf", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
	})
}

func TestRejectAndRevise(t *testing.T) {
	e := newEnv(t)
	id := e.createSubmitted(t)

	code, body := e.decide(t, &e.duHead, id, "reject")
	require.Equal(t, fiber.StatusOK, code)
	require.Equal(t, "Requisition rejected successfully", body.Message)

	resp := e.do(t, &e.duHead, http.MethodPost, "/api/v1/job-requisitions/"+id+"/revise", nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = e.do(t, &e.hm, http.MethodPost, "/api/v1/job-requisitions/"+id+"/revise", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	view := decode(t, resp).Data.(map[string]interface{})
	require.Equal(t, string(models.JRStatusDraft), view["status"])
	require.Equal(t, "EXP-2025-DAI-001", view["jr_id"])

	resp = e.do(t, &e.hm, http.MethodPost, "/api/v1/job-requisitions/"+id+"/revise", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	e := newEnv(t)

	t.Run("missing token", func(t *testing.T) {
		resp := e.do(t, nil, http.MethodGet, "/api/v1/job-requisitions/42", nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown requisition", func(t *testing.T) {
		resp := e.do(t, &e.hm, http.MethodGet, "/api/v1/job-requisitions/42", nil)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		require.Equal(t, "Job requisition not found", decode(t, resp).Message)
	})

	t.Run("decision on unknown requisition", func(t *testing.T) {
		code, _ := e.decide(t, &e.duHead, "42", "approve")
		require.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("validation", func(t *testing.T) {
		resp := e.do(t, &e.hm, http.MethodPost, "/api/v1/job-requisitions", map[string]interface{}{
			"department_id": e.dept.ID,
		})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "hiring manager is required", decode(t, resp).Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/job-requisitions", strings.NewReader("{"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		token, err := authutils.SignToken(testSecret, e.hm.ID, "", e.hm.Role, time.Hour)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := e.app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestDraftLifecycle(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, &e.hm, http.MethodPost, "/api/v1/job-requisitions", map[string]interface{}{
		"department_id":     e.dept.ID,
		"hiring_manager_id": e.hm.ID,
		"form_step":         1,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	id := decode(t, resp).Data.(string)

	resp = e.do(t, &e.hm, http.MethodPost, "/api/v1/job-requisitions/list", map[string]interface{}{
		"statuses": []string{string(models.JRStatusDraft)},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var list apimodels.ScrollerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Equal(t, int64(1), list.RowCount)

	resp = e.do(t, &e.hm, http.MethodPost, "/api/v1/job-requisitions/export", map[string]interface{}{})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")

	resp = e.do(t, &e.duHead, http.MethodDelete, "/api/v1/job-requisitions/"+id, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = e.do(t, &e.hm, http.MethodDelete, "/api/v1/job-requisitions/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = e.do(t, &e.hm, http.MethodGet, "/api/v1/job-requisitions/"+id, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPermissions(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, &e.coo, http.MethodGet, "/api/v1/permissions", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	perms := decode(t, resp).Data.(map[string]interface{})
	require.Contains(t, perms, string(models.ApprovalModule))
	require.Contains(t, perms[string(models.ApprovalModule)], string(models.ApprovePermission))
}
