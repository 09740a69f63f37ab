package rbac

import (
	"hirex-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/job-requisitions/{id}/approval [post]")
		require.Nil(t, err)
		require.Equal(t, POST, method)
		r1 := pathToRegex(path)

		require.True(t, r1.MatchString("/api/v1/job-requisitions/123-321/approval"))
		require.False(t, r1.MatchString("/api/v1/job-requisitions/approval"))
		require.False(t, r1.MatchString("/api/v1/job-requisitions/1/2/approval"))

		path, method, err = parseSwaggerPattern("/api/v1/dict/{dict}/{id} [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r2 := pathToRegex(path)

		require.True(t, r2.MatchString("/api/v1/dict/department/qwe-ewr123-wr-12"))
		require.False(t, r2.MatchString("/api/v1/dict/department"))
	})

	t.Run(`parseSwaggerPattern without method`, func(t *testing.T) {
		_, _, err := parseSwaggerPattern("/api/v1/job-requisitions")
		require.Error(t, err)
	})

	t.Run(`normalizePath`, func(t *testing.T) {
		require.Equal(t, "/", normalizePath(""))
		require.Equal(t, "/api/v1/x", normalizePath("api//v1/x/"))
	})
}

func TestRules(t *testing.T) {
	provider := NewInstance()
	allowed := func(method, path string, role models.UserRole) bool {
		rule, ok := provider.GetRuleFunc(method, path)
		require.True(t, ok, "%v %v has no rule", method, path)
		return rule("user-1", role, path)
	}

	t.Run(`approval is limited to approver roles`, func(t *testing.T) {
		path := "/api/v1/job-requisitions/42/approval"
		require.True(t, allowed("POST", path, models.DUHeadRole))
		require.True(t, allowed("POST", path, models.CDORole))
		require.True(t, allowed("POST", path, models.COORole))
		require.False(t, allowed("POST", path, models.HiringManagerRole))
		require.False(t, allowed("POST", path, models.RecruiterLeadRole))
	})

	t.Run(`exact path wins over pattern`, func(t *testing.T) {
		require.True(t, allowed("POST", "/api/v1/job-requisitions/list", models.RecruiterRole))
		require.False(t, allowed("POST", "/api/v1/job-requisitions", models.RecruiterRole))
		require.True(t, allowed("post", "/api/v1/job-requisitions/", models.HiringManagerRole))
	})

	t.Run(`dictionaries are managed by admins`, func(t *testing.T) {
		require.True(t, allowed("GET", "/api/v1/dict/department/7", models.RecruiterRole))
		require.False(t, allowed("PUT", "/api/v1/dict/department/7", models.CDORole))
		require.True(t, allowed("PUT", "/api/v1/dict/department/7", models.AdminRole))
	})

	t.Run(`unknown route`, func(t *testing.T) {
		_, ok := provider.GetRuleFunc("PATCH", "/api/v1/job-requisitions/42")
		require.False(t, ok)
	})

	t.Run(`permissions`, func(t *testing.T) {
		hm := provider.GetPermissions(models.HiringManagerRole)
		require.ElementsMatch(t, []models.Permission{models.ViewPermission, models.CreatePermission, models.EditPermission, models.ExportPermission}, hm[models.JobRequisitionModule])
		require.Equal(t, []models.Permission{models.ViewPermission}, hm[models.DictModule])
		require.Equal(t, []models.Permission{models.ViewPermission}, hm[models.ApprovalModule])

		coo := provider.GetPermissions(models.COORole)
		require.ElementsMatch(t, []models.Permission{models.ViewPermission, models.ApprovePermission}, coo[models.ApprovalModule])
	})
}
