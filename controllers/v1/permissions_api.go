package apiv1

import (
	"hirex-backend/controllers"
	"hirex-backend/lib/rbac"
	"hirex-backend/middleware"
	apimodels "hirex-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type permissionsApiController struct {
	controllers.BaseAPIController
}

func InitPermissionsApiRouters(app *fiber.App) {
	controller := permissionsApiController{}
	app.Get("permissions", controller.get)
}

// @Summary Permissions
// @Tags Profile
// @Description Modules and permissions of the caller role, used by the frontend to hide actions
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=map[string][]string}
// @Failure 403
// @router /api/v1/permissions [get]
func (c *permissionsApiController) get(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rbac.Instance.GetPermissions(middleware.GetUserRole(ctx))))
}
