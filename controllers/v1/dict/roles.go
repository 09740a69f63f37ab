package dict

import (
	"hirex-backend/controllers"
	apimodels "hirex-backend/models/api"
	dictapimodels "hirex-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type roleDictApiController struct {
	controllers.BaseAPIController
}

func InitRoleDictApiRouters(app *fiber.App) {
	controller := roleDictApiController{}
	app.Route("role", func(router fiber.Router) {
		router.Get("list", controller.list)
	})
}

// @Summary Role list
// @Tags Dictionary. Roles
// @Description Role list
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.RoleView}
// @Failure 403
// @router /api/v1/dict/role/list [get]
func (c *roleDictApiController) list(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetRoles()))
}
