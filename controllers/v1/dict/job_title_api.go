package dict

import (
	"hirex-backend/controllers"
	jobtitleprovider "hirex-backend/lib/dicts/job-title"
	apimodels "hirex-backend/models/api"
	dictapimodels "hirex-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type jobTitleDictApiController struct {
	controllers.BaseAPIController
}

func InitJobTitleDictApiRouters(app *fiber.App) {
	controller := jobTitleDictApiController{}
	app.Route("job-title", func(router fiber.Router) {
		router.Post("find", controller.jobTitleFindByName)
	})
}

// @Summary Find by name
// @Tags Dictionary. Job titles
// @Description Find by name
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.JobTitleFind	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.JobTitleView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/job-title/find [post]
func (c *jobTitleDictApiController) jobTitleFindByName(ctx *fiber.Ctx) error {
	var payload dictapimodels.JobTitleFind
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := jobtitleprovider.Instance.FindByName(payload.Name)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to find job titles")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
