package apiv1

import (
	"hirex-backend/controllers"
	jobdescriptionhandler "hirex-backend/lib/job-description"
	apimodels "hirex-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type jobDescriptionApiController struct {
	controllers.BaseAPIController
}

func InitJobDescriptionApiRouters(app *fiber.App) {
	controller := jobDescriptionApiController{}
	app.Route("job-requisitions/:id/job-description", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Get("pdf", controller.pdf)
	})
}

// @Summary Job description
// @Tags Job description
// @Description Job description created on final approval
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "requisition ID"
// @Success 200 {object} apimodels.Response{data=jobdescriptionapimodels.JobDescriptionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/{id}/job-description [get]
func (c *jobDescriptionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := jobdescriptionhandler.Instance.GetByJobRequisitionID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get job description")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Job description PDF
// @Tags Job description
// @Description Job description as a PDF file
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "requisition ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/{id}/job-description/pdf [get]
func (c *jobDescriptionApiController) pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	file, fileName, err := jobdescriptionhandler.Instance.GetPdf(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to export job description")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(file)
}
