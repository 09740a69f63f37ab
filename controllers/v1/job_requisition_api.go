package apiv1

import (
	"fmt"
	"hirex-backend/controllers"
	jobrequisitionhandler "hirex-backend/lib/job-requisition"
	"hirex-backend/middleware"
	apimodels "hirex-backend/models/api"
	jobrequisitionapimodels "hirex-backend/models/api/job-requisition"
	"time"

	"github.com/gofiber/fiber/v2"
)

type jobRequisitionApiController struct {
	controllers.BaseAPIController
}

func InitJobRequisitionApiRouters(app *fiber.App) {
	controller := jobRequisitionApiController{}
	app.Route("job-requisitions", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Post("revise", controller.revise) // rejected back to draft
		})
	})
}

// @Summary Create
// @Tags Job requisition
// @Description Create a draft, or submit it for approval right away when submit is set
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobrequisitionapimodels.JobRequisitionCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions [post]
func (c *jobRequisitionApiController) create(ctx *fiber.Ctx) error {
	var payload jobrequisitionapimodels.JobRequisitionCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := jobrequisitionhandler.Instance.Create(ctx.UserContext(), userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to create job requisition")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update
// @Tags Job requisition
// @Description Save a form step of a draft, submitting it when submit is set
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobrequisitionapimodels.JobRequisitionEditData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/{id} [put]
func (c *jobRequisitionApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobrequisitionapimodels.JobRequisitionEditData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	err = jobrequisitionhandler.Instance.Update(ctx.UserContext(), id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to update job requisition")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get by ID
// @Tags Job requisition
// @Description Get by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobrequisitionapimodels.JobRequisitionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/{id} [get]
func (c *jobRequisitionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := jobrequisitionhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get job requisition")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete
// @Tags Job requisition
// @Description Delete a draft that was never submitted
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/{id} [delete]
func (c *jobRequisitionApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = jobrequisitionhandler.Instance.Delete(id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to delete job requisition")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary List
// @Tags Job requisition
// @Description Dashboard list
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobrequisitionapimodels.JrFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobrequisitionapimodels.JobRequisitionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/list [post]
func (c *jobRequisitionApiController) list(ctx *fiber.Ctx) error {
	var payload jobrequisitionapimodels.JrFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := jobrequisitionhandler.Instance.List(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get job requisition list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Export
// @Tags Job requisition
// @Description Dashboard list as an Excel file
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobrequisitionapimodels.JrFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/export [post]
func (c *jobRequisitionApiController) export(ctx *fiber.Ctx) error {
	var payload jobrequisitionapimodels.JrFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	data, err := jobrequisitionhandler.Instance.ExportXls(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to export job requisitions")
	}
	fileName := fmt.Sprintf("job-requisitions-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Revise
// @Tags Job requisition
// @Description Move a rejected requisition back to draft
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobrequisitionapimodels.JobRequisitionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/{id}/revise [post]
func (c *jobRequisitionApiController) revise(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := jobrequisitionhandler.Instance.Revise(ctx.UserContext(), id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendDecisionError(ctx, c.GetLogger(ctx), err, "Failed to revise job requisition")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
