package apiv1

import (
	"hirex-backend/controllers"
	approvalworkflow "hirex-backend/lib/approval-workflow"
	"hirex-backend/middleware"
	"hirex-backend/models"
	apimodels "hirex-backend/models/api"
	approvalapimodels "hirex-backend/models/api/approval"

	"github.com/gofiber/fiber/v2"
)

type approvalApiController struct {
	controllers.BaseAPIController
}

func InitApprovalApiRouters(app *fiber.App) {
	controller := approvalApiController{}
	app.Route("job-requisitions/:id", func(router fiber.Router) {
		router.Post("approval", controller.decide)
		router.Get("approval-history", controller.history)
		router.Get("can-approve", controller.canApprove)
	})
}

var decisionMessage = map[models.ApprovalDecisionType]string{
	models.DecisionApprove: "Requisition approved successfully",
	models.DecisionReject:  "Requisition rejected successfully",
}

// @Summary Approve or reject
// @Tags Approval
// @Description Decision of the approver the requisition is waiting for
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	approvalapimodels.ApprovalDecisionRequest	true	"request body"
// @Param   id          		path    string  				    		true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/{id}/approval [post]
func (c *approvalApiController) decide(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.ApprovalDecisionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = approvalworkflow.Instance.ProcessApprovalDecision(ctx.UserContext(), id, approvalworkflow.Decision{
		Action:     payload.Action,
		Comments:   payload.Comments,
		ApproverID: middleware.GetUserID(ctx),
	})
	if err != nil {
		return c.SendDecisionError(ctx, c.GetLogger(ctx), err, "Failed to process approval decision")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.Response{
		Status:  "success",
		Message: decisionMessage[payload.Action],
	})
}

// @Summary Approval history
// @Tags Approval
// @Description Approval ledger, oldest first
// @Param   Authorization		header	string								true	"Authorization token"
// @Param   id          		path    string  				    		true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/{id}/approval-history [get]
func (c *approvalApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	result, err := approvalworkflow.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get approval history")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Can approve
// @Tags Approval
// @Description Whether the caller may decide on the requisition now
// @Param   Authorization		header	string								true	"Authorization token"
// @Param   id          		path    string  				    		true    "rec ID"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.CanApproveView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-requisitions/{id}/can-approve [get]
func (c *approvalApiController) canApprove(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	result, err := approvalworkflow.Instance.CheckCanApprove(id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to check approval rights")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
