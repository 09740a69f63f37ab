package controllers

import (
	"hirex-backend/fiberlog"
	"hirex-backend/lib/utils/lock"
	"hirex-backend/middleware"
	"hirex-backend/models"
	apimodels "hirex-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		c.GetLogger(ctx).WithError(err).Error("failed to parse request body")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("%v is required", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("request_id", fiberlog.GetRequestID(ctx)).
		WithField("user_id", middleware.GetUserID(ctx))
}

// SendError writes err as an API error. AppError messages are returned to the
// caller as is, anything else is logged and replaced with msg.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	kind, appMsg := errorKind(err)
	switch kind {
	case models.ErrKindNotFound:
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(appMsg))
	case models.ErrKindValidation, models.ErrKindInvalidState:
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(appMsg))
	case models.ErrKindForbidden:
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(appMsg))
	case models.ErrKindConflict:
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(appMsg))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

// errorKind treats a busy requisition lock as a conflict.
func errorKind(err error) (models.ErrorKind, string) {
	if errors.Is(err, lock.ErrLockTimeout) {
		return models.ErrKindConflict, lock.ErrLockTimeout.Error()
	}
	return models.ErrorKindOf(err)
}

// SendDecisionError reports every workflow refusal except authorization as a
// bad request.
func (c *BaseAPIController) SendDecisionError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	kind, appMsg := errorKind(err)
	switch kind {
	case models.ErrKindNotFound, models.ErrKindInvalidState, models.ErrKindConflict, models.ErrKindValidation:
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(appMsg))
	}
	return c.SendError(ctx, logger, err, msg)
}
