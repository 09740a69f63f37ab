package middleware

import (
	"hirex-backend/lib/rbac"
	apimodels "hirex-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

const rbacForbidden = "RBAC_FORBIDDEN"

func RbacMiddleware() fiber.Handler {
	return RbacWith(rbac.Instance)
}

// RbacWith checks the caller role against the rule registered for the route.
// Routes without a rule pass through.
func RbacWith(provider rbac.Provider) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		userRole := GetUserRole(ctx)
		if userID == "" || userRole == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(rbacForbidden))
		}

		handler, found := provider.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}
		if !handler(userID, userRole, ctx.Path()) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(rbacForbidden))
		}
		return ctx.Next()
	}
}
