package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "adl-ops-backend/lib/utils/auth-utils"
	"adl-ops-backend/models"
	apimodels "adl-ops-backend/models/api"
)

func SuperAdminRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.SuperAdminRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operación no disponible"))
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if name, exist := claims["name"]; exist {
		return name.(string)
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

// GetActor arma la identidad de workflow desde los claims del token.
func GetActor(ctx *fiber.Ctx) models.Actor {
	return models.Actor{
		UserID: GetUserID(ctx),
		Name:   GetUserName(ctx),
		Role:   GetUserRole(ctx),
	}
}
