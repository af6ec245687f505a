package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "change-tools-backend/lib/utils/auth-utils"
	"change-tools-backend/models"
	apimodels "change-tools-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.OrgRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.OrgRole(stringRole)
		}
	}
	return ""
}

// ManagementRequired - доступ к административным операциям только для
// глобальных ролей Management и ISB. На вычисление состава согласования
// глобальная роль не влияет.
func ManagementRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		role := GetUserRole(ctx)
		if role != models.OrgRoleManagement && role != models.OrgRoleISB {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
