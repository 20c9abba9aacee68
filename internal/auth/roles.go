package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aquaflow/ticketing/internal/domain"
	apperrors "github.com/aquaflow/ticketing/pkg/util/errorutil"
)

// Authorize checks that the user holds one of the allowed roles. An empty
// allow list only requires authentication.
func Authorize(user *domain.User, allowed ...domain.Role) error {
	if user == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden("insufficient permissions")
}

// RequireRole gates a route on the caller holding one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, _ := PrincipalFromContext(c)
		if err := Authorize(user, allowed...); err != nil {
			return err
		}
		return c.Next()
	}
}
