package middleware

import (
	"strings"
	"time"

	"fish-ledger/internal/repository"
	"fish-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

func deny(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

// RequireAuth validates the bearer token against the live session and stores the caller in Locals.
// Sessions idle for longer than idleTimeout are rejected; zero disables the check.
func RequireAuth(userRepo repository.UserRepository, idleTimeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return deny(c, fiber.StatusUnauthorized, "Missing authorization token")
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
			return deny(c, fiber.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil || !user.IsActive {
			return deny(c, fiber.StatusUnauthorized, "User not found")
		}
		if user.TokenVersion != claims.TokenVersion {
			return deny(c, fiber.StatusUnauthorized, "Session expired (logged in on another device)")
		}
		if idleTimeout > 0 && (user.LastSeenAt == nil || time.Since(*user.LastSeenAt) > idleTimeout) {
			return deny(c, fiber.StatusUnauthorized, "Session expired due to inactivity")
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)
		c.Locals("user_privileges", claims.Privileges)

		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return RequireAnyPrivilege(requiredPrivilege)
}

// RequireAnyPrivilege passes when the user holds at least one of the listed privileges.
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return deny(c, fiber.StatusForbidden, "No privileges found")
		}

		for _, userPriv := range privileges {
			for _, reqPriv := range requiredPrivileges {
				if userPriv == reqPriv {
					return c.Next()
				}
			}
		}

		return deny(c, fiber.StatusForbidden, "Forbidden: requires one of "+strings.Join(requiredPrivileges, ", "))
	}
}
