// middleware/auth.go
package middleware

import (
	"os"
	"strings"

	"card-collection-system/models"
	"card-collection-system/services"
	"card-collection-system/utils/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CurrentUserKey is where the authenticated user lands in the request locals.
const CurrentUserKey = "current_user"

// IdentityClaims is the token payload the identity provider forwards. Azure AD
// style tokens carry the address in unique_name, others in email.
type IdentityClaims struct {
	Email      string `json:"email"`
	UniqueName string `json:"unique_name"`
	Name       string `json:"name"`
	jwt.RegisteredClaims
}

func (c *IdentityClaims) address() string {
	if c.Email != "" {
		return c.Email
	}
	return c.UniqueName
}

// UserContextMiddleware resolves the bearer token into a User row, creating it
// on first login. Token signatures were already verified upstream; the shared
// secret here only guards direct (non-gateway) access.
func UserContextMiddleware(users *services.UserService) fiber.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))

	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authorization header must be 'Bearer <token>'",
			})
		}
		raw := strings.TrimSpace(header[len("bearer "):])

		claims := &IdentityClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.Warnf("auth: rejected token on %s: %v", c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid bearer token",
			})
		}

		user, err := users.GetOrCreate(claims.address(), claims.Name)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "could not resolve caller identity",
				"cause": err.Error(),
			})
		}

		c.Locals(CurrentUserKey, user)
		return c.Next()
	}
}

// AdminOnly gates admin operations. Must run after UserContextMiddleware.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin privileges required",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user attached by the middleware, or
// nil when the route is unauthenticated.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(CurrentUserKey).(*models.User)
	return user
}
