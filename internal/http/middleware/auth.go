package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"carcatalog/internal/auth"
	"carcatalog/internal/model"
)

// AuthSubjectLocalKey holds the "sub" claim of an authenticated request.
const AuthSubjectLocalKey = "auth_subject"

// BearerAuth rejects requests without a valid "Authorization: Bearer <jwt>" header.
// A nil verifier disables the check.
func BearerAuth(v *auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if v == nil {
			return c.Next()
		}

		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c, "missing bearer token")
		}
		claims, err := v.Verify(raw)
		if err != nil {
			return unauthorized(c, "invalid bearer token")
		}

		c.Locals(AuthSubjectLocalKey, claims.Subject)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="carcatalog"`)
	return c.Status(fiber.StatusUnauthorized).JSON(model.Fail[any](msg))
}
