// FILE: internal/pkg/serverutils/auth_middleware.go
package serverutils

import (
	"encoding/base64"
	"strings"

	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/pkg/credentials"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const identityLocalKey = "identity"

// AuthMiddleware authenticates every request against the credential store.
// Two schemes are accepted: HTTP Basic with the raw credentials (the client
// resends them per request), and Bearer with a JWT issued by login. In both
// cases the resulting identity's role comes from the credential table, never
// from the token, so a role change applies to the very next request.
func AuthMiddleware(store credentials.Store, jwtSecret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")

		var identity *entity.Identity

		switch {
		case strings.HasPrefix(authHeader, "Basic "):
			identity = basicAuth(store, authHeader[len("Basic "):])
		case strings.HasPrefix(authHeader, "Bearer "):
			identity = bearerAuth(store, jwtSecret, authHeader[len("Bearer "):])
		}

		if identity == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    401,
				"message": "Invalid credentials",
			})
		}

		ctx.Locals(identityLocalKey, identity)
		return ctx.Next()
	}
}

func basicAuth(store credentials.Store, encoded string) *entity.Identity {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return nil
	}
	identity, err := store.Authenticate(username, password)
	if err != nil {
		return nil
	}
	return identity
}

func bearerAuth(store credentials.Store, jwtSecret, tokenStr string) *entity.Identity {
	if jwtSecret == "" {
		return nil
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return nil
	}

	identity, ok := store.Lookup(username)
	if !ok {
		return nil
	}
	return identity
}

// IdentityFromCtx returns the identity set by AuthMiddleware.
func IdentityFromCtx(ctx *fiber.Ctx) (*entity.Identity, bool) {
	identity, ok := ctx.Locals(identityLocalKey).(*entity.Identity)
	return identity, ok
}
