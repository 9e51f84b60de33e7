package serverutils

import (
	"encoding/base64"
	"net/http/httptest"
	"testing"
	"time"

	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/pkg/credentials"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testJWTSecret = "test-secret"

func newTestApp() *fiber.App {
	store := credentials.NewStaticStore([]credentials.User{
		{Username: "Tony", Secret: "password123", Role: entity.RoleEngineering},
	})

	app := fiber.New()
	app.Get("/protected", AuthMiddleware(store, testJWTSecret), func(ctx *fiber.Ctx) error {
		identity, _ := IdentityFromCtx(ctx)
		return ctx.JSON(fiber.Map{"username": identity.Username, "role": identity.Role})
	})
	return app
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func signToken(t *testing.T, secret, username string, method jwt.SigningMethod, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub": username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid basic", basicHeader("Tony", "password123"), fiber.StatusOK},
		{"wrong password", basicHeader("Tony", "wrong"), fiber.StatusUnauthorized},
		{"unknown user", basicHeader("Loki", "password123"), fiber.StatusUnauthorized},
		{"no header", "", fiber.StatusUnauthorized},
		{"malformed base64", "Basic !!!", fiber.StatusUnauthorized},
		{"missing colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("Tony")), fiber.StatusUnauthorized},
		{"unsupported scheme", "Digest abc", fiber.StatusUnauthorized},
		{"valid bearer", "Bearer " + signToken(t, testJWTSecret, "Tony", jwt.SigningMethodHS256, time.Minute), fiber.StatusOK},
		{"bearer wrong secret", "Bearer " + signToken(t, "other-secret", "Tony", jwt.SigningMethodHS256, time.Minute), fiber.StatusUnauthorized},
		{"bearer expired", "Bearer " + signToken(t, testJWTSecret, "Tony", jwt.SigningMethodHS256, -time.Minute), fiber.StatusUnauthorized},
		{"bearer unknown subject", "Bearer " + signToken(t, testJWTSecret, "Loki", jwt.SigningMethodHS256, time.Minute), fiber.StatusUnauthorized},
		{"bearer garbage", "Bearer not.a.token", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			res, err := app.Test(req, -1)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.StatusCode)
		})
	}
}

func TestAuthMiddlewareRoleComesFromStore(t *testing.T) {
	// A token only carries the username; the role is looked up fresh on
	// every request so it can never be stale or forged.
	store := credentials.NewStaticStore([]credentials.User{
		{Username: "Bruce", Secret: "securepass", Role: entity.RoleMarketing},
	})

	var seen *entity.Identity
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(store, testJWTSecret), func(ctx *fiber.Ctx) error {
		seen, _ = IdentityFromCtx(ctx)
		return ctx.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testJWTSecret, "Bruce", jwt.SigningMethodHS256, time.Minute))

	res, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, entity.RoleMarketing, seen.Role)
}
