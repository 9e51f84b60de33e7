package service

import (
	"context"
	"testing"
	"time"

	"rbac-chatbot-be/internal/dto"
	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/internal/pkg/apperrors"
	"rbac-chatbot-be/pkg/credentials"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newAuthFixture(jwtSecret string) IAuthService {
	store := credentials.NewStaticStore([]credentials.User{
		{Username: "Tony", Secret: "password123", Role: entity.RoleEngineering},
	})
	return NewAuthService(store, jwtSecret, 15*time.Minute, nopLogger{})
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture("")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "Tony", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, "Welcome Tony!", res.Message)
	assert.Equal(t, "engineering", res.Role)
	assert.Empty(t, res.AccessToken)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newAuthFixture("")

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Username: "Tony", Password: "wrong"}},
		{"unknown user", dto.LoginRequest{Username: "Loki", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), &tt.req)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}
}

func TestLoginIssuesToken(t *testing.T) {
	const secret = "test-secret"
	svc := newAuthFixture(secret)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "Tony", Password: "password123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	token, err := jwt.Parse(res.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "Tony", claims["sub"])
	exp, _ := claims.GetExpirationTime()
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp.Time, time.Minute)
}
