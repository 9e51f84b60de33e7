// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"rbac-chatbot-be/internal/dto"
	"rbac-chatbot-be/internal/pkg/logger"
	"rbac-chatbot-be/pkg/credentials"

	"github.com/golang-jwt/jwt/v5"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	store     credentials.Store
	jwtSecret string
	jwtTTL    time.Duration
	logger    logger.ILogger
}

func NewAuthService(store credentials.Store, jwtSecret string, jwtTTL time.Duration, sysLogger logger.ILogger) IAuthService {
	return &authService{
		store:     store,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		logger:    sysLogger,
	}
}

// Login verifies the credentials and returns the role plus a greeting. When a
// JWT secret is configured it also issues a short-lived bearer token; clients
// that prefer resending Basic credentials per request can ignore it.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	identity, err := s.store.Authenticate(req.Username, req.Password)
	if err != nil {
		s.logger.Warn("auth", "login failed", map[string]interface{}{
			"username": req.Username,
		})
		return nil, err
	}

	res := &dto.LoginResponse{
		Message: fmt.Sprintf("Welcome %s!", identity.Username),
		Role:    string(identity.Role),
	}

	if s.jwtSecret != "" {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": identity.Username,
			"iat": time.Now().Unix(),
			"exp": time.Now().Add(s.jwtTTL).Unix(),
		})
		signed, err := token.SignedString([]byte(s.jwtSecret))
		if err != nil {
			return nil, err
		}
		res.AccessToken = signed
	}

	s.logger.Info("auth", "login successful", map[string]interface{}{
		"username": identity.Username,
		"role":     identity.Role,
	})
	return res, nil
}
