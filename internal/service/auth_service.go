package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/registrar/internal/auth"
	"github.com/mmynk/registrar/pkg/api"
)

// AuthService implements the admin login RPC.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Login authenticates the admin and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	slog.Info("Login request", "username", req.Msg.Username)

	// Validate input
	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	subject, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		slog.Warn("Login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	// Generate JWT token
	token, expiresAt, err := s.jwtManager.Generate(subject)
	if err != nil {
		slog.Error("Failed to generate token", "subject", subject, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Admin logged in successfully", "subject", subject)
	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}), nil
}
