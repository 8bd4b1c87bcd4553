package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/chitfund/internal/auth"
	"github.com/mmynk/chitfund/internal/metrics"
	"github.com/mmynk/chitfund/internal/middleware"
	"github.com/mmynk/chitfund/internal/models"
	"github.com/mmynk/chitfund/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	admin      auth.Authenticator
	otp        *auth.OTPAuthenticator
	otpTTL     time.Duration
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(admin auth.Authenticator, otp *auth.OTPAuthenticator, otpTTL time.Duration, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		admin:      admin,
		otp:        otp,
		otpTTL:     otpTTL,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// AdminLogin authenticates the administrator and returns a JWT token.
func (s *AuthService) AdminLogin(ctx context.Context, req *connect.Request[api.AdminLoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("AdminLogin request")

	if req.Msg.Password == "" {
		metrics.LoginAttempts.WithLabelValues("password", "invalid").Inc()
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.admin.Authenticate(ctx, "", req.Msg.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("password", "failed").Inc()
		s.logger.Warn("Admin login failed", "error", err)
		return nil, connectError(err)
	}

	resp, err := s.session(user)
	if err != nil {
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues("password", "ok").Inc()
	s.logger.Info("Admin logged in")
	return connect.NewResponse(resp), nil
}

// RequestOTP sends a one-time code to a registered member phone.
func (s *AuthService) RequestOTP(ctx context.Context, req *connect.Request[api.RequestOTPRequest]) (*connect.Response[api.RequestOTPResponse], error) {
	s.logger.Info("RequestOTP request")

	if err := s.otp.RequestCode(ctx, req.Msg.Phone); err != nil {
		s.logger.Warn("OTP request failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.RequestOTPResponse{
		ExpiresInSeconds: int64(s.otpTTL / time.Second),
	}), nil
}

// VerifyOTP exchanges a one-time code for a member session token.
func (s *AuthService) VerifyOTP(ctx context.Context, req *connect.Request[api.VerifyOTPRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("VerifyOTP request")

	user, err := s.otp.Authenticate(ctx, req.Msg.Phone, req.Msg.Code)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("otp", "failed").Inc()
		s.logger.Warn("OTP verification failed", "error", err)
		return nil, connectError(err)
	}

	resp, err := s.session(user)
	if err != nil {
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues("otp", "ok").Inc()
	s.logger.Info("Member logged in", "member_id", user.MemberID)
	return connect.NewResponse(resp), nil
}

// Me returns the session user carried by the caller's token.
func (s *AuthService) Me(ctx context.Context, req *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return connect.NewResponse(&api.MeResponse{User: user}), nil
}

func (s *AuthService) session(user models.AuthUser) (*api.LoginResponse, error) {
	token, expires, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return &api.LoginResponse{Token: token, ExpiresAt: expires, User: user}, nil
}
