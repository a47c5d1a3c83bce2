package service

import (
	"context"
	"log/slog"

	"github.com/thelegendaryarticuno/myfashion/internal/otp"
	"github.com/thelegendaryarticuno/myfashion/internal/session"
)

// SellerEventPublisher publishes seller activity events.
type SellerEventPublisher interface {
	PublishSellerLoggedIn(ctx context.Context, sellerID, email string) error
}

// LoginResult is what a completed login hands back to the dashboard: the
// confirmed seller id and a signed session token.
type LoginResult struct {
	SellerID string `json:"sellerId"`
	Token    string `json:"token"`
}

// AuthService orchestrates the seller login flow: the OTP state machine
// plus token issuance and the logged-in activity event.
type AuthService struct {
	flow   *otp.Flow
	tokens *session.Manager
	events SellerEventPublisher
	logger *slog.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(flow *otp.Flow, tokens *session.Manager, events SellerEventPublisher, logger *slog.Logger) *AuthService {
	return &AuthService{
		flow:   flow,
		tokens: tokens,
		events: events,
		logger: logger,
	}
}

// RequestOTP starts a login attempt.
func (s *AuthService) RequestOTP(ctx context.Context, email string) (*otp.Session, error) {
	return s.flow.RequestOTP(ctx, email)
}

// SubmitOTP verifies a code. On expiry the returned session reflects the
// expired state alongside the error, so the handler can surface the resend
// affordance.
func (s *AuthService) SubmitOTP(ctx context.Context, email, code string) (*otp.Session, error) {
	return s.flow.SubmitOTP(ctx, email, code)
}

// ResendOTP requests a fresh code after an expiry.
func (s *AuthService) ResendOTP(ctx context.Context, email string) (*otp.Session, error) {
	return s.flow.ResendOTP(ctx, email)
}

// Login completes the attempt and issues the seller's session token.
func (s *AuthService) Login(ctx context.Context, sellerID, email, password string) (*LoginResult, error) {
	sess, err := s.flow.Login(ctx, sellerID, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(sess.SellerID, email)
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishSellerLoggedIn(ctx, sess.SellerID, email); err != nil {
		s.logger.WarnContext(ctx, "failed to publish seller.logged_in event",
			slog.String("seller_id", sess.SellerID),
			slog.String("error", err.Error()),
		)
	}

	return &LoginResult{SellerID: sess.SellerID, Token: token}, nil
}
