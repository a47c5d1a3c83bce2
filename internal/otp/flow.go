package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

// CodeLength is the number of digits in a one-time password.
const CodeLength = 6

// inFlightGrace bounds how long a crashed request can hold the in-flight
// guard before a retry is allowed through.
const inFlightGrace = 30 * time.Second

// Authenticator is the remote side of the flow. The fashion backend client
// implements it; code expiry must surface as an error matching
// apperrors.ErrGone.
type Authenticator interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, sellerID, email, password string) (string, error)
}

// Flow drives a login attempt through its states. All transition rules are
// enforced here; handlers only translate HTTP to and from these calls.
//
// Transitions: RequestOTP moves Idle to Sent. SubmitOTP moves Sent to
// Verified, or to Expired when the code outlived its validity. ResendOTP
// moves Expired back to Sent. Login moves Verified to LoggedIn and discards
// the session. Any other combination is rejected without contacting the
// backend.
type Flow struct {
	auth     Authenticator
	sessions Repository
	logger   *slog.Logger
}

// NewFlow creates the flow over an authenticator and a session store.
func NewFlow(auth Authenticator, sessions Repository, logger *slog.Logger) *Flow {
	return &Flow{
		auth:     auth,
		sessions: sessions,
		logger:   logger,
	}
}

// NormalizeCode strips everything but digits from raw user input and
// requires exactly CodeLength digits to remain. Codes are normalized before
// any network call is considered.
func NormalizeCode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	code := b.String()
	if len(code) != CodeLength {
		return "", apperrors.InvalidInput(fmt.Sprintf("otp code must be %d digits", CodeLength))
	}
	return code, nil
}

// RequestOTP starts a login attempt for the email. An attempt already in
// progress is rejected rather than silently restarted.
func (f *Flow) RequestOTP(ctx context.Context, email string) (*Session, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	existing, err := f.sessions.Get(ctx, email)
	switch {
	case err == nil:
		if existing.State != StateIdle {
			return nil, apperrors.Conflict("a login attempt is already in progress for this email")
		}
	case errors.Is(err, apperrors.ErrNotFound):
		existing = &Session{Email: email, State: StateIdle}
	default:
		return nil, fmt.Errorf("load otp session: %w", err)
	}

	release, err := f.hold(ctx, existing)
	if err != nil {
		return nil, err
	}

	if err := f.auth.SendOTP(ctx, email); err != nil {
		release(StateIdle)
		return nil, err
	}

	sess, err := release(StateSent)
	if err != nil {
		return nil, err
	}

	f.logger.InfoContext(ctx, "otp sent", slog.String("email", email))
	return sess, nil
}

// SubmitOTP verifies a code for the attempt. On expiry the session moves to
// Expired and the expiry error is returned alongside it so callers can show
// the resend affordance; any other verification failure leaves the attempt
// in Sent for an in-place retry.
func (f *Flow) SubmitOTP(ctx context.Context, email, rawCode string) (*Session, error) {
	code, err := NormalizeCode(rawCode)
	if err != nil {
		return nil, err
	}

	sess, err := f.load(ctx, email, StateSent)
	if err != nil {
		return nil, err
	}

	release, err := f.hold(ctx, sess)
	if err != nil {
		return nil, err
	}

	if err := f.auth.VerifyOTP(ctx, email, code); err != nil {
		if errors.Is(err, apperrors.ErrGone) {
			expired, saveErr := release(StateExpired)
			if saveErr != nil {
				return nil, saveErr
			}
			f.logger.InfoContext(ctx, "otp expired", slog.String("email", email))
			return expired, err
		}
		release(StateSent)
		return nil, err
	}

	verified, err := release(StateVerified)
	if err != nil {
		return nil, err
	}

	f.logger.InfoContext(ctx, "otp verified", slog.String("email", email))
	return verified, nil
}

// ResendOTP requests a fresh code. It only applies after an expiry.
func (f *Flow) ResendOTP(ctx context.Context, email string) (*Session, error) {
	sess, err := f.load(ctx, email, StateExpired)
	if err != nil {
		return nil, err
	}

	release, err := f.hold(ctx, sess)
	if err != nil {
		return nil, err
	}

	if err := f.auth.ResendOTP(ctx, email); err != nil {
		release(StateExpired)
		return nil, err
	}

	resent, err := release(StateSent)
	if err != nil {
		return nil, err
	}

	f.logger.InfoContext(ctx, "otp resent", slog.String("email", email))
	return resent, nil
}

// Login completes the attempt with the seller credentials. It is rejected
// before any network call unless the code was verified and all three
// fields are present. On success the session is discarded and the returned
// session carries the seller id the backend confirmed.
func (f *Flow) Login(ctx context.Context, sellerID, email, password string) (*Session, error) {
	if sellerID == "" || email == "" || password == "" {
		return nil, apperrors.InvalidInput("seller id, email and password are all required")
	}

	sess, err := f.load(ctx, email, StateVerified)
	if err != nil {
		return nil, err
	}

	release, err := f.hold(ctx, sess)
	if err != nil {
		return nil, err
	}

	confirmedID, err := f.auth.Login(ctx, sellerID, email, password)
	if err != nil {
		release(StateVerified)
		return nil, err
	}

	if err := f.sessions.Delete(ctx, email); err != nil {
		f.logger.WarnContext(ctx, "failed to discard otp session after login",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
	}

	f.logger.InfoContext(ctx, "seller logged in",
		slog.String("email", email),
		slog.String("seller_id", confirmedID),
	)

	return &Session{
		Email:     email,
		State:     StateLoggedIn,
		SellerID:  confirmedID,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// load fetches the session and enforces the state precondition.
func (f *Flow) load(ctx context.Context, email string, want State) (*Session, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	sess, err := f.sessions.Get(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("no login attempt in progress for this email")
		}
		return nil, fmt.Errorf("load otp session: %w", err)
	}
	if sess.State != want {
		return nil, apperrors.Conflict(fmt.Sprintf("operation not allowed in state %q", sess.State))
	}
	return sess, nil
}

// hold takes the in-flight guard for a session, rejecting overlapping
// transitions for the same attempt. The returned release func records the
// final state and drops the guard.
func (f *Flow) hold(ctx context.Context, sess *Session) (func(State) (*Session, error), error) {
	if sess.InFlight && time.Since(sess.UpdatedAt) < inFlightGrace {
		return nil, apperrors.Conflict("another request for this login attempt is in progress")
	}

	sess.InFlight = true
	if err := f.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save otp session: %w", err)
	}

	return func(state State) (*Session, error) {
		sess.State = state
		sess.InFlight = false
		if err := f.sessions.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("save otp session: %w", err)
		}
		return sess, nil
	}, nil
}
