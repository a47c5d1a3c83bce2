package otp

import "time"

// State is the position of a login attempt in the OTP flow.
type State string

// Flow states. Expired is a side state reached from Sent when the code
// outlived its validity; a successful resend returns the attempt to Sent.
const (
	StateIdle     State = "idle"
	StateSent     State = "otp_sent"
	StateExpired  State = "otp_expired"
	StateVerified State = "otp_verified"
	StateLoggedIn State = "logged_in"
)

// Session is one login attempt, keyed by the email it was started for. It
// lives in the session repository between requests and is discarded once
// the attempt reaches StateLoggedIn.
type Session struct {
	Email     string    `json:"email"`
	State     State     `json:"state"`
	SellerID  string    `json:"sellerId,omitempty"`
	InFlight  bool      `json:"inFlight,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanResend reports whether the resend affordance applies. It is only
// offered after an expiry, never as a shortcut around a failed verify.
func (s *Session) CanResend() bool {
	return s.State == StateExpired
}
