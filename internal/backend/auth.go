package backend

import (
	"context"
	"strings"

	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

// Remote message fragments the auth endpoints are known to return. The
// backend signals outcomes through these strings, so translation into typed
// errors happens here and nowhere else.
const (
	msgOTPExpired     = "OTP has expired"
	msgOTPVerified    = "OTP verification successful"
	msgLoginSuccess   = "Login successful"
	msgSellerLoggedIn = "loggedin"
)

type otpRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SendOTP asks the backend to email a one-time password.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/otp/send-otp", otpRequest{Email: email}, nil)
}

// VerifyOTP checks a code. An expired code surfaces as an error matching
// apperrors.ErrGone regardless of the HTTP status the backend chose for it.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	var out messageResponse
	err := c.post(ctx, "/otp/verify-otp", verifyOTPRequest{Email: email, OTP: code}, &out)
	if err != nil {
		if strings.Contains(upstreamMessage(err), msgOTPExpired) {
			return apperrors.Gone(msgOTPExpired)
		}
		return err
	}
	if strings.Contains(out.Message, msgOTPExpired) {
		return apperrors.Gone(msgOTPExpired)
	}
	if !strings.Contains(out.Message, msgOTPVerified) {
		return apperrors.Unauthorized(out.Message)
	}
	return nil
}

// ResendOTP asks the backend for a fresh code after an expiry.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	return c.put(ctx, "/otp/resend-otp", otpRequest{Email: email}, nil)
}

type loginRequest struct {
	SellerID     string `json:"sellerId"`
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
}

type loginResponse struct {
	Message  string `json:"message"`
	SellerID string `json:"sellerId"`
}

// Login submits seller credentials and returns the seller id the backend
// confirmed.
func (c *Client) Login(ctx context.Context, sellerID, email, password string) (string, error) {
	var out loginResponse
	err := c.post(ctx, "/admin/login", loginRequest{
		SellerID:     sellerID,
		EmailOrPhone: email,
		Password:     password,
	}, &out)
	if err != nil {
		return "", err
	}
	if !strings.Contains(out.Message, msgLoginSuccess) {
		return "", apperrors.Unauthorized(out.Message)
	}
	if out.SellerID == "" {
		out.SellerID = sellerID
	}
	return out.SellerID, nil
}

type verifySellerRequest struct {
	SellerID string `json:"sellerId"`
}

type verifySellerResponse struct {
	LoggedIn string `json:"loggedIn"`
}

// VerifySeller reports whether the backend still considers the seller
// logged in.
func (c *Client) VerifySeller(ctx context.Context, sellerID string) (bool, error) {
	if sellerID == "" {
		return false, apperrors.InvalidInput("seller id is required")
	}
	var out verifySellerResponse
	if err := c.post(ctx, "/admin/verify-seller", verifySellerRequest{SellerID: sellerID}, &out); err != nil {
		return false, err
	}
	return out.LoggedIn == msgSellerLoggedIn, nil
}
