package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/thelegendaryarticuno/myfashion/internal/otp"
	"github.com/thelegendaryarticuno/myfashion/internal/service"
	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
	"github.com/thelegendaryarticuno/myfashion/pkg/httputil"
	"github.com/thelegendaryarticuno/myfashion/pkg/validator"
)

// AuthHandler handles the seller login flow endpoints.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates the auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// SendOTPRequest starts a login attempt.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest submits a code for the attempt.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// LoginRequest completes the attempt with the seller credentials.
type LoginRequest struct {
	SellerID string `json:"sellerId" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// flowState is the session view returned by every flow endpoint, so the
// client always knows which step it is on and whether resend applies.
type flowState struct {
	State     otp.State `json:"state"`
	CanResend bool      `json:"canResend"`
}

func stateOf(sess *otp.Session) flowState {
	return flowState{State: sess.State, CanResend: sess.CanResend()}
}

// SendOTP handles POST /api/v1/auth/otp/send.
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sess, err := h.service.RequestOTP(r.Context(), req.Email)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stateOf(sess)})
}

// VerifyOTP handles POST /api/v1/auth/otp/verify. An expired code returns
// 410 with the expired flow state, so the client shows the resend
// affordance instead of a dead retry.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sess, err := h.service.SubmitOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		if errors.Is(err, apperrors.ErrGone) && sess != nil {
			httputil.WriteJSON(w, http.StatusGone, httputil.Response{
				Data:  stateOf(sess),
				Error: &httputil.ErrorResponse{Code: "GONE", Message: "the otp has expired, request a new one"},
			})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stateOf(sess)})
}

// ResendOTP handles PUT /api/v1/auth/otp/resend.
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sess, err := h.service.ResendOTP(r.Context(), req.Email)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stateOf(sess)})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.SellerID, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
