package otp

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

// --- Mock Authenticator ---

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) SendOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockAuthenticator) VerifyOTP(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *mockAuthenticator) ResendOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockAuthenticator) Login(ctx context.Context, sellerID, email, password string) (string, error) {
	args := m.Called(ctx, sellerID, email, password)
	return args.String(0), args.Error(1)
}

func newTestFlow(auth *mockAuthenticator) (*Flow, *MemoryRepository) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := NewMemoryRepository()
	return NewFlow(auth, repo, logger), repo
}

const testEmail = "seller@example.com"

func seedSession(t *testing.T, repo *MemoryRepository, state State) {
	t.Helper()
	require.NoError(t, repo.Save(context.Background(), &Session{Email: testEmail, State: state}))
}

// --- NormalizeCode ---

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "123456", want: "123456"},
		{name: "spaced", raw: " 12 34 56 ", want: "123456"},
		{name: "dashed", raw: "123-456", want: "123456"},
		{name: "too short", raw: "12345", wantErr: true},
		{name: "too long", raw: "1234567", wantErr: true},
		{name: "letters only", raw: "abcdef", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCode(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- RequestOTP ---

func TestRequestOTP_Success(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, _ := newTestFlow(auth)
	ctx := context.Background()

	auth.On("SendOTP", mock.Anything, testEmail).Return(nil)

	sess, err := flow.RequestOTP(ctx, testEmail)

	require.NoError(t, err)
	assert.Equal(t, StateSent, sess.State)
	assert.False(t, sess.InFlight)
	auth.AssertExpectations(t)
}

func TestRequestOTP_EmptyEmail(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, _ := newTestFlow(auth)

	_, err := flow.RequestOTP(context.Background(), "")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	auth.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything)
}

func TestRequestOTP_AttemptInProgress(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	seedSession(t, repo, StateSent)

	_, err := flow.RequestOTP(context.Background(), testEmail)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	auth.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything)
}

func TestRequestOTP_SendFails_StaysIdle(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	ctx := context.Background()

	auth.On("SendOTP", mock.Anything, testEmail).Return(apperrors.Unavailable("otp service unreachable")).Once()
	_, err := flow.RequestOTP(ctx, testEmail)
	require.Error(t, err)

	got, err := repo.Get(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, got.State)

	// The attempt can be started again after the failure.
	auth.On("SendOTP", mock.Anything, testEmail).Return(nil).Once()
	sess, err := flow.RequestOTP(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, StateSent, sess.State)
}

// --- SubmitOTP ---

func TestSubmitOTP_Success(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	seedSession(t, repo, StateSent)

	auth.On("VerifyOTP", mock.Anything, testEmail, "123456").Return(nil)

	sess, err := flow.SubmitOTP(context.Background(), testEmail, "12 34 56")

	require.NoError(t, err)
	assert.Equal(t, StateVerified, sess.State)
	auth.AssertExpectations(t)
}

func TestSubmitOTP_MalformedCode_NoNetworkCall(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	seedSession(t, repo, StateSent)

	_, err := flow.SubmitOTP(context.Background(), testEmail, "12345")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	auth.AssertNotCalled(t, "VerifyOTP", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitOTP_WrongState(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	seedSession(t, repo, StateVerified)

	_, err := flow.SubmitOTP(context.Background(), testEmail, "123456")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubmitOTP_Expired_MovesToExpired(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	seedSession(t, repo, StateSent)

	auth.On("VerifyOTP", mock.Anything, testEmail, "123456").Return(apperrors.Gone("the otp has expired"))

	sess, err := flow.SubmitOTP(context.Background(), testEmail, "123456")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrGone)
	require.NotNil(t, sess)
	assert.Equal(t, StateExpired, sess.State)
	assert.True(t, sess.CanResend())
}

func TestSubmitOTP_WrongCode_StaysSent(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	ctx := context.Background()
	seedSession(t, repo, StateSent)

	auth.On("VerifyOTP", mock.Anything, testEmail, "000000").Return(apperrors.Unauthorized("invalid otp"))

	_, err := flow.SubmitOTP(ctx, testEmail, "000000")
	require.Error(t, err)

	got, err := repo.Get(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, StateSent, got.State)
	assert.False(t, got.CanResend())
}

// --- ResendOTP ---

func TestResendOTP_FromExpired(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	seedSession(t, repo, StateExpired)

	auth.On("ResendOTP", mock.Anything, testEmail).Return(nil)

	sess, err := flow.ResendOTP(context.Background(), testEmail)

	require.NoError(t, err)
	assert.Equal(t, StateSent, sess.State)
	assert.False(t, sess.CanResend())
}

func TestResendOTP_OnlyFromExpired(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	seedSession(t, repo, StateSent)

	_, err := flow.ResendOTP(context.Background(), testEmail)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	auth.AssertNotCalled(t, "ResendOTP", mock.Anything, mock.Anything)
}

func TestResendOTP_FailureStaysExpired(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	ctx := context.Background()
	seedSession(t, repo, StateExpired)

	auth.On("ResendOTP", mock.Anything, testEmail).Return(apperrors.Unavailable("otp service unreachable"))

	_, err := flow.ResendOTP(ctx, testEmail)
	require.Error(t, err)

	got, err := repo.Get(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, StateExpired, got.State)
	assert.True(t, got.CanResend())
}

// --- Login ---

func TestLogin_Success_DiscardsSession(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	ctx := context.Background()
	seedSession(t, repo, StateVerified)

	auth.On("Login", mock.Anything, "seller-1", testEmail, "hunter2").Return("seller-1", nil)

	sess, err := flow.Login(ctx, "seller-1", testEmail, "hunter2")

	require.NoError(t, err)
	assert.Equal(t, StateLoggedIn, sess.State)
	assert.Equal(t, "seller-1", sess.SellerID)

	_, err = repo.Get(ctx, testEmail)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLogin_MissingFields_NoNetworkCall(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	seedSession(t, repo, StateVerified)

	tests := []struct {
		name     string
		sellerID string
		email    string
		password string
	}{
		{name: "no seller id", sellerID: "", email: testEmail, password: "hunter2"},
		{name: "no email", sellerID: "seller-1", email: "", password: "hunter2"},
		{name: "no password", sellerID: "seller-1", email: testEmail, password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flow.Login(context.Background(), tt.sellerID, tt.email, tt.password)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}

	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_BeforeVerification_Rejected(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	seedSession(t, repo, StateSent)

	_, err := flow.Login(context.Background(), "seller-1", testEmail, "hunter2")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_BadCredentials_StaysVerified(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	ctx := context.Background()
	seedSession(t, repo, StateVerified)

	auth.On("Login", mock.Anything, "seller-1", testEmail, "wrong").Return("", apperrors.Unauthorized("invalid credentials"))

	_, err := flow.Login(ctx, "seller-1", testEmail, "wrong")
	require.Error(t, err)

	got, err := repo.Get(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, StateVerified, got.State)
}

// --- In-flight guard ---

func TestInFlightGuard_RejectsOverlap(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, repo := newTestFlow(auth)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Session{Email: testEmail, State: StateSent, InFlight: true}))

	_, err := flow.SubmitOTP(ctx, testEmail, "123456")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	auth.AssertNotCalled(t, "VerifyOTP", mock.Anything, mock.Anything, mock.Anything)
}

// --- End-to-end expiry scenario ---

func TestScenario_ExpiredThenResendThenLogin(t *testing.T) {
	auth := new(mockAuthenticator)
	flow, _ := newTestFlow(auth)
	ctx := context.Background()

	auth.On("SendOTP", mock.Anything, testEmail).Return(nil).Once()
	sess, err := flow.RequestOTP(ctx, testEmail)
	require.NoError(t, err)
	require.Equal(t, StateSent, sess.State)

	auth.On("VerifyOTP", mock.Anything, testEmail, "111111").Return(apperrors.Gone("the otp has expired")).Once()
	sess, err = flow.SubmitOTP(ctx, testEmail, "111111")
	require.ErrorIs(t, err, apperrors.ErrGone)
	require.Equal(t, StateExpired, sess.State)
	require.True(t, sess.CanResend())

	auth.On("ResendOTP", mock.Anything, testEmail).Return(nil).Once()
	sess, err = flow.ResendOTP(ctx, testEmail)
	require.NoError(t, err)
	require.Equal(t, StateSent, sess.State)

	auth.On("VerifyOTP", mock.Anything, testEmail, "222222").Return(nil).Once()
	sess, err = flow.SubmitOTP(ctx, testEmail, "222222")
	require.NoError(t, err)
	require.Equal(t, StateVerified, sess.State)

	auth.On("Login", mock.Anything, "seller-9", testEmail, "hunter2").Return("seller-9", nil).Once()
	sess, err = flow.Login(ctx, "seller-9", testEmail, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, StateLoggedIn, sess.State)
	assert.Equal(t, "seller-9", sess.SellerID)

	auth.AssertExpectations(t)
}
