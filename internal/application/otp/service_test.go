package otp

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/infrastructure/otpstore"
)

const testPhone = "2348012345678"

// --- mocks ---

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

// --- builder ---

type testEnv struct {
	store  *otpstore.Store
	sender *mockSender
	svc    *service
	now    time.Time
}

func newEnv(t *testing.T, devMode bool) *testEnv {
	t.Helper()
	env := &testEnv{
		store:  otpstore.New(0),
		sender: &mockSender{},
		now:    time.Now(),
	}
	env.svc = NewService(env.store, env.sender, "234", devMode).(*service)
	env.svc.now = func() time.Time { return env.now }
	return env
}

// issue stores an OTP in dev mode and returns the generated code.
func (e *testEnv) issue(t *testing.T) string {
	t.Helper()
	res, err := e.svc.SendOTP(context.Background(), testPhone)
	require.NoError(t, err)
	require.NotEmpty(t, res.Code)
	return res.Code
}

// --- SendOTP ---

func TestSendOTP_InvalidPhone(t *testing.T) {
	env := newEnv(t, true)
	for _, p := range []string{"", "8012345678", "23480123456789", "+2348012345678"} {
		_, err := env.svc.SendOTP(context.Background(), p)
		require.Error(t, err, "phone %q", p)
		assert.True(t, errors.Is(err, domain.ErrBadRequest))
	}
}

func TestSendOTP_DevMode_ReturnsCodeWithoutDispatch(t *testing.T) {
	env := newEnv(t, true)

	res, err := env.svc.SendOTP(context.Background(), testPhone)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "OTP generated successfully", res.Message)
	assert.Equal(t, testPhone, res.PhoneNumber)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), res.Code)

	rec, ok := env.store.Get(testPhone)
	require.True(t, ok)
	assert.Equal(t, res.Code, rec.Code)
	assert.Equal(t, 0, rec.Attempts)
	assert.Equal(t, env.now.Add(domain.OTPTTL), rec.ExpiresAt)

	env.sender.AssertNotCalled(t, "Send")
}

func TestSendOTP_Production_DispatchesAndHidesCode(t *testing.T) {
	env := newEnv(t, false)
	env.sender.On("Send", mock.Anything, testPhone, mock.MatchedBy(func(msg string) bool {
		return regexp.MustCompile(`Urep registration is: \d{6}$`).MatchString(msg)
	})).Return(nil)

	res, err := env.svc.SendOTP(context.Background(), testPhone)
	require.NoError(t, err)

	assert.Equal(t, "OTP sent successfully", res.Message)
	assert.Empty(t, res.Code, "production responses must not leak the code")
	env.sender.AssertExpectations(t)
}

func TestSendOTP_DispatchFailure_RollsBackRecord(t *testing.T) {
	env := newEnv(t, false)
	env.sender.On("Send", mock.Anything, testPhone, mock.Anything).Return(errors.New("gateway 502"))

	_, err := env.svc.SendOTP(context.Background(), testPhone)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	assert.Equal(t, "Unable to send OTP. Please try again later.", err.Error())

	_, ok := env.store.Get(testPhone)
	assert.False(t, ok, "undelivered OTP must not stay live")
}

func TestSendOTP_NoSenderConfigured_Production(t *testing.T) {
	store := otpstore.New(0)
	svc := NewService(store, nil, "234", false)

	res, err := svc.SendOTP(context.Background(), testPhone)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	assert.Equal(t, "Unable to send OTP. Please try again later.", err.Error())

	_, ok := store.Get(testPhone)
	assert.False(t, ok, "no record may be stored when dispatch is impossible")
}

func TestSendOTP_NoSenderConfigured_DevModeStillIssues(t *testing.T) {
	store := otpstore.New(0)
	svc := NewService(store, nil, "234", true)

	res, err := svc.SendOTP(context.Background(), testPhone)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Code)
}

func TestSendOTP_ReplacesPendingRecord(t *testing.T) {
	env := newEnv(t, true)
	first := env.issue(t)
	second := env.issue(t)

	// The old code now behaves as a mismatch against the new record.
	if first != second {
		_, err := env.svc.VerifyOTP(context.Background(), testPhone, first)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	}

	res, err := env.svc.VerifyOTP(context.Background(), testPhone, second)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

// --- VerifyOTP ---

func TestVerifyOTP_NoRecord(t *testing.T) {
	env := newEnv(t, true)
	_, err := env.svc.VerifyOTP(context.Background(), testPhone, "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	assert.Equal(t, "No OTP found for this phone number. Please request a new OTP.", err.Error())
}

func TestVerifyOTP_HappyPath_ConsumesRecord(t *testing.T) {
	env := newEnv(t, true)
	code := env.issue(t)

	res, err := env.svc.VerifyOTP(context.Background(), testPhone, code)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "OTP verified successfully", res.Message)
	assert.Equal(t, testPhone, res.PhoneNumber)

	_, ok := env.store.Get(testPhone)
	assert.False(t, ok, "record must be deleted on success")

	// A second verification requires a fresh OTP.
	_, err = env.svc.VerifyOTP(context.Background(), testPhone, code)
	require.Error(t, err)
	assert.Equal(t, "No OTP found for this phone number. Please request a new OTP.", err.Error())
}

func TestVerifyOTP_Mismatch_CountsDownAttempts(t *testing.T) {
	env := newEnv(t, true)
	code := env.issue(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for want := domain.OTPMaxAttempts - 1; want >= 0; want-- {
		_, err := env.svc.VerifyOTP(context.Background(), testPhone, wrong)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
		assert.Equal(t, fmt.Sprintf("Invalid OTP. %d attempts remaining.", want), err.Error())
	}

	// Attempts exhausted: the next call deletes the record...
	_, err := env.svc.VerifyOTP(context.Background(), testPhone, wrong)
	require.Error(t, err)
	assert.Equal(t, "Maximum verification attempts exceeded. Please request a new OTP.", err.Error())

	// ...so the one after reports no record.
	_, err = env.svc.VerifyOTP(context.Background(), testPhone, wrong)
	require.Error(t, err)
	assert.Equal(t, "No OTP found for this phone number. Please request a new OTP.", err.Error())
}

func TestVerifyOTP_MismatchThenMatch(t *testing.T) {
	env := newEnv(t, true)
	code := env.issue(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err := env.svc.VerifyOTP(context.Background(), testPhone, wrong)
	require.Error(t, err)
	assert.Equal(t, "Invalid OTP. 2 attempts remaining.", err.Error())

	rec, ok := env.store.Get(testPhone)
	require.True(t, ok)
	assert.Equal(t, 1, rec.Attempts)

	res, err := env.svc.VerifyOTP(context.Background(), testPhone, code)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestVerifyOTP_Expired_DeletesRecordRegardlessOfCode(t *testing.T) {
	env := newEnv(t, true)
	code := env.issue(t)

	env.now = env.now.Add(domain.OTPTTL + time.Second)

	_, err := env.svc.VerifyOTP(context.Background(), testPhone, code)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Equal(t, "OTP has expired. Please request a new OTP.", err.Error())

	_, ok := env.store.Get(testPhone)
	assert.False(t, ok)
}

func TestVerifyOTP_ExpiredAndExhausted_ReportsExpired(t *testing.T) {
	env := newEnv(t, true)
	env.store.Put(testPhone, domain.OTPRecord{
		Code:      "123456",
		ExpiresAt: env.now.Add(-time.Minute),
		Attempts:  domain.OTPMaxAttempts,
	})

	_, err := env.svc.VerifyOTP(context.Background(), testPhone, "123456")
	require.Error(t, err)
	assert.Equal(t, "OTP has expired. Please request a new OTP.", err.Error())
}

func TestGenerateCode_SixDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
	}
}
