package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urep/registration-api/internal/domain"
)

const testNIN = "12345678901"

// --- mocks ---

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(ctx context.Context, nin string) (*domain.IdentityPayload, error) {
	args := m.Called(ctx, nin)
	if p, _ := args.Get(0).(*domain.IdentityPayload); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) SendOTP(ctx context.Context, phoneNumber string) (*domain.OTPResult, error) {
	args := m.Called(ctx, phoneNumber)
	if r, _ := args.Get(0).(*domain.OTPResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- VerifyNIN ---

func TestVerifyNIN_VerifierError_NoOTPSideEffect(t *testing.T) {
	v := &mockVerifier{}
	iss := &mockIssuer{}
	v.On("Verify", mock.Anything, testNIN).Return(nil, domain.E(domain.ErrNotFound, "NIN not found or details do not match"))

	svc := NewService(v, iss, "234")
	_, err := svc.VerifyNIN(context.Background(), testNIN)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	iss.AssertNotCalled(t, "SendOTP")
}

func TestVerifyNIN_PhonePresent_TriggersOTP(t *testing.T) {
	v := &mockVerifier{}
	iss := &mockIssuer{}
	v.On("Verify", mock.Anything, testNIN).Return(&domain.IdentityPayload{NIN: testNIN, Phone: "+2348012345678"}, nil)
	iss.On("SendOTP", mock.Anything, "2348012345678").Return(&domain.OTPResult{Success: true}, nil)

	svc := NewService(v, iss, "234")
	payload, err := svc.VerifyNIN(context.Background(), testNIN)

	require.NoError(t, err)
	assert.Equal(t, testNIN, payload.NIN)
	iss.AssertExpectations(t)
}

func TestVerifyNIN_LocalFormatPhone_Normalized(t *testing.T) {
	v := &mockVerifier{}
	iss := &mockIssuer{}
	v.On("Verify", mock.Anything, testNIN).Return(&domain.IdentityPayload{Phone: "08012345678"}, nil)
	iss.On("SendOTP", mock.Anything, "2348012345678").Return(&domain.OTPResult{Success: true}, nil)

	svc := NewService(v, iss, "234")
	_, err := svc.VerifyNIN(context.Background(), testNIN)

	require.NoError(t, err)
	iss.AssertExpectations(t)
}

func TestVerifyNIN_NoPhone_SkipsOTP(t *testing.T) {
	v := &mockVerifier{}
	iss := &mockIssuer{}
	v.On("Verify", mock.Anything, testNIN).Return(&domain.IdentityPayload{NIN: testNIN}, nil)

	svc := NewService(v, iss, "234")
	_, err := svc.VerifyNIN(context.Background(), testNIN)

	require.NoError(t, err)
	iss.AssertNotCalled(t, "SendOTP")
}

func TestVerifyNIN_MalformedPhone_StillSucceeds(t *testing.T) {
	v := &mockVerifier{}
	iss := &mockIssuer{}
	v.On("Verify", mock.Anything, testNIN).Return(&domain.IdentityPayload{Phone: "12345"}, nil)

	svc := NewService(v, iss, "234")
	payload, err := svc.VerifyNIN(context.Background(), testNIN)

	require.NoError(t, err)
	assert.NotNil(t, payload)
	iss.AssertNotCalled(t, "SendOTP")
}

func TestVerifyNIN_OTPDeliveryFailure_DoesNotFailVerification(t *testing.T) {
	v := &mockVerifier{}
	iss := &mockIssuer{}
	v.On("Verify", mock.Anything, testNIN).Return(&domain.IdentityPayload{Phone: "+2348012345678"}, nil)
	iss.On("SendOTP", mock.Anything, "2348012345678").
		Return(nil, domain.E(domain.ErrUnavailable, "Unable to send OTP. Please try again later."))

	svc := NewService(v, iss, "234")
	payload, err := svc.VerifyNIN(context.Background(), testNIN)

	require.NoError(t, err)
	assert.NotNil(t, payload)
	iss.AssertExpectations(t)
}
