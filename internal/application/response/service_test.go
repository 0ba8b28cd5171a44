package response

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/urep/registration-api/internal/domain"
)

type mockRegistrationRepo struct{ mock.Mock }

func (m *mockRegistrationRepo) Put(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *mockRegistrationRepo) Get(ctx context.Context, registrationID string) (*domain.Registration, error) {
	args := m.Called(ctx, registrationID)
	if reg := args.Get(0); reg != nil {
		return reg.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRegistrationRepo) Delete(ctx context.Context, registrationID string) error {
	args := m.Called(ctx, registrationID)
	return args.Error(0)
}

func (m *mockRegistrationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	args := m.Called(ctx, userID)
	if regs := args.Get(0); regs != nil {
		return regs.([]domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockResponseRepo struct{ mock.Mock }

func (m *mockResponseRepo) PutBatch(ctx context.Context, resps []domain.Response) error {
	args := m.Called(ctx, resps)
	return args.Error(0)
}

func (m *mockResponseRepo) ListByRegistration(ctx context.Context, registrationID string) ([]domain.Response, error) {
	args := m.Called(ctx, registrationID)
	if resps := args.Get(0); resps != nil {
		return resps.([]domain.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserGetter struct{ mock.Mock }

func (m *mockUserGetter) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProgrammeGetter struct{ mock.Mock }

func (m *mockProgrammeGetter) Get(ctx context.Context, programmeID string) (*domain.Programme, error) {
	args := m.Called(ctx, programmeID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Programme), args.Error(1)
	}
	return nil, args.Error(1)
}

type submitEnv struct {
	registrations *mockRegistrationRepo
	responses     *mockResponseRepo
	users         *mockUserGetter
	programmes    *mockProgrammeGetter
	svc           Service
}

func newSubmitEnv() *submitEnv {
	e := &submitEnv{
		registrations: new(mockRegistrationRepo),
		responses:     new(mockResponseRepo),
		users:         new(mockUserGetter),
		programmes:    new(mockProgrammeGetter),
	}
	e.svc = NewService(e.registrations, e.responses, e.users, e.programmes)
	return e
}

func submitReq() *domain.CreateResponseRequest {
	return &domain.CreateResponseRequest{
		UserID:      "u1",
		ProgrammeID: "p1",
		Answers: []domain.AnswerInput{
			{FieldID: "f1", Answer: "Ada"},
			{FieldID: "f2", Answer: "Lagos"},
		},
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("writes registration and one answer row per input", func(t *testing.T) {
		e := newSubmitEnv()
		e.users.On("Get", ctx, "u1").Return(&domain.User{UserID: "u1"}, nil)
		e.programmes.On("Get", ctx, "p1").Return(&domain.Programme{ProgrammeID: "p1"}, nil)
		e.registrations.On("ListByUser", ctx, "u1").Return([]domain.Registration{}, nil)
		e.registrations.On("Put", ctx, mock.AnythingOfType("*domain.Registration")).Return(nil)
		e.responses.On("PutBatch", ctx, mock.AnythingOfType("[]domain.Response")).Return(nil)

		res, err := e.svc.Submit(ctx, submitReq())
		require.NoError(t, err)
		assert.NotEmpty(t, res.Registration.RegistrationID)
		require.Len(t, res.Answers, 2)
		for _, a := range res.Answers {
			assert.Equal(t, res.Registration.RegistrationID, a.RegistrationID)
			assert.NotEmpty(t, a.ResponseID)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		e := newSubmitEnv()
		e.users.On("Get", ctx, "u1").Return(nil, domain.E(domain.ErrNotFound, "User not found"))

		_, err := e.svc.Submit(ctx, submitReq())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		e.registrations.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("already registered for the programme", func(t *testing.T) {
		e := newSubmitEnv()
		e.users.On("Get", ctx, "u1").Return(&domain.User{UserID: "u1"}, nil)
		e.programmes.On("Get", ctx, "p1").Return(&domain.Programme{ProgrammeID: "p1"}, nil)
		e.registrations.On("ListByUser", ctx, "u1").Return([]domain.Registration{
			{RegistrationID: "r0", UserID: "u1", ProgrammeID: "p1"},
		}, nil)

		_, err := e.svc.Submit(ctx, submitReq())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConflict)
		e.registrations.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("registered for a different programme is fine", func(t *testing.T) {
		e := newSubmitEnv()
		e.users.On("Get", ctx, "u1").Return(&domain.User{UserID: "u1"}, nil)
		e.programmes.On("Get", ctx, "p1").Return(&domain.Programme{ProgrammeID: "p1"}, nil)
		e.registrations.On("ListByUser", ctx, "u1").Return([]domain.Registration{
			{RegistrationID: "r0", UserID: "u1", ProgrammeID: "other"},
		}, nil)
		e.registrations.On("Put", ctx, mock.AnythingOfType("*domain.Registration")).Return(nil)
		e.responses.On("PutBatch", ctx, mock.AnythingOfType("[]domain.Response")).Return(nil)

		_, err := e.svc.Submit(ctx, submitReq())
		require.NoError(t, err)
	})

	t.Run("answer write failure rolls the registration back", func(t *testing.T) {
		e := newSubmitEnv()
		e.users.On("Get", ctx, "u1").Return(&domain.User{UserID: "u1"}, nil)
		e.programmes.On("Get", ctx, "p1").Return(&domain.Programme{ProgrammeID: "p1"}, nil)
		e.registrations.On("ListByUser", ctx, "u1").Return([]domain.Registration{}, nil)
		e.registrations.On("Put", ctx, mock.AnythingOfType("*domain.Registration")).Return(nil)
		e.responses.On("PutBatch", ctx, mock.AnythingOfType("[]domain.Response")).Return(errors.New("throttled"))
		e.registrations.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		_, err := e.svc.Submit(ctx, submitReq())
		require.Error(t, err)
		e.registrations.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("string"))
	})
}

func TestGetRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("bundles registration with its answers", func(t *testing.T) {
		e := newSubmitEnv()
		e.registrations.On("Get", ctx, "r1").Return(&domain.Registration{RegistrationID: "r1"}, nil)
		e.responses.On("ListByRegistration", ctx, "r1").Return([]domain.Response{
			{ResponseID: "a1", RegistrationID: "r1"},
		}, nil)

		res, err := e.svc.GetRegistration(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "r1", res.Registration.RegistrationID)
		assert.Len(t, res.Answers, 1)
	})

	t.Run("missing registration", func(t *testing.T) {
		e := newSubmitEnv()
		e.registrations.On("Get", ctx, "ghost").Return(nil, domain.E(domain.ErrNotFound, "Registration not found"))

		_, err := e.svc.GetRegistration(ctx, "ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
