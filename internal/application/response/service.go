package response

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/id"
)

// RegistrationRepository persists registration rows.
type RegistrationRepository interface {
	Put(ctx context.Context, reg *domain.Registration) error
	Get(ctx context.Context, registrationID string) (*domain.Registration, error)
	Delete(ctx context.Context, registrationID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
}

// ResponseRepository persists the per-field answers of a registration.
type ResponseRepository interface {
	PutBatch(ctx context.Context, resps []domain.Response) error
	ListByRegistration(ctx context.Context, registrationID string) ([]domain.Response, error)
}

// UserGetter and ProgrammeGetter validate foreign keys before writing.
type UserGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type ProgrammeGetter interface {
	Get(ctx context.Context, programmeID string) (*domain.Programme, error)
}

// RegistrationResult bundles a registration with its answers.
type RegistrationResult struct {
	Registration domain.Registration `json:"registration"`
	Answers      []domain.Response   `json:"answers"`
}

type Service interface {
	Submit(ctx context.Context, req *domain.CreateResponseRequest) (*RegistrationResult, error)
	GetRegistration(ctx context.Context, registrationID string) (*RegistrationResult, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
}

type service struct {
	registrations RegistrationRepository
	responses     ResponseRepository
	users         UserGetter
	programmes    ProgrammeGetter
	now           func() time.Time
}

func NewService(registrations RegistrationRepository, responses ResponseRepository, users UserGetter, programmes ProgrammeGetter) Service {
	return &service{
		registrations: registrations,
		responses:     responses,
		users:         users,
		programmes:    programmes,
		now:           time.Now,
	}
}

// Submit creates the registration row first, then the answer rows. A failed
// answer batch rolls the registration back so a retry doesn't hit the
// duplicate check.
func (s *service) Submit(ctx context.Context, req *domain.CreateResponseRequest) (*RegistrationResult, error) {
	if _, err := s.users.Get(ctx, req.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "User not found")
		}
		return nil, err
	}
	if _, err := s.programmes.Get(ctx, req.ProgrammeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "Programme not found")
		}
		return nil, err
	}

	existing, err := s.registrations.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	for _, reg := range existing {
		if reg.ProgrammeID == req.ProgrammeID {
			return nil, domain.E(domain.ErrConflict, "User already registered for this programme")
		}
	}

	createdAt := s.now().UTC()
	reg := domain.Registration{
		RegistrationID: id.New(),
		UserID:         req.UserID,
		ProgrammeID:    req.ProgrammeID,
		CreatedAt:      createdAt,
	}
	if err := s.registrations.Put(ctx, &reg); err != nil {
		return nil, err
	}

	answers := make([]domain.Response, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, domain.Response{
			ResponseID:     id.New(),
			RegistrationID: reg.RegistrationID,
			FieldID:        a.FieldID,
			Answer:         a.Answer,
			CreatedAt:      createdAt,
		})
	}
	if err := s.responses.PutBatch(ctx, answers); err != nil {
		if delErr := s.registrations.Delete(ctx, reg.RegistrationID); delErr != nil {
			slog.Error("could not roll back registration after answer write failure",
				"registration_id", reg.RegistrationID, "err", delErr)
		}
		return nil, err
	}

	return &RegistrationResult{Registration: reg, Answers: answers}, nil
}

func (s *service) GetRegistration(ctx context.Context, registrationID string) (*RegistrationResult, error) {
	reg, err := s.registrations.Get(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "Registration not found")
		}
		return nil, err
	}
	answers, err := s.responses.ListByRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	return &RegistrationResult{Registration: *reg, Answers: answers}, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	return s.registrations.ListByUser(ctx, userID)
}
