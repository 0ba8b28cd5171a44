package formfield

import (
	"context"
	"errors"
	"time"

	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/id"
)

// Repository is the persistence contract the service needs.
type Repository interface {
	Put(ctx context.Context, f *domain.FormField) error
	Get(ctx context.Context, fieldID string) (*domain.FormField, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]domain.FormField, error)
	Update(ctx context.Context, fieldID string, updates map[string]interface{}) error
	Delete(ctx context.Context, fieldID string) error
}

// ProgrammeGetter checks the parent programme exists before attaching fields.
type ProgrammeGetter interface {
	Get(ctx context.Context, programmeID string) (*domain.Programme, error)
}

type Service interface {
	CreateForm(ctx context.Context, req *domain.CreateFormRequest) ([]domain.FormField, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]domain.FormField, error)
	Update(ctx context.Context, fieldID string, req *domain.UpdateFormFieldRequest) (*domain.FormField, error)
	Delete(ctx context.Context, fieldID string) error
}

type service struct {
	repo       Repository
	programmes ProgrammeGetter
	now        func() time.Time
}

func NewService(repo Repository, programmes ProgrammeGetter) Service {
	return &service{repo: repo, programmes: programmes, now: time.Now}
}

func (s *service) CreateForm(ctx context.Context, req *domain.CreateFormRequest) ([]domain.FormField, error) {
	if _, err := s.programmes.Get(ctx, req.ProgrammeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "Programme not found")
		}
		return nil, err
	}

	fields := make([]domain.FormField, 0, len(req.Fields))
	for _, fr := range req.Fields {
		f := domain.FormField{
			FieldID:     id.New(),
			ProgrammeID: req.ProgrammeID,
			Label:       fr.Label,
			Type:        fr.Type,
			Required:    fr.Required,
			Options:     fr.Options,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.repo.Put(ctx, &f); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (s *service) ListByProgramme(ctx context.Context, programmeID string) ([]domain.FormField, error) {
	return s.repo.ListByProgramme(ctx, programmeID)
}

func (s *service) Update(ctx context.Context, fieldID string, req *domain.UpdateFormFieldRequest) (*domain.FormField, error) {
	if _, err := s.repo.Get(ctx, fieldID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "Form field not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Required != nil {
		updates["required"] = *req.Required
	}
	if req.Options != nil {
		updates["options"] = *req.Options
	}
	if len(updates) == 0 {
		return nil, domain.E(domain.ErrBadRequest, "No fields to update")
	}

	if err := s.repo.Update(ctx, fieldID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, fieldID)
}

func (s *service) Delete(ctx context.Context, fieldID string) error {
	if _, err := s.repo.Get(ctx, fieldID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.E(domain.ErrNotFound, "Form field not found")
		}
		return err
	}
	return s.repo.Delete(ctx, fieldID)
}
