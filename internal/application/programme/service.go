package programme

import (
	"context"
	"errors"
	"time"

	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/id"
)

// Repository is the persistence contract the service needs.
type Repository interface {
	Put(ctx context.Context, p *domain.Programme) error
	Get(ctx context.Context, programmeID string) (*domain.Programme, error)
	GetByName(ctx context.Context, name string) (*domain.Programme, error)
	Scan(ctx context.Context) ([]domain.Programme, error)
	Update(ctx context.Context, programmeID string, updates map[string]interface{}) error
	Delete(ctx context.Context, programmeID string) error
}

type Service interface {
	Create(ctx context.Context, req *domain.CreateProgrammeRequest) (*domain.Programme, error)
	List(ctx context.Context) ([]domain.Programme, error)
	ListActive(ctx context.Context) ([]domain.Programme, error)
	Get(ctx context.Context, programmeID string) (*domain.Programme, error)
	Update(ctx context.Context, programmeID string, req *domain.UpdateProgrammeRequest) (*domain.Programme, error)
	Delete(ctx context.Context, programmeID string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, req *domain.CreateProgrammeRequest) (*domain.Programme, error) {
	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.E(domain.ErrConflict, "Programme with this name already exists")
	}

	p := &domain.Programme{
		ProgrammeID:    id.New(),
		Name:           req.Name,
		Description:    req.Description,
		Objectives:     req.Objectives,
		TargetAudience: req.TargetAudience,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       req.IsActive,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]domain.Programme, error) {
	return s.repo.Scan(ctx)
}

// ListActive returns programmes that are flagged active and whose date window
// contains today. Dates are calendar days (YYYY-MM-DD), inclusive on both ends.
func (s *service) ListActive(ctx context.Context) ([]domain.Programme, error) {
	all, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now().UTC().Format("2006-01-02")
	active := make([]domain.Programme, 0, len(all))
	for _, p := range all {
		if p.IsActive && p.StartDate <= today && today <= p.EndDate {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *service) Get(ctx context.Context, programmeID string) (*domain.Programme, error) {
	p, err := s.repo.Get(ctx, programmeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "Programme not found")
		}
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, programmeID string, req *domain.UpdateProgrammeRequest) (*domain.Programme, error) {
	if _, err := s.Get(ctx, programmeID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Objectives != nil {
		updates["objectives"] = *req.Objectives
	}
	if req.TargetAudience != nil {
		updates["target_audience"] = *req.TargetAudience
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil, domain.E(domain.ErrBadRequest, "No fields to update")
	}

	if err := s.repo.Update(ctx, programmeID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, programmeID)
}

func (s *service) Delete(ctx context.Context, programmeID string) error {
	if _, err := s.Get(ctx, programmeID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, programmeID)
}
