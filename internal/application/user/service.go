package user

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/id"
	"github.com/urep/registration-api/internal/pkg/phone"
)

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByNIN(ctx context.Context, nin string) (*domain.User, error)
}

// AdminRepository is the persistence contract for back-office accounts.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

// ProgramInfoRepository persists the expectations questionnaire.
type ProgramInfoRepository interface {
	Put(ctx context.Context, info *domain.ProgramInfo) error
}

// TokenSigner issues signed bearer tokens.
type TokenSigner interface {
	Sign(userID, email, role string) (string, error)
}

// AuthResult is the response of a successful signup or login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

type Service interface {
	Signup(ctx context.Context, req *domain.CreateUserRequest) (*AuthResult, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*AuthResult, error)
	AdminLogin(ctx context.Context, req *domain.LoginRequest) (*AuthResult, error)
	SaveProgramInfo(ctx context.Context, userID string, req *domain.ProgramInfoRequest) (*domain.ProgramInfo, error)
}

type service struct {
	users       UserRepository
	admins      AdminRepository
	programInfo ProgramInfoRepository
	signer      TokenSigner
	countryCode string
	now         func() time.Time
}

func NewService(users UserRepository, admins AdminRepository, programInfo ProgramInfoRepository, signer TokenSigner, countryCode string) Service {
	return &service{
		users:       users,
		admins:      admins,
		programInfo: programInfo,
		signer:      signer,
		countryCode: countryCode,
		now:         time.Now,
	}
}

func (s *service) Signup(ctx context.Context, req *domain.CreateUserRequest) (*AuthResult, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.E(domain.ErrConflict, "User with Email Exists")
	}

	existing, err = s.users.GetByNIN(ctx, req.NIN)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.E(domain.ErrConflict, "User with NIN Exists")
	}

	normalized, err := phone.Normalize(req.Phone, s.countryCode)
	if err != nil {
		return nil, domain.E(domain.ErrBadRequest, "Invalid phone number")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		UserID:       id.New(),
		Organisation: req.Organisation,
		NIN:          req.NIN,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        normalized,
		DOB:          req.DOB,
		Gender:       req.Gender,
		State:        req.State,
		LGA:          req.LGA,
		Terms:        req.Terms,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.signer.Sign(u.UserID, u.Email, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, req *domain.LoginRequest) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "User not found")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.E(domain.ErrUnauthorized, "Invalid password")
	}
	token, err := s.signer.Sign(u.UserID, u.Email, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) AdminLogin(ctx context.Context, req *domain.LoginRequest) (*AuthResult, error) {
	a, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "Admin not found")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.E(domain.ErrUnauthorized, "Invalid password")
	}
	token, err := s.signer.Sign(a.AdminID, a.Email, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token}, nil
}

func (s *service) SaveProgramInfo(ctx context.Context, userID string, req *domain.ProgramInfoRequest) (*domain.ProgramInfo, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "User not found")
		}
		return nil, err
	}
	info := &domain.ProgramInfo{
		InfoID:               id.New(),
		UserID:               userID,
		Programme:            req.Programme,
		Expectations:         req.Expectations,
		Knowledge:            req.Knowledge,
		Organization:         req.Organization,
		SimilarParticipation: req.SimilarParticipation,
		PreviousFMYD:         req.PreviousFMYD,
	}
	if err := s.programInfo.Put(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}
