package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingField       = errors.New("required field missing")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Verify checks an email/password pair against the stored hash. Unknown
// email and wrong password return the same error so callers cannot leak
// which one failed. Account status is deliberately not gated here: a
// suspended account still authenticates, and the session snapshot carries
// its status for up to the full session lifetime.
func (s *Service) Verify(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

type CreateInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Batch       string `json:"batch"`
	Phone       string `json:"phone"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" || in.DisplayName == "" {
		return nil, ErrMissingField
	}
	if in.Role == "" {
		in.Role = RoleUser
	}
	if !ValidRole(in.Role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		Role:         in.Role,
		Status:       StatusActive,
		Batch:        in.Batch,
		Phone:        in.Phone,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
