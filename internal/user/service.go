package user

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, role string) ([]User, error) {
	if role != "" && !validRole(role) {
		return nil, ErrInvalidRole
	}
	return s.repo.List(ctx, role)
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a back-office managed account. The plaintext password is
// hashed before it reaches the repository.
func (s *Service) Create(ctx context.Context, u User) (User, error) {
	if !validRole(u.Role) {
		return User{}, ErrInvalidRole
	}
	if _, err := s.repo.GetByEmail(ctx, u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	now := time.Now().UTC().Format(time.RFC3339)
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.repo.Create(ctx, u)
}

// Update replaces the mutable account fields. An empty password keeps the
// stored hash; a non-empty one is re-hashed.
func (s *Service) Update(ctx context.Context, id int, u User) (User, error) {
	if !validRole(u.Role) {
		return User{}, ErrInvalidRole
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if u.Password == "" {
		u.Password = existing.Password
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		u.Password = string(hashed)
	}

	u.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(ctx, id, u)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Register creates a customer account from the storefront sign-up form.
func (s *Service) Register(ctx context.Context, u User) (User, error) {
	u.Role = RoleCustomer
	return s.Create(ctx, u)
}

// Authenticate checks the email/password pair against the stored bcrypt hash.
// The same error is returned for a missing account and a wrong password so
// the login form cannot be used to probe for registered emails.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}
