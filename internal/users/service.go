package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/pagination"
)

// Service owns account lifecycle: registration, self-service profile updates,
// soft deletion, and the lookups the rest of the system needs.
type Service struct {
	repo       Repository
	bcryptCost int
}

func NewService(repo Repository, bcryptCost int) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

type RegisterInput struct {
	UserName    string
	Password    string
	DisplayName string
}

// ProfilePatch carries a partial update; only non-nil fields are applied.
type ProfilePatch struct {
	DisplayName *string
	Password    *string
	UserName    *string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		UserName:     in.UserName,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks credentials for login. Unknown names and wrong
// passwords are indistinguishable to the caller; store failures keep their
// identity so they surface as 500, not 401.
func (s *Service) Authenticate(ctx context.Context, userName, password string) (*User, error) {
	u, err := s.repo.FindActiveByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, apperrors.ErrUnauthenticated
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindActiveByID(ctx, id)
}

func (s *Service) GetByUserName(ctx context.Context, name string) (*User, error) {
	return s.repo.FindActiveByUserName(ctx, name)
}

// List returns one page of active accounts, newest first. Count and listing
// apply the same visibility filter so trailing pages are never empty.
func (s *Service) List(ctx context.Context, params pagination.Params) (pagination.Pagination, []User, error) {
	total, err := s.repo.CountActive(ctx)
	if err != nil {
		return pagination.Pagination{}, nil, err
	}
	items, err := s.repo.ListActive(ctx, params.Offset(), params.Limit)
	if err != nil {
		return pagination.Pagination{}, nil, err
	}
	return pagination.Compute(params.Page, params.Limit, int(total)), items, nil
}

// UpdateProfile applies a partial self-service update and stamps LastEdited.
func (s *Service) UpdateProfile(ctx context.Context, actorID uuid.UUID, patch ProfilePatch) (*User, error) {
	u, err := s.repo.FindActiveByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if patch.DisplayName != nil {
		u.DisplayName = *patch.DisplayName
	}
	if patch.UserName != nil {
		u.UserName = *patch.UserName
	}
	if patch.Password != nil {
		hash, err := HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	u.LastEdited = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Deactivate soft-deletes the actor's own account. Deactivating an already
// inactive account reports not found, not a second success.
func (s *Service) Deactivate(ctx context.Context, actorID uuid.UUID) error {
	u, err := s.repo.FindActiveByID(ctx, actorID)
	if err != nil {
		return err
	}
	u.IsActive = false
	return s.repo.Update(ctx, u)
}
