package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
)

// Repository is the store surface the user service needs. The gorm
// implementation below is the production one; tests plug in an in-memory fake.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindActiveByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindActiveByUserName(ctx context.Context, name string) (*User, error)
	CountActive(ctx context.Context) (int64, error)
	ListActive(ctx context.Context, offset, limit int) ([]User, error)
	Update(ctx context.Context, u *User) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, u *User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *gormRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

func (r *gormRepository) FindActiveByUserName(ctx context.Context, name string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("user_name = ? AND is_active = ?", name, true).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user by name: %w", err)
	}
	return &u, nil
}

func (r *gormRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("is_active = ?", true).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *gormRepository) ListActive(ctx context.Context, offset, limit int) ([]User, error) {
	var items []User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}

func (r *gormRepository) Update(ctx context.Context, u *User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
