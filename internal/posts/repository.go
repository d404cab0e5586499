package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
)

// Repository separates the two read paths the service needs: the visible
// path (active post by an active author, author row loaded) used by reads,
// and the active path (no author condition) used before mutations, where the
// actor's liveness is already guaranteed by the auth middleware.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	FindVisibleByID(ctx context.Context, id uuid.UUID) (*Post, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Post, error)
	CountVisible(ctx context.Context, authorID *uuid.UUID) (int64, error)
	ListVisible(ctx context.Context, authorID *uuid.UUID, offset, limit int) ([]Post, error)
	Update(ctx context.Context, p *Post) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// visible scopes a query to active posts whose authors are active.
func (r *gormRepository) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = posts.author_id AND users.is_active = ?", true).
		Where("posts.is_active = ?", true)
}

func (r *gormRepository) FindVisibleByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	var p Post
	err := r.visible(ctx).
		Preload("Author").
		Where("posts.id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

func (r *gormRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	var p Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

func (r *gormRepository) CountVisible(ctx context.Context, authorID *uuid.UUID) (int64, error) {
	q := r.visible(ctx).Model(&Post{})
	if authorID != nil {
		q = q.Where("posts.author_id = ?", *authorID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (r *gormRepository) ListVisible(ctx context.Context, authorID *uuid.UUID, offset, limit int) ([]Post, error) {
	q := r.visible(ctx).Preload("Author")
	if authorID != nil {
		q = q.Where("posts.author_id = ?", *authorID)
	}
	var items []Post
	err := q.Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return items, nil
}

func (r *gormRepository) Update(ctx context.Context, p *Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}
