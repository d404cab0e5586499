package comments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
)

// Repository mirrors the post repository split: visible reads join the parent
// post and the author and require all rows active; the active path is for the
// mutation check only.
type Repository interface {
	Create(ctx context.Context, cm *Comment) error
	FindVisibleByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	CountVisibleForPost(ctx context.Context, postID uuid.UUID) (int64, error)
	ListVisibleForPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]Comment, error)
	Update(ctx context.Context, cm *Comment) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, cm *Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(cm).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *gormRepository) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN posts ON posts.id = comments.post_id AND posts.is_active = ?", true).
		Joins("JOIN users ON users.id = comments.author_id AND users.is_active = ?", true).
		Where("comments.is_active = ?", true)
}

func (r *gormRepository) FindVisibleByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var cm Comment
	err := r.visible(ctx).
		Preload("Author").
		Where("comments.id = ?", id).
		First(&cm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &cm, nil
}

func (r *gormRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var cm Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&cm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &cm, nil
}

func (r *gormRepository) CountVisibleForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var n int64
	err := r.visible(ctx).Model(&Comment{}).
		Where("comments.post_id = ?", postID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

func (r *gormRepository) ListVisibleForPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]Comment, error) {
	var items []Comment
	err := r.visible(ctx).
		Preload("Author").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return items, nil
}

func (r *gormRepository) Update(ctx context.Context, cm *Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(cm).Error; err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}
