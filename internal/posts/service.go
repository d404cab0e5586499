package posts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/access"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/pagination"
)

// Service composes the visibility policy and the pagination calculator over
// the post store. All operations are request-scoped; the read-check-save
// update path is deliberately untransacted (see DESIGN.md, last-write-wins).
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Title   string
	Content string
}

// Patch carries a partial update; only non-nil fields are applied.
type Patch struct {
	Title   *string
	Content *string
}

func (s *Service) Create(ctx context.Context, actorID uuid.UUID, in CreateInput) (*Post, error) {
	p := &Post{
		ID:       uuid.New(),
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: actorID,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.repo.FindVisibleByID(ctx, id)
}

// List returns one page of visible posts, newest first, optionally scoped to
// a single author.
func (s *Service) List(ctx context.Context, authorID *uuid.UUID, params pagination.Params) (pagination.Pagination, []Post, error) {
	total, err := s.repo.CountVisible(ctx, authorID)
	if err != nil {
		return pagination.Pagination{}, nil, err
	}
	items, err := s.repo.ListVisible(ctx, authorID, params.Offset(), params.Limit)
	if err != nil {
		return pagination.Pagination{}, nil, err
	}
	return pagination.Compute(params.Page, params.Limit, int(total)), items, nil
}

// Update applies a partial edit if the actor owns the post. A missing or
// soft-deleted post reports not found before ownership is ever considered.
func (s *Service) Update(ctx context.Context, id, actorID uuid.UUID, patch Patch) (*Post, error) {
	p, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// the row is active here; CanMutate arbitrates ownership and keeps the
	// not-found-before-forbidden ordering in one place
	if err := access.CanMutate(p.IsActive, p.AuthorID, actorID); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	p.LastEdited = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SoftDelete clears IsActive if the actor owns the post. Comments are not
// cascaded. Repeating the delete reports not found.
func (s *Service) SoftDelete(ctx context.Context, id, actorID uuid.UUID) error {
	p, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}
	// active row here as well; see Update
	if err := access.CanMutate(p.IsActive, p.AuthorID, actorID); err != nil {
		return err
	}

	p.IsActive = false
	return s.repo.Update(ctx, p)
}
