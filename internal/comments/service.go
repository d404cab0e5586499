package comments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/access"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/pagination"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/posts"
)

// Service gates every comment operation on the parent post's liveness in
// addition to the comment's own visibility rules.
type Service struct {
	repo  Repository
	posts posts.Repository
}

func NewService(repo Repository, postRepo posts.Repository) *Service {
	return &Service{repo: repo, posts: postRepo}
}

// Create adds a comment to an active post. A soft-deleted or missing post
// reports not found.
func (s *Service) Create(ctx context.Context, actorID, postID uuid.UUID, content string) (*Comment, error) {
	if _, err := s.posts.FindActiveByID(ctx, postID); err != nil {
		return nil, err
	}

	cm := &Comment{
		ID:       uuid.New(),
		Content:  content,
		AuthorID: actorID,
		PostID:   postID,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Comment, error) {
	return s.repo.FindVisibleByID(ctx, id)
}

// ListForPost returns one page of visible comments, newest first. The parent
// post must be active; its comments stay in storage when it is deleted but
// never reach a listing.
func (s *Service) ListForPost(ctx context.Context, postID uuid.UUID, params pagination.Params) (pagination.Pagination, []Comment, error) {
	if _, err := s.posts.FindActiveByID(ctx, postID); err != nil {
		return pagination.Pagination{}, nil, err
	}

	total, err := s.repo.CountVisibleForPost(ctx, postID)
	if err != nil {
		return pagination.Pagination{}, nil, err
	}
	items, err := s.repo.ListVisibleForPost(ctx, postID, params.Offset(), params.Limit)
	if err != nil {
		return pagination.Pagination{}, nil, err
	}
	return pagination.Compute(params.Page, params.Limit, int(total)), items, nil
}

// Update replaces the content if the actor owns the comment.
func (s *Service) Update(ctx context.Context, id, actorID uuid.UUID, content string) (*Comment, error) {
	cm, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// the row is active here; CanMutate arbitrates ownership and keeps the
	// not-found-before-forbidden ordering in one place
	if err := access.CanMutate(cm.IsActive, cm.AuthorID, actorID); err != nil {
		return nil, err
	}

	cm.Content = content
	cm.LastEdited = time.Now()

	if err := s.repo.Update(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// SoftDelete clears IsActive if the actor owns the comment; repeating the
// delete reports not found.
func (s *Service) SoftDelete(ctx context.Context, id, actorID uuid.UUID) error {
	cm, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}
	// active row here as well; see Update
	if err := access.CanMutate(cm.IsActive, cm.AuthorID, actorID); err != nil {
		return err
	}

	cm.IsActive = false
	return s.repo.Update(ctx, cm)
}
