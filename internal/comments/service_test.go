package comments

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/pagination"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/posts"
)

// fakePostRepo implements posts.Repository; the comment service only uses the
// active lookup, the rest exists to satisfy the interface.
type fakePostRepo struct {
	rows map[uuid.UUID]*posts.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{rows: make(map[uuid.UUID]*posts.Post)}
}

func (f *fakePostRepo) addPost(active bool) uuid.UUID {
	id := uuid.New()
	f.rows[id] = &posts.Post{ID: id, AuthorID: uuid.New(), IsActive: active}
	return id
}

func (f *fakePostRepo) Create(_ context.Context, p *posts.Post) error {
	f.rows[p.ID] = p
	return nil
}

func (f *fakePostRepo) FindVisibleByID(ctx context.Context, id uuid.UUID) (*posts.Post, error) {
	return f.FindActiveByID(ctx, id)
}

func (f *fakePostRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*posts.Post, error) {
	p, ok := f.rows[id]
	if !ok || !p.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

func (f *fakePostRepo) CountVisible(context.Context, *uuid.UUID) (int64, error) { return 0, nil }

func (f *fakePostRepo) ListVisible(context.Context, *uuid.UUID, int, int) ([]posts.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) Update(_ context.Context, p *posts.Post) error {
	f.rows[p.ID] = p
	return nil
}

// fakeRepo is an in-memory comment Repository with the full visibility rule:
// comment, parent post, and author all active.
type fakeRepo struct {
	comments map[uuid.UUID]*Comment
	postRepo *fakePostRepo
	authors  map[uuid.UUID]bool
	seq      int
}

func newFakeRepo(postRepo *fakePostRepo) *fakeRepo {
	return &fakeRepo{
		comments: make(map[uuid.UUID]*Comment),
		postRepo: postRepo,
		authors:  make(map[uuid.UUID]bool),
	}
}

func (f *fakeRepo) addAuthor(active bool) uuid.UUID {
	id := uuid.New()
	f.authors[id] = active
	return id
}

func (f *fakeRepo) isVisible(cm *Comment) bool {
	if !cm.IsActive || !f.authors[cm.AuthorID] {
		return false
	}
	p, ok := f.postRepo.rows[cm.PostID]
	return ok && p.IsActive
}

func (f *fakeRepo) Create(_ context.Context, cm *Comment) error {
	f.seq++
	cm.CreatedAt = time.Unix(int64(f.seq), 0)
	cp := *cm
	f.comments[cm.ID] = &cp
	return nil
}

func (f *fakeRepo) FindVisibleByID(_ context.Context, id uuid.UUID) (*Comment, error) {
	cm, ok := f.comments[id]
	if !ok || !f.isVisible(cm) {
		return nil, apperrors.ErrNotFound
	}
	cp := *cm
	return &cp, nil
}

func (f *fakeRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*Comment, error) {
	cm, ok := f.comments[id]
	if !ok || !cm.IsActive {
		return nil, apperrors.ErrNotFound
	}
	cp := *cm
	return &cp, nil
}

func (f *fakeRepo) visibleSorted(postID uuid.UUID) []Comment {
	var all []Comment
	for _, cm := range f.comments {
		if cm.PostID == postID && f.isVisible(cm) {
			all = append(all, *cm)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all
}

func (f *fakeRepo) CountVisibleForPost(_ context.Context, postID uuid.UUID) (int64, error) {
	return int64(len(f.visibleSorted(postID))), nil
}

func (f *fakeRepo) ListVisibleForPost(_ context.Context, postID uuid.UUID, offset, limit int) ([]Comment, error) {
	all := f.visibleSorted(postID)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeRepo) Update(_ context.Context, cm *Comment) error {
	if _, ok := f.comments[cm.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *cm
	f.comments[cm.ID] = &cp
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakePostRepo) {
	postRepo := newFakePostRepo()
	repo := newFakeRepo(postRepo)
	return NewService(repo, postRepo), repo, postRepo
}

func TestCreateRoundTrip(t *testing.T) {
	svc, repo, postRepo := newTestService()
	ctx := context.Background()

	postID := postRepo.addPost(true)
	author := repo.addAuthor(true)

	cm, err := svc.Create(ctx, author, postID, "nice post")
	require.NoError(t, err)

	got, err := svc.Get(ctx, cm.ID)
	require.NoError(t, err)
	assert.Equal(t, cm.Content, got.Content)
	assert.Equal(t, cm.PostID, got.PostID)
	assert.Equal(t, cm.AuthorID, got.AuthorID)

	t.Run("deactivated commenter hides the fetch too", func(t *testing.T) {
		repo.authors[author] = false
		_, err := svc.Get(ctx, cm.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		repo.authors[author] = true
	})

	t.Run("soft-deleted post hides the fetch", func(t *testing.T) {
		postRepo.rows[postID].IsActive = false
		_, err := svc.Get(ctx, cm.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCreateOnHiddenPost(t *testing.T) {
	svc, repo, postRepo := newTestService()
	ctx := context.Background()
	author := repo.addAuthor(true)

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.Create(ctx, author, uuid.New(), "hello")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("soft-deleted post", func(t *testing.T) {
		postID := postRepo.addPost(false)
		_, err := svc.Create(ctx, author, postID, "hello")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestListForPost(t *testing.T) {
	svc, repo, postRepo := newTestService()
	ctx := context.Background()

	postID := postRepo.addPost(true)
	author := repo.addAuthor(true)

	var last *Comment
	for i := 0; i < 5; i++ {
		cm, err := svc.Create(ctx, author, postID, "comment")
		require.NoError(t, err)
		last = cm
	}

	t.Run("newest first with pagination", func(t *testing.T) {
		pg, items, err := svc.ListForPost(ctx, postID, pagination.Params{Page: 1, Limit: 3})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, last.ID, items[0].ID)
		require.NotNil(t, pg.Next)
		assert.Equal(t, 2, pg.Next.Page)
		assert.Nil(t, pg.Previous)
	})

	t.Run("deleted comment drops out", func(t *testing.T) {
		require.NoError(t, svc.SoftDelete(ctx, last.ID, author))
		_, items, err := svc.ListForPost(ctx, postID, pagination.Params{Page: 1, Limit: 15})
		require.NoError(t, err)
		assert.Len(t, items, 4)
	})

	t.Run("deactivated commenter drops out", func(t *testing.T) {
		repo.authors[author] = false
		_, items, err := svc.ListForPost(ctx, postID, pagination.Params{Page: 1, Limit: 15})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("listing under a soft-deleted post is not found", func(t *testing.T) {
		postRepo.rows[postID].IsActive = false
		_, _, err := svc.ListForPost(ctx, postID, pagination.Params{Page: 1, Limit: 15})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestUpdateOwnership(t *testing.T) {
	svc, repo, postRepo := newTestService()
	ctx := context.Background()

	postID := postRepo.addPost(true)
	owner := repo.addAuthor(true)
	stranger := repo.addAuthor(true)

	cm, err := svc.Create(ctx, owner, postID, "original")
	require.NoError(t, err)

	t.Run("owner edits", func(t *testing.T) {
		got, err := svc.Update(ctx, cm.ID, owner, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Content)
		assert.False(t, got.LastEdited.IsZero())
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, cm.ID, stranger, "hijacked")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestSoftDeleteIdempotence(t *testing.T) {
	svc, repo, postRepo := newTestService()
	ctx := context.Background()

	postID := postRepo.addPost(true)
	owner := repo.addAuthor(true)

	cm, err := svc.Create(ctx, owner, postID, "short-lived")
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, cm.ID, owner))
	assert.ErrorIs(t, svc.SoftDelete(ctx, cm.ID, owner), apperrors.ErrNotFound)

	_, err = svc.Get(ctx, cm.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
