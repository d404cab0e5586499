package users

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/pagination"
)

// fakeRepo is an in-memory Repository. Like the real store it enforces
// userName uniqueness across active and inactive rows.
type fakeRepo struct {
	users map[uuid.UUID]*User
	seq   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*User)}
}

func (f *fakeRepo) nameTaken(name string, except uuid.UUID) bool {
	for _, u := range f.users {
		if u.UserName == name && u.ID != except {
			return true
		}
	}
	return false
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	if f.nameTaken(u.UserName, u.ID) {
		return apperrors.ErrConflict
	}
	cp := *u
	f.seq++
	cp.CreatedAt = cp.CreatedAt.AddDate(0, 0, f.seq) // distinct, increasing
	*u = cp
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.users[id]
	if !ok || !u.IsActive {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindActiveByUserName(_ context.Context, name string) (*User, error) {
	for _, u := range f.users {
		if u.UserName == name && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ListActive(_ context.Context, offset, limit int) ([]User, error) {
	var all []User
	for _, u := range f.users {
		if u.IsActive {
			all = append(all, *u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperrors.ErrNotFound
	}
	if f.nameTaken(u.UserName, u.ID) {
		return apperrors.ErrConflict
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

// outageRepo simulates a store failure on the login lookup.
type outageRepo struct {
	*fakeRepo
	err error
}

func (f *outageRepo) FindActiveByUserName(context.Context, string) (*User, error) {
	return nil, f.err
}

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 4) // low bcrypt cost to keep tests fast
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		UserName:    "firstuser",
		Password:    "a long enough password",
		DisplayName: "First",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "a long enough password", u.PasswordHash)
	assert.True(t, CheckPassword(u.PasswordHash, "a long enough password"))

	t.Run("duplicate userName conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{UserName: "firstuser", Password: "another password here"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("name of a deactivated account stays reserved", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(ctx, u.ID))
		_, err := svc.Register(ctx, RegisterInput{UserName: "firstuser", Password: "another password here"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 4)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{UserName: "loginuser", Password: "correct horse battery"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "loginuser", "correct horse battery")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "loginuser", "wrong password entirely")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("unknown user yields the same error", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody-here", "correct horse battery")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(ctx, u.ID))
		_, err := svc.Authenticate(ctx, "loginuser", "correct horse battery")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("store failure is not a credential failure", func(t *testing.T) {
		storeErr := errors.New("dial tcp 10.0.0.3:5432: connect: connection refused")
		broken := NewService(&outageRepo{fakeRepo: repo, err: storeErr}, 4)

		_, err := broken.Authenticate(ctx, "loginuser", "correct horse battery")
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrUnauthenticated)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 4)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{UserName: "patchuser", Password: "some long password", DisplayName: "Before"})
	require.NoError(t, err)

	t.Run("only provided fields change", func(t *testing.T) {
		got, err := svc.UpdateProfile(ctx, u.ID, ProfilePatch{DisplayName: strPtr("After")})
		require.NoError(t, err)
		assert.Equal(t, "After", got.DisplayName)
		assert.Equal(t, "patchuser", got.UserName)
		assert.True(t, CheckPassword(got.PasswordHash, "some long password"))
		assert.False(t, got.LastEdited.IsZero())
	})

	t.Run("username change to a taken name conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{UserName: "otheruser", Password: "some long password"})
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, u.ID, ProfilePatch{UserName: strPtr("otheruser")})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("deactivated account cannot be patched", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(ctx, u.ID))
		_, err := svc.UpdateProfile(ctx, u.ID, ProfilePatch{DisplayName: strPtr("Ghost")})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestDeactivate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 4)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{UserName: "deleteuser", Password: "some long password"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, u.ID))

	t.Run("gone from reads", func(t *testing.T) {
		_, err := svc.GetByID(ctx, u.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		_, err = svc.GetByUserName(ctx, "deleteuser")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("repeat delete is not found, not a second success", func(t *testing.T) {
		assert.ErrorIs(t, svc.Deactivate(ctx, u.ID), apperrors.ErrNotFound)
	})
}

func TestList(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 4)
	ctx := context.Background()

	ids := make([]uuid.UUID, 0, 5)
	for _, name := range []string{"user-one", "user-two", "user-three", "user-four", "user-five"} {
		u, err := svc.Register(ctx, RegisterInput{UserName: name, Password: "some long password"})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	t.Run("count and items agree after a deactivation", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(ctx, ids[0]))

		pg, items, err := svc.List(ctx, pagination.Params{Page: 1, Limit: 3})
		require.NoError(t, err)
		assert.Len(t, items, 3)
		require.NotNil(t, pg.Next)
		assert.Equal(t, 2, pg.Next.Page)

		pg, items, err = svc.List(ctx, pagination.Params{Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.Len(t, items, 1) // 4 active users total
		require.NotNil(t, pg.Previous)
		assert.Nil(t, pg.Next)
	})
}
