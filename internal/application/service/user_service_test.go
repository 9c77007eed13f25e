package service

import (
	"context"
	"sync"
	"testing"

	"github.com/dentwise/dentwise-api/internal/domain/entity"
	"github.com/dentwise/dentwise-api/pkg/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo mirrors the upsert semantics of the real repository: email
// follows the identity provider on every sync, names only on first insert.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) UpsertByExternalID(ctx context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.ExternalID == user.ExternalID {
			existing.Email = user.Email
			clone := *existing
			return &clone, nil
		}
	}
	stored := *user
	stored.ID = uuid.New()
	r.users[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SyncFromClaims(ctx, &identity.Claims{
		ExternalID: "idp_123",
		Email:      "pat@example.com",
	})
	require.NoError(t, err)

	first := "  <b>Pat</b>  "
	phone := "+1 555 0100"
	updated, err := svc.UpdateProfile(ctx, user.ID, &UpdateProfileInput{
		FirstName: &first,
		Phone:     &phone,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Pat", *updated.FirstName, "markup and padding are stripped")
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+1 555 0100", *updated.Phone)
	assert.Nil(t, updated.LastName, "omitted fields stay untouched")

	// The change is persisted, not just echoed.
	stored, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "+1 555 0100", *stored.Phone)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	name := "Pat"
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), &UpdateProfileInput{FirstName: &name})
	require.Error(t, err)
}

func TestSyncKeepsProfileEdits(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SyncFromClaims(ctx, &identity.Claims{
		ExternalID: "idp_123",
		Email:      "pat@example.com",
		FirstName:  "Patricia",
	})
	require.NoError(t, err)

	edited := "Pat"
	_, err = svc.UpdateProfile(ctx, user.ID, &UpdateProfileInput{FirstName: &edited})
	require.NoError(t, err)

	// The next request's sync refreshes email but must not clobber the
	// edited name.
	resynced, err := svc.SyncFromClaims(ctx, &identity.Claims{
		ExternalID: "idp_123",
		Email:      "pat@new-domain.example.com",
		FirstName:  "Patricia",
	})
	require.NoError(t, err)
	assert.Equal(t, "pat@new-domain.example.com", resynced.Email)
	require.NotNil(t, resynced.FirstName)
	assert.Equal(t, "Pat", *resynced.FirstName)
}
