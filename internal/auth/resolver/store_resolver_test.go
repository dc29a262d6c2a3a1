package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek4576/mytodoapp/internal/auth"
	"github.com/prateek4576/mytodoapp/internal/logger"
	"github.com/prateek4576/mytodoapp/internal/user"
	"github.com/prateek4576/mytodoapp/internal/user/usertest"
)

func googleIdentity(email string) *auth.Identity {
	return &auth.Identity{
		Provider:       "google",
		ProviderUserID: "google-123",
		Email:          email,
		EmailVerified:  true,
	}
}

func TestStoreResolver_CreatesNewUser(t *testing.T) {
	store := usertest.NewStore()
	r := NewStoreResolver(store, logger.New(0))

	out := r.Resolve(context.Background(), googleIdentity("new@x.com"))
	require.Equal(t, auth.KindSuccess, out.Kind)
	assert.Equal(t, "new@x.com", out.Principal.Email)
	assert.Nil(t, out.Principal.PasswordHash)
	require.NotNil(t, out.Principal.GoogleID)
	assert.Equal(t, "google-123", *out.Principal.GoogleID)
}

func TestStoreResolver_IdempotentLinking(t *testing.T) {
	store := usertest.NewStore()
	r := NewStoreResolver(store, logger.New(0))

	first := r.Resolve(context.Background(), googleIdentity("new@x.com"))
	require.Equal(t, auth.KindSuccess, first.Kind)

	second := r.Resolve(context.Background(), googleIdentity("new@x.com"))
	require.Equal(t, auth.KindSuccess, second.Kind)

	assert.Equal(t, first.Principal.ID, second.Principal.ID)
	assert.Equal(t, 1, store.Len())
}

func TestStoreResolver_LinksPasswordAccount(t *testing.T) {
	store := usertest.NewStore()
	hash := "hash"
	existing := user.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: &hash}
	store.Seed(existing)

	r := NewStoreResolver(store, logger.New(0))

	out := r.Resolve(context.Background(), googleIdentity("a@x.com"))
	require.Equal(t, auth.KindSuccess, out.Kind)
	assert.Equal(t, existing.ID, out.Principal.ID)
	require.NotNil(t, out.Principal.GoogleID)
	assert.Equal(t, "google-123", *out.Principal.GoogleID)
	require.NotNil(t, out.Principal.PasswordHash)
	assert.Equal(t, 1, store.Len())
}

func TestStoreResolver_ConcurrentFirstSignup(t *testing.T) {
	store := usertest.NewStore()
	r := NewStoreResolver(store, logger.New(0))

	const callers = 2
	outcomes := make([]auth.Outcome, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = r.Resolve(context.Background(), googleIdentity("race@x.com"))
		}(i)
	}
	wg.Wait()

	require.Equal(t, auth.KindSuccess, outcomes[0].Kind)
	require.Equal(t, auth.KindSuccess, outcomes[1].Kind)
	assert.Equal(t, outcomes[0].Principal.ID, outcomes[1].Principal.ID)
	assert.Equal(t, 1, store.Len())
}

func TestStoreResolver_StoreError(t *testing.T) {
	store := usertest.NewStore()
	store.Err = errors.New("connection refused")

	r := NewStoreResolver(store, logger.New(0))

	out := r.Resolve(context.Background(), googleIdentity("a@x.com"))
	require.Equal(t, auth.KindError, out.Kind)
	assert.ErrorContains(t, out.Err, "connection refused")
}

func TestStoreResolver_NilIdentity(t *testing.T) {
	r := NewStoreResolver(usertest.NewStore(), logger.New(0))

	out := r.Resolve(context.Background(), nil)
	assert.Equal(t, auth.KindError, out.Kind)
}
