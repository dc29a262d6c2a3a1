package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek4576/mytodoapp/internal/user"
	"github.com/prateek4576/mytodoapp/internal/user/usertest"
)

func TestSerializer_RoundTrip(t *testing.T) {
	store := usertest.NewStore()
	hash := "hash"
	u := user.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: &hash, CreatedAt: time.Now()}
	store.Seed(u)

	s := NewSerializer(store)

	token := s.Serialize(&u)
	assert.Equal(t, u.ID.String(), token)

	got, err := s.Deserialize(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)
}

func TestSerializer_Deserialize_DeletedUser(t *testing.T) {
	store := usertest.NewStore()
	u := user.User{ID: uuid.New(), Email: "a@x.com"}
	store.Seed(u)

	s := NewSerializer(store)
	token := s.Serialize(&u)

	require.NoError(t, store.Delete(context.Background(), u.ID))

	_, err := s.Deserialize(context.Background(), token)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestSerializer_Deserialize_MalformedToken(t *testing.T) {
	s := NewSerializer(usertest.NewStore())

	_, err := s.Deserialize(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, user.ErrNotFound)
}
