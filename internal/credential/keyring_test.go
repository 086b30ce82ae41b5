package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(keyring.NewArrayKeyring(nil))
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore()

	_, err := s.Session()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.SaveSession(Session{Token: "tok", UserID: "u1"}))

	sess, err := s.Session()
	require.NoError(t, err)
	assert.Equal(t, Session{Token: "tok", UserID: "u1"}, sess)

	require.NoError(t, s.ClearSession())
	_, err = s.Session()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionWithoutUserID(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Set(KeySessionToken, "tok"))

	sess, err := s.Session()
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Empty(t, sess.UserID)
}

func TestSaveSessionRequiresToken(t *testing.T) {
	assert.Error(t, newTestStore().SaveSession(Session{UserID: "u1"}))
}

func TestDeleteMissingKey(t *testing.T) {
	assert.NoError(t, newTestStore().Delete("absent"))
}
