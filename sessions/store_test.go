package sessions_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/sessions"
	"github.com/jrsteele09/recyclemate/sessions/memstore"
	"github.com/jrsteele09/recyclemate/users"
	"github.com/stretchr/testify/require"
)

func testSession() sessions.Session {
	return sessions.Session{
		Token: "abc",
		Role:  users.RoleUser,
		User:  json.RawMessage(`{"id":"u1","name":"Jane Smith"}`),
	}
}

func TestStore_SetGetClear(t *testing.T) {
	storage := memstore.New()
	store := sessions.NewStore(storage)

	_, err := store.Get()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)

	require.NoError(t, store.Set(testSession()))
	require.Equal(t, 3, storage.Len())

	got, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, "abc", got.Token)
	require.Equal(t, users.RoleUser, got.Role)
	require.JSONEq(t, `{"id":"u1","name":"Jane Smith"}`, string(got.User))

	require.NoError(t, store.Clear())
	require.Equal(t, 0, storage.Len())
	_, err = store.Get()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)

	// Clearing an empty store is a no-op
	require.NoError(t, store.Clear())
}

func TestStore_PartialSessionIsNoSession(t *testing.T) {
	tests := map[string]map[string]string{
		"token only":        {sessions.KeyToken: "abc"},
		"role only":         {sessions.KeyRole: "admin"},
		"missing role":      {sessions.KeyToken: "abc", sessions.KeyUser: `{"id":"u1"}`},
		"missing user":      {sessions.KeyToken: "abc", sessions.KeyRole: "admin"},
		"null user":         {sessions.KeyToken: "abc", sessions.KeyUser: "null", sessions.KeyRole: "admin"},
		"empty token value": {sessions.KeyToken: "", sessions.KeyUser: `{"id":"u1"}`, sessions.KeyRole: "admin"},
	}

	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			storage := memstore.New()
			require.NoError(t, storage.SetAll(values))

			_, err := sessions.NewStore(storage).Get()
			require.ErrorIs(t, err, errors.ErrSessionNotFound)
		})
	}
}

func TestStore_UnrecognisedRoleIsKept(t *testing.T) {
	storage := memstore.New()
	require.NoError(t, storage.SetAll(map[string]string{
		sessions.KeyToken: "abc",
		sessions.KeyUser:  `{"id":"u1"}`,
		sessions.KeyRole:  "moderator",
	}))

	got, err := sessions.NewStore(storage).Get()
	require.NoError(t, err)
	require.Equal(t, users.Role("moderator"), got.Role)
	require.False(t, got.Role.Valid())
}

func TestStore_SetRejectsIncompleteSession(t *testing.T) {
	store := memstore.NewRepo()

	s := testSession()
	s.Token = ""
	require.Error(t, store.Set(s))

	s = testSession()
	s.User = json.RawMessage(`{not json`)
	require.Error(t, store.Set(s))

	_, err := store.Get()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestStore_ConcurrentClear(t *testing.T) {
	store := memstore.NewRepo()
	require.NoError(t, store.Set(testSession()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, store.Clear())
		}()
	}
	wg.Wait()

	_, err := store.Get()
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestSession_Profile(t *testing.T) {
	p, err := testSession().Profile()
	require.NoError(t, err)
	require.Equal(t, "u1", p.ID)
	require.Equal(t, "Jane Smith", p.Name)

	_, err = sessions.Session{Token: "abc"}.Profile()
	require.Error(t, err)
}

func TestSession_ExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	s := testSession()
	s.Token = signed
	got, ok := s.ExpiresAt()
	require.True(t, ok)
	require.True(t, exp.Equal(got))

	_, ok = testSession().ExpiresAt()
	require.False(t, ok, "opaque tokens have no expiry")
}
