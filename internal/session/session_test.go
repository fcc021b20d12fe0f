package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/growth-tracker/internal/localstore"
	"github.com/khoahotran/growth-tracker/internal/remote"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		w.Header().Set("Content-Type", "application/json")
		if c.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "message": "invalid email or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(Session{AccessToken: "tok-" + r.URL.Path, UserID: "user-1", Email: c.Email})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProvider_SignInPersistsAndNotifies(t *testing.T) {
	srv := authServer(t)
	store := localstore.NewMemoryStore()
	p := NewHTTPProvider(srv.URL, store, logger.NewNopLogger(), time.Second)
	ctx := context.Background()

	s, err := p.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Empty(t, p.Token())

	var mu sync.Mutex
	var seen []*Session
	sub := p.OnSessionChange(func(s *Session) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	require.NoError(t, p.SignIn(ctx, "ada@example.com", "secret"))
	assert.Equal(t, "tok-/auth/login", p.Token())

	s, err = p.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "user-1", s.UserID)

	// A fresh provider over the same store restores the session.
	restored := NewHTTPProvider(srv.URL, store, logger.NewNopLogger(), time.Second)
	rs, err := restored.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, rs)

	p.SignOut(ctx)
	assert.Empty(t, p.Token())
	_, err = store.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, localstore.ErrNotFound)

	sub.Unsubscribe()
	require.NoError(t, p.SignUp(ctx, "ada@example.com", "secret"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, "user-1", seen[0].GetUserID())
	assert.Nil(t, seen[1])
}

func TestHTTPProvider_RejectedCredentials(t *testing.T) {
	srv := authServer(t)
	p := NewHTTPProvider(srv.URL, localstore.NewMemoryStore(), logger.NewNopLogger(), time.Second)

	err := p.SignIn(context.Background(), "ada@example.com", "wrong")

	var re *remote.Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusUnauthorized, re.StatusCode)
	assert.Equal(t, "invalid email or password", re.Message)
	assert.Empty(t, p.Token())

	assert.ErrorIs(t, p.SignIn(context.Background(), "", ""), ErrInvalidCredentials)
}

type stubProvider struct {
	delay time.Duration
	s     *Session
	err   error
}

func (p stubProvider) GetSession(ctx context.Context) (*Session, error) {
	select {
	case <-time.After(p.delay):
		return p.s, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
func (stubProvider) SignUp(context.Context, string, string) error { return nil }
func (stubProvider) SignIn(context.Context, string, string) error { return nil }
func (stubProvider) SignOut(context.Context)                      {}
func (stubProvider) OnSessionChange(func(*Session)) Subscription  { return &subscription{cancel: func() {}} }

func TestResolve(t *testing.T) {
	log := logger.NewNopLogger()
	want := &Session{UserID: "user-1", AccessToken: "tok"}

	t.Run("answers in time", func(t *testing.T) {
		r := Resolve(context.Background(), stubProvider{s: want}, time.Second, log)
		assert.True(t, r.Online)
		assert.Equal(t, want, r.Session)
	})

	t.Run("no session is still online", func(t *testing.T) {
		r := Resolve(context.Background(), stubProvider{}, time.Second, log)
		assert.True(t, r.Online)
		assert.Nil(t, r.Session)
	})

	t.Run("timeout degrades to offline", func(t *testing.T) {
		start := time.Now()
		r := Resolve(context.Background(), stubProvider{delay: time.Minute, s: want}, 20*time.Millisecond, log)
		assert.False(t, r.Online)
		assert.Nil(t, r.Session)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("error degrades to offline", func(t *testing.T) {
		r := Resolve(context.Background(), stubProvider{err: errors.New("boom")}, time.Second, log)
		assert.False(t, r.Online)
	})
}
