package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/internal/localstore"
	"github.com/khoahotran/growth-tracker/internal/remote"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

// StorageKey holds the persisted session in the local store.
const StorageKey = "auth_session"

var (
	ErrInvalidCredentials = errors.New("session: email and password are required")
	errMalformedSession   = errors.New("malformed session response")
)

// HTTPProvider authenticates against the CRUD service and remembers the
// session in the local store across restarts.
type HTTPProvider struct {
	baseURL string
	http    *http.Client
	store   localstore.Store
	logger  logger.Logger

	mu      sync.RWMutex
	current *Session
	loaded  bool

	subsMu sync.Mutex
	subs   map[int]func(*Session)
	nextID int
}

func NewHTTPProvider(baseURL string, store localstore.Store, log logger.Logger, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		logger:  log,
		subs:    make(map[int]func(*Session)),
	}
}

func (p *HTTPProvider) GetSession(ctx context.Context) (*Session, error) {
	p.mu.RLock()
	if p.loaded {
		s := copySession(p.current)
		p.mu.RUnlock()
		return s, nil
	}
	p.mu.RUnlock()

	raw, err := p.store.Get(ctx, StorageKey)
	var s *Session
	switch {
	case errors.Is(err, localstore.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("read stored session: %w", err)
	default:
		var stored Session
		if err := json.Unmarshal(raw, &stored); err != nil {
			p.logger.Warn("Discarding unreadable stored session", zap.Error(err))
		} else if stored.UserID != "" {
			s = &stored
		}
	}

	p.mu.Lock()
	if !p.loaded {
		p.current = s
		p.loaded = true
	}
	out := copySession(p.current)
	p.mu.Unlock()
	return out, nil
}

// Token implements remote.TokenSource.
func (p *HTTPProvider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return ""
	}
	return p.current.AccessToken
}

func (p *HTTPProvider) SignUp(ctx context.Context, email, password string) error {
	return p.authenticate(ctx, "/auth/signup", email, password)
}

func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) error {
	return p.authenticate(ctx, "/auth/login", email, password)
}

func (p *HTTPProvider) SignOut(ctx context.Context) {
	if err := p.store.Delete(ctx, StorageKey); err != nil {
		p.logger.Warn("Failed to clear stored session", zap.Error(err))
	}
	p.set(nil)
}

func (p *HTTPProvider) OnSessionChange(fn func(*Session)) Subscription {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	return &subscription{cancel: func() {
		p.subsMu.Lock()
		delete(p.subs, id)
		p.subsMu.Unlock()
	}}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p *HTTPProvider) authenticate(ctx context.Context, path, email, password string) error {
	if email == "" || password == "" {
		return ErrInvalidCredentials
	}
	payload, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &remote.Error{Method: http.MethodPost, Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return &remote.Error{Method: http.MethodPost, Path: path, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &remote.Error{Method: http.MethodPost, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(body, &e) == nil && (e.Message != "" || e.Error != "") {
			msg = e.Message
			if msg == "" {
				msg = e.Error
			}
		}
		return &remote.Error{Method: http.MethodPost, Path: path, StatusCode: resp.StatusCode, Message: msg}
	}

	var s Session
	if err := json.Unmarshal(body, &s); err != nil || s.AccessToken == "" || s.UserID == "" {
		return &remote.Error{Method: http.MethodPost, Path: path, StatusCode: resp.StatusCode, Err: errMalformedSession}
	}

	raw, _ := json.Marshal(s)
	if err := p.store.Set(ctx, StorageKey, raw); err != nil {
		p.logger.Warn("Failed to persist session", zap.Error(err))
	}
	p.set(&s)
	return nil
}

func (p *HTTPProvider) set(s *Session) {
	p.mu.Lock()
	p.current = s
	p.loaded = true
	p.mu.Unlock()

	p.subsMu.Lock()
	fns := make([]func(*Session), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.subsMu.Unlock()

	for _, fn := range fns {
		fn(copySession(s))
	}
}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Unsubscribe() { s.once.Do(s.cancel) }

func copySession(s *Session) *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

var (
	_ Provider           = (*HTTPProvider)(nil)
	_ remote.TokenSource = (*HTTPProvider)(nil)
)
