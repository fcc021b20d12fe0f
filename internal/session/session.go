// Package session supplies the signed-in identity to the client. A missing
// session is not an error: it means local-only mode.
package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type Session struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
}

type Subscription interface {
	Unsubscribe()
}

type Provider interface {
	// GetSession returns nil, nil when nobody is signed in.
	GetSession(ctx context.Context) (*Session, error)
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context)
	// OnSessionChange calls fn with the new session, nil after sign-out.
	OnSessionChange(fn func(*Session)) Subscription
}

type Resolution struct {
	Session *Session
	// Online is false when the provider failed or did not answer in time.
	Online bool
}

// Resolve races the initial session lookup against timeout. Errors and
// timeouts degrade to offline mode instead of failing.
func Resolve(ctx context.Context, p Provider, timeout time.Duration, log logger.Logger) Resolution {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		s   *Session
		err error
	}
	ch := make(chan result, 1)
	go func() {
		s, err := p.GetSession(ctx)
		ch <- result{s, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			log.Warn("Session lookup failed, continuing offline", zap.Error(r.err))
			return Resolution{}
		}
		return Resolution{Session: r.s, Online: true}
	case <-ctx.Done():
		log.Warn("Session lookup timed out, continuing offline", zap.Duration("timeout", timeout))
		return Resolution{}
	}
}

func (s *Session) GetUserID() string {
	if s == nil {
		return ""
	}
	return s.UserID
}
