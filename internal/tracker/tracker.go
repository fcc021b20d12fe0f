// Package tracker wires the local store, session provider, remote client and
// growth manager into one client.
package tracker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/internal/config"
	"github.com/khoahotran/growth-tracker/internal/growth"
	"github.com/khoahotran/growth-tracker/internal/localstore"
	"github.com/khoahotran/growth-tracker/internal/remote"
	"github.com/khoahotran/growth-tracker/internal/session"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type Options struct {
	SessionTimeout time.Duration
	SyncWait       time.Duration
}

type Tracker struct {
	Local    localstore.Store
	Session  session.Provider
	Manager  *growth.Manager
	Migrator *growth.Migrator

	opts   Options
	logger logger.Logger

	mu     sync.Mutex
	sub    session.Subscription
	online bool
	userID string
}

// Open builds a tracker from the client section of cfg.
func Open(cfg config.Config, log logger.Logger) (*Tracker, error) {
	local, err := localstore.Open(cfg)
	if err != nil {
		return nil, err
	}
	provider := session.NewHTTPProvider(cfg.Client.APIBaseURL, local, log, cfg.Client.RequestTimeout)
	client := remote.NewClient(cfg.Client.APIBaseURL, provider, log, remote.WithTimeout(cfg.Client.RequestTimeout))

	return New(local, provider, client, log, Options{
		SessionTimeout: cfg.Client.SessionTimeout,
		SyncWait:       cfg.Client.SyncWait,
	}), nil
}

func New(local localstore.Store, provider session.Provider, rs remote.Store, log logger.Logger, opts Options, managerOpts ...growth.Option) *Tracker {
	if opts.SessionTimeout <= 0 {
		opts.SessionTimeout = 5 * time.Second
	}
	if opts.SyncWait <= 0 {
		opts.SyncWait = 10 * time.Second
	}
	m := growth.NewManager(local, rs, log, managerOpts...)
	return &Tracker{
		Local:    local,
		Session:  provider,
		Manager:  m,
		Migrator: growth.NewMigrator(m),
		opts:     opts,
		logger:   log,
	}
}

// Start resolves the initial session, loads data for it and follows later
// sign-ins and sign-outs.
func (t *Tracker) Start(ctx context.Context) {
	res := session.Resolve(ctx, t.Session, t.opts.SessionTimeout, t.logger)
	userID := res.Session.GetUserID()

	t.mu.Lock()
	t.online = res.Online
	t.userID = userID
	t.mu.Unlock()

	if userID != "" && t.Migrator.HasPending(ctx) {
		outcome := t.Migrator.Migrate(ctx, userID)
		t.logger.Info("Retried parked migration", zap.String("user_id", userID), zap.Stringer("migration", outcome))
	} else {
		t.Manager.Load(ctx, userID)
	}

	bg := context.WithoutCancel(ctx)
	sub := t.Session.OnSessionChange(func(s *session.Session) {
		t.handleSessionChange(bg, s.GetUserID())
	})
	t.mu.Lock()
	t.sub = sub
	t.mu.Unlock()
}

func (t *Tracker) handleSessionChange(ctx context.Context, userID string) {
	t.mu.Lock()
	if userID == t.userID {
		t.mu.Unlock()
		return
	}
	t.userID = userID
	t.online = true
	t.mu.Unlock()

	if userID == "" {
		t.logger.Info("Signed out, switching to local data")
		t.Manager.Load(ctx, "")
		return
	}

	outcome := t.Migrator.Migrate(ctx, userID)
	t.logger.Info("Signed in", zap.String("user_id", userID), zap.Stringer("migration", outcome))
	if outcome == growth.MigrationSkipped {
		t.Manager.Load(ctx, userID)
	}
}

// Online is false when the initial session lookup timed out or failed.
func (t *Tracker) Online() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.online
}

func (t *Tracker) UserID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.userID
}

// Close waits up to SyncWait for pending remote writes, then releases the
// local store.
func (t *Tracker) Close(ctx context.Context) error {
	t.mu.Lock()
	if t.sub != nil {
		t.sub.Unsubscribe()
		t.sub = nil
	}
	t.mu.Unlock()

	waitCtx, cancel := context.WithTimeout(ctx, t.opts.SyncWait)
	defer cancel()
	if err := t.Manager.Wait(waitCtx); err != nil {
		t.logger.Warn("Gave up waiting for remote sync", zap.Error(err))
	}
	return t.Local.Close()
}
