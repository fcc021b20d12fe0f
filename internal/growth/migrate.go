package growth

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/internal/remote"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type MigrationOutcome int

const (
	// MigrationSkipped: no local snapshot, nothing was reloaded.
	MigrationSkipped MigrationOutcome = iota
	// MigrationNotNeeded: the remote account already holds data.
	MigrationNotNeeded
	MigrationImported
	MigrationFailed
)

func (o MigrationOutcome) String() string {
	switch o {
	case MigrationNotNeeded:
		return "not_needed"
	case MigrationImported:
		return "imported"
	case MigrationFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Migrator copies the pre-sign-in local snapshot into an empty remote
// account. The remote account is never overwritten.
type Migrator struct {
	manager *Manager
}

func NewMigrator(m *Manager) *Migrator {
	return &Migrator{manager: m}
}

// Migrate checks the remote account of userID for any skill. Only when it is
// empty is the local snapshot imported. Unless there was no snapshot, the
// manager is reloaded from remote afterwards whatever the branch taken.
//
// The reload rewrites the local snapshot, so data whose import failed is
// first parked under PendingMigrationKey. Later runs import that copy
// instead of the snapshot until one of them reaches the remote account.
func (mg *Migrator) Migrate(ctx context.Context, userID string) MigrationOutcome {
	m := mg.manager
	log := m.logger.With(zap.String("user_id", userID))

	if userID == "" || m.remote == nil {
		return MigrationSkipped
	}

	snapshot, pending, err := mg.source(ctx)
	if err != nil {
		log.Warn("Failed to read local snapshot for migration", zap.Error(err))
		return MigrationSkipped
	}
	if snapshot == nil {
		return MigrationSkipped
	}

	outcome := mg.importIfEmpty(ctx, userID, *snapshot, log)
	switch {
	case outcome == MigrationFailed && !pending:
		if err := saveData(ctx, m.local, PendingMigrationKey, *snapshot); err != nil {
			// Reloading now would overwrite the only copy.
			log.Error("Failed to park local data, keeping it in place", err)
			return outcome
		}
		log.Warn("Local data kept for a later migration")
	case outcome != MigrationFailed && pending:
		if outcome == MigrationNotNeeded {
			log.Warn("Remote account already has data, discarding parked local data")
		}
		if err := m.local.Delete(ctx, PendingMigrationKey); err != nil {
			log.Warn("Failed to clear parked local data", zap.Error(err))
		}
	}

	m.Load(ctx, userID)
	return outcome
}

// HasPending reports whether an earlier import failed and its data is
// waiting for another attempt.
func (mg *Migrator) HasPending(ctx context.Context) bool {
	_, ok, err := loadData(ctx, mg.manager.local, PendingMigrationKey)
	return err == nil && ok
}

// source prefers parked data over the regular snapshot. A nil Data means
// there is nothing to migrate.
func (mg *Migrator) source(ctx context.Context) (*Data, bool, error) {
	m := mg.manager
	d, ok, err := loadData(ctx, m.local, PendingMigrationKey)
	if err != nil {
		return nil, false, err
	}
	if ok {
		return &d, true, nil
	}
	d, ok, err = LoadSnapshot(ctx, m.local)
	if err != nil || !ok {
		return nil, false, err
	}
	return &d, false, nil
}

func (mg *Migrator) importIfEmpty(ctx context.Context, userID string, snapshot Data, log logger.Logger) MigrationOutcome {
	m := mg.manager

	existing, err := m.remote.Skills().List(ctx, userID, remote.ListOptions{Limit: 1})
	if err != nil {
		log.Error("Failed to check remote account for migration", err)
		return MigrationFailed
	}
	if len(existing) > 0 {
		log.Info("Remote account already has data, skipping migration")
		return MigrationNotNeeded
	}

	bundle := toBundle(userID, snapshot, FormatTimestamp(m.now()))
	if err := m.remote.Import(ctx, userID, bundle); err != nil {
		log.Error("Failed to import local data", err)
		return MigrationFailed
	}
	log.Info("Local data migrated",
		zap.Int("skills", len(bundle.Skills)),
		zap.Int("goals", len(bundle.Goals)),
		zap.Int("achievements", len(bundle.Achievements)),
	)
	return MigrationImported
}
