package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type postgresImporter struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresImporter(db *pgxpool.Pool, logger logger.Logger) service.Importer {
	return &postgresImporter{db: db, logger: logger}
}

func (r *postgresImporter) Import(ctx context.Context, ownerID uuid.UUID, b service.ImportBundle) (service.ImportResult, error) {
	var res service.ImportResult

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return res, apperror.NewInternal("failed to begin import transaction", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Warn("Import rollback failed", zap.Error(err))
		}
	}()

	if b.Profile != nil {
		if err := upsertProfile(ctx, tx, b.Profile); err != nil {
			return res, err
		}
	}
	for _, s := range b.Skills {
		ok, err := insertSkill(ctx, tx, s, true)
		if err != nil {
			return service.ImportResult{}, err
		}
		if ok {
			res.Skills++
		}
	}
	for _, g := range b.Goals {
		ok, err := insertGoal(ctx, tx, g, true)
		if err != nil {
			return service.ImportResult{}, err
		}
		if ok {
			res.Goals++
		}
	}
	for _, a := range b.Achievements {
		ok, err := insertAchievement(ctx, tx, a, true)
		if err != nil {
			return service.ImportResult{}, err
		}
		if ok {
			res.Achievements++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return service.ImportResult{}, apperror.NewInternal("failed to commit import", err)
	}
	r.logger.Debug("Import committed", zap.String("user_id", ownerID.String()))
	return res, nil
}
