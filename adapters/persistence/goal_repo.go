package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/growth-tracker/internal/domain/goal"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type postgresGoalRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresGoalRepo(db *pgxpool.Pool, logger logger.Logger) goal.Repository {
	return &postgresGoalRepo{db: db, logger: logger}
}

const goalColumns = "id, user_id, title, description, deadline, priority, completed, completed_at, created_at"

func scanGoal(row pgx.Row) (*goal.Goal, error) {
	g := &goal.Goal{}
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Description,
		&g.Deadline,
		&g.Priority,
		&g.Completed,
		&g.CompletedAt,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goal.ErrGoalNotFound
		}
		return nil, apperror.NewInternal("failed to scan goal row", err)
	}
	return g, nil
}

func scanGoals(rows pgx.Rows) ([]*goal.Goal, error) {
	defer rows.Close()
	items := make([]*goal.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating goal rows", err)
	}
	return items, nil
}

func insertGoal(ctx context.Context, db dbtx, g *goal.Goal, skipExisting bool) (bool, error) {
	query := `
		INSERT INTO goals (id, user_id, title, description, deadline, priority, completed, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if skipExisting {
		query += ` ON CONFLICT (id) DO NOTHING`
	}
	cmdTag, err := db.Exec(ctx, query,
		g.ID, g.UserID, g.Title, g.Description, g.Deadline, g.Priority, g.Completed, g.CompletedAt, g.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, apperror.NewConflict("goal", "id", g.ID.String())
		}
		return false, apperror.NewInternal("failed to save goal", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *postgresGoalRepo) Save(ctx context.Context, g *goal.Goal) error {
	_, err := insertGoal(ctx, r.db, g, false)
	return err
}

func (r *postgresGoalRepo) Update(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET title = $3, description = $4, deadline = $5, priority = $6, completed = $7, completed_at = $8
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query,
		g.ID, g.UserID, g.Title, g.Description, g.Deadline, g.Priority, g.Completed, g.CompletedAt)
	if err != nil {
		return apperror.NewInternal("failed to update goal", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("goal", g.ID.String())
	}
	return nil
}

func (r *postgresGoalRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete goal", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("goal", id.String())
	}
	return nil
}

func (r *postgresGoalRepo) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`
	g, err := scanGoal(r.db.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, goal.ErrGoalNotFound) {
		return nil, apperror.NewNotFound("goal", id.String())
	}
	return g, err
}

func (r *postgresGoalRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*goal.Goal, error) {
	builder := psql.Select(goalColumns).
		From("goals").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list goals query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query goals by owner", err)
	}
	return scanGoals(rows)
}
