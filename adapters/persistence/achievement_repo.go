package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/growth-tracker/internal/domain/achievement"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type postgresAchievementRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresAchievementRepo(db *pgxpool.Pool, logger logger.Logger) achievement.Repository {
	return &postgresAchievementRepo{db: db, logger: logger}
}

const achievementColumns = "id, user_id, title, description, date, icon, category, created_at"

func scanAchievement(row pgx.Row) (*achievement.Achievement, error) {
	a := &achievement.Achievement{}
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Date, &a.Icon, &a.Category, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, achievement.ErrAchievementNotFound
		}
		return nil, apperror.NewInternal("failed to scan achievement row", err)
	}
	return a, nil
}

func scanAchievements(rows pgx.Rows) ([]*achievement.Achievement, error) {
	defer rows.Close()
	items := make([]*achievement.Achievement, 0)
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating achievement rows", err)
	}
	return items, nil
}

func insertAchievement(ctx context.Context, db dbtx, a *achievement.Achievement, skipExisting bool) (bool, error) {
	query := `
		INSERT INTO achievements (id, user_id, title, description, date, icon, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if skipExisting {
		query += ` ON CONFLICT (id) DO NOTHING`
	}
	cmdTag, err := db.Exec(ctx, query,
		a.ID, a.UserID, a.Title, a.Description, a.Date, a.Icon, a.Category, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, apperror.NewConflict("achievement", "id", a.ID.String())
		}
		return false, apperror.NewInternal("failed to save achievement", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *postgresAchievementRepo) Save(ctx context.Context, a *achievement.Achievement) error {
	_, err := insertAchievement(ctx, r.db, a, false)
	return err
}

func (r *postgresAchievementRepo) Update(ctx context.Context, a *achievement.Achievement) error {
	query := `
		UPDATE achievements
		SET title = $3, description = $4, date = $5, icon = $6, category = $7
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, a.ID, a.UserID, a.Title, a.Description, a.Date, a.Icon, a.Category)
	if err != nil {
		return apperror.NewInternal("failed to update achievement", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("achievement", a.ID.String())
	}
	return nil
}

func (r *postgresAchievementRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM achievements WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete achievement", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("achievement", id.String())
	}
	return nil
}

func (r *postgresAchievementRepo) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*achievement.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements WHERE id = $1 AND user_id = $2`
	a, err := scanAchievement(r.db.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, achievement.ErrAchievementNotFound) {
		return nil, apperror.NewNotFound("achievement", id.String())
	}
	return a, err
}

func (r *postgresAchievementRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*achievement.Achievement, error) {
	builder := psql.Select(achievementColumns).
		From("achievements").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("date DESC", "created_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list achievements query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query achievements by owner", err)
	}
	return scanAchievements(rows)
}
