package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/growth-tracker/internal/domain/skill"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const skillColumns = "id, user_id, name, category, level, created_at, updated_at"

func scanSkill(row pgx.Row) (*skill.Skill, error) {
	s := &skill.Skill{}
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Category, &s.Level, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, skill.ErrSkillNotFound
		}
		return nil, apperror.NewInternal("failed to scan skill row", err)
	}
	return s, nil
}

func scanSkills(rows pgx.Rows) ([]*skill.Skill, error) {
	defer rows.Close()
	items := make([]*skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill rows", err)
	}
	return items, nil
}

// insertSkill ignores a row whose id already exists and reports whether it
// wrote anything.
func insertSkill(ctx context.Context, db dbtx, s *skill.Skill, skipExisting bool) (bool, error) {
	query := `
		INSERT INTO skills (id, user_id, name, category, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if skipExisting {
		query += ` ON CONFLICT (id) DO NOTHING`
	}
	cmdTag, err := db.Exec(ctx, query, s.ID, s.UserID, s.Name, s.Category, s.Level, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, apperror.NewConflict("skill", "id", s.ID.String())
		}
		return false, apperror.NewInternal("failed to save skill", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *postgresSkillRepo) Save(ctx context.Context, s *skill.Skill) error {
	_, err := insertSkill(ctx, r.db, s, false)
	return err
}

func (r *postgresSkillRepo) Update(ctx context.Context, s *skill.Skill) error {
	query := `
		UPDATE skills SET name = $3, category = $4, level = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, s.ID, s.UserID, s.Name, s.Category, s.Level, s.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("failed to update skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", s.ID.String())
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", id.String())
	}
	return nil
}

func (r *postgresSkillRepo) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*skill.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills WHERE id = $1 AND user_id = $2`
	s, err := scanSkill(r.db.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, skill.ErrSkillNotFound) {
		return nil, apperror.NewNotFound("skill", id.String())
	}
	return s, err
}

func (r *postgresSkillRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*skill.Skill, error) {
	builder := psql.Select(skillColumns).
		From("skills").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list skills query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skills by owner", err)
	}
	return scanSkills(rows)
}
