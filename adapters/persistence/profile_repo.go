package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/growth-tracker/internal/domain/profile"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

const profileColumns = `id, name, bio, avatar_url, email, location, website, is_public, created_at, updated_at`

// The stored created_at survives re-upserts.
const upsertProfileSQL = `
	INSERT INTO profiles (id, name, bio, avatar_url, email, location, website, is_public, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		bio = EXCLUDED.bio,
		avatar_url = EXCLUDED.avatar_url,
		email = EXCLUDED.email,
		location = EXCLUDED.location,
		website = EXCLUDED.website,
		is_public = EXCLUDED.is_public,
		updated_at = NOW()
	RETURNING created_at, updated_at
`

func (r *postgresProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p := &profile.Profile{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Bio,
		&p.AvatarURL,
		&p.Email,
		&p.Location,
		&p.Website,
		&p.IsPublic,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	return upsertProfile(ctx, r.db, p)
}

func upsertProfile(ctx context.Context, db dbtx, p *profile.Profile) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	err := db.QueryRow(ctx, upsertProfileSQL,
		p.ID,
		p.Name,
		p.Bio,
		p.AvatarURL,
		p.Email,
		p.Location,
		p.Website,
		p.IsPublic,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE profiles SET avatar_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		return apperror.NewInternal("failed to update avatar", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", id.String())
	}
	return nil
}
