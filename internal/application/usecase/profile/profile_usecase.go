package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/domain/profile"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
	uploader    service.Uploader
	notifier    *service.ChangeNotifier
	logger      logger.Logger
}

// NewProfileUseCase accepts a nil uploader when avatar storage is not
// configured.
func NewProfileUseCase(repo profile.Repository, uploader service.Uploader, notifier *service.ChangeNotifier, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		uploader:    uploader,
		notifier:    notifier,
		logger:      log,
	}
}

// GetProfile returns nil, nil when the user has not saved a profile yet.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return p, nil
}

type UpsertProfileInput struct {
	ID        uuid.UUID
	Name      string
	Bio       *string
	AvatarURL *string
	Email     *string
	Location  *string
	Website   *string
	IsPublic  bool
	CreatedAt *time.Time
}

func (uc *ProfileUseCase) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*profile.Profile, error) {
	now := time.Now().UTC()
	p := &profile.Profile{
		ID:        in.ID,
		Name:      in.Name,
		Bio:       in.Bio,
		AvatarURL: in.AvatarURL,
		Email:     in.Email,
		Location:  in.Location,
		Website:   in.Website,
		IsPublic:  in.IsPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.CreatedAt != nil && !in.CreatedAt.IsZero() {
		p.CreatedAt = in.CreatedAt.UTC()
	}
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("profile validation failed", err)
	}
	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.notifier.Notify(service.GrowthEvent{
		EventType:  service.EventTypeUpdated,
		UserID:     p.ID,
		Collection: service.CollectionProfiles,
		EntityID:   p.ID,
	})
	return p, nil
}

// UploadAvatar stores the image and points the profile at it.
func (uc *ProfileUseCase) UploadAvatar(ctx context.Context, id uuid.UUID, file io.Reader) (*profile.Profile, error) {
	if uc.uploader == nil {
		return nil, apperror.NewInternal("avatar storage is not configured", nil)
	}
	if _, err := uc.profileRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", id.String())
		}
		return nil, err
	}

	folder := fmt.Sprintf("users/%s/avatars", id.String())
	url, err := uc.uploader.Upload(ctx, file, folder, "avatar")
	if err != nil {
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}
	if err := uc.profileRepo.UpdateAvatar(ctx, id, url); err != nil {
		return nil, err
	}
	return uc.profileRepo.GetByID(ctx, id)
}

// PublicProfile returns the profile only when its owner made it public.
func (uc *ProfileUseCase) PublicProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", id.String())
		}
		return nil, err
	}
	if !p.IsPublic {
		return nil, apperror.NewNotFound("profile", id.String())
	}
	return p, nil
}
