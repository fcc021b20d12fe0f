package migration

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

var tracer = otel.Tracer("migration_usecase")

type ImportUseCase struct {
	importer service.Importer
	notifier *service.ChangeNotifier
	logger   logger.Logger
}

func NewImportUseCase(importer service.Importer, notifier *service.ChangeNotifier, log logger.Logger) *ImportUseCase {
	return &ImportUseCase{importer: importer, notifier: notifier, logger: log}
}

type ImportInput struct {
	OwnerID uuid.UUID
	Bundle  service.ImportBundle
}

// Execute writes the whole bundle or nothing. Every row must belong to the
// owner.
func (uc *ImportUseCase) Execute(ctx context.Context, in ImportInput) (*service.ImportResult, error) {
	ctx, span := tracer.Start(ctx, "Import")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", in.OwnerID.String()))

	if err := validateBundle(in.OwnerID, in.Bundle); err != nil {
		span.RecordError(err)
		return nil, err
	}

	res, err := uc.importer.Import(ctx, in.OwnerID, in.Bundle)
	if err != nil {
		uc.logger.Error("Bundle import failed", err, zap.String("user_id", in.OwnerID.String()))
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("Bundle imported",
		zap.String("user_id", in.OwnerID.String()),
		zap.Int("skills", res.Skills),
		zap.Int("goals", res.Goals),
		zap.Int("achievements", res.Achievements),
	)
	uc.notifier.Notify(service.GrowthEvent{
		EventType:  service.EventTypeImported,
		UserID:     in.OwnerID,
		Collection: service.CollectionSkills,
		EntityID:   in.OwnerID,
	})
	return &res, nil
}

func validateBundle(owner uuid.UUID, b service.ImportBundle) error {
	if b.Profile != nil {
		if b.Profile.ID != owner {
			return apperror.NewPermissionDenied("profile belongs to another user")
		}
		if err := b.Profile.Validate(); err != nil {
			return apperror.NewInvalidInput("profile validation failed", err)
		}
	}
	for i, s := range b.Skills {
		if s.UserID != owner {
			return apperror.NewPermissionDenied(fmt.Sprintf("skill %d belongs to another user", i))
		}
		if err := s.Validate(); err != nil {
			return apperror.NewInvalidInput(fmt.Sprintf("skill %d validation failed", i), err)
		}
	}
	for i, g := range b.Goals {
		if g.UserID != owner {
			return apperror.NewPermissionDenied(fmt.Sprintf("goal %d belongs to another user", i))
		}
		if err := g.Validate(); err != nil {
			return apperror.NewInvalidInput(fmt.Sprintf("goal %d validation failed", i), err)
		}
	}
	for i, a := range b.Achievements {
		if a.UserID != owner {
			return apperror.NewPermissionDenied(fmt.Sprintf("achievement %d belongs to another user", i))
		}
		if err := a.Validate(); err != nil {
			return apperror.NewInvalidInput(fmt.Sprintf("achievement %d validation failed", i), err)
		}
	}
	return nil
}
