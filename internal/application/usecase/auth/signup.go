package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/growth-tracker/internal/domain/user"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/auth"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

const minPasswordLength = 6

type SignUpUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewSignUpUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *SignUpUseCase {
	return &SignUpUseCase{userRepo: repo, jwtSvc: jwtSvc, logger: log}
}

type SignUpInput struct {
	Email    string
	Password string
}

func (uc *SignUpUseCase) Execute(ctx context.Context, input SignUpInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "SignUp")
	defer span.End()

	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, apperror.NewInvalidInput("email is required", nil)
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperror.NewInvalidInput("password must be at least 6 characters", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			err = apperror.NewConflict("user", "email", email)
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return issueSession(uc.jwtSvc, u, uc.logger)
}
