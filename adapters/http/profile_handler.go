package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/growth-tracker/internal/application/usecase/profile"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

const maxAvatarBytes = 5 << 20

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

// GetProfile answers null when the user has not saved a profile yet.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ownerID, ok := requireOwner(c, c.Param("id"))
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	if p == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile upsert", err))
		return
	}
	ownerID, ok := requireOwner(c, req.ID)
	if !ok {
		return
	}
	p, err := req.ToDomain()
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid profile", err))
		return
	}

	input := profileUC.UpsertProfileInput{
		ID:        ownerID,
		Name:      p.Name,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		Email:     p.Email,
		Location:  p.Location,
		Website:   p.Website,
		IsPublic:  p.IsPublic,
	}
	if !p.CreatedAt.IsZero() {
		input.CreatedAt = &p.CreatedAt
	}
	saved, err := h.profileUseCase.UpsertProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(saved))
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	ownerID, ok := requireOwner(c, c.Param("id"))
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.Error(apperror.NewInvalidInput("avatar file is required", err))
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		c.Error(apperror.NewInvalidInput("avatar must be at most 5MB", nil))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("cannot open uploaded avatar", err))
		return
	}
	defer file.Close()

	p, err := h.profileUseCase.UploadAvatar(c.Request.Context(), ownerID, file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.profileUseCase.PublicProfile(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	dto := ToProfileDTO(p)
	dto.Email = nil
	c.JSON(http.StatusOK, dto)
}
