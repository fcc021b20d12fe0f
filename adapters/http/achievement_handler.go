package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	achievementUC "github.com/khoahotran/growth-tracker/internal/application/usecase/achievement"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type AchievementHandler struct {
	achievementUseCase *achievementUC.AchievementUseCase
	logger             logger.Logger
}

func NewAchievementHandler(uc *achievementUC.AchievementUseCase, log logger.Logger) *AchievementHandler {
	return &AchievementHandler{achievementUseCase: uc, logger: log}
}

func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	ownerID, ok := requireOwner(c, c.Query("user_id"))
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	items, err := h.achievementUseCase.ListAchievements(c.Request.Context(), ownerID, limit)
	if err != nil {
		c.Error(err)
		return
	}
	dtos := make([]AchievementDTO, len(items))
	for i, a := range items {
		dtos[i] = ToAchievementDTO(a)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *AchievementHandler) CreateAchievement(c *gin.Context) {
	input, ok := h.bindInput(c, "")
	if !ok {
		return
	}
	created, err := h.achievementUseCase.CreateAchievement(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToAchievementDTO(created))
}

func (h *AchievementHandler) UpdateAchievement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	input, ok := h.bindInput(c, c.Query("user_id"))
	if !ok {
		return
	}
	input.ID = id

	updated, err := h.achievementUseCase.UpdateAchievement(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToAchievementDTO(updated))
}

func (h *AchievementHandler) DeleteAchievement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ownerID, ok := requireOwner(c, c.Query("user_id"))
	if !ok {
		return
	}
	if err := h.achievementUseCase.DeleteAchievement(c.Request.Context(), id, ownerID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindInput decodes the body and checks that both the query user_id (when
// present) and the body's user_id belong to the caller.
func (h *AchievementHandler) bindInput(c *gin.Context, queryOwner string) (achievementUC.AchievementInput, bool) {
	var req AchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for achievement", err))
		return achievementUC.AchievementInput{}, false
	}
	if queryOwner != "" {
		if _, ok := requireOwner(c, queryOwner); !ok {
			return achievementUC.AchievementInput{}, false
		}
	}
	ownerID, ok := requireOwner(c, req.UserID)
	if !ok {
		return achievementUC.AchievementInput{}, false
	}
	a, err := req.ToDomain()
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid achievement", err))
		return achievementUC.AchievementInput{}, false
	}
	return achievementUC.AchievementInput{
		ID:          a.ID,
		OwnerID:     ownerID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		Icon:        a.Icon,
		Category:    a.Category,
	}, true
}
