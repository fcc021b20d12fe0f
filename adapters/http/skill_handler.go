package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	skillUC "github.com/khoahotran/growth-tracker/internal/application/usecase/skill"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type SkillHandler struct {
	skillUseCase *skillUC.SkillUseCase
	logger       logger.Logger
}

func NewSkillHandler(uc *skillUC.SkillUseCase, log logger.Logger) *SkillHandler {
	return &SkillHandler{skillUseCase: uc, logger: log}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	ownerID, ok := requireOwner(c, c.Query("user_id"))
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	items, err := h.skillUseCase.ListSkills(c.Request.Context(), ownerID, limit)
	if err != nil {
		c.Error(err)
		return
	}
	dtos := make([]SkillDTO, len(items))
	for i, s := range items {
		dtos[i] = ToSkillDTO(s)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill", err))
		return
	}
	if _, ok := requireOwner(c, req.UserID); !ok {
		return
	}
	s, err := req.ToDomain()
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid skill", err))
		return
	}

	input := skillUC.CreateSkillInput{
		ID:       s.ID,
		OwnerID:  s.UserID,
		Name:     s.Name,
		Category: s.Category,
		Level:    s.Level,
	}
	if !s.CreatedAt.IsZero() {
		input.CreatedAt = &s.CreatedAt
	}
	if !s.UpdatedAt.IsZero() {
		input.UpdatedAt = &s.UpdatedAt
	}
	created, err := h.skillUseCase.CreateSkill(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToSkillDTO(created))
}

func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill", err))
		return
	}
	ownerID, ok := requireOwner(c, c.DefaultQuery("user_id", req.UserID))
	if !ok {
		return
	}

	updated, err := h.skillUseCase.UpdateSkill(c.Request.Context(), skillUC.UpdateSkillInput{
		SkillID:  id,
		OwnerID:  ownerID,
		Name:     req.Name,
		Category: req.Category,
		Level:    req.Level,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSkillDTO(updated))
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ownerID, ok := requireOwner(c, c.Query("user_id"))
	if !ok {
		return
	}
	if err := h.skillUseCase.DeleteSkill(c.Request.Context(), id, ownerID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// queryLimit reads ?limit=; absent or zero means no limit.
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.Error(apperror.NewInvalidInput("limit must be a non-negative integer", err))
		return 0, false
	}
	return limit, true
}
