package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	goalUC "github.com/khoahotran/growth-tracker/internal/application/usecase/goal"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type GoalHandler struct {
	goalUseCase *goalUC.GoalUseCase
	logger      logger.Logger
}

func NewGoalHandler(uc *goalUC.GoalUseCase, log logger.Logger) *GoalHandler {
	return &GoalHandler{goalUseCase: uc, logger: log}
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	ownerID, ok := requireOwner(c, c.Query("user_id"))
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	items, err := h.goalUseCase.ListGoals(c.Request.Context(), ownerID, limit)
	if err != nil {
		c.Error(err)
		return
	}
	dtos := make([]GoalDTO, len(items))
	for i, g := range items {
		dtos[i] = ToGoalDTO(g)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for goal", err))
		return
	}
	if _, ok := requireOwner(c, req.UserID); !ok {
		return
	}
	g, err := req.ToDomain()
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid goal", err))
		return
	}

	input := goalUC.CreateGoalInput{
		ID:          g.ID,
		OwnerID:     g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Deadline:    g.Deadline,
		Priority:    g.Priority,
		Completed:   g.Completed,
		CompletedAt: g.CompletedAt,
	}
	if !g.CreatedAt.IsZero() {
		input.CreatedAt = &g.CreatedAt
	}
	created, err := h.goalUseCase.CreateGoal(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToGoalDTO(created))
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for goal", err))
		return
	}
	ownerID, ok := requireOwner(c, c.DefaultQuery("user_id", req.UserID))
	if !ok {
		return
	}
	g, err := req.ToDomain()
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid goal", err))
		return
	}

	updated, err := h.goalUseCase.UpdateGoal(c.Request.Context(), goalUC.UpdateGoalInput{
		GoalID:      id,
		OwnerID:     ownerID,
		Title:       g.Title,
		Description: g.Description,
		Deadline:    g.Deadline,
		Priority:    g.Priority,
		Completed:   g.Completed,
		CompletedAt: g.CompletedAt,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToGoalDTO(updated))
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ownerID, ok := requireOwner(c, c.Query("user_id"))
	if !ok {
		return
	}
	if err := h.goalUseCase.DeleteGoal(c.Request.Context(), id, ownerID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
