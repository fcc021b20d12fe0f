package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statsUC "github.com/khoahotran/growth-tracker/internal/application/usecase/stats"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type StatsHandler struct {
	statsUseCase *statsUC.StatsUseCase
	logger       logger.Logger
}

func NewStatsHandler(uc *statsUC.StatsUseCase, log logger.Logger) *StatsHandler {
	return &StatsHandler{statsUseCase: uc, logger: log}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	ownerID, ok := requireOwner(c, c.Query("user_id"))
	if !ok {
		return
	}
	st, err := h.statsUseCase.GetStats(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, st)
}
