package http

import (
	"github.com/gin-gonic/gin"

	achievementUC "github.com/khoahotran/growth-tracker/internal/application/usecase/achievement"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type RSSHandler struct {
	rssUseCase *achievementUC.RSSUseCase
	logger     logger.Logger
}

func NewRSSHandler(uc *achievementUC.RSSUseCase, log logger.Logger) *RSSHandler {
	return &RSSHandler{
		rssUseCase: uc,
		logger:     log,
	}
}

// AchievementsFeed publishes a public profile's achievements as RSS.
func (h *RSSHandler) AchievementsFeed(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	feed, err := h.rssUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")

	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
