package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/growth-tracker/pkg/auth"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type Handlers struct {
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Skill       *SkillHandler
	Goal        *GoalHandler
	Achievement *AchievementHandler
	Migration   *MigrationHandler
	Stats       *StatsHandler
	RSS         *RSSHandler
}

// NewRouter mounts the CRUD service under /api. Everything except sign-in,
// health and the public profile routes needs a bearer token.
func NewRouter(h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), ErrorMiddleware(log))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		authGroup.POST("/signup", h.Auth.SignUp)
		authGroup.POST("/login", h.Auth.Login)

		public := api.Group("/public")
		{
			public.GET("/profiles/:id", h.Profile.GetPublicProfile)
			if h.RSS != nil {
				public.GET("/profiles/:id/achievements.rss", h.RSS.AchievementsFeed)
			}
		}

		private := api.Group("/")
		private.Use(AuthMiddleware(jwtSvc, log))
		{
			private.GET("/profiles/:id", h.Profile.GetProfile)
			private.POST("/profiles", h.Profile.UpsertProfile)
			private.POST("/profiles/:id/avatar", h.Profile.UploadAvatar)

			skills := private.Group("/skills")
			{
				skills.GET("", h.Skill.ListSkills)
				skills.POST("", h.Skill.CreateSkill)
				skills.PUT("/:id", h.Skill.UpdateSkill)
				skills.DELETE("/:id", h.Skill.DeleteSkill)
			}

			goals := private.Group("/goals")
			{
				goals.GET("", h.Goal.ListGoals)
				goals.POST("", h.Goal.CreateGoal)
				goals.PUT("/:id", h.Goal.UpdateGoal)
				goals.DELETE("/:id", h.Goal.DeleteGoal)
			}

			achievements := private.Group("/achievements")
			{
				achievements.GET("", h.Achievement.ListAchievements)
				achievements.POST("", h.Achievement.CreateAchievement)
				achievements.PUT("/:id", h.Achievement.UpdateAchievement)
				achievements.DELETE("/:id", h.Achievement.DeleteAchievement)
			}

			private.POST("/migrations/import", h.Migration.Import)
			private.GET("/stats", h.Stats.GetStats)
		}
	}

	return router
}
