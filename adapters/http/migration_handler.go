package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	migrationUC "github.com/khoahotran/growth-tracker/internal/application/usecase/migration"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type MigrationHandler struct {
	importUseCase *migrationUC.ImportUseCase
	logger        logger.Logger
}

func NewMigrationHandler(uc *migrationUC.ImportUseCase, log logger.Logger) *MigrationHandler {
	return &MigrationHandler{importUseCase: uc, logger: log}
}

// Import seeds the caller's account from a device snapshot in one
// transaction.
func (h *MigrationHandler) Import(c *gin.Context) {
	ownerID, ok := requireOwner(c, c.Query("user_id"))
	if !ok {
		return
	}
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for import", err))
		return
	}
	bundle, err := req.ToBundle(time.Now().UTC())
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid import bundle", err))
		return
	}

	res, err := h.importUseCase.Execute(c.Request.Context(), migrationUC.ImportInput{
		OwnerID: ownerID,
		Bundle:  bundle,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ImportResultDTO{
		Skills:       res.Skills,
		Goals:        res.Goals,
		Achievements: res.Achievements,
	})
}
