package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/growth-tracker/internal/application/usecase/auth"
	"github.com/khoahotran/growth-tracker/pkg/apperror"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type AuthHandler struct {
	signUpUseCase *auth.SignUpUseCase
	loginUseCase  *auth.LoginUseCase
	logger        logger.Logger
}

func NewAuthHandler(signUpUC *auth.SignUpUseCase, loginUC *auth.LoginUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		signUpUseCase: signUpUC,
		loginUseCase:  loginUC,
		logger:        log,
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for sign up", err))
		return
	}

	output, err := h.signUpUseCase.Execute(c.Request.Context(), auth.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toSessionDTO(output))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for login", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toSessionDTO(output))
}

func toSessionDTO(out *auth.SessionOutput) SessionDTO {
	return SessionDTO{
		AccessToken: out.AccessToken,
		UserID:      out.UserID.String(),
		Email:       out.Email,
	}
}
