package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"storefront/internal/dto"
	"storefront/internal/errs"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Admin, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/logout", h.Logout)
	g.GET("/auth/session", h.Session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, "AuthHandler.Login", errs.ErrInvalidRequest)
		return
	}
	admin, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, "AuthHandler.Login", err)
		return
	}
	if err := middleware.SetAdmin(c, admin.Email); err != nil {
		writeError(c, "AuthHandler.Login", err)
		return
	}
	log.Ctx(c.Request.Context()).Info().Str("component", "AuthHandler.Login").Str("email", admin.Email).Msg("admin logged in")
	c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: true, Email: admin.Email})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearAdmin(c); err != nil {
		writeError(c, "AuthHandler.Logout", err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: false})
}

func (h *AuthHandler) Session(c *gin.Context) {
	email := middleware.AdminEmail(c)
	c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: email != "", Email: email})
}
