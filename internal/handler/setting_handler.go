package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/dto"
	"storefront/internal/errs"
	"storefront/internal/models"
)

type SettingService interface {
	ListSettings(ctx context.Context) ([]models.Setting, error)
	UpsertSetting(ctx context.Context, key string, value *string) (models.Setting, error)
}

type SettingHandler struct {
	svc SettingService
}

func NewSettingHandler(svc SettingService) *SettingHandler {
	return &SettingHandler{svc: svc}
}

func (h *SettingHandler) RegisterRoutes(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.GET("/admin/settings", h.List)
	g.PUT("/admin/settings", auth, h.Upsert)
}

func (h *SettingHandler) List(c *gin.Context) {
	items, err := h.svc.ListSettings(c.Request.Context())
	if err != nil {
		writeError(c, "SettingHandler.List", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *SettingHandler) Upsert(c *gin.Context) {
	var req dto.SettingRequest
	// value не строкой ломает разбор, это тоже 400
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, "SettingHandler.Upsert", errs.ErrInvalidSetting)
		return
	}
	s, err := h.svc.UpsertSetting(c.Request.Context(), req.Key, req.Value)
	if err != nil {
		writeError(c, "SettingHandler.Upsert", err)
		return
	}
	c.JSON(http.StatusOK, s)
}
