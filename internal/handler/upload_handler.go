package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/dto"
	"storefront/internal/errs"
)

type UploadService interface {
	Upload(ctx context.Context, files []string) ([]string, error)
}

type UploadHandler struct {
	svc UploadService
}

func NewUploadHandler(svc UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

func (h *UploadHandler) RegisterRoutes(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.POST("/upload", auth, h.Upload)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	var req dto.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, "UploadHandler.Upload", errs.ErrInvalidRequest)
		return
	}
	urls, err := h.svc.Upload(c.Request.Context(), req.Files)
	if err != nil {
		writeError(c, "UploadHandler.Upload", err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResponse{URLs: urls})
}
