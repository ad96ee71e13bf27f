package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/dto"
	"storefront/internal/models"
)

type StorefrontService interface {
	Home(ctx context.Context) ([]models.Product, error)
	ProductPage(ctx context.Context, id uint) (dto.ProductPageResponse, error)
	Contact(ctx context.Context) (dto.ContactResponse, error)
}

type StorefrontHandler struct {
	svc StorefrontService
}

func NewStorefrontHandler(svc StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{svc: svc}
}

func (h *StorefrontHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/storefront/home", h.Home)
	g.GET("/storefront/products/:id", h.ProductPage)
	g.GET("/contact", h.Contact)
}

func (h *StorefrontHandler) Home(c *gin.Context) {
	items, err := h.svc.Home(c.Request.Context())
	if err != nil {
		writeError(c, "StorefrontHandler.Home", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items})
}

func (h *StorefrontHandler) ProductPage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, "StorefrontHandler.ProductPage", err)
		return
	}
	page, err := h.svc.ProductPage(c.Request.Context(), id)
	if err != nil {
		writeError(c, "StorefrontHandler.ProductPage", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *StorefrontHandler) Contact(c *gin.Context) {
	res, err := h.svc.Contact(c.Request.Context())
	if err != nil {
		writeError(c, "StorefrontHandler.Contact", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
