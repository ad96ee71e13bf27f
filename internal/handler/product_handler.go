package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/dto"
	"storefront/internal/errs"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (models.Product, error)
	GetProduct(ctx context.Context, id uint) (models.Product, error)
	ListProducts(ctx context.Context, q dto.ListQuery) (dto.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id uint, req dto.UpdateProductRequest) (models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductHandler struct {
	svc ProductService
}

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) RegisterRoutes(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.GET("/products", h.List)
	g.GET("/products/:id", h.Get)
	g.POST("/products", auth, h.Create)
	g.PUT("/products/:id", auth, h.Update)
	g.DELETE("/products/:id", auth, h.Delete)
}

// List: admin=true разрешён только с сессией администратора.
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, "ProductHandler.List", errs.ErrInvalidRequest)
		return
	}
	if strings.EqualFold(c.Query("admin"), "true") {
		if !middleware.IsAdmin(c) {
			writeError(c, "ProductHandler.List", errs.ErrUnauthorized)
			return
		}
		q.Admin = true
	}

	res, err := h.svc.ListProducts(c.Request.Context(), q)
	if err != nil {
		writeError(c, "ProductHandler.List", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, "ProductHandler.Get", err)
		return
	}
	p, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, "ProductHandler.Get", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, "ProductHandler.Create", errs.ErrInvalidRequest)
		return
	}
	p, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		writeError(c, "ProductHandler.Create", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, "ProductHandler.Update", err)
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, "ProductHandler.Update", errs.ErrInvalidRequest)
		return
	}
	p, err := h.svc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, "ProductHandler.Update", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		writeError(c, "ProductHandler.Delete", err)
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, "ProductHandler.Delete", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted successfully"})
}
