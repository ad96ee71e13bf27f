package dto

import "storefront/internal/models"

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Specs       *string  `json:"specs"`
	Images      []string `json:"images"`
}

type UpdateProductRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Specs          *string  `json:"specs"`
	ExistingImages []string `json:"existingImages"`
	Files          []string `json:"files"`
}

// ListQuery: параметры из query string для GET /products.
type ListQuery struct {
	Search string `form:"search"`
	Page   string `form:"page"`
	Limit  string `form:"limit"`
	Sort   string `form:"sort"`
	SortBy string `form:"sortBy"`
	Admin  bool   `form:"-"`
}

type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	TotalPages int              `json:"totalPages"`
}

type ProductPageResponse struct {
	Product        models.Product `json:"product"`
	WhatsAppNumber string         `json:"whatsappNumber"`
	WhatsAppLink   string         `json:"whatsappLink"`
	Specs          []string       `json:"specs"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
