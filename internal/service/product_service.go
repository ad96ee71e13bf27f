package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"storefront/internal/cache"
	"storefront/internal/dto"
	"storefront/internal/errs"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repository"
)

const (
	publicDefaultLimit = 10
	publicMaxLimit     = 50
	adminDefaultLimit  = 20
	adminMaxLimit      = 100

	homeLatestCount = 8
)

type ProductService struct {
	products   repository.ProductRepository
	reconciler *Reconciler
	cache      cache.ProductCache
	events     events.Publisher
}

func NewProductService(products repository.ProductRepository, reconciler *Reconciler, c cache.ProductCache, pub events.Publisher) *ProductService {
	if c == nil {
		c = cache.Noop{}
	}
	if pub == nil {
		pub = events.Noop{}
	}
	return &ProductService{products: products, reconciler: reconciler, cache: c, events: pub}
}

// CreateProduct сохраняет товар; пустые ссылки на картинки отбрасываются.
func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (models.Product, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return models.Product{}, errs.ErrMissingFields
	}

	images := make([]string, 0, len(req.Images))
	for _, u := range req.Images {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, u)
		}
	}
	if len(images) == 0 {
		return models.Product{}, errs.ErrNoValidImages
	}

	p := models.Product{
		Name:        name,
		Description: description,
		Specs:       req.Specs,
		Images:      pq.StringArray(images),
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return models.Product{}, err
	}

	log.Ctx(ctx).Info().Str("component", "ProductService.CreateProduct").Uint("id", p.ID).Msg("product created")
	s.events.Publish(ctx, events.ProductCreated, p)
	return p, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	if p, ok := s.cache.Get(ctx, id); ok {
		return p, nil
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	s.cache.Set(ctx, p)
	return p, nil
}

func (s *ProductService) ListProducts(ctx context.Context, q dto.ListQuery) (dto.ProductListResponse, error) {
	filter := normalizeListQuery(q)
	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return dto.ProductListResponse{}, err
	}
	if items == nil {
		items = []models.Product{}
	}
	return dto.ProductListResponse{
		Products:   items,
		TotalPages: totalPages(total, filter.PageSize),
	}, nil
}

func (s *ProductService) LatestProducts(ctx context.Context) ([]models.Product, error) {
	items, err := s.products.Latest(ctx, homeLatestCount)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Product{}
	}
	return items, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req dto.UpdateProductRequest) (models.Product, error) {
	in := ProductInput{Name: req.Name, Description: req.Description, Specs: req.Specs}
	p, err := s.reconciler.ReconcileUpdate(ctx, id, in, req.ExistingImages, req.Files)
	if err != nil {
		return models.Product{}, err
	}

	s.cache.Invalidate(ctx, id)
	log.Ctx(ctx).Info().Str("component", "ProductService.UpdateProduct").Uint("id", id).Int("images", len(p.Images)).Msg("product updated")
	s.events.Publish(ctx, events.ProductUpdated, p)
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.reconciler.ReconcileDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	log.Ctx(ctx).Info().Str("component", "ProductService.DeleteProduct").Uint("id", id).Msg("product deleted")
	s.events.Publish(ctx, events.ProductDeleted, map[string]uint{"id": id})
	return nil
}

// normalizeListQuery turns raw query values into a repository filter.
// Public listings sort by name; admin listings show newest first and allow
// larger pages. Unparsable numbers fall back to the defaults.
func normalizeListQuery(q dto.ListQuery) repository.ListFilter {
	defLimit, maxLimit := publicDefaultLimit, publicMaxLimit
	field, order := repository.SortByName, repository.SortDesc
	if q.Admin {
		defLimit, maxLimit = adminDefaultLimit, adminMaxLimit
		field = repository.SortByCreatedAt
	}

	page := atoiOr(q.Page, 1)
	if page < 1 {
		page = 1
	}
	limit := atoiOr(q.Limit, defLimit)
	if limit < 1 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	switch strings.ToLower(strings.TrimSpace(q.SortBy)) {
	case repository.SortByID:
		field = repository.SortByID
	case repository.SortByName:
		field = repository.SortByName
	}
	if strings.EqualFold(strings.TrimSpace(q.Sort), repository.SortAsc) {
		order = repository.SortAsc
	}

	return repository.ListFilter{
		Search:    strings.TrimSpace(q.Search),
		Page:      page,
		PageSize:  limit,
		SortField: field,
		SortOrder: order,
	}
}

func totalPages(count int64, pageSize int) int {
	if pageSize < 1 || count <= 0 {
		return 1
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
