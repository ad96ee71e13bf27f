package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/errs"
	"storefront/internal/models"
)

const (
	SortByID        = "id"
	SortByName      = "name"
	SortByCreatedAt = "created_at"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListFilter: параметры выборки для списка товаров.
type ListFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortField string
	SortOrder string
}

// ProductFields: изменяемые поля товара.
type ProductFields struct {
	Name        string
	Description string
	Specs       *string
	Images      []string
}

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uint) (models.Product, error)
	UpdateFields(ctx context.Context, id uint, fields ProductFields) (models.Product, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]models.Product, int64, error)
	Latest(ctx context.Context, n int) ([]models.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		log.Error().Err(err).Str("component", "ProductRepository.Create").Msg("")
		return err
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, errs.ErrProductNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("component", "ProductRepository.GetByID").Uint("id", id).Msg("")
		return p, err
	}
	return p, nil
}

// updateColumns — specs == nil значит «не менять», пустая строка очищает
func updateColumns(fields ProductFields) map[string]interface{} {
	cols := map[string]interface{}{
		"name":        fields.Name,
		"description": fields.Description,
		"images":      pqArray(fields.Images),
	}
	if fields.Specs != nil {
		cols["specs"] = *fields.Specs
	}
	return cols
}

func (r *productRepository) UpdateFields(ctx context.Context, id uint, fields ProductFields) (models.Product, error) {
	var p models.Product
	res := r.db.WithContext(ctx).Model(&p).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updateColumns(fields))
	if res.Error != nil {
		log.Error().Err(res.Error).Str("component", "ProductRepository.UpdateFields").Uint("id", id).Msg("")
		return p, res.Error
	}
	if res.RowsAffected == 0 {
		return p, errs.ErrProductNotFound
	}
	return p, nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		log.Error().Err(res.Error).Str("component", "ProductRepository.Delete").Uint("id", id).Msg("")
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, filter ListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+escapeLike(strings.ToLower(s))+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Error().Err(err).Str("component", "ProductRepository.List").Msg("")
		return nil, 0, err
	}

	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	var items []models.Product
	err := q.Order(orderClause(filter.SortField, filter.SortOrder)).
		Offset((page - 1) * size).
		Limit(size).
		Find(&items).Error
	if err != nil {
		log.Error().Err(err).Str("component", "ProductRepository.List").Msg("")
		return nil, 0, err
	}
	return items, total, nil
}

func (r *productRepository) Latest(ctx context.Context, n int) ([]models.Product, error) {
	var items []models.Product
	err := r.db.WithContext(ctx).Order("created_at desc, id desc").Limit(n).Find(&items).Error
	if err != nil {
		log.Error().Err(err).Str("component", "ProductRepository.Latest").Msg("")
		return nil, err
	}
	return items, nil
}

// orderClause строит ORDER BY; id ASC в конце даёт стабильный порядок
// для одинаковых значений (id растёт в порядке вставки).
func orderClause(field, order string) string {
	switch field {
	case SortByID, SortByName, SortByCreatedAt:
	default:
		field = SortByID
	}
	if order != SortAsc {
		order = SortDesc
	}
	if field == SortByID {
		return fmt.Sprintf("id %s", order)
	}
	return fmt.Sprintf("%s %s, id asc", field, order)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
