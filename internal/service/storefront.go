package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/dto"
	"storefront/internal/models"
)

// StorefrontService собирает данные для публичных страниц магазина.
type StorefrontService struct {
	products *ProductService
	settings *SettingService
	siteURL  string
}

func NewStorefrontService(products *ProductService, settings *SettingService, siteURL string) *StorefrontService {
	return &StorefrontService{products: products, settings: settings, siteURL: strings.TrimRight(siteURL, "/")}
}

func (s *StorefrontService) Home(ctx context.Context) ([]models.Product, error) {
	return s.products.LatestProducts(ctx)
}

func (s *StorefrontService) ProductPage(ctx context.Context, id uint) (dto.ProductPageResponse, error) {
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return dto.ProductPageResponse{}, err
	}
	number, err := s.settings.WhatsAppNumber(ctx)
	if err != nil {
		return dto.ProductPageResponse{}, err
	}

	return dto.ProductPageResponse{
		Product:        p,
		WhatsAppNumber: number,
		WhatsAppLink:   s.whatsAppLink(number, p),
		Specs:          specLines(p.Specs),
	}, nil
}

func (s *StorefrontService) Contact(ctx context.Context) (dto.ContactResponse, error) {
	number, err := s.settings.WhatsAppNumber(ctx)
	if err != nil {
		return dto.ContactResponse{}, err
	}
	return dto.ContactResponse{WhatsAppNumber: number}, nil
}

func (s *StorefrontService) whatsAppLink(number string, p models.Product) string {
	if number == "" {
		return ""
	}
	msg := fmt.Sprintf("Hi, I am interested in the product \"%s\". Check it here: %s/products/%d", p.Name, s.siteURL, p.ID)
	return "https://wa.me/" + waDigits(number) + "?" + url.Values{"text": {msg}}.Encode()
}

// waDigits оставляет только цифры: wa.me не принимает "+", пробелы и дефисы.
func waDigits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func specLines(specs *string) []string {
	out := []string{}
	if specs == nil {
		return out
	}
	for _, line := range strings.Split(*specs, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
