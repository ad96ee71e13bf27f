package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"storefront/internal/errs"
	"storefront/internal/imagestore"
)

type UploadService struct {
	images imagestore.Store
}

func NewUploadService(images imagestore.Store) *UploadService {
	return &UploadService{images: images}
}

// Upload sends every non-blank payload to the image host. A failed file is
// logged and skipped; the call fails only when nothing was uploaded.
func (s *UploadService) Upload(ctx context.Context, files []string) ([]string, error) {
	if len(files) == 0 {
		return nil, errs.ErrNoFiles
	}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		if strings.TrimSpace(f) == "" {
			continue
		}
		url, err := s.images.Upload(ctx, f)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "UploadService.Upload").Int("index", i).Msg("file upload failed")
			continue
		}
		urls = append(urls, url)
	}

	if len(urls) == 0 {
		return nil, errs.ErrUploadFailed
	}
	return urls, nil
}
