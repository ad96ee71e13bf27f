package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"storefront/internal/errs"
	"storefront/internal/imagestore"
	"storefront/internal/models"
	"storefront/internal/repository"
)

// ProductInput: текстовые поля товара, которые меняются вместе с картинками.
type ProductInput struct {
	Name        string
	Description string
	Specs       *string
}

// Reconciler moves a product's image set from its stored state to the state
// requested by an admin and keeps the image host consistent with it.
//
// New images are uploaded before anything is persisted. If an upload or the
// database write fails, the uploads made in that attempt are deleted again and
// the original error is returned. Images dropped from the product are deleted
// only after the row is saved; those deletions are best-effort and failures
// are queued for the retry sweep.
type Reconciler struct {
	products repository.ProductRepository
	images   imagestore.Store
	pending  repository.PendingDeletionRepository
	folder   string
}

func NewReconciler(products repository.ProductRepository, images imagestore.Store, pending repository.PendingDeletionRepository, folder string) *Reconciler {
	return &Reconciler{products: products, images: images, pending: pending, folder: folder}
}

// ReconcileUpdate applies in to the product and makes its images equal to
// keepURLs (in caller order, limited to the product's current images)
// followed by the uploads of payloads (in submission order).
func (r *Reconciler) ReconcileUpdate(ctx context.Context, id uint, in ProductInput, keepURLs, payloads []string) (models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" || in.Description == "" {
		return models.Product{}, errs.ErrMissingFields
	}

	current, err := r.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	kept := keepSubset(current.Images, keepURLs)
	fresh := nonBlank(payloads)
	if len(kept) == 0 && len(fresh) == 0 {
		return models.Product{}, errs.ErrNoImages
	}

	uploaded, err := r.uploadAll(ctx, fresh)
	if err != nil {
		r.deleteImages(ctx, id, uploaded)
		return models.Product{}, err
	}

	final := make([]string, 0, len(kept)+len(uploaded))
	final = append(final, kept...)
	final = append(final, uploaded...)

	updated, err := r.products.UpdateFields(ctx, id, repository.ProductFields{
		Name:        in.Name,
		Description: in.Description,
		Specs:       in.Specs,
		Images:      final,
	})
	if err != nil {
		r.deleteImages(ctx, id, uploaded)
		return models.Product{}, fmt.Errorf("save product %d: %w", id, err)
	}

	r.deleteImages(ctx, id, difference(current.Images, kept))
	return updated, nil
}

// ReconcileDelete removes every image of the product from the host
// (best-effort) and then deletes the product row.
func (r *Reconciler) ReconcileDelete(ctx context.Context, id uint) error {
	current, err := r.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	r.deleteImages(ctx, id, current.Images)

	if err := r.products.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// uploadAll stops at the first failure and returns the URLs uploaded so far.
func (r *Reconciler) uploadAll(ctx context.Context, payloads []string) ([]string, error) {
	urls := make([]string, 0, len(payloads))
	for i, p := range payloads {
		url, err := r.images.Upload(ctx, p)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "Reconciler.uploadAll").Int("index", i).Msg("image upload failed")
			return urls, fmt.Errorf("%w: image %d: %w", errs.ErrUploadFailed, i, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (r *Reconciler) deleteImages(ctx context.Context, productID uint, urls []string) {
	for _, url := range urls {
		publicID, ok := imagestore.PublicID(url, r.folder)
		if !ok {
			log.Ctx(ctx).Warn().Str("component", "Reconciler.deleteImages").Uint("product_id", productID).Str("url", url).Msg("cannot derive public id, skipping")
			continue
		}
		if err := r.images.Delete(ctx, publicID); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "Reconciler.deleteImages").Uint("product_id", productID).Str("public_id", publicID).Msg("image delete failed")
			r.queueRetry(ctx, publicID, err)
		}
	}
}

func (r *Reconciler) queueRetry(ctx context.Context, publicID string, cause error) {
	if r.pending == nil {
		return
	}
	if err := r.pending.Add(context.WithoutCancel(ctx), publicID, cause.Error()); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Reconciler.queueRetry").Str("public_id", publicID).Msg("")
	}
}

// keepSubset returns the entries of keep that are present in current,
// without duplicates, in the order of keep.
func keepSubset(current, keep []string) []string {
	have := make(map[string]struct{}, len(current))
	for _, u := range current {
		have[u] = struct{}{}
	}
	out := make([]string, 0, len(keep))
	seen := make(map[string]struct{}, len(keep))
	for _, u := range keep {
		if _, ok := have[u]; !ok {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// difference returns a − b by exact string match, in the order of a.
func difference(a, b []string) []string {
	drop := make(map[string]struct{}, len(b))
	for _, u := range b {
		drop[u] = struct{}{}
	}
	var out []string
	for _, u := range a {
		if _, ok := drop[u]; !ok {
			out = append(out, u)
		}
	}
	return out
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
