// Package imagestore talks to the remote image host.
package imagestore

import (
	"context"
	"net/url"
	"path"
	"strings"

	"storefront/internal/errs"
)

// Store uploads and deletes product images on the remote host.
type Store interface {
	// Upload sends raw or base64 (data URI) content and returns the public URL.
	Upload(ctx context.Context, content string) (string, error)
	// Delete removes a previously uploaded image by its public identifier.
	Delete(ctx context.Context, publicID string) error
}

// Disabled is used when no image host is configured; every call fails with
// errs.ErrImageStoreNotConfigured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string) (string, error) {
	return "", errs.ErrImageStoreNotConfigured
}

func (Disabled) Delete(context.Context, string) error {
	return errs.ErrImageStoreNotConfigured
}

// PublicID derives the host identifier of an uploaded image from its URL:
// the last path segment without extension, prefixed with folder.
// It reports false when no identifier can be derived.
func PublicID(rawURL, folder string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return "", false
	}
	name := path.Base(p)
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "/" || name == "." {
		return "", false
	}

	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name, true
	}
	return folder + "/" + name, true
}
