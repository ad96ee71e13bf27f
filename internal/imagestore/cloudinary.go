package imagestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"

	"storefront/internal/config"
	"storefront/internal/errs"
)

// uploadAPI is the part of the Cloudinary SDK the store uses.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// ErrRejected marks a request the host refused (bad payload, unknown id).
// Rejections do not count against the circuit breakers.
var ErrRejected = errors.New("cloudinary: request rejected")

// Unavailable reports whether err came from an open breaker, i.e. the host
// was not called at all.
func Unavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Cloudinary keeps separate breakers for uploads and deletes so failing
// cleanup never blocks new uploads.
type Cloudinary struct {
	api           uploadAPI
	folder        string
	uploadBreaker *gobreaker.CircuitBreaker[string]
	deleteBreaker *gobreaker.CircuitBreaker[string]
}

// NewCloudinary builds a Store backed by Cloudinary.
func NewCloudinary(conf config.CloudinaryConfig) (*Cloudinary, error) {
	if !conf.Enabled() {
		return nil, errs.ErrImageStoreNotConfigured
	}
	cld, err := cloudinary.NewFromParams(conf.CloudName, conf.APIKey, conf.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return newCloudinary(&cld.Upload, conf.Folder), nil
}

func newCloudinary(api uploadAPI, folder string) *Cloudinary {
	return &Cloudinary{
		api:           api,
		folder:        folder,
		uploadBreaker: newBreaker("cloudinary-upload"),
		deleteBreaker: newBreaker("cloudinary-destroy"),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker[string] {
	var st gobreaker.Settings
	st.Name = name
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, ErrRejected)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn().Str("component", "imagestore").Str("breaker", name).
			Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
	}
	return gobreaker.NewCircuitBreaker[string](st)
}

// Folder is the namespace uploads go into; PublicID uses it for deletion.
func (c *Cloudinary) Folder() string {
	return c.folder
}

func (c *Cloudinary) Upload(ctx context.Context, content string) (string, error) {
	return c.uploadBreaker.Execute(func() (string, error) {
		res, err := c.api.Upload(ctx, content, uploader.UploadParams{Folder: c.folder})
		if err != nil {
			return "", err
		}
		if res == nil {
			return "", errors.New("cloudinary: empty upload response")
		}
		if res.Error.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrRejected, res.Error.Message)
		}
		if res.SecureURL == "" {
			return "", errors.New("cloudinary: upload returned no url")
		}
		return res.SecureURL, nil
	})
}

func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	_, err := c.deleteBreaker.Execute(func() (string, error) {
		res, err := c.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
		if err != nil {
			return "", err
		}
		if res == nil {
			return "", errors.New("cloudinary: empty destroy response")
		}
		if res.Error.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrRejected, res.Error.Message)
		}
		// "not found": картинки уже нет, это не ошибка
		if res.Result != "ok" && res.Result != "not found" {
			return "", fmt.Errorf("cloudinary: destroy %s: %s", publicID, res.Result)
		}
		return res.Result, nil
	})
	return err
}
