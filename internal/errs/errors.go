package errs

import (
	"errors"
	"net/http"
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrInvalidProductID        = errors.New("Invalid product ID")
	ErrMissingFields           = errors.New("Missing required fields")
	ErrNoValidImages           = errors.New("No valid images provided")
	ErrNoImages                = errors.New("Product must have at least one image")
	ErrNoFiles                 = errors.New("No files provided")
	ErrInvalidSetting          = errors.New("Invalid key or value")
	ErrInvalidRequest          = errors.New("Bad request")
	ErrUnauthorized            = errors.New("Unauthorized")
	ErrInvalidCredentials      = errors.New("Invalid email or password")
	ErrProductNotFound         = errors.New("Product not found")
	ErrAccountNotFound         = errors.New("Account not found")
	ErrUploadFailed            = errors.New("Upload failed")
	ErrImageStoreNotConfigured = errors.New("Image storage not configured")
)

// порядок важен: первое совпадение по errors.Is определяет ответ
var errorStatus = []struct {
	err    error
	status int
}{
	{ErrInvalidProductID, http.StatusBadRequest},
	{ErrMissingFields, http.StatusBadRequest},
	{ErrNoValidImages, http.StatusBadRequest},
	{ErrNoImages, http.StatusBadRequest},
	{ErrNoFiles, http.StatusBadRequest},
	{ErrInvalidSetting, http.StatusBadRequest},
	{ErrInvalidRequest, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrProductNotFound, http.StatusNotFound},
	{ErrAccountNotFound, http.StatusNotFound},
	{ErrUploadFailed, http.StatusInternalServerError},
	{ErrImageStoreNotConfigured, http.StatusInternalServerError},
}

// StatusCode returns the HTTP status for err; unknown errors are 500.
func StatusCode(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing text for err. Wrapped causes are never
// exposed, only the matching sentinel's text.
func Message(err error) string {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.err.Error()
		}
	}
	return ErrInternalServer.Error()
}
