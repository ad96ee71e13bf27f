package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/errs"
)

func TestUploadService_NoFiles(t *testing.T) {
	store := new(mockStore)
	_, err := NewUploadService(store).Upload(context.Background(), nil)

	assert.ErrorIs(t, err, errs.ErrNoFiles)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUploadService_SkipsFailures(t *testing.T) {
	store := new(mockStore)
	store.On("Upload", mock.Anything, "one").Return(urlA, nil).Once()
	store.On("Upload", mock.Anything, "two").Return("", errors.New("rejected")).Once()
	store.On("Upload", mock.Anything, "three").Return(urlB, nil).Once()

	urls, err := NewUploadService(store).Upload(context.Background(), []string{"one", "", "two", "three"})

	require.NoError(t, err)
	assert.Equal(t, []string{urlA, urlB}, urls)
	store.AssertExpectations(t)
}

func TestUploadService_AllFailed(t *testing.T) {
	store := new(mockStore)
	store.On("Upload", mock.Anything, mock.Anything).Return("", errors.New("down"))

	_, err := NewUploadService(store).Upload(context.Background(), []string{"one", "two"})

	assert.ErrorIs(t, err, errs.ErrUploadFailed)
	store.AssertNumberOfCalls(t, "Upload", 2)
}
