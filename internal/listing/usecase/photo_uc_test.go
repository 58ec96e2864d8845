package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitybook/listing-service/internal/listing/domain"
	"github.com/communitybook/listing-service/internal/platform/logger"
)

type fakePhotoArchive struct {
	stored map[string][]byte
	err    error
}

func (a *fakePhotoArchive) Store(ctx context.Context, listingID string, data []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if a.stored == nil {
		a.stored = make(map[string][]byte)
	}
	a.stored[listingID] = data
	return "archive/" + listingID, nil
}

func TestCreateWithPhoto_StampsPhotoURLWithGeneratedID(t *testing.T) {
	repo := newFakeListingRepo()
	archive := &fakePhotoArchive{}
	uc := NewPhotoUsecase(repo, archive, logger.NewLogger())

	jpeg := []byte{0xFF, 0xD8, 0x01, 0x02}
	l := sellListing("Dune", "Herbert", "alice", 15.99)
	l.PhotoURL = "" // caller supplies no URL; the usecase owns the placeholder

	created, err := uc.CreateWithPhoto(context.Background(), l, jpeg)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, fmt.Sprintf("/api/v1/books/%s/photo", created.ID), created.PhotoURL)
	assert.NotContains(t, created.PhotoURL, "pending")

	// Two-step commit: one create plus one update to stamp the URL.
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 1, repo.updateCalls)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.PhotoURL, stored.PhotoURL)
	assert.Equal(t, jpeg, stored.PhotoData)
	assert.Equal(t, jpeg, archive.stored[created.ID])
}

func TestCreateWithPhoto_InvalidListingNeverPersisted(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewPhotoUsecase(repo, nil, logger.NewLogger())

	l := sellListing("", "Herbert", "alice", 15.99)
	_, err := uc.CreateWithPhoto(context.Background(), l, []byte{0xFF, 0xD8, 0x01, 0x02})
	assert.Equal(t, domain.ErrMissingTitle, err)
	assert.Zero(t, repo.createCalls)
}

func TestCreateWithPhoto_ArchiveFailureIsNotFatal(t *testing.T) {
	repo := newFakeListingRepo()
	archive := &fakePhotoArchive{err: errors.New("minio unreachable")}
	uc := NewPhotoUsecase(repo, archive, logger.NewLogger())

	created, err := uc.CreateWithPhoto(context.Background(), sellListing("Dune", "Herbert", "alice", 15.99), []byte{0xFF, 0xD8, 0x01, 0x02})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestGetPhoto_SniffsContentType(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewPhotoUsecase(repo, nil, logger.NewLogger())

	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}
	created, err := uc.CreateWithPhoto(context.Background(), sellListing("Dune", "Herbert", "alice", 15.99), png)
	require.NoError(t, err)

	data, contentType, err := uc.GetPhoto(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, png, data)
	assert.Equal(t, domain.MimePNG, contentType)
}

func TestGetPhoto_NoDataIsNotFound(t *testing.T) {
	repo := newFakeListingRepo()
	listingUC := NewListingUsecase(repo, logger.NewLogger())
	uc := NewPhotoUsecase(repo, nil, logger.NewLogger())

	created, err := listingUC.Create(context.Background(), sellListing("Dune", "Herbert", "alice", 15.99))
	require.NoError(t, err)

	_, _, err = uc.GetPhoto(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
}

func TestGetPhoto_MissingListing(t *testing.T) {
	uc := NewPhotoUsecase(newFakeListingRepo(), nil, logger.NewLogger())

	_, _, err := uc.GetPhoto(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}
