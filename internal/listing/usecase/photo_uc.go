package usecase

import (
	"context"
	"fmt"

	"github.com/communitybook/listing-service/internal/listing/domain"
	"github.com/communitybook/listing-service/internal/platform/logger"
)

// placeholderPhotoURL fills the required photoUrl field while the record has
// no id yet. It is rewritten before the final record is returned and must
// never escape to a caller.
const placeholderPhotoURL = "/api/v1/books/pending/photo"

// PhotoUsecase owns the photo paths: the create-with-photo double write and
// serving embedded photo bytes with a sniffed content type.
type PhotoUsecase struct {
	repo    domain.ListingRepository
	archive domain.PhotoArchive // optional mirror, may be nil
	logger  *logger.Logger
}

func NewPhotoUsecase(repo domain.ListingRepository, archive domain.PhotoArchive, log *logger.Logger) *PhotoUsecase {
	return &PhotoUsecase{repo: repo, archive: archive, logger: log}
}

// CreateWithPhoto attaches the raw bytes, validates against a placeholder
// photo URL, persists, then rewrites the URL to reference the store-assigned
// id and persists again. The second write is intentional: the URL cannot
// embed an id that does not exist yet.
func (uc *PhotoUsecase) CreateWithPhoto(ctx context.Context, listing *domain.Listing, photo []byte) (*domain.Listing, error) {
	uc.logger.Info("PhotoUsecase.CreateWithPhoto: creating listing with photo",
		"title", listing.Title, "photo_bytes", len(photo))

	listing.PhotoData = photo
	listing.PhotoURL = placeholderPhotoURL

	if err := domain.Validate(listing); err != nil {
		uc.logger.Warn("PhotoUsecase.CreateWithPhoto: validation failed", "title", listing.Title, "error", err.Error())
		return nil, err
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("PhotoUsecase.CreateWithPhoto: failed to persist listing", "title", listing.Title, "error", err.Error())
		return nil, err
	}

	listing.PhotoURL = fmt.Sprintf("/api/v1/books/%s/photo", listing.ID)
	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("PhotoUsecase.CreateWithPhoto: failed to stamp photo url", "listing_id", listing.ID, "error", err.Error())
		return nil, err
	}

	if uc.archive != nil {
		if _, err := uc.archive.Store(ctx, listing.ID, photo); err != nil {
			uc.logger.Warn("PhotoUsecase.CreateWithPhoto: photo archive mirror failed", "listing_id", listing.ID, "error", err.Error())
		}
	}

	return listing, nil
}

// GetPhoto returns the embedded photo bytes and their sniffed MIME type.
// A missing listing or a listing without photo bytes both signal not-found.
func (uc *PhotoUsecase) GetPhoto(ctx context.Context, id string) ([]byte, string, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Warn("PhotoUsecase.GetPhoto: failed to find listing", "listing_id", id, "error", err.Error())
		return nil, "", err
	}
	if len(listing.PhotoData) == 0 {
		return nil, "", domain.ErrPhotoNotFound
	}
	return listing.PhotoData, domain.DetectPhotoContentType(listing.PhotoData), nil
}
