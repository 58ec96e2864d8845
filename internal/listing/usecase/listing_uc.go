package usecase

import (
	"context"

	"github.com/communitybook/listing-service/internal/listing/domain"
	"github.com/communitybook/listing-service/internal/platform/logger"
)

// ListingUsecase gates every write through domain.Validate before it reaches
// the store and maps store misses onto domain.ErrListingNotFound.
type ListingUsecase struct {
	repo   domain.ListingRepository
	logger *logger.Logger
}

func NewListingUsecase(repo domain.ListingRepository, log *logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:   repo,
		logger: log,
	}
}

func (uc *ListingUsecase) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	uc.logger.Info("ListingUsecase.Create: creating listing",
		"title", listing.Title, "owner", listing.OwnerName, "type", string(listing.Type))

	if err := domain.Validate(listing); err != nil {
		uc.logger.Warn("ListingUsecase.Create: validation failed", "title", listing.Title, "error", err.Error())
		return nil, err
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("ListingUsecase.Create: failed to persist listing", "title", listing.Title, "error", err.Error())
		return nil, err
	}
	return listing, nil
}

func (uc *ListingUsecase) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Warn("ListingUsecase.GetByID: failed to find listing", "listing_id", id, "error", err.Error())
		return nil, err
	}
	return listing, nil
}

// Update replaces every mutable field of the stored record with the
// corresponding value from the replacement. ID and CreatedAt are preserved,
// and the embedded photo bytes survive a plain field update.
func (uc *ListingUsecase) Update(ctx context.Context, id string, replacement *domain.Listing) (*domain.Listing, error) {
	uc.logger.Info("ListingUsecase.Update: updating listing", "listing_id", id)

	if err := domain.Validate(replacement); err != nil {
		uc.logger.Warn("ListingUsecase.Update: validation failed", "listing_id", id, "error", err.Error())
		return nil, err
	}

	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Warn("ListingUsecase.Update: failed to find listing", "listing_id", id, "error", err.Error())
		return nil, err
	}

	existing.Title = replacement.Title
	existing.Author = replacement.Author
	existing.PhotoURL = replacement.PhotoURL
	existing.Price = replacement.Price
	existing.Type = replacement.Type
	existing.Description = replacement.Description
	existing.OwnerName = replacement.OwnerName
	existing.ContactMethod = replacement.ContactMethod
	existing.ContactInfo = replacement.ContactInfo

	if err := uc.repo.Update(ctx, existing); err != nil {
		uc.logger.Error("ListingUsecase.Update: failed to persist listing", "listing_id", id, "error", err.Error())
		return nil, err
	}
	return existing, nil
}

// Delete is check-then-delete: a missing id surfaces as ErrListingNotFound
// and the store delete is never reached.
func (uc *ListingUsecase) Delete(ctx context.Context, id string) error {
	uc.logger.Info("ListingUsecase.Delete: deleting listing", "listing_id", id)

	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		uc.logger.Warn("ListingUsecase.Delete: failed to find listing", "listing_id", id, "error", err.Error())
		return err
	}

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		uc.logger.Error("ListingUsecase.Delete: failed to delete listing", "listing_id", id, "error", err.Error())
		return err
	}
	if !deleted {
		return domain.ErrListingNotFound
	}
	return nil
}

func (uc *ListingUsecase) ListAll(ctx context.Context) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindAllByCreatedDesc(ctx)
	if err != nil {
		uc.logger.Error("ListingUsecase.ListAll: failed to list listings", "error", err.Error())
		return nil, err
	}
	return listings, nil
}

func (uc *ListingUsecase) FilterByType(ctx context.Context, t domain.ListingType) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindByType(ctx, t)
	if err != nil {
		uc.logger.Error("ListingUsecase.FilterByType: failed to filter listings", "type", string(t), "error", err.Error())
		return nil, err
	}
	return listings, nil
}

// FilterByOwner matches the opaque owner identifier exactly; whether it holds
// a display name or an email address is up to the deployment.
func (uc *ListingUsecase) FilterByOwner(ctx context.Context, owner string) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindByOwner(ctx, owner)
	if err != nil {
		uc.logger.Error("ListingUsecase.FilterByOwner: failed to filter listings", "owner", owner, "error", err.Error())
		return nil, err
	}
	return listings, nil
}

func (uc *ListingUsecase) Search(ctx context.Context, term string) ([]*domain.Listing, error) {
	listings, err := uc.repo.SearchTitleOrAuthor(ctx, term)
	if err != nil {
		uc.logger.Error("ListingUsecase.Search: failed to search listings", "term", term, "error", err.Error())
		return nil, err
	}
	return listings, nil
}
