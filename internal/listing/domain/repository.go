package domain

import "context"

// ListingRepository is the persistence contract for listings. The store owns
// identity and timestamps: Create assigns ID, CreatedAt and UpdatedAt, Update
// refreshes UpdatedAt and must never touch CreatedAt.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	// Delete reports whether a record was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindAllByCreatedDesc(ctx context.Context) ([]*Listing, error)
	FindByType(ctx context.Context, t ListingType) ([]*Listing, error)
	FindByOwner(ctx context.Context, owner string) ([]*Listing, error)
	// SearchTitleOrAuthor matches listings whose title or author contains the
	// term, case-insensitive. An empty term matches every record.
	SearchTitleOrAuthor(ctx context.Context, term string) ([]*Listing, error)
}

// PhotoArchive mirrors uploaded photo bytes to object storage. The canonical
// copy stays embedded in the listing record; the archive is best-effort.
type PhotoArchive interface {
	Store(ctx context.Context, listingID string, data []byte) (string, error)
}
