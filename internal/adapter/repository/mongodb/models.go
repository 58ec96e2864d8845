package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/communitybook/listing-service/internal/listing/domain"
)

// listingDocument is the persisted shape of a domain.Listing.
type listingDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	Price         *float64           `bson:"price,omitempty"`
	PhotoURL      string             `bson:"photo_url"`
	PhotoData     []byte             `bson:"photo_data,omitempty"`
	Type          string             `bson:"type"`
	Description   string             `bson:"description,omitempty"`
	OwnerName     string             `bson:"owner_name"`
	ContactMethod string             `bson:"contact_method"`
	ContactInfo   string             `bson:"contact_info"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("toListingDocument: invalid listing id %q: %w", l.ID, err)
		}
	}

	return &listingDocument{
		ID:            docID,
		Title:         l.Title,
		Author:        l.Author,
		Price:         l.Price,
		PhotoURL:      l.PhotoURL,
		PhotoData:     l.PhotoData,
		Type:          string(l.Type),
		Description:   l.Description,
		OwnerName:     l.OwnerName,
		ContactMethod: l.ContactMethod,
		ContactInfo:   l.ContactInfo,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	if d == nil {
		return nil
	}
	return &domain.Listing{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Author:        d.Author,
		Price:         d.Price,
		PhotoURL:      d.PhotoURL,
		PhotoData:     d.PhotoData,
		Type:          domain.ListingType(d.Type),
		Description:   d.Description,
		OwnerName:     d.OwnerName,
		ContactMethod: d.ContactMethod,
		ContactInfo:   d.ContactInfo,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDomainListing(doc))
	}
	return out
}
