package mongodb

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/communitybook/listing-service/internal/listing/domain"
)

// ListingRepository is the MongoDB-backed listing store. It owns identity and
// timestamps: documents get their ObjectID and both timestamps here, not from
// any persistence-framework hook.
type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection("listings")}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	listing.ID = doc.ID.Hex()
	return nil
}

// Update refreshes updated_at and replaces every field except _id and
// created_at.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	oid, err := primitive.ObjectIDFromHex(listing.ID)
	if err != nil {
		return domain.ErrListingNotFound
	}

	listing.UpdatedAt = time.Now().UTC()
	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":          listing.Title,
		"author":         listing.Author,
		"price":          listing.Price,
		"photo_url":      listing.PhotoURL,
		"photo_data":     listing.PhotoData,
		"type":           string(listing.Type),
		"description":    listing.Description,
		"owner_name":     listing.OwnerName,
		"contact_method": listing.ContactMethod,
		"contact_info":   listing.ContactInfo,
		"updated_at":     listing.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var doc listingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) FindAllByCreatedDesc(ctx context.Context) ([]*domain.Listing, error) {
	// Newest first; _id breaks ties for documents created in the same instant.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *ListingRepository) FindByType(ctx context.Context, t domain.ListingType) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"type": string(t)}, nil)
}

func (r *ListingRepository) FindByOwner(ctx context.Context, owner string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"owner_name": owner}, nil)
}

// SearchTitleOrAuthor does a case-insensitive substring match over title and
// author. The term is quoted so regex metacharacters in user input match
// literally; a blank term degenerates to an empty filter, matching all.
func (r *ListingRepository) SearchTitleOrAuthor(ctx context.Context, term string) ([]*domain.Listing, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.find(ctx, bson.M{}, nil)
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	query := bson.M{"$or": []bson.M{
		{"title": pattern},
		{"author": pattern},
	}}
	return r.find(ctx, query, nil)
}

func (r *ListingRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*domain.Listing, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, query, opts)
	} else {
		cursor, err = r.collection.Find(ctx, query)
	}
	if err != nil {
		return nil, err
	}

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return toDomainListings(docs), nil
}
