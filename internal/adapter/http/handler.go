package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/communitybook/listing-service/internal/adapter/messaging/nats"
	"github.com/communitybook/listing-service/internal/adapter/repository/cache"
	"github.com/communitybook/listing-service/internal/listing/domain"
	"github.com/communitybook/listing-service/internal/platform/logger"
)

var tracer = otel.Tracer("listing-service/http-handler")

// ListingService is what the HTTP layer needs from the listing usecase.
type ListingService interface {
	Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Update(ctx context.Context, id string, replacement *domain.Listing) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*domain.Listing, error)
	FilterByType(ctx context.Context, t domain.ListingType) ([]*domain.Listing, error)
	FilterByOwner(ctx context.Context, owner string) ([]*domain.Listing, error)
	Search(ctx context.Context, term string) ([]*domain.Listing, error)
}

// PhotoService is what the HTTP layer needs from the photo usecase.
type PhotoService interface {
	CreateWithPhoto(ctx context.Context, listing *domain.Listing, photo []byte) (*domain.Listing, error)
	GetPhoto(ctx context.Context, id string) ([]byte, string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

type Mailer interface {
	SendListingCreatedEmail(toEmail, listingTitle string) error
}

// Handler serves the /api/v1/books REST surface. Publisher, cache and mailer
// are optional collaborators; a nil value simply disables that side effect.
type Handler struct {
	listings  ListingService
	photos    PhotoService
	publisher EventPublisher
	cache     *cache.ListingCache
	mailer    Mailer
	logger    *logger.Logger
}

func NewHandler(
	listings ListingService,
	photos PhotoService,
	publisher EventPublisher,
	listingCache *cache.ListingCache,
	mail Mailer,
	log *logger.Logger,
) *Handler {
	return &Handler{
		listings:  listings,
		photos:    photos,
		publisher: publisher,
		cache:     listingCache,
		mailer:    mail,
		logger:    log,
	}
}

type bookRequest struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Price         *float64 `json:"price"`
	PhotoURL      string   `json:"photoUrl"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	OwnerName     string   `json:"ownerName"`
	ContactMethod string   `json:"contactMethod"`
	ContactInfo   string   `json:"contactInfo"`
}

func (r *bookRequest) toDomain() *domain.Listing {
	// The raw type string flows into Validate as-is so that a missing or
	// unknown type surfaces through the same ordered rule set.
	return &domain.Listing{
		Title:         r.Title,
		Author:        r.Author,
		Price:         r.Price,
		PhotoURL:      r.PhotoURL,
		Type:          domain.ListingType(r.Type),
		Description:   r.Description,
		OwnerName:     r.OwnerName,
		ContactMethod: r.ContactMethod,
		ContactInfo:   r.ContactInfo,
	}
}

type bookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Price         *float64  `json:"price,omitempty"`
	PhotoURL      string    `json:"photoUrl"`
	Type          string    `json:"type"`
	Description   string    `json:"description,omitempty"`
	OwnerName     string    `json:"ownerName"`
	ContactMethod string    `json:"contactMethod"`
	ContactInfo   string    `json:"contactInfo"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toBookResponse(l *domain.Listing) *bookResponse {
	if l == nil {
		return nil
	}
	return &bookResponse{
		ID:            l.ID,
		Title:         l.Title,
		Author:        l.Author,
		Price:         l.Price,
		PhotoURL:      l.PhotoURL,
		Type:          string(l.Type),
		Description:   l.Description,
		OwnerName:     l.OwnerName,
		ContactMethod: l.ContactMethod,
		ContactInfo:   l.ContactInfo,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toBookResponses(listings []*domain.Listing) []*bookResponse {
	out := make([]*bookResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toBookResponse(l))
	}
	return out
}

// writeError maps domain errors onto HTTP statuses: rule violations are the
// caller's fault, not-found is its own condition, everything else is opaque.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	var ve domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrPhotoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(op+": unexpected failure", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) publishEvent(ctx context.Context, subject string, listing *domain.Listing) {
	if h.publisher == nil {
		return
	}
	payload := map[string]string{"id": listing.ID, "owner": listing.OwnerName, "type": string(listing.Type)}
	if err := h.publisher.Publish(ctx, subject, payload); err != nil {
		h.logger.Warn("Handler: event publish failed", "subject", subject, "listing_id", listing.ID, "error", err.Error())
	}
}

func (h *Handler) notifyOwner(listing *domain.Listing) {
	if h.mailer == nil || !strings.EqualFold(listing.ContactMethod, "email") {
		return
	}
	if err := h.mailer.SendListingCreatedEmail(listing.ContactInfo, listing.Title); err != nil {
		h.logger.Warn("Handler: owner notification failed", "listing_id", listing.ID, "error", err.Error())
	}
}

func (h *Handler) cacheSet(ctx context.Context, listing *domain.Listing) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SetListing(ctx, listing); err != nil {
		h.logger.Warn("Handler: cache set failed", "listing_id", listing.ID, "error", err.Error())
	}
}

func (h *Handler) cacheDelete(ctx context.Context, id string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.DeleteListing(ctx, id); err != nil {
		h.logger.Warn("Handler: cache delete failed", "listing_id", id, "error", err.Error())
	}
}

// ListBooks handles GET /api/v1/books.
func (h *Handler) ListBooks(c *gin.Context) {
	listings, err := h.listings.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, "ListBooks", err)
		return
	}
	c.JSON(http.StatusOK, toBookResponses(listings))
}

// GetBook handles GET /api/v1/books/:id, cache-aside.
func (h *Handler) GetBook(c *gin.Context) {
	id := c.Param("id")
	ctx, span := tracer.Start(c.Request.Context(), "Handler.GetBook", oteltrace.WithAttributes(
		attribute.String("listing_id", id),
	))
	defer span.End()

	if h.cache != nil {
		cached, err := h.cache.GetListing(ctx, id)
		if err != nil {
			h.logger.Warn("GetBook: cache lookup failed", "listing_id", id, "error", err.Error())
		} else if cached != nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			c.JSON(http.StatusOK, toBookResponse(cached))
			return
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	listing, err := h.listings.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		h.writeError(c, "GetBook", err)
		return
	}

	h.cacheSet(ctx, listing)
	c.JSON(http.StatusOK, toBookResponse(listing))
}

// CreateBook handles POST /api/v1/books with a JSON body.
func (h *Handler) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := tracer.Start(c.Request.Context(), "Handler.CreateBook", oteltrace.WithAttributes(
		attribute.String("title", req.Title),
		attribute.String("type", req.Type),
	))
	defer span.End()

	listing, err := h.listings.Create(ctx, req.toDomain())
	if err != nil {
		span.RecordError(err)
		h.writeError(c, "CreateBook", err)
		return
	}
	span.SetAttributes(attribute.String("created_listing_id", listing.ID))

	h.cacheSet(ctx, listing)
	h.publishEvent(ctx, nats.SubjectBookCreated, listing)
	h.notifyOwner(listing)

	h.logger.Info("CreateBook: successful", "listing_id", listing.ID, "owner", listing.OwnerName)
	c.JSON(http.StatusCreated, toBookResponse(listing))
}

// UploadBook handles POST /api/v1/books/upload: a multipart request with a
// "book" JSON part and a "photo" file part. The final photoUrl references
// the generated id, never the placeholder.
func (h *Handler) UploadBook(c *gin.Context) {
	bookPart := c.PostForm("book")
	if bookPart == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "book part is required"})
		return
	}
	var req bookRequest
	if err := json.Unmarshal([]byte(bookPart), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "book part is not valid JSON"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open photo file"})
		return
	}
	defer file.Close()
	photo, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read photo file"})
		return
	}

	ctx, span := tracer.Start(c.Request.Context(), "Handler.UploadBook", oteltrace.WithAttributes(
		attribute.String("title", req.Title),
		attribute.Int("photo_bytes", len(photo)),
	))
	defer span.End()

	listing, err := h.photos.CreateWithPhoto(ctx, req.toDomain(), photo)
	if err != nil {
		span.RecordError(err)
		h.writeError(c, "UploadBook", err)
		return
	}
	span.SetAttributes(attribute.String("created_listing_id", listing.ID))

	h.cacheSet(ctx, listing)
	h.publishEvent(ctx, nats.SubjectBookCreated, listing)
	h.notifyOwner(listing)

	h.logger.Info("UploadBook: successful", "listing_id", listing.ID, "photo_url", listing.PhotoURL)
	c.JSON(http.StatusCreated, toBookResponse(listing))
}

// UpdateBook handles PUT /api/v1/books/:id with a full replacement body.
func (h *Handler) UpdateBook(c *gin.Context) {
	id := c.Param("id")
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := tracer.Start(c.Request.Context(), "Handler.UpdateBook", oteltrace.WithAttributes(
		attribute.String("listing_id", id),
	))
	defer span.End()

	listing, err := h.listings.Update(ctx, id, req.toDomain())
	if err != nil {
		span.RecordError(err)
		h.writeError(c, "UpdateBook", err)
		return
	}

	h.cacheSet(ctx, listing)
	h.publishEvent(ctx, nats.SubjectBookUpdated, listing)

	h.logger.Info("UpdateBook: successful", "listing_id", listing.ID)
	c.JSON(http.StatusOK, toBookResponse(listing))
}

// DeleteBook handles DELETE /api/v1/books/:id.
func (h *Handler) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	ctx, span := tracer.Start(c.Request.Context(), "Handler.DeleteBook", oteltrace.WithAttributes(
		attribute.String("listing_id", id),
	))
	defer span.End()

	if err := h.listings.Delete(ctx, id); err != nil {
		span.RecordError(err)
		h.writeError(c, "DeleteBook", err)
		return
	}

	h.cacheDelete(ctx, id)
	h.publishEvent(ctx, nats.SubjectBookDeleted, &domain.Listing{ID: id})

	h.logger.Info("DeleteBook: successful", "listing_id", id)
	c.Status(http.StatusNoContent)
}

// GetBooksByType handles GET /api/v1/books/type/:type.
func (h *Handler) GetBooksByType(c *gin.Context) {
	t, err := domain.ParseListingType(c.Param("type"))
	if err != nil {
		h.writeError(c, "GetBooksByType", err)
		return
	}

	listings, err := h.listings.FilterByType(c.Request.Context(), t)
	if err != nil {
		h.writeError(c, "GetBooksByType", err)
		return
	}
	c.JSON(http.StatusOK, toBookResponses(listings))
}

// GetBooksByOwner handles GET /api/v1/books/owner/:owner. The owner segment
// is an opaque identifier matched exactly.
func (h *Handler) GetBooksByOwner(c *gin.Context) {
	listings, err := h.listings.FilterByOwner(c.Request.Context(), c.Param("owner"))
	if err != nil {
		h.writeError(c, "GetBooksByOwner", err)
		return
	}
	c.JSON(http.StatusOK, toBookResponses(listings))
}

// SearchBooks handles GET /api/v1/books/search?query=term.
func (h *Handler) SearchBooks(c *gin.Context) {
	term := c.Query("query")
	ctx, span := tracer.Start(c.Request.Context(), "Handler.SearchBooks", oteltrace.WithAttributes(
		attribute.String("query", term),
	))
	defer span.End()

	listings, err := h.listings.Search(ctx, term)
	if err != nil {
		span.RecordError(err)
		h.writeError(c, "SearchBooks", err)
		return
	}
	span.SetAttributes(attribute.Int("result_count", len(listings)))
	c.JSON(http.StatusOK, toBookResponses(listings))
}

// GetBookPhoto handles GET /api/v1/books/:id/photo, serving the embedded
// bytes under their sniffed content type.
func (h *Handler) GetBookPhoto(c *gin.Context) {
	id := c.Param("id")
	data, contentType, err := h.photos.GetPhoto(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "GetBookPhoto", err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
