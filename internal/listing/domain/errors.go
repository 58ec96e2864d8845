package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrPhotoNotFound   = errors.New("photo not found")
)

// ValidationError is a business-rule violation. Each value carries the
// message served to the caller verbatim, so API adapters can use it as
// the error body without rewording.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrMissingPhoto       ValidationError = "a photo is required for each book post"
	ErrMissingContactInfo ValidationError = "contact information is required"
	ErrMissingTitle       ValidationError = "book title is required"
	ErrMissingAuthor      ValidationError = "author is required"
	ErrMissingOwnerName   ValidationError = "owner name is required"
	ErrMissingType        ValidationError = "book type is required"
	ErrInvalidType        ValidationError = "book type must be SELL or GIVEAWAY"
	ErrInvalidPrice       ValidationError = "price must be provided and non-negative for books for sale"

	ErrTitleTooLong         ValidationError = "book title must be at most 255 characters"
	ErrAuthorTooLong        ValidationError = "author must be at most 255 characters"
	ErrPhotoURLTooLong      ValidationError = "photo url must be at most 500 characters"
	ErrDescriptionTooLong   ValidationError = "description must be at most 1000 characters"
	ErrOwnerNameTooLong     ValidationError = "owner name must be at most 255 characters"
	ErrContactMethodTooLong ValidationError = "contact method must be at most 10 characters"
	ErrContactInfoTooLong   ValidationError = "contact information must be at most 255 characters"
)
