package domain

import (
	"strings"
	"unicode/utf8"
)

// Validate gates every create and update. Checks run in a fixed order and
// stop at the first failure, so exactly one rule message surfaces per call.
func Validate(l *Listing) error {
	if isBlank(l.PhotoURL) {
		return ErrMissingPhoto
	}
	if isBlank(l.ContactInfo) {
		return ErrMissingContactInfo
	}
	if isBlank(l.Title) {
		return ErrMissingTitle
	}
	if isBlank(l.Author) {
		return ErrMissingAuthor
	}
	if isBlank(l.OwnerName) {
		return ErrMissingOwnerName
	}
	if l.Type == "" {
		return ErrMissingType
	}
	if l.Type != TypeSell && l.Type != TypeGiveaway {
		return ErrInvalidType
	}
	// Price is only a SELL concern; a giveaway may carry anything or nothing.
	if l.Type == TypeSell && (l.Price == nil || *l.Price < 0) {
		return ErrInvalidPrice
	}

	if utf8.RuneCountInString(l.Title) > 255 {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(l.Author) > 255 {
		return ErrAuthorTooLong
	}
	if utf8.RuneCountInString(l.PhotoURL) > 500 {
		return ErrPhotoURLTooLong
	}
	if utf8.RuneCountInString(l.Description) > 1000 {
		return ErrDescriptionTooLong
	}
	if utf8.RuneCountInString(l.OwnerName) > 255 {
		return ErrOwnerNameTooLong
	}
	if utf8.RuneCountInString(l.ContactMethod) > 10 {
		return ErrContactMethodTooLong
	}
	if utf8.RuneCountInString(l.ContactInfo) > 255 {
		return ErrContactInfoTooLong
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
