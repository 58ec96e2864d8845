package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSellListing() *Listing {
	price := 15.99
	return &Listing{
		Title:         "Dune",
		Author:        "Herbert",
		Price:         &price,
		PhotoURL:      "/api/v1/books/1/photo",
		Type:          TypeSell,
		Description:   "Classic sci-fi, good condition",
		OwnerName:     "Alice",
		ContactMethod: "email",
		ContactInfo:   "alice@example.com",
	}
}

func TestValidate_ValidListing(t *testing.T) {
	assert.NoError(t, Validate(validSellListing()))
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Listing)
		wantErr ValidationError
	}{
		{"missing photo url", func(l *Listing) { l.PhotoURL = "" }, ErrMissingPhoto},
		{"whitespace photo url", func(l *Listing) { l.PhotoURL = "   " }, ErrMissingPhoto},
		{"missing contact info", func(l *Listing) { l.ContactInfo = "" }, ErrMissingContactInfo},
		{"missing title", func(l *Listing) { l.Title = "" }, ErrMissingTitle},
		{"whitespace title", func(l *Listing) { l.Title = " \t " }, ErrMissingTitle},
		{"missing author", func(l *Listing) { l.Author = "" }, ErrMissingAuthor},
		{"missing owner name", func(l *Listing) { l.OwnerName = "" }, ErrMissingOwnerName},
		{"missing type", func(l *Listing) { l.Type = "" }, ErrMissingType},
		{"unknown type", func(l *Listing) { l.Type = "TRADE" }, ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validSellListing()
			tt.mutate(l)
			err := Validate(l)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

// Rule order decides which single message surfaces when several fields are
// blank: the photo rule runs first, then contact info, then title.
func TestValidate_FirstFailureWins(t *testing.T) {
	l := validSellListing()
	l.PhotoURL = ""
	l.Title = ""
	l.Author = ""
	assert.Equal(t, ErrMissingPhoto, Validate(l))

	l = validSellListing()
	l.Title = ""
	l.Author = ""
	assert.Equal(t, ErrMissingTitle, Validate(l))
}

func TestValidate_SellPrice(t *testing.T) {
	l := validSellListing()
	l.Price = nil
	assert.Equal(t, ErrInvalidPrice, Validate(l))

	negative := -1.0
	l.Price = &negative
	assert.Equal(t, ErrInvalidPrice, Validate(l))

	zero := 0.0
	l.Price = &zero
	assert.NoError(t, Validate(l))
}

func TestValidate_GiveawayIgnoresPrice(t *testing.T) {
	l := validSellListing()
	l.Type = TypeGiveaway
	l.Price = nil
	assert.NoError(t, Validate(l))

	negative := -5.0
	l.Price = &negative
	assert.NoError(t, Validate(l))
}

func TestValidate_FieldLengths(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Listing)
		wantErr ValidationError
	}{
		{"title too long", func(l *Listing) { l.Title = strings.Repeat("a", 256) }, ErrTitleTooLong},
		{"author too long", func(l *Listing) { l.Author = strings.Repeat("a", 256) }, ErrAuthorTooLong},
		{"photo url too long", func(l *Listing) { l.PhotoURL = strings.Repeat("a", 501) }, ErrPhotoURLTooLong},
		{"description too long", func(l *Listing) { l.Description = strings.Repeat("a", 1001) }, ErrDescriptionTooLong},
		{"owner name too long", func(l *Listing) { l.OwnerName = strings.Repeat("a", 256) }, ErrOwnerNameTooLong},
		{"contact method too long", func(l *Listing) { l.ContactMethod = strings.Repeat("a", 11) }, ErrContactMethodTooLong},
		{"contact info too long", func(l *Listing) { l.ContactInfo = strings.Repeat("a", 256) }, ErrContactInfoTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validSellListing()
			tt.mutate(l)
			assert.Equal(t, tt.wantErr, Validate(l))
		})
	}

	l := validSellListing()
	l.Title = strings.Repeat("a", 255)
	l.Description = strings.Repeat("d", 1000)
	assert.NoError(t, Validate(l))
}

func TestValidate_IsPure(t *testing.T) {
	l := validSellListing()
	before := *l
	require.NoError(t, Validate(l))
	assert.Equal(t, before, *l)
}

func TestParseListingType(t *testing.T) {
	got, err := ParseListingType("SELL")
	require.NoError(t, err)
	assert.Equal(t, TypeSell, got)

	got, err = ParseListingType("GIVEAWAY")
	require.NoError(t, err)
	assert.Equal(t, TypeGiveaway, got)

	_, err = ParseListingType("sell")
	assert.Equal(t, ErrInvalidType, err)
}
