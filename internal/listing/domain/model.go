package domain

import "time"

type ListingType string

const (
	TypeSell     ListingType = "SELL"
	TypeGiveaway ListingType = "GIVEAWAY"
)

// ParseListingType maps a raw string onto one of the two listing types.
func ParseListingType(s string) (ListingType, error) {
	switch ListingType(s) {
	case TypeSell:
		return TypeSell, nil
	case TypeGiveaway:
		return TypeGiveaway, nil
	}
	return "", ErrInvalidType
}

// Listing is a single book posted for sale or giveaway. ID and both
// timestamps are assigned by the store on creation; CreatedAt is never
// touched again, UpdatedAt is refreshed on every mutation.
type Listing struct {
	ID            string
	Title         string
	Author        string
	Price         *float64 // required and non-negative only for SELL
	PhotoURL      string
	PhotoData     []byte
	Type          ListingType
	Description   string
	OwnerName     string
	ContactMethod string // "email" or "phone"
	ContactInfo   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
