package domain

import (
	"errors"
	"time"
)

// PropertyType is the listing category of a home.
type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
)

var (
	ErrHomeNotFound  = errors.New("home not found")
	ErrInvalidFilter = errors.New("invalid filter")
)

// Home is a property listing owned by exactly one realtor.
type Home struct {
	ID                int64        `json:"id" bson:"_id"`
	Address           string       `json:"address" bson:"address"`
	NumberOfBedrooms  int          `json:"number_of_bedrooms" bson:"number_of_bedrooms"`
	NumberOfBathrooms float64      `json:"number_of_bathrooms" bson:"number_of_bathrooms"`
	City              string       `json:"city" bson:"city"`
	ListedDate        time.Time    `json:"listed_date" bson:"listed_date"`
	Price             float64      `json:"price" bson:"price"`
	LandSize          float64      `json:"land_size" bson:"land_size"`
	PropertyType      PropertyType `json:"property_type" bson:"property_type"`
	Images            []string     `json:"images" bson:"images"`
	RealtorID         int64        `json:"realtor_id" bson:"realtor_id"`
	CreatedAt         time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" bson:"updated_at"`
}

// PriceRange bounds the price of listed homes. A nil bound is not applied.
type PriceRange struct {
	Gte *float64
	Lte *float64
}

// HomeFilter holds the optional constraints of a listing query. Zero-valued
// fields are omitted from the query, never defaulted.
type HomeFilter struct {
	City         string
	Price        *PriceRange
	PropertyType PropertyType
}

// HomeUpdate carries a partial update; nil fields are left untouched.
type HomeUpdate struct {
	Address           *string
	NumberOfBedrooms  *int
	NumberOfBathrooms *float64
	City              *string
	Price             *float64
	LandSize          *float64
	PropertyType      *PropertyType
}

// IsEmpty reports whether the update changes nothing.
func (u HomeUpdate) IsEmpty() bool {
	return u.Address == nil && u.NumberOfBedrooms == nil && u.NumberOfBathrooms == nil &&
		u.City == nil && u.Price == nil && u.LandSize == nil && u.PropertyType == nil
}

// Apply copies the set fields of u onto h.
func (u HomeUpdate) Apply(h *Home) {
	if u.Address != nil {
		h.Address = *u.Address
	}
	if u.NumberOfBedrooms != nil {
		h.NumberOfBedrooms = *u.NumberOfBedrooms
	}
	if u.NumberOfBathrooms != nil {
		h.NumberOfBathrooms = *u.NumberOfBathrooms
	}
	if u.City != nil {
		h.City = *u.City
	}
	if u.Price != nil {
		h.Price = *u.Price
	}
	if u.LandSize != nil {
		h.LandSize = *u.LandSize
	}
	if u.PropertyType != nil {
		h.PropertyType = *u.PropertyType
	}
}
