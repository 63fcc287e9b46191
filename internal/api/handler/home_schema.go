package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type imageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type createHomeRequest struct {
	Address           string         `json:"address"           validate:"required"`
	NumberOfBedrooms  int            `json:"numberOfBedrooms"  validate:"gte=0"`
	NumberOfBathrooms float64        `json:"numberOfBathrooms" validate:"gte=0"`
	City              string         `json:"city"              validate:"required"`
	Price             float64        `json:"price"             validate:"required,gt=0"`
	LandSize          float64        `json:"landSize"          validate:"required,gt=0"`
	PropertyType      string         `json:"propertyType"      validate:"required,oneof=RESIDENTIAL CONDO"`
	Images            []imageRequest `json:"images"            validate:"dive"`
}

// updateHomeRequest fields are all optional; only present keys are applied.
type updateHomeRequest struct {
	Address           *string  `json:"address"           validate:"omitempty,min=1"`
	NumberOfBedrooms  *int     `json:"numberOfBedrooms"  validate:"omitempty,gte=0"`
	NumberOfBathrooms *float64 `json:"numberOfBathrooms" validate:"omitempty,gte=0"`
	City              *string  `json:"city"              validate:"omitempty,min=1"`
	Price             *float64 `json:"price"             validate:"omitempty,gt=0"`
	LandSize          *float64 `json:"landSize"          validate:"omitempty,gt=0"`
	PropertyType      *string  `json:"propertyType"      validate:"omitempty,oneof=RESIDENTIAL CONDO"`
}

type homeResponse struct {
	ID                int64     `json:"id"`
	Address           string    `json:"address"`
	NumberOfBedrooms  int       `json:"numberOfBedrooms"`
	NumberOfBathrooms float64   `json:"numberOfBathrooms"`
	City              string    `json:"city"`
	ListedDate        time.Time `json:"listedDate"`
	Price             float64   `json:"price"`
	LandSize          float64   `json:"landSize"`
	PropertyType      string    `json:"propertyType"`
	Images            []string  `json:"images"`
	RealtorID         int64     `json:"realtorId"`
}

type deleteHomeResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
