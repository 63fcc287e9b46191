package handler

import (
	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createHomeRequest, realtorID int64, idempotencyKey string) ports.CreateHomeInput {
	images := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, img.URL)
	}
	return ports.CreateHomeInput{
		Address:           req.Address,
		NumberOfBedrooms:  req.NumberOfBedrooms,
		NumberOfBathrooms: req.NumberOfBathrooms,
		City:              req.City,
		Price:             req.Price,
		LandSize:          req.LandSize,
		PropertyType:      domain.PropertyType(req.PropertyType),
		Images:            images,
		RealtorID:         realtorID,
		IdempotencyKey:    idempotencyKey,
	}
}

func toHomeUpdate(req updateHomeRequest) domain.HomeUpdate {
	u := domain.HomeUpdate{
		Address:           req.Address,
		NumberOfBedrooms:  req.NumberOfBedrooms,
		NumberOfBathrooms: req.NumberOfBathrooms,
		City:              req.City,
		Price:             req.Price,
		LandSize:          req.LandSize,
	}
	if req.PropertyType != nil {
		pt := domain.PropertyType(*req.PropertyType)
		u.PropertyType = &pt
	}
	return u
}

// --- Domain → Response ---

func toHomeResponse(h *domain.Home) homeResponse {
	images := h.Images
	if images == nil {
		images = []string{}
	}
	return homeResponse{
		ID:                h.ID,
		Address:           h.Address,
		NumberOfBedrooms:  h.NumberOfBedrooms,
		NumberOfBathrooms: h.NumberOfBathrooms,
		City:              h.City,
		ListedDate:        h.ListedDate.UTC(),
		Price:             h.Price,
		LandSize:          h.LandSize,
		PropertyType:      string(h.PropertyType),
		Images:            images,
		RealtorID:         h.RealtorID,
	}
}

func toHomeResponses(homes []*domain.Home) []homeResponse {
	out := make([]homeResponse, 0, len(homes))
	for _, h := range homes {
		out = append(out, toHomeResponse(h))
	}
	return out
}
