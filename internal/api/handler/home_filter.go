package handler

import (
	"fmt"
	"math"
	"strconv"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

// buildHomeFilter turns the raw list query parameters into a HomeFilter.
// Only supplied parameters produce a constraint; an empty string means absent.
// No ordering check is made between minPrice and maxPrice.
func buildHomeFilter(city, minPrice, maxPrice, propertyType string) (domain.HomeFilter, error) {
	var filter domain.HomeFilter

	if city != "" {
		filter.City = city
	}

	if minPrice != "" || maxPrice != "" {
		price := &domain.PriceRange{}
		if minPrice != "" {
			v, err := parsePrice("minPrice", minPrice)
			if err != nil {
				return domain.HomeFilter{}, err
			}
			price.Gte = &v
		}
		if maxPrice != "" {
			v, err := parsePrice("maxPrice", maxPrice)
			if err != nil {
				return domain.HomeFilter{}, err
			}
			price.Lte = &v
		}
		filter.Price = price
	}

	if propertyType != "" {
		filter.PropertyType = domain.PropertyType(propertyType)
	}

	return filter, nil
}

func parsePrice(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidFilter, name)
	}
	return v, nil
}
