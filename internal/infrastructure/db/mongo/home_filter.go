package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

// homeFilterToBSON builds the query document for a HomeFilter. Keys are only
// present for constraints that were supplied.
func homeFilterToBSON(f domain.HomeFilter) bson.M {
	q := bson.M{}
	if f.City != "" {
		q["city"] = f.City
	}
	if f.Price != nil {
		price := bson.M{}
		if f.Price.Gte != nil {
			price["$gte"] = *f.Price.Gte
		}
		if f.Price.Lte != nil {
			price["$lte"] = *f.Price.Lte
		}
		if len(price) > 0 {
			q["price"] = price
		}
	}
	if f.PropertyType != "" {
		q["property_type"] = string(f.PropertyType)
	}
	return q
}

// homeUpdateToBSON returns the $set document for a partial update.
func homeUpdateToBSON(u domain.HomeUpdate, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if u.NumberOfBedrooms != nil {
		set["number_of_bedrooms"] = *u.NumberOfBedrooms
	}
	if u.NumberOfBathrooms != nil {
		set["number_of_bathrooms"] = *u.NumberOfBathrooms
	}
	if u.City != nil {
		set["city"] = *u.City
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.LandSize != nil {
		set["land_size"] = *u.LandSize
	}
	if u.PropertyType != nil {
		set["property_type"] = string(*u.PropertyType)
	}
	return set
}
