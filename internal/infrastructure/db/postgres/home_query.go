package postgres

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

var homeColumns = []string{
	"id", "address", "number_of_bedrooms", "number_of_bathrooms", "city", "listed_date",
	"price", "land_size", "property_type", "realtor_id", "created_at", "updated_at",
}

// buildListHomesQuery renders the SELECT for a HomeFilter. Only supplied
// constraints become WHERE predicates.
func buildListHomesQuery(f domain.HomeFilter) (string, []any, error) {
	q := psql.Select(homeColumns...).From("homes")

	if f.City != "" {
		q = q.Where(sq.Eq{"city": f.City})
	}
	if f.Price != nil {
		if f.Price.Gte != nil {
			q = q.Where(sq.GtOrEq{"price": *f.Price.Gte})
		}
		if f.Price.Lte != nil {
			q = q.Where(sq.LtOrEq{"price": *f.Price.Lte})
		}
	}
	if f.PropertyType != "" {
		q = q.Where(sq.Eq{"property_type": string(f.PropertyType)})
	}

	return q.OrderBy("id").ToSql()
}

func buildFindHomeQuery(id int64) (string, []any, error) {
	return psql.Select(homeColumns...).From("homes").Where(sq.Eq{"id": id}).ToSql()
}

// buildImagesQuery loads the image URLs of the given homes in upload order.
func buildImagesQuery(homeIDs []int64) (string, []any, error) {
	return psql.Select("home_id", "url").
		From("home_images").
		Where(sq.Eq{"home_id": homeIDs}).
		OrderBy("id").
		ToSql()
}

func buildInsertHomeQuery(h *domain.Home) (string, []any, error) {
	return psql.Insert("homes").
		Columns("address", "number_of_bedrooms", "number_of_bathrooms", "city", "listed_date",
			"price", "land_size", "property_type", "realtor_id", "created_at", "updated_at").
		Values(h.Address, h.NumberOfBedrooms, h.NumberOfBathrooms, h.City, h.ListedDate,
			h.Price, h.LandSize, string(h.PropertyType), h.RealtorID, h.CreatedAt, h.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

// buildUpdateHomeQuery sets only the fields present in u, plus updated_at.
func buildUpdateHomeQuery(id int64, u domain.HomeUpdate, now time.Time) (string, []any, error) {
	q := psql.Update("homes").Set("updated_at", now)
	if u.Address != nil {
		q = q.Set("address", *u.Address)
	}
	if u.NumberOfBedrooms != nil {
		q = q.Set("number_of_bedrooms", *u.NumberOfBedrooms)
	}
	if u.NumberOfBathrooms != nil {
		q = q.Set("number_of_bathrooms", *u.NumberOfBathrooms)
	}
	if u.City != nil {
		q = q.Set("city", *u.City)
	}
	if u.Price != nil {
		q = q.Set("price", *u.Price)
	}
	if u.LandSize != nil {
		q = q.Set("land_size", *u.LandSize)
	}
	if u.PropertyType != nil {
		q = q.Set("property_type", string(*u.PropertyType))
	}
	return q.Where(sq.Eq{"id": id}).ToSql()
}
