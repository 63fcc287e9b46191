package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

type HomeRepository struct {
	col   *mongo.Collection
	users *AuthRepository
	ids   *sequence
	now   func() time.Time
}

func NewHomeRepository(db *mongo.Database) *HomeRepository {
	return &HomeRepository{
		col:   db.Collection(collectionHomes),
		users: NewAuthRepository(db),
		ids:   newSequence(db, collectionHomes),
		now:   time.Now,
	}
}

// List returns the homes matching filter in insertion order.
func (r *HomeRepository) List(ctx context.Context, filter domain.HomeFilter) ([]*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, homeFilterToBSON(filter), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find homes: %w", err)
	}
	defer cur.Close(ctx)

	homes := make([]*domain.Home, 0)
	for cur.Next(ctx) {
		var h domain.Home
		if err := cur.Decode(&h); err != nil {
			return nil, fmt.Errorf("decode home: %w", err)
		}
		homes = append(homes, &h)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate homes: %w", err)
	}
	return homes, nil
}

func (r *HomeRepository) FindByID(ctx context.Context, id int64) (*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var h domain.Home
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("find home: %w", err)
	}
	return &h, nil
}

func (r *HomeRepository) FindRealtorByHomeID(ctx context.Context, homeID int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var owner struct {
		RealtorID int64 `bson:"realtor_id"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": homeID},
		options.FindOne().SetProjection(bson.M{"realtor_id": 1}),
	).Decode(&owner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("find home owner: %w", err)
	}
	// A home whose owner is gone is reported like a missing home.
	u, err := r.users.FindByID(ctx, owner.RealtorID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrHomeNotFound
	}
	return u, err
}

func (r *HomeRepository) Create(ctx context.Context, h *domain.Home) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	h.ID = id
	if h.Images == nil {
		h.Images = []string{}
	}

	if _, err := r.col.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("insert home: %w", err)
	}
	return nil
}

func (r *HomeRepository) Update(ctx context.Context, id int64, u domain.HomeUpdate) (*domain.Home, error) {
	return r.findAndModify(ctx, id, bson.M{"$set": homeUpdateToBSON(u, r.now().UTC())})
}

func (r *HomeRepository) AddImage(ctx context.Context, id int64, url string) (*domain.Home, error) {
	return r.findAndModify(ctx, id, bson.M{
		"$push": bson.M{"images": url},
		"$set":  bson.M{"updated_at": r.now().UTC()},
	})
}

func (r *HomeRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete home: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHomeNotFound
	}
	return nil
}

func (r *HomeRepository) findAndModify(ctx context.Context, id int64, update bson.M) (*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var h domain.Home
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("update home: %w", err)
	}
	return &h, nil
}
