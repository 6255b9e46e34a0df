package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

const animalsCollection = "animals"

// AnimalRepository implements ports.AnimalRepository using MongoDB.
type AnimalRepository struct {
	col *mongo.Collection
}

func NewAnimalRepository(db *mongo.Database) *AnimalRepository {
	return &AnimalRepository{col: db.Collection(animalsCollection)}
}

type mongoAnimal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ListingID string             `bson:"listing_id"`
	Name      string             `bson:"name"`
	Status    string             `bson:"status"`
	Adoptor   string             `bson:"adoptor,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *AnimalRepository) Create(ctx context.Context, a *domain.Animal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoAnimal{
		ListingID: a.ListingID,
		Name:      a.Name,
		Status:    string(a.Status),
		Adoptor:   a.Adoptor,
		UpdatedAt: a.UpdatedAt,
	})
	if err != nil {
		return storageErr("insert animal", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *AnimalRepository) FindByListing(ctx context.Context, listingID string) (*domain.Animal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoAnimal
	if err := r.col.FindOne(ctx, bson.M{"listing_id": listingID}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnimalNotFound
		}
		return nil, storageErr("find animal", err)
	}
	return &domain.Animal{
		ID:        m.ID.Hex(),
		ListingID: m.ListingID,
		Name:      m.Name,
		Status:    domain.AnimalStatus(m.Status),
		Adoptor:   m.Adoptor,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// SetStatus moves the animal from `from` to `to` in a single conditional
// update.
func (r *AnimalRepository) SetStatus(ctx context.Context, listingID string, from, to domain.AnimalStatus, adoptor string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// adoptor is always written so a reverted adoption clears it.
	res, err := r.col.UpdateOne(ctx,
		transitionFilter("listing_id", listingID, string(from)),
		transitionUpdate(string(to), time.Now().UTC(), bson.M{"adoptor": adoptor}),
	)
	if err != nil {
		return storageErr("update animal", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"listing_id": listingID})
		if err != nil {
			return storageErr("count animal", err)
		}
		return missedTransition(n, domain.ErrAnimalNotFound, domain.ErrConflict)
	}
	return nil
}
