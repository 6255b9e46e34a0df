package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

const adoptionsCollection = "adoptions"

// AdoptionRepository implements ports.AdoptionRepository using MongoDB.
// Every status change is a single-document conditional update on the
// current status, so two concurrent transitions cannot both succeed.
type AdoptionRepository struct {
	col *mongo.Collection
}

func NewAdoptionRepository(db *mongo.Database) *AdoptionRepository {
	return &AdoptionRepository{col: db.Collection(adoptionsCollection)}
}

type mongoAdoption struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ListingID   string             `bson:"listing_id"`
	ListingName string             `bson:"listing_name"`
	Requester   string             `bson:"requester"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m mongoAdoption) toDomain() *domain.AdoptionRequest {
	return &domain.AdoptionRequest{
		ID:          m.ID.Hex(),
		ListingID:   m.ListingID,
		ListingName: m.ListingName,
		Requester:   m.Requester,
		Status:      domain.AdoptionStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *AdoptionRepository) Create(ctx context.Context, a *domain.AdoptionRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoAdoption{
		ListingID:   a.ListingID,
		ListingName: a.ListingName,
		Requester:   a.Requester,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	})
	if err != nil {
		return storageErr("insert adoption", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *AdoptionRepository) FindByID(ctx context.Context, id string) (*domain.AdoptionRequest, error) {
	oid, err := objectID(id, domain.ErrAdoptionNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoAdoption
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdoptionNotFound
		}
		return nil, storageErr("find adoption", err)
	}
	return m.toDomain(), nil
}

func (r *AdoptionRepository) ListByStatus(ctx context.Context, status domain.AdoptionStatus) ([]*domain.AdoptionRequest, error) {
	return r.list(ctx, bson.M{"status": string(status)})
}

func (r *AdoptionRepository) ListByRequester(ctx context.Context, requester string) ([]*domain.AdoptionRequest, error) {
	return r.list(ctx, bson.M{"requester": requester})
}

func (r *AdoptionRepository) list(ctx context.Context, filter bson.M) ([]*domain.AdoptionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storageErr("list adoptions", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAdoption
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode adoptions", err)
	}

	out := make([]*domain.AdoptionRequest, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// Transition sets the status only while the request is still in `from`.
func (r *AdoptionRepository) Transition(ctx context.Context, id string, from, to domain.AdoptionStatus) error {
	oid, err := objectID(id, domain.ErrAdoptionNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		transitionFilter("_id", oid, string(from)),
		transitionUpdate(string(to), time.Now().UTC(), nil),
	)
	if err != nil {
		return storageErr("update adoption", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return storageErr("count adoption", err)
		}
		return missedTransition(n, domain.ErrAdoptionNotFound, domain.ErrConflict)
	}
	return nil
}

func (r *AdoptionRepository) TransitionByListing(ctx context.Context, listingID string, from, to domain.AdoptionStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		transitionFilter("listing_id", listingID, string(from)),
		transitionUpdate(string(to), time.Now().UTC(), nil),
	)
	if err != nil {
		return 0, storageErr("cascade adoptions", err)
	}
	return res.ModifiedCount, nil
}
