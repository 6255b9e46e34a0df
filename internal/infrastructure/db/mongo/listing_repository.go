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

const listingsCollection = "listings"

// ListingRepository implements ports.ListingRepository using MongoDB.
// Images are stored inline as BSON binary; listings stay well below the
// 16MB document limit because uploads are capped.
type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(listingsCollection)}
}

type mongoImage struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"content_type"`
}

type mongoListing struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	BirthDate    *time.Time         `bson:"birth_date,omitempty"`
	Availability string             `bson:"availability"`
	Image        *mongoImage        `bson:"image,omitempty"`
	HasImage     bool               `bson:"has_image"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func toMongoListing(l *domain.Listing) mongoListing {
	m := mongoListing{
		Name:         l.Name,
		Description:  l.Description,
		BirthDate:    l.BirthDate,
		Availability: string(l.Availability),
		HasImage:     l.HasImage,
		CreatedAt:    l.CreatedAt,
	}
	if l.Image != nil {
		m.Image = &mongoImage{Data: l.Image.Data, ContentType: l.Image.ContentType}
	}
	return m
}

func (m mongoListing) toDomain() *domain.Listing {
	l := &domain.Listing{
		ID:           m.ID.Hex(),
		Name:         m.Name,
		Description:  m.Description,
		BirthDate:    m.BirthDate,
		Availability: domain.Availability(m.Availability),
		HasImage:     m.HasImage,
		CreatedAt:    m.CreatedAt,
	}
	if m.Image != nil {
		l.Image = &domain.Image{Data: m.Image.Data, ContentType: m.Image.ContentType}
	}
	return l
}

// Create inserts a new listing and sets its ID.
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoListing(l))
	if err != nil {
		return storageErr("insert listing", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid.Hex()
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := objectID(id, domain.ErrListingNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoListing
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, storageErr("find listing", err)
	}
	return m.toDomain(), nil
}

// List returns every listing ordered by _id, which follows insertion order.
// Image bytes are projected out.
func (r *ListingRepository) List(ctx context.Context) ([]*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"image": 0})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storageErr("list listings", err)
	}
	defer cur.Close(ctx)

	var docs []mongoListing
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode listings", err)
	}

	out := make([]*domain.Listing, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrListingNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storageErr("delete listing", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// Restore puts a deleted listing back under its original ID.
func (r *ListingRepository) Restore(ctx context.Context, l *domain.Listing) error {
	oid, err := objectID(l.ID, domain.ErrListingNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoListing(l)
	doc.ID = oid
	if _, err := r.col.InsertOne(ctx, doc); err != nil && !mongo.IsDuplicateKeyError(err) {
		return storageErr("restore listing", err)
	}
	return nil
}
