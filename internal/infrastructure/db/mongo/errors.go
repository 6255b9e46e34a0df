package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawprint/adoption-site/internal/core/domain"
)

// storageErr tags a driver failure so the HTTP layer renders it as a
// generic storage failure.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// objectID parses a hex id. Malformed ids cannot exist in the store, so they
// map to the caller's not-found error.
func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}
