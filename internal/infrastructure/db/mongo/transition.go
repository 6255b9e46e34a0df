package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// transitionFilter matches the document identified by key=value only while
// its status is still from.
func transitionFilter(key string, value any, from string) bson.M {
	return bson.M{key: value, "status": from}
}

// transitionUpdate moves a document to status to. extra fields are set in
// the same write.
func transitionUpdate(to string, now time.Time, extra bson.M) bson.M {
	set := bson.M{"status": to, "updated_at": now}
	for k, v := range extra {
		set[k] = v
	}
	return bson.M{"$set": set}
}

// missedTransition explains a conditional update that matched nothing, given
// how many documents exist for the same key. None means notFound; any means
// the document has already left the expected status.
func missedTransition(existing int64, notFound, conflict error) error {
	if existing == 0 {
		return notFound
	}
	return conflict
}
