package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/craftcrm/platform/internal/core/domain"
)

// ActivityRepository implements the append-only activity trail on MongoDB.
// There is deliberately no update method.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

func (r *ActivityRepository) Append(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *ActivityRepository) ListByRecord(ctx context.Context, recordID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"record_id": recordID}, opts)
	if err != nil {
		return nil, err
	}
	var activities []*domain.Activity
	if err := cur.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepository) DeleteByRecord(ctx context.Context, recordID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"record_id": recordID})
	return err
}

func (r *ActivityRepository) DeleteByRecords(ctx context.Context, recordIDs []string) error {
	if len(recordIDs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"record_id": bson.M{"$in": recordIDs}})
	return err
}

// EnsureIndexes creates the record trail lookup index.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "record_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
