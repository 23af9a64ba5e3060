package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/craftcrm/platform/internal/core/domain"
)

// RecordRepository implements ports.RecordRepository on MongoDB. Unique field
// constraints live here as partial unique indexes on (module_id, data.<name>),
// which closes the check-then-write race the service-level pre-check leaves
// open under concurrent inserts.
type RecordRepository struct {
	col *mongo.Collection
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{col: db.Collection(collectionRecords)}
}

func (r *RecordRepository) Create(ctx context.Context, rec *domain.Record) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return &domain.ValidationError{Field: "", Reason: domain.ReasonDuplicate}
	}
	return err
}

func (r *RecordRepository) FindByID(ctx context.Context, id string) (*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec domain.Record
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	normalizeData(rec.Data)
	return &rec, nil
}

// List returns a page of the module's records in insertion order.
func (r *RecordRepository) List(ctx context.Context, moduleID string, limit, offset int) ([]*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"module_id": moduleID}, opts)
}

func (r *RecordRepository) ListAll(ctx context.Context, moduleID string) ([]*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, bson.M{"module_id": moduleID}, opts)
}

func (r *RecordRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Record, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var records []*domain.Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	for _, rec := range records {
		normalizeData(rec.Data)
	}
	return records, nil
}

func (r *RecordRepository) Count(ctx context.Context, moduleID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"module_id": moduleID})
}

// Update replaces the record only when the stored version still equals
// fromVersion. A matched count of zero means either the record vanished or a
// concurrent writer bumped the version first.
func (r *RecordRepository) Update(ctx context.Context, rec *domain.Record, fromVersion int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rec.ID, "version": fromVersion}, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ValidationError{Field: "", Reason: domain.ReasonDuplicate}
		}
		return err
	}
	if res.MatchedCount == 0 {
		if _, findErr := r.FindByID(ctx, rec.ID); findErr != nil {
			return findErr
		}
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *RecordRepository) ExistsValue(ctx context.Context, moduleID, fieldName string, value any, excludeRecordID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"module_id":         moduleID,
		"data." + fieldName: value,
	}
	if excludeRecordID != "" {
		filter["_id"] = bson.M{"$ne": excludeRecordID}
	}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EnsureUniqueIndex creates the per-module unique constraint for one field.
// The partial filter restricts enforcement to documents that carry the key,
// so optional unique fields stay optional.
func (r *RecordRepository) EnsureUniqueIndex(ctx context.Context, moduleID, fieldName string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	key := "data." + fieldName
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "module_id", Value: 1}, {Key: key, Value: 1}},
		Options: options.Index().
			SetName(fmt.Sprintf("uniq_%s_%s", moduleID, fieldName)).
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"module_id": moduleID,
				key:         bson.M{"$exists": true},
			}),
	})
	return err
}

func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *RecordRepository) DeleteByModule(ctx context.Context, moduleID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"module_id": moduleID})
	return err
}

// EnsureIndexes creates the module scan index used by list/count.
func (r *RecordRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "module_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}

// normalizeData converts BSON decoding artifacts inside the dynamic data map
// back to the canonical Go types the domain validation produced: dates come
// back as primitive.DateTime and lists as primitive.A.
func normalizeData(data map[string]any) {
	for k, v := range data {
		switch t := v.(type) {
		case primitive.DateTime:
			data[k] = t.Time().UTC()
		case primitive.A:
			items := make([]any, len(t))
			copy(items, t)
			data[k] = items
		case int32:
			data[k] = float64(t)
		case int64:
			data[k] = float64(t)
		}
	}
}
