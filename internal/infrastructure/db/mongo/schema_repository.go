package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/craftcrm/platform/internal/core/domain"
)

// ModuleRepository implements ports.ModuleRepository on MongoDB.
type ModuleRepository struct {
	col *mongo.Collection
}

func NewModuleRepository(db *mongo.Database) *ModuleRepository {
	return &ModuleRepository{col: db.Collection(collectionModules)}
}

func (r *ModuleRepository) Create(ctx context.Context, m *domain.Module) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrModuleExists
	}
	return err
}

func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Module
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrModuleNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) ListByApp(ctx context.Context, appID string) ([]*domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"app_id": appID}, opts)
	if err != nil {
		return nil, err
	}
	var modules []*domain.Module
	if err := cur.All(ctx, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *ModuleRepository) CountByApp(ctx context.Context, appID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"app_id": appID})
}

func (r *ModuleRepository) Update(ctx context.Context, m *domain.Module) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrModuleNotFound
	}
	return nil
}

func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureIndexes enforces module name uniqueness per app. The unique index is
// what stops two concurrent generation retries from double-creating modules.
func (r *ModuleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "app_id", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FieldRepository implements ports.FieldRepository on MongoDB.
type FieldRepository struct {
	col *mongo.Collection
}

func NewFieldRepository(db *mongo.Database) *FieldRepository {
	return &FieldRepository{col: db.Collection(collectionFields)}
}

func (r *FieldRepository) Create(ctx context.Context, f *domain.Field) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, f)
	if mongo.IsDuplicateKeyError(err) {
		return &domain.ValidationError{Field: f.Name, Reason: domain.ReasonDuplicate}
	}
	return err
}

func (r *FieldRepository) FindByID(ctx context.Context, id string) (*domain.Field, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var f domain.Field
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFieldNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FieldRepository) ListByModule(ctx context.Context, moduleID string) ([]*domain.Field, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"module_id": moduleID}, opts)
	if err != nil {
		return nil, err
	}
	var fields []*domain.Field
	if err := cur.All(ctx, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *FieldRepository) MaxSortOrder(ctx context.Context, moduleID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "sort_order", Value: -1}})
	var f domain.Field
	err := r.col.FindOne(ctx, bson.M{"module_id": moduleID}, opts).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return -1, nil
		}
		return 0, err
	}
	return f.SortOrder, nil
}

func (r *FieldRepository) Update(ctx context.Context, f *domain.Field) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

func (r *FieldRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *FieldRepository) DeleteByModule(ctx context.Context, moduleID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"module_id": moduleID})
	return err
}

// EnsureIndexes enforces field name uniqueness per module.
func (r *FieldRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "module_id", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// ViewRepository implements ports.ViewRepository on MongoDB.
type ViewRepository struct {
	col *mongo.Collection
}

func NewViewRepository(db *mongo.Database) *ViewRepository {
	return &ViewRepository{col: db.Collection(collectionViews)}
}

func (r *ViewRepository) Create(ctx context.Context, v *domain.View) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *ViewRepository) FindByID(ctx context.Context, id string) (*domain.View, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.View
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrViewNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *ViewRepository) ListByModule(ctx context.Context, moduleID string) ([]*domain.View, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"module_id": moduleID})
	if err != nil {
		return nil, err
	}
	var views []*domain.View
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *ViewRepository) Update(ctx context.Context, v *domain.View) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrViewNotFound
	}
	return nil
}

func (r *ViewRepository) ClearDefault(ctx context.Context, moduleID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"module_id": moduleID, "is_default": true},
		bson.M{"$set": bson.M{"is_default": false}},
	)
	return err
}

func (r *ViewRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *ViewRepository) DeleteByModule(ctx context.Context, moduleID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"module_id": moduleID})
	return err
}

// EnsureIndexes creates the module lookup index.
func (r *ViewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "module_id", Value: 1}},
	})
	return err
}
