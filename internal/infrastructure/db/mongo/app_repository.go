package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/craftcrm/platform/internal/core/domain"
)

// AppRepository implements ports.AppRepository on MongoDB.
type AppRepository struct {
	col *mongo.Collection
}

func NewAppRepository(db *mongo.Database) *AppRepository {
	return &AppRepository{col: db.Collection(collectionApps)}
}

func (r *AppRepository) Create(ctx context.Context, app *domain.CrmApp) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, app)
	return err
}

func (r *AppRepository) FindByID(ctx context.Context, id string) (*domain.CrmApp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var app domain.CrmApp
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *AppRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.CrmApp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"tenant_id": tenantID})
	if err != nil {
		return nil, err
	}
	var apps []*domain.CrmApp
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureIndexes creates the tenant lookup index.
func (r *AppRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tenant_id", Value: 1}},
	})
	return err
}
