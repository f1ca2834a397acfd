package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/database"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
)

var productOptional = []string{"price", "notes", "volume", "rating", "ratingSource"}

type mongoProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(db *mongo.Database) ProductStore {
	return &mongoProductStore{coll: db.Collection(database.ProductsCollection)}
}

func (s *mongoProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (s *mongoProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := findOne(ctx, s.coll, bson.M{"_id": id}, &product); err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &product, nil
}

func (s *mongoProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	set, _, err := writeDoc(p, productOptional)
	if err != nil {
		return nil, err
	}
	if err := upsertByID(ctx, s.coll, id, createUpdate(set)); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.FindByID(ctx, id)
}

func (s *mongoProductStore) Update(ctx context.Context, id string, p *models.Product) (*models.Product, error) {
	set, unset, err := writeDoc(p, productOptional)
	if err != nil {
		return nil, err
	}
	if err := updateByID(ctx, s.coll, id, editUpdate(set, unset)); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return s.FindByID(ctx, id)
}

func (s *mongoProductStore) Delete(ctx context.Context, id string) error {
	if err := deleteByID(ctx, s.coll, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func (s *mongoProductStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	return watchCollection(ctx, s.coll)
}
