package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/database"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
)

type mongoAdminStore struct {
	coll *mongo.Collection
}

func NewAdminStore(db *mongo.Database) AdminStore {
	return &mongoAdminStore{coll: db.Collection(database.AdminsCollection)}
}

func (s *mongoAdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := findOne(ctx, s.coll, bson.M{"email": normalizeEmail(email)}, &admin); err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

func (s *mongoAdminStore) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	admin.Email = normalizeEmail(admin.Email)

	if _, err := s.coll.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
