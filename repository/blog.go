package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/database"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
)

var blogOptional = []string{"seoTitle", "seoDescription", "keywords"}

type mongoBlogStore struct {
	coll *mongo.Collection
}

func NewBlogStore(db *mongo.Database) BlogStore {
	return &mongoBlogStore{coll: db.Collection(database.BlogCollection)}
}

// FindAll returns posts newest first.
func (s *mongoBlogStore) FindAll(ctx context.Context) ([]models.BlogPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find blog posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.BlogPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode blog posts: %w", err)
	}
	return posts, nil
}

func (s *mongoBlogStore) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := findOne(ctx, s.coll, bson.M{"_id": id}, &post); err != nil {
		return nil, fmt.Errorf("find blog post %s: %w", id, err)
	}
	return &post, nil
}

func (s *mongoBlogStore) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := findOne(ctx, s.coll, bson.M{"slug": slug}, &post); err != nil {
		return nil, fmt.Errorf("find blog post by slug %q: %w", slug, err)
	}
	return &post, nil
}

func (s *mongoBlogStore) Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	id := post.ID
	if id == "" {
		id = uuid.NewString()
	}
	if err := s.checkSlug(ctx, post.Slug, id); err != nil {
		return nil, err
	}
	set, _, err := writeDoc(post, blogOptional)
	if err != nil {
		return nil, err
	}
	if err := upsertByID(ctx, s.coll, id, createUpdate(set)); err != nil {
		return nil, fmt.Errorf("create blog post: %w", slugConflict(err))
	}
	return s.FindByID(ctx, id)
}

func (s *mongoBlogStore) Update(ctx context.Context, id string, post *models.BlogPost) (*models.BlogPost, error) {
	if err := s.checkSlug(ctx, post.Slug, id); err != nil {
		return nil, err
	}
	set, unset, err := writeDoc(post, blogOptional)
	if err != nil {
		return nil, err
	}
	if err := updateByID(ctx, s.coll, id, editUpdate(set, unset)); err != nil {
		return nil, fmt.Errorf("update blog post %s: %w", id, slugConflict(err))
	}
	return s.FindByID(ctx, id)
}

func (s *mongoBlogStore) Delete(ctx context.Context, id string) error {
	if err := deleteByID(ctx, s.coll, id); err != nil {
		return fmt.Errorf("delete blog post %s: %w", id, err)
	}
	return nil
}

func (s *mongoBlogStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	return watchCollection(ctx, s.coll)
}

// checkSlug fails when slug belongs to a post other than id.
func (s *mongoBlogStore) checkSlug(ctx context.Context, slug, id string) error {
	var existing models.BlogPost
	err := findOne(ctx, s.coll, bson.M{"slug": slug}, &existing)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check slug %q: %w", slug, err)
	case existing.ID != id:
		return ErrSlugTaken
	default:
		return nil
	}
}

// slugConflict maps the unique slug index violation, which covers the race the lookup leaves open.
func slugConflict(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlugTaken
	}
	return err
}
