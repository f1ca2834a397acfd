// Package repository is the document store access layer. Every write the
// service performs goes through one of these stores.
package repository

import (
	"context"
	"errors"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrSlugTaken  = errors.New("slug already in use")
	ErrEmailTaken = errors.New("email already registered")
)

type ProductStore interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Watcher
}

type BlogStore interface {
	FindAll(ctx context.Context) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id string) (*models.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	Update(ctx context.Context, id string, post *models.BlogPost) (*models.BlogPost, error)
	Delete(ctx context.Context, id string) error
	Watcher
}

type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

// Watcher signals every change to a collection. The channel closes when ctx
// ends or the underlying stream fails; several changes may collapse into one signal.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}
