package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/handlers"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/metrics"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/middleware"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/realtime"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/repository"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/routes"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/utils"
)

const (
	testSecret       = "test-secret"
	testCustomSecret = "test-custom-secret"
	testPhone        = "+62 812-3456-7890"
	adminEmail       = "owner@example.com"
	adminPassword    = "correct-horse"
)

var errWatchUnsupported = errors.New("change streams not supported")

type productStore struct {
	mu    sync.Mutex
	items []models.Product
	calls int
	err   error
}

func (s *productStore) call() error {
	s.calls++
	return s.err
}

func (s *productStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *productStore) FindAll(context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call(); err != nil {
		return nil, err
	}
	return append([]models.Product(nil), s.items...), nil
}

func (s *productStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call(); err != nil {
		return nil, err
	}
	for _, p := range s.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *productStore) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call(); err != nil {
		return nil, err
	}
	created := *p
	created.ID = fmt.Sprintf("p-%d", len(s.items)+1)
	s.items = append(s.items, created)
	return &created, nil
}

func (s *productStore) Update(_ context.Context, id string, p *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call(); err != nil {
		return nil, err
	}
	for i := range s.items {
		if s.items[i].ID == id {
			updated := *p
			updated.ID = id
			s.items[i] = updated
			return &updated, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *productStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call(); err != nil {
		return err
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *productStore) Watch(context.Context) (<-chan struct{}, error) {
	return nil, errWatchUnsupported
}

type blogStore struct {
	mu    sync.Mutex
	posts []models.BlogPost
	calls int
}

func (s *blogStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *blogStore) FindAll(context.Context) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return append([]models.BlogPost(nil), s.posts...), nil
}

func (s *blogStore) find(match func(models.BlogPost) bool) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	for _, post := range s.posts {
		if match(post) {
			return &post, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *blogStore) FindByID(_ context.Context, id string) (*models.BlogPost, error) {
	return s.find(func(p models.BlogPost) bool { return p.ID == id })
}

func (s *blogStore) FindBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	return s.find(func(p models.BlogPost) bool { return p.Slug == slug })
}

func (s *blogStore) slugOwner(slug string) string {
	for _, post := range s.posts {
		if post.Slug == slug {
			return post.ID
		}
	}
	return ""
}

func (s *blogStore) Create(_ context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.slugOwner(post.Slug) != "" {
		return nil, repository.ErrSlugTaken
	}
	created := *post
	created.ID = fmt.Sprintf("b-%d", len(s.posts)+1)
	s.posts = append(s.posts, created)
	return &created, nil
}

func (s *blogStore) Update(_ context.Context, id string, post *models.BlogPost) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if owner := s.slugOwner(post.Slug); owner != "" && owner != id {
		return nil, repository.ErrSlugTaken
	}
	for i := range s.posts {
		if s.posts[i].ID == id {
			updated := *post
			updated.ID = id
			s.posts[i] = updated
			return &updated, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *blogStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *blogStore) Watch(context.Context) (<-chan struct{}, error) {
	return nil, errWatchUnsupported
}

type adminStore struct {
	admins map[string]models.Admin
}

func (s *adminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	admin, ok := s.admins[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &admin, nil
}

func (s *adminStore) Create(_ context.Context, admin *models.Admin) error {
	s.admins[admin.Email] = *admin
	return nil
}

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (r *memRevoker) Revoke(_ context.Context, id string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[id] = expiresAt
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[id]
	return ok, nil
}

type testEnv struct {
	e           *echo.Echo
	handler     *handlers.Handler
	products    *productStore
	blog        *blogStore
	tokens      *utils.TokenIssuer
	revoker     *memRevoker
	metrics     *metrics.Metrics
	productFeed *realtime.Hub[[]models.Product]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	env := &testEnv{
		e:           echo.New(),
		products:    &productStore{items: catalogFixture()},
		blog:        &blogStore{posts: blogFixture()},
		tokens:      utils.NewTokenIssuer(testSecret, testCustomSecret, time.Hour),
		revoker:     &memRevoker{revoked: map[string]time.Time{}},
		metrics:     metrics.New(),
		productFeed: realtime.NewHub[[]models.Product](),
	}
	admins := &adminStore{admins: map[string]models.Admin{
		adminEmail: {ID: "admin-1", Email: adminEmail, PasswordHash: string(hash)},
	}}

	h := handlers.New(handlers.Options{
		Products:    env.products,
		Blog:        env.blog,
		Admins:      admins,
		Tokens:      env.tokens,
		Revoker:     env.revoker,
		ProductFeed: env.productFeed,
		Metrics:     env.metrics,
		Log:         zap.NewNop(),
		ChatPhone:   testPhone,
	})
	env.handler = h
	routes.SetupRoutes(env.e, h, env.metrics, middleware.RequireSession(env.tokens, env.revoker, zap.NewNop()))
	return env
}

func (env *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := env.tokens.GenerateJWT("admin-1", adminEmail, utils.ProviderPassword)
	require.NoError(t, err)
	return token
}

func price(v float64) *float64 { return &v }

func catalogFixture() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Sauvage", Brand: "Dior", Price: price(1850000), Rating: price(4.6), Category: models.CategoryMen, Featured: true, Volume: "100ml", Image: "/img/sauvage.jpg", Description: "Bergamot and ambroxan"},
		{ID: "2", Name: "J'adore", Brand: "Dior", Price: price(2100000), Rating: price(3.9), Category: models.CategoryWomen, Image: "/img/jadore.jpg", Description: "Floral bouquet"},
		{ID: "3", Name: "Bleu de Chanel", Brand: "Chanel", Price: price(2300000), Rating: price(4.5), Category: models.CategoryMen, Featured: true, Image: "/img/bleu.jpg", Description: "Woody aromatic"},
		{ID: "4", Name: "Miss Dior", Brand: "Dior", Rating: price(4.2), Category: models.CategoryWomen, Image: "/img/miss.jpg", Description: "Rose and peony"},
		{ID: "5", Name: "Aventus", Brand: "Creed", Price: price(4500000), Rating: price(4.8), Category: models.CategoryMen, Image: "/img/aventus.jpg", Description: "Pineapple and birch"},
	}
}

func blogFixture() []models.BlogPost {
	return []models.BlogPost{
		{ID: "b-1", Slug: "layering-101", Title: "Layering 101", Author: "Rina", Date: "2024-03-01", Excerpt: "Combine scents", Content: "# Layering"},
	}
}
