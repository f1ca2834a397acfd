package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/handlers"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/metrics"
	customMiddleware "github.com/Madhav-Gupta-28/perfumery-backend-go/middleware"
)

// SetupRoutes registers every endpoint. session gates signed-in routes;
// the admin group additionally requires a non-anonymous session.
func SetupRoutes(e *echo.Echo, h *handlers.Handler, m *metrics.Metrics, session echo.MiddlewareFunc) {
	e.GET("/health", h.Health)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	api := e.Group("/api")

	// Storefront. Static segments are registered before :id.
	api.GET("/products", h.ListProducts)
	api.GET("/products/featured", h.FeaturedProducts)
	api.GET("/products/stream", h.StreamProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/products/:id/inquiry", h.ProductInquiry)
	api.GET("/brands", h.ListBrands)

	api.GET("/blog", h.ListBlogPosts)
	api.GET("/blog/stream", h.StreamBlogPosts)
	api.GET("/blog/:slug", h.GetBlogPost)

	api.GET("/pages", h.ListPages)
	api.GET("/pages/:slug", h.GetPage)

	// Identity
	auth := api.Group("/auth")
	auth.POST("/signin", h.SignIn)
	auth.POST("/anonymous", h.AnonymousSignIn)
	auth.POST("/custom-token", h.CustomTokenSignIn)
	auth.GET("/session", h.Session, session)
	auth.POST("/signout", h.SignOut, session)

	// Admin
	admin := api.Group("/admin", session, customMiddleware.RequireAdmin)
	admin.GET("/products", h.AdminListProducts)
	admin.POST("/products", h.CreateProduct)
	admin.GET("/products/new", h.NewProductForm)
	admin.GET("/products/export", h.ExportProducts)
	admin.GET("/products/:id", h.AdminGetProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)

	admin.GET("/blog", h.AdminListBlogPosts)
	admin.POST("/blog", h.CreateBlogPost)
	admin.GET("/blog/new", h.NewBlogPostForm)
	admin.GET("/blog/:id", h.AdminGetBlogPost)
	admin.PUT("/blog/:id", h.UpdateBlogPost)
	admin.DELETE("/blog/:id", h.DeleteBlogPost)
}
