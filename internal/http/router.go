package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/cartcookie"
	"chhapai.in/app/internal/http/handlers"
	adminh "chhapai.in/app/internal/http/handlers/admin"
	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/mailer"
	"chhapai.in/app/internal/modules/cart"
	"chhapai.in/app/internal/modules/catalog"
	"chhapai.in/app/internal/modules/orders"
	"chhapai.in/app/internal/modules/products"
	"chhapai.in/app/internal/modules/users"
	"chhapai.in/app/internal/storage"
)

// Config carries everything the router needs beyond the DB handle.
type Config struct {
	SessionCookie string
	SessionTTL    time.Duration
	CartCookie    string
	CartSecret    []byte
	SecureCookies bool

	Store  storage.Storage
	Mailer mailer.Service

	FromName  string
	FromEmail string
}

// NewRouter builds the gin engine with the full /api/v1 surface.
func NewRouter(logger *slog.Logger, db *gorm.DB, cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.ErrorHandler(logger))

	sessionCfg := middleware.SessionCfg{
		DB:         db,
		CookieName: cfg.SessionCookie,
		Secure:     cfg.SecureCookies,
		TTL:        cfg.SessionTTL,
	}
	r.Use(middleware.SessionMiddleware(sessionCfg))

	ck := cartcookie.New(cfg.CartSecret, cfg.CartCookie, cfg.SecureCookies)

	catalogSvc := catalog.NewService(db)
	productRepo := products.NewRepo(db)
	cartSvc := cart.NewService(db)
	userSvc := users.NewService(db)
	orderRepo := orders.NewRepo(db)
	orderSvc := orders.NewService(db, logger, cfg.Mailer, cfg.FromName, cfg.FromEmail)
	orderAdmin := orders.NewAdminService(db)

	auth := handlers.NewAuthHandler(db, userSvc, sessionCfg)
	catalogH := handlers.NewCatalogHandler(db, catalogSvc, productRepo)
	cartH := handlers.NewCartHandler(db, ck, cartSvc, productRepo)
	checkoutH := handlers.NewCheckoutHandler(db, ck, cartSvc, orderSvc)
	ordersH := handlers.NewOrdersHandler(db, orderRepo, orderAdmin)
	uploadsH := handlers.NewUploadsHandler(db, cfg.Store, orderSvc, orderRepo)

	adminOrdersH := adminh.NewOrdersHandler(db, orderRepo, orderAdmin)
	adminCatsH := adminh.NewCategoriesHandler(catalogSvc)
	adminProductsH := adminh.NewProductsHandler(db, productRepo)
	adminAttrsH := adminh.NewAttributesHandler(db)

	api := r.Group("/api/v1")

	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/logout", auth.Logout)
	api.GET("/auth/me", auth.Me)

	api.GET("/categories", catalogH.Categories)
	api.GET("/attributes", catalogH.Attributes)
	api.GET("/products", catalogH.Products)
	api.GET("/products/:slug", catalogH.ProductBySlug)

	api.GET("/cart", cartH.Get)
	api.POST("/cart/items", cartH.Add)
	api.PATCH("/cart/items/:variant_id", cartH.UpdateItem)
	api.DELETE("/cart/items/:variant_id", cartH.RemoveItem)
	api.DELETE("/cart", cartH.Clear)

	api.POST("/checkout", checkoutH.Create)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth())
	authed.GET("/orders", ordersH.List)
	authed.GET("/orders/:id", ordersH.Get)
	authed.GET("/orders/:id/invoice", ordersH.Invoice)
	authed.POST("/orders/:id/items/:item_id/files", uploadsH.Upload)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())

	admin.GET("/orders", adminOrdersH.List)
	admin.GET("/orders/:id", adminOrdersH.Get)
	admin.POST("/orders/:id/transition", adminOrdersH.Transition)
	admin.GET("/files", adminOrdersH.FileQueue)
	admin.POST("/files/:id/review", adminOrdersH.ReviewFile)
	admin.GET("/invoices", adminOrdersH.Invoices)
	admin.GET("/invoices/:id", adminOrdersH.Invoice)

	admin.GET("/categories", adminCatsH.List)
	admin.POST("/categories", adminCatsH.Create)
	admin.PATCH("/categories/:id", adminCatsH.Update)
	admin.DELETE("/categories/:id", adminCatsH.Delete)
	admin.POST("/categories/:id/activate", adminCatsH.SetActive(true))
	admin.POST("/categories/:id/deactivate", adminCatsH.SetActive(false))
	admin.POST("/categories/:id/subcategories", adminCatsH.CreateSubcategory)
	admin.PATCH("/subcategories/:id", adminCatsH.UpdateSubcategory)
	admin.DELETE("/subcategories/:id", adminCatsH.DeleteSubcategory)
	admin.POST("/subcategories/:id/activate", adminCatsH.SetSubcategoryActive(true))
	admin.POST("/subcategories/:id/deactivate", adminCatsH.SetSubcategoryActive(false))

	admin.GET("/products", adminProductsH.List)
	admin.POST("/products", adminProductsH.Create)
	admin.GET("/products/:id", adminProductsH.Get)
	admin.PATCH("/products/:id", adminProductsH.Update)
	admin.DELETE("/products/:id", adminProductsH.Delete)
	admin.POST("/products/:id/activate", adminProductsH.SetStatus(products.StatusActive))
	admin.POST("/products/:id/deactivate", adminProductsH.SetStatus(products.StatusInactive))
	admin.POST("/products/:id/variants", adminProductsH.AddVariant)
	admin.PATCH("/products/:id/variants/:vid", adminProductsH.UpdateVariant)
	admin.DELETE("/products/:id/variants/:vid", adminProductsH.DeleteVariant)
	admin.POST("/products/:id/variants/:vid/prices", adminProductsH.AddVariantPrice)
	admin.DELETE("/variant-prices/:id", adminProductsH.DeleteVariantPrice)
	admin.POST("/products/:id/discounts", adminProductsH.AddDiscount)
	admin.DELETE("/discounts/:id", adminProductsH.DeleteDiscount)

	adminAttrsH.Register(admin)

	return r
}
