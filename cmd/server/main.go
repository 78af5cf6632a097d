package main

import (
	"log"
	"strings"

	"supermarket-backend/internal/audit"
	"supermarket-backend/internal/auth"
	"supermarket-backend/internal/cache"
	"supermarket-backend/internal/category"
	"supermarket-backend/internal/config"
	"supermarket-backend/internal/database"
	"supermarket-backend/internal/inventory"
	"supermarket-backend/internal/sale"
	"supermarket-backend/internal/supermarket"
	"supermarket-backend/internal/supplier"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	if err := cache.Init(cfg.RedisAddr); err != nil {
		log.Println("Redis unavailable, product cache disabled:", err)
	}
	defer cache.Products.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Supermarket
	protected.Post("/supermarkets", supermarket.CreateSupermarketHandler())
	protected.Get("/supermarkets/me", supermarket.GetMySupermarketHandler())
	protected.Get("/supermarkets/slug/:slug", supermarket.GetBySlugHandler())
	protected.Get("/supermarkets/stats", supermarket.StatsHandler())

	// Suppliers
	protected.Post("/suppliers", supplier.CreateSupplierHandler())
	protected.Get("/suppliers", supplier.ListSuppliersHandler())
	protected.Put("/suppliers/:id", supplier.UpdateSupplierHandler())
	protected.Delete("/suppliers/:id", supplier.DeleteSupplierHandler())

	// Categories
	protected.Post("/categories", category.CreateCategoryHandler())
	protected.Get("/categories", category.ListCategoriesHandler())
	protected.Put("/categories/:id", category.UpdateCategoryHandler())
	protected.Delete("/categories/:id", category.DeleteCategoryHandler())

	// Products
	protected.Post("/products", inventory.CreateProductHandler())
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/products/count", inventory.ProductCountHandler())
	protected.Get("/products/low-stock", inventory.LowStockHandler())
	protected.Get("/products/export", inventory.ExportProductsHandler())
	protected.Put("/products/:id", inventory.UpdateProductHandler())
	protected.Delete("/products/:id", inventory.DeleteProductHandler())

	// Sales
	protected.Post("/sales", sale.CreateSaleHandler())
	protected.Get("/sales", sale.ListSalesHandler())
	protected.Put("/sales/:id", sale.UpdateSaleHandler())
	protected.Delete("/sales/:id", sale.DeleteSaleHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
