package main

import (
	"log"
	"os"

	"github.com/NaufalRill/sitepanel/pkg/sitepanel/articles"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/auth"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/clients"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/database"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/faqs"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/forms"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/links"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/models"
	"github.com/NaufalRill/sitepanel/pkg/sitepanel/websites"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/NaufalRill/sitepanel/api/swagger"
)

// @title SitePanel API
// @version 1.0
// @description Multi-tenant content management backend for client websites: external links, FAQs, articles and forms.

// @contact.name SitePanel Support
// @contact.url https://github.com/NaufalRill/sitepanel

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// Get database path from environment or use default
	dbPath := os.Getenv("SITEPANEL_DB_PATH")
	if dbPath == "" {
		dbPath = "sitepanel.db"
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Seed the feature catalog (must run before websites can reference it)
	if err := ensureFeaturesExist(); err != nil {
		log.Fatalf("Failed to ensure features exist: %v", err)
	}

	// Create default admin user if no admin exists
	if err := ensureAdminExists(); err != nil {
		log.Fatalf("Failed to ensure admin user exists: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "sitepanel",
			})
		})

		// Auth routes (public)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Website management (admin only)
		websitesHandler := websites.NewHandler(database.GetDB())
		websitesGroup := api.Group("/websites")
		websitesGroup.Use(auth.AuthMiddleware(), auth.RequireAdmin())
		websitesHandler.RegisterRoutes(websitesGroup)

		// Client management (admin only)
		clientsHandler := clients.NewHandler(database.GetDB())
		clientsGroup := api.Group("/clients")
		clientsGroup.Use(auth.AuthMiddleware(), auth.RequireAdmin())
		clientsHandler.RegisterRoutes(clientsGroup)

		// Website-scoped content routes. Clients only reach websites assigned
		// to them; everything else is a 404.
		content := api.Group("/websites/:website")
		content.Use(auth.AuthMiddleware(), auth.WebsiteMiddleware(database.GetDB()),
			auth.ContentAccessMiddleware(database.GetDB()))
		{
			links.NewHandler(database.GetDB()).RegisterRoutes(content)
			faqs.NewHandler(database.GetDB()).RegisterRoutes(content)
			articles.NewHandler(database.GetDB()).RegisterRoutes(content)
			forms.NewHandler(database.GetDB()).RegisterRoutes(content)
		}
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting SitePanel server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureFeaturesExist seeds the website feature catalog. Features are keyed
// by slug so reruns are no-ops.
func ensureFeaturesExist() error {
	db := database.GetDB()

	features := []models.WebsiteFeature{
		{ID: models.FeatureBlog, Name: "Blog"},
		{ID: models.FeatureExternalLink, Name: "External Links"},
		{ID: models.FeatureFaq, Name: "FAQ"},
		{ID: models.FeatureForm, Name: "Forms"},
	}

	for _, feature := range features {
		var existing models.WebsiteFeature
		if err := db.First(&existing, "id = ?", feature.ID).Error; err == nil {
			continue
		}
		if err := db.Create(&feature).Error; err != nil {
			return err
		}
	}
	return nil
}

// ensureAdminExists creates a default admin user if no admin exists.
func ensureAdminExists() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}

	adminUser := models.User{
		Email:        "admin@sitepanel.local",
		Name:         "Admin",
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Printf("Created default admin user: admin@sitepanel.local (password: changeme)")
	return nil
}
