// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/resalex/backend/internal/config"
	"github.com/resalex/backend/internal/handlers"
	"github.com/resalex/backend/internal/middleware"
	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/services"
	"github.com/resalex/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	paymentProvider := services.NewStripeProvider(cfg)

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, storageService)
	productService := services.NewProductService(db, storageService)
	orderService := services.NewOrderService(db, paymentProvider, cfg.Payment.Currency)
	chatService := services.NewChatService(db)
	notificationService := services.NewNotificationService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService)
	chatHandler := handlers.NewChatHandler(chatService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.RequestsPerSecond(cfg.RateLimit.GeneralPerSecond))

	// Both upload routes share one budget per client.
	uploadLimit := middleware.RequestsPerMinute(cfg.RateLimit.UploadPerMinute)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.RequestsPerMinute(cfg.RateLimit.AuthPerMinute))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		{
			// Authenticated user routes
			protected := users.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("", userHandler.ListUsers)
				protected.POST("", middleware.RoleRequired(models.RoleAdmin, models.RoleRoot), userHandler.CreateStaffUser)
				protected.PUT("/me", userHandler.UpdateProfile)
				protected.GET("/me/stats", userHandler.GetProfileStats)
				protected.POST("/me/avatar", uploadLimit, userHandler.UploadAvatar)
				protected.GET("/:id", userHandler.GetUser)
				protected.DELETE("/:id", middleware.StaffRequired(), userHandler.DeleteUser)
				protected.PATCH("/:id/toggle-active", middleware.StaffRequired(), userHandler.ToggleActive)
			}
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.SearchProducts)
			products.GET("/recent", productHandler.RecentProducts)

			// Authenticated routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", middleware.RoleRequired(models.RoleSeller, models.RoleAdmin, models.RoleRoot), productHandler.CreateListing)
				protected.GET("/mine", productHandler.ListMyListings)
				protected.GET("/review-queue", middleware.StaffRequired(), productHandler.ListPendingReview)
				protected.POST("/images", uploadLimit, productHandler.UploadImage)
				protected.PUT("/:id", productHandler.UpdateListing)
				protected.DELETE("/:id", productHandler.DeleteListing)
				protected.PATCH("/:id/review", middleware.StaffRequired(), productHandler.ReviewListing)
			}

			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", middleware.StaffRequired(), orderHandler.ListAll)
			orders.GET("/purchases", orderHandler.ListPurchases)
			orders.GET("/sales", orderHandler.ListSales)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/payment-intent", orderHandler.RequestPayment)
			orders.POST("/:id/confirm-payment", orderHandler.ConfirmPayment)
			orders.PATCH("/:id/status", orderHandler.UpdateStatus)
			orders.POST("/:id/messages", chatHandler.SendMessage)
			orders.GET("/:id/messages", chatHandler.ListMessages)
		}

		// Chat routes
		chat := v1.Group("/chat")
		chat.Use(middleware.AuthRequired())
		{
			chat.GET("/unread-count", chatHandler.CountUnread)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.CountUnread)
		}

		// Category routes (public)
		categories := v1.Group("/categories")
		{
			categories.GET("", getCategoriesHandler)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r, nil
}

// Helper handlers for simple endpoints
func getCategoriesHandler(c *gin.Context) {
	categories := []map[string]interface{}{
		{"id": models.CategorySneakers, "name": "Sneakers"},
		{"id": models.CategoryClothing, "name": "Clothing"},
		{"id": models.CategoryAccessories, "name": "Accessories"},
		{"id": models.CategoryElectronics, "name": "Electronics"},
		{"id": models.CategoryCollectibles, "name": "Collectibles"},
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}
