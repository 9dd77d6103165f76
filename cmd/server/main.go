package main

import (
	"log"
	"os"
	"time"

	"go-smartstore/internal/database"
	"go-smartstore/internal/handlers"
	"go-smartstore/internal/middleware"
	"go-smartstore/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	kv, err := database.Connect()
	if err != nil {
		log.Fatal("❌ Failed to open records database:", err)
	}

	st := store.Open(kv)

	r := gin.Default()

	// The React frontend runs on the Vite dev server during development
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login(st))
	r.GET("/api/system/status", handlers.GetSystemStatus)

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/logout", handlers.Logout(st))

		// Catalog
		api.GET("/products", handlers.GetProducts(st))
		api.POST("/products", handlers.SaveProduct(st))
		api.PUT("/products/:id", handlers.SaveProduct(st))
		api.DELETE("/products/:id", handlers.DeleteProduct(st))

		// Purchases (stock in)
		api.GET("/purchases", handlers.GetPurchases(st))
		api.POST("/purchases", handlers.CreatePurchase(st))
		api.PUT("/purchases/:id", handlers.UpdatePurchase(st))
		api.DELETE("/purchases/:id", handlers.DeletePurchase(st))

		// Sales (stock out)
		api.GET("/sales", handlers.GetSales(st))
		api.POST("/sales", handlers.CreateSale(st))
		api.PUT("/sales/:id", handlers.UpdateSale(st))
		api.DELETE("/sales/:id", handlers.DeleteSale(st))

		// Dashboard & reports
		api.GET("/reports", handlers.GetDashboard(st))
		api.GET("/reports/valuation", handlers.GetStockValuation(st))

		// Shop assistant
		api.POST("/ask", handlers.AskAI(st))
	}

	// --- DEPLOYMENT: Serve the built React frontend ---
	r.Static("/assets", "./web/assets")
	r.StaticFile("/vite.svg", "./web/vite.svg")

	// SPA Catch-All: If the user refreshes on "/dashboard",
	// serve index.html so React can handle the routing.
	r.NoRoute(func(c *gin.Context) {
		c.File("./web/index.html")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 SmartStore server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
