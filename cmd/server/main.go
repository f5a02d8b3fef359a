package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"appealapp/src/config"
	"appealapp/src/db"
	"appealapp/src/middleware"
	"appealapp/src/routes"
	"appealapp/src/storage"
)

// @title Appeal API
// @version 1.0
// @description Traffic-fine appeal submission service
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Database connection, enum types and schema migration
	db.Init()

	// Attachment object store
	storage.InitMinio()

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())

	svcs := routes.RegisterRoutes(router, storage.NewMinioStore())

	// Bootstrap admin account
	if err := svcs.User.EnsureAdmin(); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	port := ":" + config.ServerPort
	log.Printf("Starting appeal server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
