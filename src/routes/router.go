package routes

import (
	"appealapp/src/handlers"
	"appealapp/src/middleware"
	"appealapp/src/repositories"
	"appealapp/src/services"
	"appealapp/src/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "appealapp/docs"
)

// RegisterRoutes wires repositories, services and handlers and mounts all
// endpoints. The attachment store is injected so tests can run without
// MinIO. Returns the service container so callers can run startup tasks
// (admin bootstrap).
func RegisterRoutes(r *gin.Engine, store storage.Store) *services.Services {
	repos_instance := repositories.New()
	services_instance := services.New(repos_instance, store)
	handlers_instance := handlers.New(services_instance, store)

	r.POST("/api/register", handlers_instance.Auth.Register)
	r.POST("/api/login", handlers_instance.Auth.Login)
	r.GET("/uploads/:object", handlers_instance.Attachment.GetAttachment)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/api")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/auth/status", handlers.AuthStatusHandler)
		auth.GET("/user", handlers_instance.User.GetUser)
		auth.PUT("/user/update", handlers_instance.User.UpdateUser)

		complaints := auth.Group("/complaints")
		{
			complaints.POST("", handlers_instance.Complaint.CreateComplaint)
			complaints.GET("", handlers_instance.Complaint.GetMyComplaints)
		}

		admin := auth.Group("/admin")
		admin.Use(middleware.Admin())
		{
			admin.GET("/complaints", handlers_instance.Complaint.GetAllComplaints)
			admin.PUT("/complaints/:id/status", handlers_instance.Complaint.UpdateComplaintStatus)
		}
	}

	return services_instance
}
