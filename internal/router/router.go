package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/handlers"
)

func New(h *handlers.Handler, authRequired gin.HandlerFunc, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.GET("/me", authRequired, h.Me)
		}

		projects := api.Group("/projects", authRequired)
		{
			projects.POST("", h.CreateProject)
			projects.GET("", h.ListProjects)
			projects.GET("/:project_id", h.GetProject)
			projects.PATCH("/:project_id", h.UpdateProject)
			projects.DELETE("/:project_id", h.DeleteProject)

			projects.POST("/:project_id/members", h.AddMember)
			projects.GET("/:project_id/members", h.ListMembers)

			projects.POST("/:project_id/tasks", h.CreateTask)
			projects.GET("/:project_id/tasks", h.ListTasks)
			projects.GET("/:project_id/tasks/:task_id", h.GetTask)
			projects.PATCH("/:project_id/tasks/:task_id", h.UpdateTask)
			projects.DELETE("/:project_id/tasks/:task_id", h.DeleteTask)
		}
	}

	return r
}
