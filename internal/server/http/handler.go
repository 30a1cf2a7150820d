// Package http exposes the REST surface of the server: the public auth
// endpoints and the token-gated CRUD endpoints for users, tasks and
// projects.
package http

import (
	"time"

	"github.com/alexkarev/taskboard/internal/logging"
	"github.com/alexkarev/taskboard/internal/server/config"
	"github.com/alexkarev/taskboard/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Handler carries the service layer and the knobs the HTTP edge needs.
type Handler struct {
	auth     *services.AuthService
	users    *services.UserService
	tasks    *services.TaskService
	projects *services.ProjectService
	logger   logging.Logger

	cookieMaxAge  int
	refreshWindow time.Duration
	corsOrigin    string
}

// NewHandler wires the HTTP handler from the service layer.
func NewHandler(auth *services.AuthService, users *services.UserService, tasks *services.TaskService, projects *services.ProjectService, logger logging.Logger, cfg *config.Config) *Handler {
	return &Handler{
		auth:          auth,
		users:         users,
		tasks:         tasks,
		projects:      projects,
		logger:        logger,
		cookieMaxAge:  int(cfg.TokenValidityDuration / time.Second),
		refreshWindow: cfg.TokenRefreshWindow,
		corsOrigin:    cfg.CORSAllowedOrigin,
	}
}

// InitRoutes builds the gin engine with the full route table.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.RequestLog())
	router.Use(h.CORS())

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/verify-email", h.VerifyEmail)
		authGroup.GET("/token/check", h.CheckToken)
		authGroup.POST("/token/refresh", h.RefreshToken)
	}

	protected := api.Group("")
	protected.Use(h.RequireAuth())
	{
		users := protected.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.POST("", h.CreateUser)
			users.GET("/:id", h.GetUser)
			users.PUT("/:id", h.UpdateUser)
			users.DELETE("/:id", h.DeleteUser)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", h.ListTasks)
			tasks.POST("", h.CreateTask)
			tasks.GET("/:id", h.GetTask)
			tasks.PUT("/:id", h.UpdateTask)
			tasks.DELETE("/:id", h.DeleteTask)
		}

		projects := protected.Group("/projects")
		{
			projects.GET("", h.ListProjects)
			projects.POST("", h.CreateProject)
			projects.GET("/:id", h.GetProject)
			projects.PUT("/:id", h.UpdateProject)
			projects.DELETE("/:id", h.DeleteProject)
		}
	}

	return router
}
