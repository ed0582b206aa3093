package api

import (
	"net/http"

	"github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/gin-gonic/gin"
)

// Router manages the HTTP server and its controllers.
type Router struct {
	addr                    string
	baseURL                 string
	mode                    string
	controllers             []i.Controller
	authorizationMiddleware gin.HandlerFunc
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr                    string // Address to listen on
	BaseURL                 string // Base URL for API routes
	Mode                    string // Gin mode (release, debug, test); empty keeps the current mode
	Controllers             []i.Controller
	AuthorizationMiddleware gin.HandlerFunc
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	return &Router{
		addr:                    config.Addr,
		baseURL:                 config.BaseURL,
		mode:                    config.Mode,
		controllers:             config.Controllers,
		authorizationMiddleware: config.AuthorizationMiddleware,
	}
}

// Handler builds the gin engine with every controller registered.
//
// Routes are grouped under the base URL with two access levels:
// - Public routes: No authentication required.
// - Protected routes: Authentication required.
func (r *Router) Handler() http.Handler {
	if r.mode != "" {
		gin.SetMode(r.mode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group(r.baseURL)
	{
		publicRoutes := api.Group("/v1")
		{
			for _, c := range r.controllers {
				c.RegisterPublic(publicRoutes)
			}
		}

		protectedRoutes := api.Group("/v1")
		if r.authorizationMiddleware != nil {
			protectedRoutes.Use(r.authorizationMiddleware)
		}
		{
			for _, c := range r.controllers {
				c.RegisterProtected(protectedRoutes)
			}
		}
	}

	return router
}

// Run starts the HTTP server.
func (r *Router) Run() error {
	return http.ListenAndServe(r.addr, r.Handler())
}
