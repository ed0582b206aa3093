// Package identity exposes registration, login and the bearer token middleware.
package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer handles HTTP requests related to authentication.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.registerUser)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {}

// registerUser handles user registration.
func (c *IdentityServer) registerUser(ctx *gin.Context) {
	var request AuthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := c.authService.Register(ctx, request.Username, request.Password)
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	case errors.Is(err, i.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
	case errors.Is(err, dmn.ErrWeakPassword),
		errors.Is(err, dmn.ErrUsernameTooShort),
		errors.Is(err, dmn.ErrUsernameTooLong),
		errors.Is(err, dmn.ErrUsernameFormat):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
	}
}

// login handles user login.
func (c *IdentityServer) login(ctx *gin.Context) {
	var request AuthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.SignIn(ctx, request.Username, request.Password)
	if errors.Is(err, i.ErrInvalidCredentials) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign in"})
		return
	}

	ctx.JSON(http.StatusOK, &AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Token:    token,
	})
}
