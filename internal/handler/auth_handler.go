package handler

import (
	"fmt"
	"log"
	"net/http"

	"cyber_portal/internal/middleware"
	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
	"cyber_portal/internal/service"
	"cyber_portal/internal/session"
	"cyber_portal/internal/store"
	"cyber_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler handles registration, login and the nav/session state
type AuthHandler struct {
	service service.AuthService
	jwtUtil *utils.JWTUtil
	store   store.Store
	users   repository.UserRepository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, jwtUtil *utils.JWTUtil, base store.Store, users repository.UserRepository) *AuthHandler {
	return &AuthHandler{service: s, jwtUtil: jwtUtil, store: base, users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Registered successfully as %s! You can now login.", user.Role),
		"username": user.Username,
		"role":     user.Role,
	})
}

// Login starts a session in the caller's profile. Callers without a profile token get a new profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profileID := middleware.CurrentProfileID(c)
	if profileID == "" {
		profileID = uuid.NewString()
	}
	sess := session.NewManager(middleware.ProfileStore(h.store, profileID), h.users)

	result, err := h.service.Login(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}

	token, err := h.jwtUtil.GenerateToken(profileID)
	if err != nil {
		log.Printf("ERROR: Session started for %s but token generation failed: %v", result.User.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	displayName := result.User.Name
	if displayName == "" {
		displayName = result.User.Username
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           fmt.Sprintf("Welcome %s! Redirecting...", displayName),
		"token":             token,
		"username":          result.User.Username,
		"role":              result.User.Role,
		"redirect":          result.Redirect,
		"redirect_after_ms": result.Delay.Milliseconds(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if ok {
		if err := h.service.Logout(c.Request.Context(), sess); err != nil {
			respondError(c, err, "Failed to logout")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": service.RedirectHome})
}

// Me reports who is logged in, for the nav bar and to prefill the complaint form
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      user.Username,
		"role":          user.Role,
		"name":          user.Name,
		"email":         user.Email,
	})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", h.Me)
	}
}
