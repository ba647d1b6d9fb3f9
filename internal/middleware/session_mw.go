package middleware

import (
	"log"
	"net/http"
	"strings"

	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
	"cyber_portal/internal/session"
	"cyber_portal/internal/store"
	"cyber_portal/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ProfileIDKey = "profileID"
	SessionKey   = "session"
	AuthUserKey  = "authUser"
)

// ProfileStore returns the slice of base that holds one profile's session keys
func ProfileStore(base store.Store, profileID string) store.Store {
	return store.WithPrefix(base, "profile:"+profileID+":")
}

// SessionMiddleware resolves the profile token, when present, into the profile's
// session manager and current user. Requests without a usable token (missing, malformed,
// expired) continue anonymously; RoleMiddleware denies them on gated routes.
func SessionMiddleware(jwtUtil *utils.JWTUtil, base store.Store, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Next()
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		sess := session.NewManager(ProfileStore(base, claims.ProfileID), users)
		user, err := sess.Current(c.Request.Context())
		if err != nil {
			log.Printf("ERROR: Failed to resolve session for profile %s: %v", claims.ProfileID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}

		c.Set(ProfileIDKey, claims.ProfileID)
		c.Set(SessionKey, sess)
		if user != nil {
			c.Set(AuthUserKey, user)
		}

		c.Next()
	}
}

// CurrentUser returns the logged-in user for the request, or nil
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(AuthUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// CurrentSession returns the request's session manager, if a profile token was sent
func CurrentSession(c *gin.Context) (*session.Manager, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Manager)
	return sess, ok
}

// CurrentProfileID returns the profile id from the request token, or ""
func CurrentProfileID(c *gin.Context) string {
	return c.GetString(ProfileIDKey)
}
