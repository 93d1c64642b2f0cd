package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

const (
	CtxParentID = "parent_id"
	CtxBabyUUID = "baby_uuid"
	CtxBaby     = "baby"
)

// SessionMiddleware guards routes behind the signed session cookie.
type SessionMiddleware struct {
	log      *logger.Logger
	sessions services.SessionService
	parents  services.ParentService
	profiles services.ProfileService
}

func NewSessionMiddleware(log *logger.Logger, sessions services.SessionService, parents services.ParentService, profiles services.ProfileService) *SessionMiddleware {
	return &SessionMiddleware{
		log:      log.With("middleware", "SessionMiddleware"),
		sessions: sessions,
		parents:  parents,
		profiles: profiles,
	}
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func (sm *SessionMiddleware) reject(c *gin.Context) {
	sm.sessions.ClearCookie(c)
	if isAPIRequest(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not signed in"})
		return
	}
	c.Redirect(http.StatusFound, "/")
	c.Abort()
}

// RequireParent verifies the cookie and exposes the parent id on the context.
func (sm *SessionMiddleware) RequireParent() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(services.SessionCookieName)
		if err != nil || token == "" {
			sm.reject(c)
			return
		}
		claims, err := sm.sessions.Parse(token)
		if err != nil {
			sm.reject(c)
			return
		}
		// A signed cookie can outlive its parent row.
		if _, err := sm.parents.GetParent(c.Request.Context(), claims.ParentID); err != nil {
			sm.reject(c)
			return
		}
		c.Set(CtxParentID, claims.ParentID)
		if claims.BabyUUID != "" {
			c.Set(CtxBabyUUID, claims.BabyUUID)
		}
		c.Next()
	}
}

// RequireProfile additionally loads the active baby profile and enforces
// ownership. A session pointing at someone else's profile is cleared.
func (sm *SessionMiddleware) RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(services.SessionCookieName)
		if err != nil || token == "" {
			sm.reject(c)
			return
		}
		claims, err := sm.sessions.Parse(token)
		if err != nil || claims.BabyUUID == "" {
			sm.reject(c)
			return
		}
		profileToken, err := uuid.Parse(claims.BabyUUID)
		if err != nil {
			sm.reject(c)
			return
		}
		baby, err := sm.profiles.GetOwnedByUUID(c.Request.Context(), profileToken, claims.ParentID)
		if err != nil {
			if errors.Is(err, services.ErrProfileNotOwned) {
				sm.log.Warn("session profile ownership mismatch", "parent_id", claims.ParentID, "baby_uuid", claims.BabyUUID)
			}
			sm.reject(c)
			return
		}
		c.Set(CtxParentID, claims.ParentID)
		c.Set(CtxBabyUUID, claims.BabyUUID)
		c.Set(CtxBaby, baby)
		c.Next()
	}
}
