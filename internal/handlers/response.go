package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightsteps/brightsteps-backend/internal/middleware"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// RespondError writes the JSON error shape shared by the API surface.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// RespondOK writes a success payload, stamping success=true.
func RespondOK(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

// sessionBaby returns the profile loaded by RequireProfile.
func sessionBaby(c *gin.Context) (*types.Baby, bool) {
	v, ok := c.Get(middleware.CtxBaby)
	if !ok {
		return nil, false
	}
	baby, ok := v.(*types.Baby)
	return baby, ok
}

func sessionParentID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middleware.CtxParentID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
