package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

// EntryHandler covers the landing page, the contact-entry form, logout and
// the coming-soon placeholder.
type EntryHandler struct {
	log      *logger.Logger
	parents  services.ParentService
	profiles services.ProfileService
	sessions services.SessionService
}

func NewEntryHandler(log *logger.Logger, parents services.ParentService, profiles services.ProfileService, sessions services.SessionService) *EntryHandler {
	return &EntryHandler{
		log:      log.With("handler", "EntryHandler"),
		parents:  parents,
		profiles: profiles,
		sessions: sessions,
	}
}

// Root redirects based on session state: no session shows the entry page,
// a parent without a selected profile goes to onboarding, otherwise /home.
func (eh *EntryHandler) Root(c *gin.Context) {
	token, err := c.Cookie(services.SessionCookieName)
	if err != nil || token == "" {
		c.HTML(http.StatusOK, "entry.html", gin.H{})
		return
	}
	claims, err := eh.sessions.Parse(token)
	if err != nil {
		eh.sessions.ClearCookie(c)
		c.HTML(http.StatusOK, "entry.html", gin.H{})
		return
	}
	if claims.BabyUUID == "" {
		c.Redirect(http.StatusFound, "/create-profile")
		return
	}
	profileToken, err := uuid.Parse(claims.BabyUUID)
	if err != nil {
		eh.sessions.ClearCookie(c)
		c.HTML(http.StatusOK, "entry.html", gin.H{})
		return
	}
	if _, err := eh.profiles.GetOwnedByUUID(c.Request.Context(), profileToken, claims.ParentID); err != nil {
		eh.sessions.ClearCookie(c)
		c.HTML(http.StatusOK, "entry.html", gin.H{})
		return
	}
	c.Redirect(http.StatusFound, "/home")
}

// ParentEntry handles the contact form. Invalid contact info re-renders the
// entry page with the error message instead of failing the request.
func (eh *EntryHandler) ParentEntry(c *gin.Context) {
	contactInfo := c.PostForm("contact_info")
	parent, err := eh.parents.GetOrCreateParent(c.Request.Context(), contactInfo)
	if err != nil {
		c.HTML(http.StatusOK, "entry.html", gin.H{
			"error":        err.Error(),
			"contact_info": contactInfo,
		})
		return
	}

	token, err := eh.sessions.Issue(parent.ID, "")
	if err != nil {
		eh.log.Error("failed to issue session", "error", err)
		c.HTML(http.StatusInternalServerError, "entry.html", gin.H{"error": "something went wrong, please try again"})
		return
	}
	eh.sessions.SetCookie(c, token)
	c.Redirect(http.StatusFound, "/create-profile")
}

func (eh *EntryHandler) Logout(c *gin.Context) {
	eh.sessions.ClearCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (eh *EntryHandler) ComingSoon(c *gin.Context) {
	c.HTML(http.StatusOK, "coming-soon.html", gin.H{})
}
