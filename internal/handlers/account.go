package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

// AccountHandler exposes the JSON register/login surface that coexists with
// the contact-entry flow.
type AccountHandler struct {
	log      *logger.Logger
	accounts services.AccountService
	parents  services.ParentService
	sessions services.SessionService
}

func NewAccountHandler(log *logger.Logger, accounts services.AccountService, parents services.ParentService, sessions services.SessionService) *AccountHandler {
	return &AccountHandler{
		log:      log.With("handler", "AccountHandler"),
		accounts: accounts,
		parents:  parents,
		sessions: sessions,
	}
}

func (ah *AccountHandler) Register(c *gin.Context) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		ParentName string `json:"parent_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx := c.Request.Context()

	user, err := ah.accounts.Register(ctx, req.Email, req.Password, req.ParentName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			RespondError(c, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrWeakPassword), errors.Is(err, services.ErrInvalidContact):
			RespondError(c, http.StatusBadRequest, err.Error())
		default:
			ah.log.Error("register failed", "error", err)
			RespondError(c, http.StatusInternalServerError, "could not create account")
		}
		return
	}

	// Accounts share the parent row keyed by the email contact.
	parent, err := ah.parents.GetOrCreateParent(ctx, user.Email)
	if err != nil {
		ah.log.Error("failed to link parent", "user_id", user.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "could not create account")
		return
	}

	token, err := ah.sessions.Issue(parent.ID, "")
	if err != nil {
		ah.log.Error("failed to issue session", "error", err)
		RespondError(c, http.StatusInternalServerError, "could not create session")
		return
	}
	ah.sessions.SetCookie(c, token)
	RespondOK(c, gin.H{"user_id": user.ID})
}

func (ah *AccountHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx := c.Request.Context()

	user, err := ah.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			RespondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		ah.log.Error("login failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "could not sign in")
		return
	}

	parent, err := ah.parents.GetOrCreateParent(ctx, user.Email)
	if err != nil {
		ah.log.Error("failed to link parent", "user_id", user.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "could not sign in")
		return
	}

	token, err := ah.sessions.Issue(parent.ID, "")
	if err != nil {
		ah.log.Error("failed to issue session", "error", err)
		RespondError(c, http.StatusInternalServerError, "could not create session")
		return
	}
	ah.sessions.SetCookie(c, token)
	RespondOK(c, gin.H{"user_id": user.ID})
}
