package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/config"
	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

// OnboardingHandler walks a signed-in parent through creating a baby profile
// and selecting development goals.
type OnboardingHandler struct {
	log      *logger.Logger
	profiles services.ProfileService
	avatars  services.AvatarService
	sessions services.SessionService
	goals    *config.GoalTable
}

func NewOnboardingHandler(log *logger.Logger, profiles services.ProfileService, avatars services.AvatarService, sessions services.SessionService, goals *config.GoalTable) *OnboardingHandler {
	return &OnboardingHandler{
		log:      log.With("handler", "OnboardingHandler"),
		profiles: profiles,
		avatars:  avatars,
		sessions: sessions,
		goals:    goals,
	}
}

func (oh *OnboardingHandler) CreateProfilePage(c *gin.Context) {
	c.HTML(http.StatusOK, "create-profile.html", gin.H{
		"age_groups": oh.goals.AgeGroups,
	})
}

// CreateProfile stores the name/age step in the session-free form flow: the
// values ride along as hidden fields into the goal-selection step.
func (oh *OnboardingHandler) CreateProfile(c *gin.Context) {
	babyName := c.PostForm("baby_name")
	ageGroup := c.PostForm("age_group")
	if babyName == "" || ageGroup == "" {
		c.HTML(http.StatusOK, "create-profile.html", gin.H{
			"error":      "please fill in the baby's name and age group",
			"baby_name":  babyName,
			"age_groups": oh.goals.AgeGroups,
		})
		return
	}
	c.HTML(http.StatusOK, "select-goals.html", gin.H{
		"baby_name": babyName,
		"age_group": ageGroup,
		"goals":     oh.goals.Tags(),
	})
}

func (oh *OnboardingHandler) SelectGoalsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "select-goals.html", gin.H{
		"baby_name": c.Query("baby_name"),
		"age_group": c.Query("age_group"),
		"goals":     oh.goals.Tags(),
	})
}

// SelectGoals creates the profile, points the session at it and sends the
// parent to the loading page that kicks off content generation.
func (oh *OnboardingHandler) SelectGoals(c *gin.Context) {
	parentID, ok := sessionParentID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	input := services.CreateProfileInput{
		ParentID: parentID,
		BabyName: c.PostForm("baby_name"),
		AgeGroup: c.PostForm("age_group"),
		Goals:    c.PostFormArray("goals"),
	}
	baby, err := oh.profiles.CreateProfile(c.Request.Context(), input)
	if err != nil {
		c.HTML(http.StatusOK, "select-goals.html", gin.H{
			"error":     err.Error(),
			"baby_name": input.BabyName,
			"age_group": input.AgeGroup,
			"goals":     oh.goals.Tags(),
		})
		return
	}

	if err := oh.avatars.CreateProfileAvatar(c.Request.Context(), nil, baby); err != nil {
		oh.log.Warn("failed to render profile avatar", "baby_id", baby.ID, "error", err)
	}

	token, err := oh.sessions.Issue(parentID, baby.UUID.String())
	if err != nil {
		oh.log.Error("failed to issue session", "error", err)
		c.Redirect(http.StatusFound, "/")
		return
	}
	oh.sessions.SetCookie(c, token)
	c.Redirect(http.StatusFound, "/loading")
}

func (oh *OnboardingHandler) Loading(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "loading.html", gin.H{
		"baby_name": baby.BabyName,
	})
}

const maxAvatarUploadBytes = 5 << 20

// UploadAvatar replaces the active profile's avatar with an uploaded photo.
func (oh *OnboardingHandler) UploadAvatar(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "no active profile")
		return
	}
	header, err := c.FormFile("avatar")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "avatar file is required")
		return
	}
	if header.Size > maxAvatarUploadBytes {
		RespondError(c, http.StatusBadRequest, "avatar file too large")
		return
	}
	file, err := header.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "could not read avatar file")
		return
	}
	defer file.Close()
	raw, err := io.ReadAll(io.LimitReader(file, maxAvatarUploadBytes))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "could not read avatar file")
		return
	}

	if err := oh.avatars.CreateProfileAvatarFromImage(c.Request.Context(), nil, baby, raw); err != nil {
		oh.log.Error("avatar upload failed", "baby_id", baby.ID, "error", err)
		RespondError(c, http.StatusBadRequest, "could not process avatar image")
		return
	}
	RespondOK(c, gin.H{"avatar_path": baby.AvatarPath})
}

// SwitchProfile re-points the session at another profile owned by the same
// parent.
func (oh *OnboardingHandler) SwitchProfile(c *gin.Context) {
	parentID, ok := sessionParentID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	profileToken, err := uuid.Parse(c.Param("babyUUID"))
	if err != nil {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	baby, err := oh.profiles.GetOwnedByUUID(c.Request.Context(), profileToken, parentID)
	if err != nil {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	token, err := oh.sessions.Issue(parentID, baby.UUID.String())
	if err != nil {
		oh.log.Error("failed to issue session", "error", err)
		c.Redirect(http.StatusFound, "/")
		return
	}
	oh.sessions.SetCookie(c, token)
	c.Redirect(http.StatusFound, "/home")
}
