package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

// ChallengeHandler renders the challenge detail page and handles enrollment.
type ChallengeHandler struct {
	log        *logger.Logger
	challenges services.ChallengeService
	content    services.ContentService
}

func NewChallengeHandler(log *logger.Logger, challenges services.ChallengeService, content services.ContentService) *ChallengeHandler {
	return &ChallengeHandler{
		log:        log.With("handler", "ChallengeHandler"),
		challenges: challenges,
		content:    content,
	}
}

// Challenge lazily generates the preview window of daily activities the
// first time a challenge page is opened.
func (ch *ChallengeHandler) Challenge(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	challengeID, ok := parseUintParam(c, "challengeID")
	if !ok {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	ctx := c.Request.Context()

	challenge, err := ch.challenges.GetChallenge(ctx, challengeID)
	if err != nil {
		if !errors.Is(err, services.ErrChallengeNotFound) {
			ch.log.Error("failed to load challenge", "challenge_id", challengeID, "error", err)
		}
		c.Redirect(http.StatusFound, "/home")
		return
	}

	preview, err := ch.content.EnsureChallengePreview(ctx, challenge, baby.AgeMonths, services.DefaultChallengePreviewDays)
	if err != nil {
		ch.log.Error("failed to ensure challenge preview", "challenge_id", challengeID, "error", err)
	}

	enrollments, err := ch.challenges.ActiveEnrollments(ctx, baby.ID)
	if err != nil {
		ch.log.Error("failed to load enrollments", "baby_id", baby.ID, "error", err)
	}
	enrolled := false
	for _, e := range enrollments {
		if e.ChallengeID == challenge.ID {
			enrolled = true
			break
		}
	}

	c.HTML(http.StatusOK, "challenge.html", gin.H{
		"baby":      baby,
		"challenge": challenge,
		"preview":   preview,
		"enrolled":  enrolled,
	})
}

// EnrollChallenge is idempotent: enrolling twice returns the same active
// enrollment id.
func (ch *ChallengeHandler) EnrollChallenge(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "no active profile")
		return
	}
	challengeID, ok := parseUintParam(c, "challengeID")
	if !ok {
		RespondError(c, http.StatusBadRequest, "invalid challenge id")
		return
	}

	enrollmentID, err := ch.challenges.Enroll(c.Request.Context(), baby.ID, challengeID)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			RespondError(c, http.StatusNotFound, "challenge not found")
			return
		}
		ch.log.Error("failed to enroll", "challenge_id", challengeID, "error", err)
		RespondError(c, http.StatusInternalServerError, "could not enroll")
		return
	}

	RespondOK(c, gin.H{"enrollment_id": enrollmentID})
}
