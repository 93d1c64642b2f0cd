package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

// AssessmentHandler serves the ability-assessment question set and records
// answers, triggering personalized activity generation.
type AssessmentHandler struct {
	log         *logger.Logger
	assessments services.AssessmentService
}

func NewAssessmentHandler(log *logger.Logger, assessments services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		log:         log.With("handler", "AssessmentHandler"),
		assessments: assessments,
	}
}

func (ah *AssessmentHandler) Questions(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "no active profile")
		return
	}
	ctx := c.Request.Context()

	done, err := ah.assessments.AssessedToday(ctx, baby.ID)
	if err != nil {
		ah.log.Error("failed to check assessment state", "baby_id", baby.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "could not load assessment")
		return
	}
	if done {
		RespondOK(c, gin.H{"assessed_today": true, "questions": []any{}})
		return
	}

	questions, err := ah.assessments.GenerateQuestions(ctx, baby)
	if err != nil {
		ah.log.Error("failed to generate questions", "baby_id", baby.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "could not load assessment")
		return
	}
	RespondOK(c, gin.H{"assessed_today": false, "questions": questions})
}

// SaveAssessment records the answers and immediately generates personalized
// activities from the updated assessment state.
func (ah *AssessmentHandler) SaveAssessment(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "no active profile")
		return
	}
	var req struct {
		Answers []services.AssessmentAnswer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Answers) == 0 {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx := c.Request.Context()

	if err := ah.assessments.SaveAnswers(ctx, baby, req.Answers); err != nil {
		if errors.Is(err, services.ErrInvalidResponse) {
			RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		ah.log.Error("failed to save answers", "baby_id", baby.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "could not save assessment")
		return
	}

	activities, err := ah.assessments.GeneratePersonalized(ctx, baby)
	if err != nil {
		ah.log.Error("failed to generate personalized activities", "baby_id", baby.ID, "error", err)
		activities = nil
	}

	RespondOK(c, gin.H{"personalized_count": len(activities)})
}

func (ah *AssessmentHandler) PersonalizedActivities(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "no active profile")
		return
	}
	activities, err := ah.assessments.ListPersonalized(c.Request.Context(), baby.ID, 20)
	if err != nil {
		ah.log.Error("failed to list personalized activities", "baby_id", baby.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "could not load activities")
		return
	}
	RespondOK(c, gin.H{"activities": activities})
}
