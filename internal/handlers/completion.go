package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

// CompletionHandler records task completions.
type CompletionHandler struct {
	log          *logger.Logger
	activityRepo repos.AreaActivityRepo
	areaRepo     repos.AreaRepo
	completions  services.CompletionService
}

func NewCompletionHandler(log *logger.Logger, activityRepo repos.AreaActivityRepo, areaRepo repos.AreaRepo, completions services.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		log:          log.With("handler", "CompletionHandler"),
		activityRepo: activityRepo,
		areaRepo:     areaRepo,
		completions:  completions,
	}
}

// MarkTaskComplete appends a completion event and returns today's distinct
// completed-activity count.
func (ch *CompletionHandler) MarkTaskComplete(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "no active profile")
		return
	}
	activityID, ok := parseUintParam(c, "activityID")
	if !ok {
		RespondError(c, http.StatusBadRequest, "invalid activity id")
		return
	}
	ctx := c.Request.Context()

	activity, err := ch.activityRepo.GetByID(ctx, nil, activityID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "activity not found")
		return
	}
	area, err := ch.areaRepo.GetByID(ctx, nil, activity.AreaID)
	if err != nil || area.BabyID != baby.ID {
		RespondError(c, http.StatusNotFound, "activity not found")
		return
	}

	count, err := ch.completions.MarkTaskComplete(ctx, baby.ID, activity.ID, activity.AreaID)
	if err != nil {
		ch.log.Error("failed to mark task complete", "activity_id", activity.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "could not record completion")
		return
	}

	RespondOK(c, gin.H{"completed_today": count})
}
