package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

// ActivityHandler renders the per-area activity list, the activity detail
// page and the timer view.
type ActivityHandler struct {
	log          *logger.Logger
	areaRepo     repos.AreaRepo
	activityRepo repos.AreaActivityRepo
	content      services.ContentService
	completions  services.CompletionService
}

func NewActivityHandler(
	log *logger.Logger,
	areaRepo repos.AreaRepo,
	activityRepo repos.AreaActivityRepo,
	content services.ContentService,
	completions services.CompletionService,
) *ActivityHandler {
	return &ActivityHandler{
		log:          log.With("handler", "ActivityHandler"),
		areaRepo:     areaRepo,
		activityRepo: activityRepo,
		content:      content,
		completions:  completions,
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Activities lazily generates the area's activity set on first view.
func (ah *ActivityHandler) Activities(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	areaID, ok := parseUintParam(c, "areaID")
	if !ok {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	ctx := c.Request.Context()

	area, err := ah.areaRepo.GetByID(ctx, nil, areaID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			ah.log.Error("failed to load area", "area_id", areaID, "error", err)
		}
		c.Redirect(http.StatusFound, "/home")
		return
	}
	if area.BabyID != baby.ID {
		c.Redirect(http.StatusFound, "/home")
		return
	}

	activities, err := ah.content.EnsureAreaActivities(ctx, area)
	if err != nil {
		ah.log.Error("failed to ensure area activities", "area_id", areaID, "error", err)
	}

	completedIDs, err := ah.completions.CompletedTodayIDs(ctx, baby.ID)
	if err != nil {
		ah.log.Error("failed to load completions", "baby_id", baby.ID, "error", err)
	}
	completed := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	c.HTML(http.StatusOK, "activities.html", gin.H{
		"baby":       baby,
		"area":       area,
		"activities": activities,
		"completed":  completed,
	})
}

func (ah *ActivityHandler) Activity(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	activityID, ok := parseUintParam(c, "activityID")
	if !ok {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	ctx := c.Request.Context()

	activity, err := ah.activityRepo.GetByID(ctx, nil, activityID)
	if err != nil {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	area, err := ah.areaRepo.GetByID(ctx, nil, activity.AreaID)
	if err != nil || area.BabyID != baby.ID {
		c.Redirect(http.StatusFound, "/home")
		return
	}

	done, err := ah.completions.IsCompletedToday(ctx, baby.ID, activity.ID)
	if err != nil {
		ah.log.Error("failed to check completion", "activity_id", activity.ID, "error", err)
	}

	var materials, howTo []string
	if len(activity.Materials) > 0 {
		if err := json.Unmarshal(activity.Materials, &materials); err != nil {
			ah.log.Warn("failed to decode materials", "activity_id", activity.ID, "error", err)
		}
	}
	if len(activity.HowTo) > 0 {
		if err := json.Unmarshal(activity.HowTo, &howTo); err != nil {
			ah.log.Warn("failed to decode steps", "activity_id", activity.ID, "error", err)
		}
	}

	c.HTML(http.StatusOK, "activity.html", gin.H{
		"baby":            baby,
		"area":            area,
		"activity":        activity,
		"materials":       materials,
		"how_to":          howTo,
		"completed_today": done,
	})
}

func (ah *ActivityHandler) Timer(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	activityID, ok := parseUintParam(c, "activityID")
	if !ok {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	ctx := c.Request.Context()

	activity, err := ah.activityRepo.GetByID(ctx, nil, activityID)
	if err != nil {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	area, err := ah.areaRepo.GetByID(ctx, nil, activity.AreaID)
	if err != nil || area.BabyID != baby.ID {
		c.Redirect(http.StatusFound, "/home")
		return
	}

	c.HTML(http.StatusOK, "timer.html", gin.H{
		"baby":     baby,
		"area":     area,
		"activity": activity,
	})
}
