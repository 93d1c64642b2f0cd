package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/services"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// HomeHandler renders the dashboard: development areas, active challenges,
// today's progress and the cosmetic now-playing counts.
type HomeHandler struct {
	log         *logger.Logger
	areaRepo    repos.AreaRepo
	challenges  services.ChallengeService
	completions services.CompletionService
	nowPlaying  services.NowPlayingService
}

func NewHomeHandler(
	log *logger.Logger,
	areaRepo repos.AreaRepo,
	challenges services.ChallengeService,
	completions services.CompletionService,
	nowPlaying services.NowPlayingService,
) *HomeHandler {
	return &HomeHandler{
		log:         log.With("handler", "HomeHandler"),
		areaRepo:    areaRepo,
		challenges:  challenges,
		completions: completions,
		nowPlaying:  nowPlaying,
	}
}

func (hh *HomeHandler) Home(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	ctx := c.Request.Context()

	areas, err := hh.areaRepo.ListByBaby(ctx, nil, baby.ID)
	if err != nil {
		hh.log.Error("failed to load development areas", "baby_id", baby.ID, "error", err)
		areas = []*types.DevelopmentArea{}
	}

	challenges, err := hh.challenges.ListChallenges(ctx)
	if err != nil {
		hh.log.Error("failed to load challenges", "error", err)
		challenges = []*types.Challenge{}
	}

	enrollments, err := hh.challenges.ActiveEnrollments(ctx, baby.ID)
	if err != nil {
		hh.log.Error("failed to load enrollments", "baby_id", baby.ID, "error", err)
	}
	enrolledIDs := make(map[uint]bool, len(enrollments))
	for _, e := range enrollments {
		enrolledIDs[e.ChallengeID] = true
	}

	completedToday, err := hh.completions.CompletedTodayCount(ctx, baby.ID)
	if err != nil {
		hh.log.Error("failed to count completions", "baby_id", baby.ID, "error", err)
	}

	areaIDs := make([]uint, 0, len(areas))
	for _, a := range areas {
		areaIDs = append(areaIDs, a.ID)
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"baby":             baby,
		"areas":            areas,
		"challenges":       challenges,
		"enrolled_ids":     enrolledIDs,
		"completed_today":  completedToday,
		"now_playing":      hh.nowPlaying.GlobalCount(),
		"area_now_playing": hh.nowPlaying.AreaCounts(areaIDs),
	})
}
