package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

// DebugHandler exposes the now-playing counter internals for manual poking.
// The numbers are process-local and purely cosmetic.
type DebugHandler struct {
	nowPlaying services.NowPlayingService
	areaRepo   repos.AreaRepo
}

func NewDebugHandler(nowPlaying services.NowPlayingService, areaRepo repos.AreaRepo) *DebugHandler {
	return &DebugHandler{nowPlaying: nowPlaying, areaRepo: areaRepo}
}

func (dh *DebugHandler) NowPlaying(c *gin.Context) {
	global, _ := dh.nowPlaying.Snapshot()
	c.JSON(http.StatusOK, gin.H{"now_playing": global})
}

func (dh *DebugHandler) RefreshNowPlaying(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"now_playing": dh.nowPlaying.GlobalCount()})
}

// SetNowPlaying is a no-op on the counter itself: the next visit resamples
// anyway, so it just echoes whether the requested number is in range.
func (dh *DebugHandler) SetNowPlaying(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n < 101 || n > 999 {
		RespondError(c, http.StatusBadRequest, "number must be in 101-999")
		return
	}
	c.JSON(http.StatusOK, gin.H{"now_playing": n, "note": "counter resamples on next visit"})
}

func (dh *DebugHandler) AreaNowPlaying(c *gin.Context) {
	_, areas := dh.nowPlaying.Snapshot()
	c.JSON(http.StatusOK, gin.H{"area_now_playing": areas})
}

func (dh *DebugHandler) RefreshAreaNowPlaying(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "no active profile")
		return
	}
	areas, err := dh.areaRepo.ListByBaby(c.Request.Context(), nil, baby.ID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not load areas")
		return
	}
	areaIDs := make([]uint, 0, len(areas))
	for _, a := range areas {
		areaIDs = append(areaIDs, a.ID)
	}
	c.JSON(http.StatusOK, gin.H{"area_now_playing": dh.nowPlaying.AreaCounts(areaIDs)})
}
