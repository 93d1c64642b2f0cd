package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/services"
)

// GenerateHandler drives the loading-page content generation call.
type GenerateHandler struct {
	log     *logger.Logger
	content services.ContentService
}

func NewGenerateHandler(log *logger.Logger, content services.ContentService) *GenerateHandler {
	return &GenerateHandler{
		log:     log.With("handler", "GenerateHandler"),
		content: content,
	}
}

// GenerateContent ensures development areas and challenge templates exist
// for the session profile. The two generations are independent and run
// concurrently; ready reports whether any areas came back.
func (gh *GenerateHandler) GenerateContent(c *gin.Context) {
	baby, ok := sessionBaby(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "no active profile")
		return
	}

	var areaCount int
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		areas, err := gh.content.EnsureDevelopmentAreas(ctx, baby)
		if err != nil {
			return err
		}
		areaCount = len(areas)
		return nil
	})
	g.Go(func() error {
		_, err := gh.content.EnsureChallengeTemplates(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		gh.log.Error("content generation failed", "baby_id", baby.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "content generation failed")
		return
	}

	RespondOK(c, gin.H{"ready": areaCount > 0})
}
