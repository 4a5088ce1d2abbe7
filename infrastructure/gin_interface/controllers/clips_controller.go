package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
	"storyspark-api/infrastructure/gin_interface/dto"
	"storyspark-api/middleware"
)

type ClipsController interface {
	RegisterRoutes(g *gin.Engine)
}

type clipsController struct {
	logger     outbound.LoggerPort
	clips      inbound.ClipServicePort
	audioStore outbound.AudioStorePort
}

func NewClipsController(logger outbound.LoggerPort, clips inbound.ClipServicePort,
	audioStore outbound.AudioStorePort) ClipsController {
	return &clipsController{
		logger:     logger,
		clips:      clips,
		audioStore: audioStore,
	}
}

func (c *clipsController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/clips", c.CreateClip)
	g.GET("/api/clips", c.ListClips)
	g.GET("/api/clips/:id", c.GetClip)
	g.GET("/api/clips/:id/events", middleware.SSEHeaders(), c.StreamEvents)
	g.GET("/api/clips/:id/audio", c.GetAudio)
	g.POST("/api/clips/:id/approve", c.ApproveClip)
}

// CreateClip accepts the request and returns the pending clip immediately;
// generation continues asynchronously.
func (c *clipsController) CreateClip(ctx *gin.Context) {
	var req dto.CreateClipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clip, err := c.clips.Submit(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, clip)
}

func (c *clipsController) ListClips(ctx *gin.Context) {
	clips, err := c.clips.List(ctx.Request.Context(), ctx.Query("child_id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	if clips == nil {
		clips = []*domain.Clip{}
	}
	ctx.JSON(http.StatusOK, clips)
}

func (c *clipsController) GetClip(ctx *gin.Context) {
	clip, err := c.clips.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, clip)
}

// StreamEvents replays the clip's progress log and streams new events as
// server-sent events until the run reaches a terminal status or the client
// disconnects.
func (c *clipsController) StreamEvents(ctx *gin.Context) {
	events, cancel, err := c.clips.SubscribeProgress(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	defer cancel()

	ctx.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		ctx.SSEvent("progress", event)
		return true
	})
}

func (c *clipsController) GetAudio(ctx *gin.Context) {
	clip, err := c.clips.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	if clip.AudioReference == "" {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "audio not available"})
		return
	}

	body, err := c.audioStore.Get(ctx.Request.Context(), clip.AudioReference)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			c.logger.Error(closeErr, "failed to close audio body")
		}
	}()

	ctx.DataFromReader(http.StatusOK, -1, "audio/mpeg", body, nil)
}

func (c *clipsController) ApproveClip(ctx *gin.Context) {
	var req dto.ApproveClipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clip, err := c.clips.Approve(ctx.Request.Context(), ctx.Param("id"), *req.Approved, req.ReviewerNote)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, clip)
}

func (c *clipsController) respondError(ctx *gin.Context, err error) {
	var stateErr *domain.StateError
	switch {
	case errors.Is(err, domain.ErrClipNotFound),
		errors.Is(err, domain.ErrCharacterNotFound),
		errors.Is(err, domain.ErrScenarioNotFound),
		errors.Is(err, domain.ErrChildNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &stateErr):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.logger.Error(err, "request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
