package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"blitz/internal/app"
)

// stream serves the long-lived server-sent-events channel carrying one full
// snapshot per delivery. A reconnect (page refresh) opens a new stream and
// bumps the player's notifier generation, which retires the previous loop on
// its next wake.
func (h *Handler) stream(c *gin.Context) {
	gameID := c.Param("id")
	player := c.Param("player")

	sub, err := h.service.Subscribe(gameID, player)
	if err != nil {
		h.fail(c, err)
		return
	}

	connID := uuid.NewString()
	log := h.logger.With(
		zap.String("game_id", gameID),
		zap.String("player", player),
		zap.String("conn_id", connID),
		zap.Uint64("generation", sub.Generation()))
	log.Info("stream opened")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		snap, err := sub.Next(ctx)
		switch {
		case err == nil:
		case errors.Is(err, app.ErrStaleStream):
			log.Info("stream superseded by newer connection")
			return
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			log.Info("stream closed by client")
			return
		case errors.Is(err, app.ErrGameNotFound), errors.Is(err, app.ErrPlayerNotFound):
			log.Info("stream closed, game or player gone", zap.Error(err))
			return
		default:
			log.Error("stream delivery failed", zap.Error(err))
			return
		}

		data, err := json.Marshal(snap)
		if err != nil {
			log.Error("snapshot marshal failed", zap.Error(err))
			continue
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			log.Info("stream write failed", zap.Error(err))
			return
		}
		c.Writer.Flush()
	}
}
