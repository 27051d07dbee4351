package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"adventurego/internal/gamemaster"
	"adventurego/internal/models"
	"adventurego/internal/worker"
)

const turnTimeout = 2 * time.Minute

// GameService is the game master surface the HTTP layer drives.
type GameService interface {
	StartGame(ctx context.Context, theme string) (string, *models.Scene, error)
	ChooseAction(ctx context.Context, gameID string, actionID int) (*models.Scene, error)
	PrepareStart(theme string) (string, []*models.Message)
	PrepareAction(gameID string, actionID int) ([]*models.Message, error)
	StreamScene(ctx context.Context, gameID string, history []*models.Message, emit func(models.StreamEvent) error) error
}

// Handler wires HTTP routes to the game master service.
type Handler struct {
	game  GameService
	turns *worker.Dispatcher
}

// NewHandler constructs a Handler instance.
func NewHandler(game GameService, turns *worker.Dispatcher) *Handler {
	return &Handler{game: game, turns: turns}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/game/start", h.startGame)
	api.POST("/game/action", h.chooseAction)
	api.POST("/game/start/stream", h.startGameStream)
	api.POST("/game/action/stream", h.chooseActionStream)
}

// CORSMiddleware opens the API to browser clients on other origins.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

type startGameRequest struct {
	Theme string `json:"theme"`
}

type chooseActionRequest struct {
	GameID   string `json:"gameId"`
	ActionID int    `json:"actionId"`
}

type gameResponse struct {
	GameID string        `json:"gameId"`
	Scene  *models.Scene `json:"scene"`
}

func (h *Handler) startGame(c *gin.Context) {
	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	release, err := h.turns.Acquire()
	if err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "server is busy, please retry"})
		return
	}
	defer release()

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	gameID, scene, err := h.game.StartGame(ctx, req.Theme)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gameResponse{GameID: gameID, Scene: scene})
}

func (h *Handler) chooseAction(c *gin.Context) {
	var req chooseActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.GameID == "" || req.ActionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gameId and actionId are required"})
		return
	}

	release, err := h.turns.Acquire()
	if err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "server is busy, please retry"})
		return
	}
	defer release()

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	scene, err := h.game.ChooseAction(ctx, req.GameID, req.ActionID)
	if err != nil {
		if errors.Is(err, gamemaster.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("game %q not found", req.GameID)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gameResponse{GameID: req.GameID, Scene: scene})
}

func (h *Handler) startGameStream(c *gin.Context) {
	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	release, err := h.turns.Acquire()
	if err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "server is busy, please retry"})
		return
	}
	defer release()

	gameID, history := h.game.PrepareStart(req.Theme)
	h.streamTurn(c, gameID, history)
}

func (h *Handler) chooseActionStream(c *gin.Context) {
	var req chooseActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.GameID == "" || req.ActionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gameId and actionId are required"})
		return
	}

	release, err := h.turns.Acquire()
	if err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "server is busy, please retry"})
		return
	}
	defer release()

	history, err := h.game.PrepareAction(req.GameID, req.ActionID)
	if err != nil {
		if errors.Is(err, gamemaster.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("game %q not found", req.GameID)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.streamTurn(c, req.GameID, history)
}

// streamTurn runs one turn over SSE: text fragments as the description
// arrives, then the scene, then the image if one could be generated.
func (h *Handler) streamTurn(c *gin.Context, gameID string, history []*models.Message) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	streamCtx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	sendEvent := func(event string, payload interface{}) error {
		var data []byte
		switch v := payload.(type) {
		case string:
			data = []byte(v)
		default:
			var err error
			data, err = json.Marshal(v)
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(c.Writer, "event: %s\n", event); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	err := h.game.StreamScene(streamCtx, gameID, history, func(ev models.StreamEvent) error {
		return sendEvent(ev.Type, ev.Data)
	})
	if err != nil {
		_ = sendEvent("error", gin.H{"message": err.Error()})
	}
}
