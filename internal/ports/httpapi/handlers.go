package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blitz/internal/app"
)

type createGameRequest struct {
	GameID         string `json:"game_id" binding:"required"`
	UserName       string `json:"user_name" binding:"required"`
	NumberOfJokers *int   `json:"number_of_jokers" binding:"omitempty,min=0,max=6"`
	NumberOfDecks  int    `json:"number_of_decks" binding:"required,min=1,max=2"`
}

type joinGameRequest struct {
	UserName string `json:"user_name" binding:"required"`
}

type dealRequest struct {
	UserName string `json:"user_name" binding:"required"`
}

type submitTurnRequest struct {
	UserName           string     `json:"user_name" binding:"required"`
	UpdatedDeck        []wireCard `json:"updated_deck"`
	UpdatedPlayersHand []wireCard `json:"updated_players_hand"`
	Discards           []wireCard `json:"discards"`
	GameBoard          []wireMeld `json:"game_board"`
}

func (h *Handler) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jokers := h.defaultJokers
	if req.NumberOfJokers != nil {
		jokers = *req.NumberOfJokers
	}

	if err := h.service.CreateGame(req.GameID, req.UserName, jokers, req.NumberOfDecks); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"game_id": req.GameID})
}

func (h *Handler) joinGame(c *gin.Context) {
	var req joinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Join(c.Param("id"), req.UserName); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": c.Param("id")})
}

func (h *Handler) deal(c *gin.Context) {
	var req dealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Deal(c.Param("id"), req.UserName); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": c.Param("id")})
}

func (h *Handler) submitTurn(c *gin.Context) {
	var req submitTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.SubmitTurn(
		c.Param("id"),
		req.UserName,
		toDomainCards(req.UpdatedDeck),
		toDomainCards(req.UpdatedPlayersHand),
		toDomainCards(req.Discards),
		toDomainMelds(req.GameBoard),
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": c.Param("id")})
}

func (h *Handler) exitGame(c *gin.Context) {
	if err := h.service.Exit(c.Param("id"), c.Param("player")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": c.Param("id")})
}

func (h *Handler) state(c *gin.Context) {
	player := c.Query("player")
	if player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player query parameter required"})
		return
	}

	snap, err := h.service.State(c.Param("id"), player)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// fail maps service errors onto HTTP statuses. Validation failures leave the
// session unchanged, so every non-200 is safe to retry after correction.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrGameNotFound), errors.Is(err, app.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrGameExists), errors.Is(err, app.ErrNameTaken), errors.Is(err, app.ErrEmptyDeck):
		status = http.StatusConflict
	case errors.Is(err, app.ErrMalformedSubmission):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
