package handlers

import (
	"net/http"

	"prime31/internal/game"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Room(c *gin.Context) {
	rm, err := h.Rooms.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rm)
}

type GameView struct {
	game.State
	LegalMoves []int `json:"legal_moves"`
}

func (h *Handler) Game(c *gin.Context) {
	st, err := h.Games.State(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	moves := []int{}
	if !st.Finished() {
		moves = game.LegalMoves(st.Sum)
	}
	c.JSON(http.StatusOK, GameView{State: st, LegalMoves: moves})
}
