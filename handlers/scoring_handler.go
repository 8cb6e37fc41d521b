package handlers

import (
	"net/http"

	"github.com/sump-exe/Sports-Game-Management/services"
)

type ScoringHandler struct {
	scoringService services.ScoringService
}

func NewScoringHandler(scoringService services.ScoringService) *ScoringHandler {
	return &ScoringHandler{scoringService: scoringService}
}

func (h *ScoringHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		PlayerID int  `json:"player_id"`
		Points   int  `json:"points"`
		Subtract bool `json:"subtract"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	update, err := h.scoringService.AddPoints(r.Context(), gameID, input.PlayerID, input.Points, input.Subtract)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"score": update}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoringHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scoringService.EndGame(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
