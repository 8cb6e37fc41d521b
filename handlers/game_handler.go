package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sump-exe/Sports-Game-Management/season"
	"github.com/sump-exe/Sports-Game-Management/services"
)

type GameHandler struct {
	bookingService services.BookingService
	gameService    services.GameService
}

func NewGameHandler(bookingService services.BookingService, gameService services.GameService) *GameHandler {
	return &GameHandler{
		bookingService: bookingService,
		gameService:    gameService,
	}
}

// ScheduleGame
// @Summary Book a game after validating teams, venue, phase window and time conflicts
// @Tags games
// @Accept json
// @Produce json
// @Param booking body services.BookingInput true "booking request"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /games [post]
func (h *GameHandler) ScheduleGame(w http.ResponseWriter, r *http.Request) {
	var input services.BookingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.bookingService.Schedule(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.GetGame(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game, "status": game.Status()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGames filters by ?phase=Playoff&year=2026 when given, otherwise
// returns everything.
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	phaseParam := r.URL.Query().Get("phase")

	if phaseParam != "" {
		phase := season.Phase(phaseParam)
		if !season.Valid(phase) {
			badRequestResponse(w, r, fmt.Errorf("unknown phase: %q", phaseParam))
			return
		}
		year, err := getYearFromQuery(r, time.Now().Year())
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		games, err := h.gameService.ListGamesByPhase(r.Context(), phase, year)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	games, err := h.gameService.ListGames(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) RescheduleGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RescheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.Reschedule(r.Context(), gameID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.gameService.DeleteGame(r.Context(), gameID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) GameStats(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.gameService.GameStats(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
