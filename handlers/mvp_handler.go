package handlers

import (
	"net/http"
	"strconv"

	"github.com/sump-exe/Sports-Game-Management/services"
)

type MVPHandler struct {
	mvpService services.MVPService
}

func NewMVPHandler(mvpService services.MVPService) *MVPHandler {
	return &MVPHandler{mvpService: mvpService}
}

func (h *MVPHandler) AssignMVP(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Year     int `json:"year"`
		PlayerID int `json:"player_id"`
		TeamID   int `json:"team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	mvp, err := h.mvpService.AssignMVP(r.Context(), input.Year, input.PlayerID, input.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"mvp": mvp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MVPHandler) GetMVP(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	mvp, err := h.mvpService.GetMVP(r.Context(), year)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"mvp": mvp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MVPHandler) ClearMVP(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.mvpService.ClearMVP(r.Context(), year); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MVPHandler) ListMVPs(w http.ResponseWriter, r *http.Request) {
	mvps, err := h.mvpService.ListMVPs(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"mvps": mvps}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func yearFromURL(r *http.Request) (int, error) {
	year, err := getIDFromURL(r, "year")
	if err != nil {
		return 0, err
	}
	if year < 1900 || year > 3000 {
		return 0, strconv.ErrRange
	}
	return year, nil
}
