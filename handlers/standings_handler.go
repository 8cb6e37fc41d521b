package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sump-exe/Sports-Game-Management/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

func (h *StandingsHandler) SeasonStandings(w http.ResponseWriter, r *http.Request) {
	year, err := getYearFromQuery(r, time.Now().Year())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	completeOnly, _ := strconv.ParseBool(r.URL.Query().Get("complete_rosters"))

	standings, err := h.standingsService.SeasonStandings(r.Context(), year, completeOnly)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season_start_year": year, "standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) SeasonStartYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.standingsService.SeasonStartYears(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"years": years}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
