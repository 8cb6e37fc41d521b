package handlers

import (
	"net/http"
	"time"

	"github.com/sump-exe/Sports-Game-Management/services"
)

type EligibilityHandler struct {
	eligibilityService services.EligibilityService
}

func NewEligibilityHandler(eligibilityService services.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{eligibilityService: eligibilityService}
}

func (h *EligibilityHandler) PlayInState(w http.ResponseWriter, r *http.Request) {
	year, err := getYearFromQuery(r, time.Now().Year())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.eligibilityService.ResolvePlayInPairs(r.Context(), year)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"play_in": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EligibilityHandler) ValidOpponents(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")
	if team == "" {
		badRequestResponse(w, r, errMissingTeam)
		return
	}
	year, err := getYearFromQuery(r, time.Now().Year())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	opponents, err := h.eligibilityService.ValidOpponents(r.Context(), team, year)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team, "opponents": opponents}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EligibilityHandler) PlayoffCandidates(w http.ResponseWriter, r *http.Request) {
	year, err := getYearFromQuery(r, time.Now().Year())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	candidates, err := h.eligibilityService.PlayoffCandidates(r.Context(), year)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"candidates": candidates}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EligibilityHandler) FinalsCandidates(w http.ResponseWriter, r *http.Request) {
	year, err := getYearFromQuery(r, time.Now().Year())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	candidates, err := h.eligibilityService.FinalsCandidates(r.Context(), year)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"candidates": candidates}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
