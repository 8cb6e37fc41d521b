package handlers

import (
	"net/http"

	"github.com/sump-exe/Sports-Game-Management/services"
)

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(venueService services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var input services.VenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.CreateVenue(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.GetVenue(r.Context(), venueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.ListVenues(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venues": venues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.VenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.UpdateVenue(r.Context(), venueID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.venueService.DeleteVenue(r.Context(), venueID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *VenueHandler) DaySchedule(w http.ResponseWriter, r *http.Request) {
	venueID, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		badRequestResponse(w, r, errMissingDate)
		return
	}

	day, err := h.venueService.DaySchedule(r.Context(), venueID, date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": day}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	venueID, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	venue, err := h.venueService.UploadLogo(r.Context(), venueID, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
