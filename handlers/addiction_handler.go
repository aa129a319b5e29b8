package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/RedGhoul/Quitter/internal/addiction"
	"github.com/RedGhoul/Quitter/middleware"
	"github.com/RedGhoul/Quitter/services"

	"github.com/gorilla/mux"
)

type AddictionHandler struct {
	addictionService *services.AddictionService
}

func NewAddictionHandler(addictionService *services.AddictionService) *AddictionHandler {
	return &AddictionHandler{
		addictionService: addictionService,
	}
}

// GetTrackers returns every tracker the user has, built-ins first, each with
// its current day count, badge and next milestone.
func (h *AddictionHandler) GetTrackers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	trackers, err := h.addictionService.List(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, addiction.TrackerListResponse{Trackers: trackers})
}

// GetMilestoneCatalog returns the fixed milestone timeline.
func (h *AddictionHandler) GetMilestoneCatalog(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"milestones": h.addictionService.Catalog(),
	})
}

func (h *AddictionHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	addictionID := mux.Vars(r)["id"]

	progress, err := h.addictionService.GetProgress(ctx, clerkID, addictionID)
	if err != nil {
		h.respondWithTrackerError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, progress)
}

func (h *AddictionHandler) CreateTracker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req addiction.CreateAddictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.addictionService.CreateCustom(ctx, clerkID, req.Title)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("AddictionHandler: %s created tracker %s", clerkID, rec.ID)
	respondWithJSON(w, http.StatusCreated, rec)
}

func (h *AddictionHandler) RenameTracker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	addictionID := mux.Vars(r)["id"]

	var req addiction.RenameAddictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.addictionService.Rename(ctx, clerkID, addictionID, req.Title)
	if err != nil {
		h.respondWithTrackerError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rec)
}

func (h *AddictionHandler) DeleteTracker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	addictionID := mux.Vars(r)["id"]

	if err := h.addictionService.DeleteCustom(ctx, clerkID, addictionID); err != nil {
		h.respondWithTrackerError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Tracker deleted successfully"})
}

func (h *AddictionHandler) SetQuitDate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	addictionID := mux.Vars(r)["id"]

	var req addiction.SetQuitDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.addictionService.SetQuitDate(ctx, clerkID, addictionID, req.QuitDate)
	if err != nil {
		h.respondWithTrackerError(w, err)
		return
	}

	log.Printf("AddictionHandler: %s set quit date on %s", clerkID, addictionID)
	respondWithJSON(w, http.StatusOK, view)
}

func (h *AddictionHandler) ClearQuitDate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	addictionID := mux.Vars(r)["id"]

	if err := h.addictionService.ClearQuitDate(ctx, clerkID, addictionID); err != nil {
		h.respondWithTrackerError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Quit date cleared"})
}

// respondWithTrackerError maps service errors onto status codes.
func (h *AddictionHandler) respondWithTrackerError(w http.ResponseWriter, err error) {
	errMsg := err.Error()
	switch {
	case errMsg == "tracker not found":
		respondWithError(w, http.StatusNotFound, errMsg)
	case strings.Contains(errMsg, "built-in trackers cannot"):
		respondWithError(w, http.StatusBadRequest, errMsg)
	case strings.Contains(errMsg, "invalid quit date"):
		respondWithError(w, http.StatusBadRequest, errMsg)
	case errMsg == "quit date cannot be in the future":
		respondWithError(w, http.StatusBadRequest, errMsg)
	default:
		respondWithError(w, http.StatusInternalServerError, errMsg)
	}
}
