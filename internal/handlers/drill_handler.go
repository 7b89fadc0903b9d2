package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"derdiedas/internal/security"
	"derdiedas/internal/service"
	"derdiedas/internal/validation"
)

// DrillHandler serves the drill session API
type DrillHandler struct {
	drills *service.DrillService
	csrf   *security.CSRFGenerator
	log    *zap.Logger
}

// NewDrillHandler creates a new drill handler
func NewDrillHandler(drills *service.DrillService, csrf *security.CSRFGenerator, log *zap.Logger) *DrillHandler {
	return &DrillHandler{drills: drills, csrf: csrf, log: log}
}

type guessRequest struct {
	Article string `json:"article" validate:"required,gender"`
}

type submitRequest struct {
	Article string `json:"article" validate:"required,article_choice"`
	Ending  string `json:"ending" validate:"required,ending_choice"`
}

// StartSession begins a drill session and sets its cookie
func (h *DrillHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.drills.Start(r.Context())
	if err != nil {
		respondWithDomainError(w, h.log, "Error starting drill session", err)
		return
	}

	http.SetCookie(w, security.SessionCookie(r, snap.SessionID, snap.ExpiresAt))
	respondJSON(w, http.StatusCreated, startResponse{
		State:     newStateView(snap),
		CSRFToken: h.csrf.Token(snap.SessionID),
	})
}

// GetSession returns the current session state
func (h *DrillHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.drills.Get(GetDrillSessionID(r.Context()))
	if err != nil {
		respondWithDomainError(w, h.log, "Error loading drill session", err)
		return
	}
	respondJSON(w, http.StatusOK, newStateView(snap))
}

// Guess evaluates a gender guess for the presented word
func (h *DrillHandler) Guess(w http.ResponseWriter, r *http.Request) {
	var req guessRequest
	if !h.decode(w, r, &req) {
		return
	}

	snap, out, err := h.drills.Guess(GetDrillSessionID(r.Context()), req.Article)
	if err != nil {
		respondWithDomainError(w, h.log, "Error evaluating guess", err)
		return
	}
	respondJSON(w, http.StatusOK, answerResponse{Outcome: newOutcomeView(out), State: newStateView(snap)})
}

// Submit evaluates the answer to the remedial challenge
func (h *DrillHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !h.decode(w, r, &req) {
		return
	}

	snap, out, err := h.drills.Submit(GetDrillSessionID(r.Context()), req.Article, req.Ending)
	if err != nil {
		respondWithDomainError(w, h.log, "Error evaluating quiz answer", err)
		return
	}
	respondJSON(w, http.StatusOK, answerResponse{Outcome: newOutcomeView(out), State: newStateView(snap)})
}

// Restart zeroes the score and starts a new lap
func (h *DrillHandler) Restart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.drills.Restart(GetDrillSessionID(r.Context()))
	if err != nil {
		respondWithDomainError(w, h.log, "Error restarting drill session", err)
		return
	}
	respondJSON(w, http.StatusOK, newStateView(snap))
}

// EndSession discards the session and clears its cookie
func (h *DrillHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.drills.End(GetDrillSessionID(r.Context())); err != nil {
		respondWithDomainError(w, h.log, "Error ending drill session", err)
		return
	}
	http.SetCookie(w, security.ClearSessionCookie(r))
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a bounded JSON body into v and validates it
func (h *DrillHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnswerBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidRequestBody, "Error decoding answer", err)
		return false
	}
	if err := validation.Validate(v); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, "Invalid answer", "Rejected answer", err)
		return false
	}
	return true
}
