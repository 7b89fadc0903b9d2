package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"derdiedas/internal/game"
	"derdiedas/internal/service"
	"derdiedas/internal/validation"
	"derdiedas/internal/wordsource"
)

type errorResponse struct {
	Error  string                      `json:"error"`
	Fields validation.ValidationErrors `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondWithError(w http.ResponseWriter, log *zap.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		if status >= http.StatusInternalServerError {
			log.Error(logMsg, zap.Int("status", status), zap.Error(err))
		} else {
			log.Debug(logMsg, zap.Int("status", status), zap.Error(err))
		}
	}

	resp := errorResponse{Error: userMsg}
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Fields = verrs
	}
	respondJSON(w, status, resp)
}

// respondWithDomainError maps drill and import errors to HTTP statuses
func respondWithDomainError(w http.ResponseWriter, log *zap.Logger, logMsg string, err error) {
	var verrs validation.ValidationErrors
	switch {
	case errors.Is(err, game.ErrInvalidGuess):
		respondWithError(w, log, http.StatusBadRequest, "Invalid answer", logMsg, err)
	case errors.As(err, &verrs), errors.Is(err, wordsource.ErrMissingColumn):
		respondWithError(w, log, http.StatusBadRequest, "Invalid word data", logMsg, err)
	case errors.Is(err, game.ErrWrongPhase):
		respondWithError(w, log, http.StatusConflict, "Answer does not match the current step", logMsg, err)
	case errors.Is(err, service.ErrSessionNotFound):
		respondWithError(w, log, http.StatusNotFound, ErrNoActiveSession, logMsg, err)
	case errors.Is(err, game.ErrPoolEmpty), errors.Is(err, game.ErrDataUnavailable), errors.Is(err, game.ErrDuplicateWord):
		respondWithError(w, log, http.StatusServiceUnavailable, "Word list unavailable", logMsg, err)
	default:
		respondWithError(w, log, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
