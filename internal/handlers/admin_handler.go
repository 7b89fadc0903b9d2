package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"derdiedas/internal/service"
)

// AdminHandler serves noun pool import and export
type AdminHandler struct {
	words  *service.WordService
	backup *service.BackupService
	log    *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(words *service.WordService, backup *service.BackupService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{words: words, backup: backup, log: log}
}

// ImportWords upserts nouns from a CSV request body.
// ?replace=true makes the upload the complete pool.
func (h *AdminHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	replace := false
	if v := r.URL.Query().Get("replace"); v != "" {
		var err error
		if replace, err = strconv.ParseBool(v); err != nil {
			respondWithError(w, h.log, http.StatusBadRequest, "Invalid replace parameter", "", err)
			return
		}
	}

	body := http.MaxBytesReader(w, r.Body, maxImportBodyBytes)
	res, err := h.words.ImportCSV(r.Context(), body, replace)
	if err != nil {
		respondWithDomainError(w, h.log, "Error importing words", err)
		return
	}

	h.log.Info("words imported by admin", zap.Int("imported", res.Imported), zap.Bool("replace", replace))
	respondJSON(w, http.StatusOK, res)
}

// ExportWords downloads the noun pool as a JSON backup, or as CSV with ?format=csv
func (h *AdminHandler) ExportWords(w http.ResponseWriter, r *http.Request) {
	timestamp := time.Now().Format("20060102_150405")

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=nouns_%s.csv", timestamp))
		if err := h.words.ExportCSV(r.Context(), w); err != nil {
			h.log.Error("Error exporting words as CSV", zap.Error(err))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=derdiedas_backup_%s.json", timestamp))
	if _, err := h.backup.Export(r.Context(), w); err != nil {
		// headers are already sent once encoding has started
		h.log.Error("Error exporting words", zap.Error(err))
	}
}
