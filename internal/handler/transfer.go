package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/transfer"
)

const maxImportSize = 4 << 20

// TransferHandler serves the JSON export download and the import upload.
type TransferHandler struct {
	manager  *transfer.Manager
	renderer *Renderer
	logger   *slog.Logger
}

func NewTransferHandler(m *transfer.Manager, rn *Renderer, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{
		manager:  m,
		renderer: rn,
		logger:   logger,
	}
}

func (h *TransferHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "transfer.html", nil)
}

// Export downloads the household's shared catalog as a JSON file.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	doc, err := h.manager.Export(householdID)
	if err != nil {
		h.logger.Error("export", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("kajiboard-export-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		h.logger.Error("encode export", "error", err)
	}
}

// Import upserts a previously exported document into this household. Tasks,
// transactions, users, and plans are never touched.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/transfer", http.StatusSeeOther)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/transfer", http.StatusSeeOther)
		return
	}
	defer file.Close()

	var doc transfer.Document
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/transfer", http.StatusSeeOther)
		return
	}
	if err := doc.Validate(); err != nil {
		h.logger.Warn("import rejected", "error", err)
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/transfer", http.StatusSeeOther)
		return
	}

	stats, err := h.manager.Import(householdID, &doc)
	if err != nil {
		h.logger.Error("import", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	h.logger.Info("import finished",
		"household_id", householdID,
		"skipped_rules", stats.SkippedRules)

	setFlash(w, "success", "flash_imported")
	http.Redirect(w, r, "/transfer", http.StatusSeeOther)
}
