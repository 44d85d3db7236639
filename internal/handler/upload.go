package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/store"
)

const maxUploadSize = 8 << 20

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores task instruction images under the upload directory
// with random filenames so uploads cannot collide or traverse paths.
type UploadHandler struct {
	tasks     *store.TaskStore
	uploadDir string
	logger    *slog.Logger
}

func NewUploadHandler(ts *store.TaskStore, uploadDir string, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		tasks:     ts,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

func (h *UploadHandler) UploadTaskImage(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.tasks.GetByID(householdID, id)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if t == nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, fmt.Sprintf("/tasks/%d", id), http.StatusSeeOther)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, fmt.Sprintf("/tasks/%d", id), http.StatusSeeOther)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, fmt.Sprintf("/tasks/%d", id), http.StatusSeeOther)
		return
	}

	name, err := randomFilename(ext)
	if err != nil {
		h.logger.Error("random filename", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error("create upload dir", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		h.logger.Error("create upload file", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.Error("write upload", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := h.tasks.SetInstructionImage(householdID, id, "/uploads/"+name); err != nil {
		h.logger.Error("set instruction image", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, fmt.Sprintf("/tasks/%d", id), http.StatusSeeOther)
}

func randomFilename(ext string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(b[:]) + ext, nil
}
