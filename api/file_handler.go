package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ratana/prodstack/errs"
	"github.com/ratana/prodstack/services"
)

type fileHandler struct {
	responder Responder
	logger    zerolog.Logger
	storage   services.FileStorage
}

func newFileHandler(storage services.FileStorage) fileHandler {
	logger := log.With().Str("handlerName", "fileHandler").Logger()

	return fileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		storage:   storage,
	}
}

// getProfileImage serves a stored profile image inline
func (h fileHandler) getProfileImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveFile(w, r, h.storage.ProfileDir)
	}
}

// getBlogImage serves a stored blog image inline
func (h fileHandler) getBlogImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveFile(w, r, h.storage.BlogDir)
	}
}

// serveFile streams a stored file by its opaque key. Resolve does no
// existence check, so readability is verified here before any header is
// written; anything unreadable is a plain 404.
func (h fileHandler) serveFile(w http.ResponseWriter, r *http.Request, directory string) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || filename != filepath.Base(filename) {
		h.responder.WriteError(w, errs.NewNotFoundError("file not found"))
		return
	}

	path := h.storage.Resolve(filename, directory)

	file, err := os.Open(path)
	if err != nil {
		h.responder.WriteError(w, errs.NewNotFoundError("file not found"))
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		h.responder.WriteError(w, errs.NewNotFoundError("file not found"))
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))

	if _, err := io.Copy(w, file); err != nil {
		h.logger.Error().Err(err).Str("filename", filename).Msg("error streaming file")
	}
}
