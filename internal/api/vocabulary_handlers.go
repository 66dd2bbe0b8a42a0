package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
)

const defaultMaxUploadBytes = 5 << 20

func (s *Server) handleListVocabulary(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	q := r.URL.Query()

	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.VocabularyFilter{
		ProfileID:    profile.ID,
		Search:       strings.TrimSpace(q.Get("q")),
		PartOfSpeech: strings.ToLower(strings.TrimSpace(q.Get("pos"))),
		Limit:        limit,
		Offset:       offset,
	}
	if due := q.Get("due"); due == "true" || due == "1" {
		filter.DueOnly = true
	}

	items, total, err := s.VocabularyService.ListItems(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (s *Server) handleAddVocabulary(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var in models.VocabularyInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.VocabularyService.AddItem(r.Context(), profile.ID, in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, item)
}

func (s *Server) handleDeleteVocabulary(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	if err := s.VocabularyService.DeleteItem(r.Context(), profile.ID, chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVocabularyStats(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	stats, err := s.VocabularyService.Stats(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

// handleImportVocabulary accepts a multipart upload in the "file" field and
// queues it for background processing.
func (s *Server) handleImportVocabulary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())

	limit := s.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<16)
	if err := r.ParseMultipartForm(limit); err != nil {
		log.Warn("invalid upload: %v", err)
		handleError(w, r, errors.NewBadRequestError("expected a multipart upload with a file field"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewValidationError("file", "is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("failed to read upload"))
		return
	}
	if int64(len(data)) > limit {
		handleError(w, r, errors.NewValidationError("file", "is too large"))
		return
	}

	imp, err := s.VocabularyService.StartImport(r.Context(), profile.ID, filepath.Base(header.Filename), data)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, imp)
}

func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := int64Param(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	imp, err := s.VocabularyService.GetImport(r.Context(), profile.ID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, imp)
}
