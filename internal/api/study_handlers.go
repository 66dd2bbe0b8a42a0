package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/srs"
)

type reviewRequest struct {
	Grade       string  `json:"grade" validate:"required,oneof=again hard good easy"`
	Mode        string  `json:"mode" validate:"omitempty,oneof=auto meaning translation context writing speaking"`
	TimeSeconds float64 `json:"time_seconds" validate:"gte=0"`
}

type speakRequest struct {
	Transcript string `json:"transcript" validate:"max=500"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	view, err := s.StudyService.StartSession(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	view, err := s.StudyService.Session(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	summary, err := s.StudyService.EndSession(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())

	mode, err := srs.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("mode", "unknown study mode"))
		return
	}

	card, err := s.StudyService.Next(r.Context(), profile.ID, mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if card == nil {
		log.Debug("nothing to review")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	grade, err := srs.ParseGrade(req.Grade)
	if err != nil {
		handleError(w, r, errors.NewValidationError("grade", err.Error()))
		return
	}
	mode, err := srs.ParseMode(req.Mode)
	if err != nil {
		handleError(w, r, errors.NewValidationError("mode", err.Error()))
		return
	}

	out, err := s.StudyService.Review(r.Context(), profile.ID, chi.URLParam(r, "id"), grade, mode, req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req speakRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	out, err := s.StudyService.Speak(r.Context(), profile.ID, chi.URLParam(r, "id"), req.Transcript)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}
