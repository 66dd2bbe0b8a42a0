package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Get("/profiles", s.handleProfiles)
	r.Post("/profiles", s.handleCreateProfile)
	r.Get("/profiles/{id}", s.handleGetProfile)
	r.Delete("/profiles/{id}", s.handleDeleteProfile)

	r.Group(func(r chi.Router) {
		r.Use(s.profileMiddleware)

		r.Get("/vocabulary", s.handleListVocabulary)
		r.Post("/vocabulary", s.handleAddVocabulary)
		r.Get("/vocabulary/stats", s.handleVocabularyStats)
		r.Post("/vocabulary/import", s.handleImportVocabulary)
		r.Get("/vocabulary/imports/{id}", s.handleGetImport)
		r.Delete("/vocabulary/{id}", s.handleDeleteVocabulary)

		r.Post("/study/session", s.handleStartSession)
		r.Get("/study/session", s.handleGetSession)
		r.Delete("/study/session", s.handleEndSession)
		r.Get("/study/next", s.handleNext)
		r.Post("/study/items/{id}/review", s.handleReview)
		r.Post("/study/items/{id}/speak", s.handleSpeak)

		r.Get("/progress", s.handleProgress)
		r.Post("/progress/xp", s.handleAwardXP)
		r.Post("/progress/streak-freeze", s.handleBuyStreakFreeze)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, map[string]any{
			"error": map[string]any{"code": "NOT_FOUND", "message": "route not found"},
		})
	})
	return r
}
