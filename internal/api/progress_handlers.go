package api

import (
	"net/http"
)

type awardXPRequest struct {
	Amount int    `json:"amount" validate:"gt=0,max=10000"`
	Source string `json:"source" validate:"max=64"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	view, err := s.ProgressService.Get(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAwardXP(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req awardXPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.ProgressService.AwardXP(r.Context(), profile.ID, req.Amount, req.Source)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleBuyStreakFreeze(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	view, err := s.ProgressService.BuyStreakFreeze(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}
