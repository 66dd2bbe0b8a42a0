package srs

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

const (
	hardItemEase      = 2.0
	speakingThreshold = 0.7
)

// RandSource is the random source used for the speaking/writing mix.
// *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// ModeSelector picks the interaction mode for an item.
type ModeSelector struct {
	mu   sync.Mutex
	rand RandSource
}

// NewModeSelector returns a selector using r, or a time seeded generator when
// r is nil.
func NewModeSelector(r RandSource) *ModeSelector {
	if r == nil {
		seed := uint64(time.Now().UnixNano())
		r = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &ModeSelector{rand: r}
}

// ChooseMode returns override verbatim unless it is auto, otherwise escalates
// from recognition to production as the streak grows. Items the learner keeps
// failing stay on meaning and writing.
func (s *ModeSelector) ChooseMode(state models.MemoryState, override models.StudyMode) models.StudyMode {
	if override != models.ModeAuto && override != "" {
		return override
	}

	if state.EaseFactor < hardItemEase {
		if state.Streak > 4 {
			return models.ModeWriting
		}
		return models.ModeMeaning
	}

	switch {
	case state.Streak <= 1:
		return models.ModeMeaning
	case state.Streak == 2:
		return models.ModeTranslation
	case state.Streak <= 4:
		return models.ModeContext
	case state.Streak <= 6:
		return models.ModeWriting
	}

	if s.float64() > speakingThreshold {
		return models.ModeSpeaking
	}
	return models.ModeWriting
}

func (s *ModeSelector) float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64()
}
