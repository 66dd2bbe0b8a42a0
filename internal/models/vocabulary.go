package models

import "time"

// Grade is a learner's answer to a review, ordered by increasing recall quality.
type Grade string

const (
	GradeAgain Grade = "again"
	GradeHard  Grade = "hard"
	GradeGood  Grade = "good"
	GradeEasy  Grade = "easy"
)

// Grades lists every valid grade from worst to best.
var Grades = []Grade{GradeAgain, GradeHard, GradeGood, GradeEasy}

// Valid reports whether g is one of the four known grades.
func (g Grade) Valid() bool {
	switch g {
	case GradeAgain, GradeHard, GradeGood, GradeEasy:
		return true
	}
	return false
}

// StudyMode is the interaction used to test an item.
type StudyMode string

const (
	ModeAuto        StudyMode = "auto"
	ModeMeaning     StudyMode = "meaning"
	ModeTranslation StudyMode = "translation"
	ModeContext     StudyMode = "context"
	ModeWriting     StudyMode = "writing"
	ModeSpeaking    StudyMode = "speaking"
)

// Valid reports whether m is a concrete mode or the auto sentinel.
func (m StudyMode) Valid() bool {
	switch m {
	case ModeAuto, ModeMeaning, ModeTranslation, ModeContext, ModeWriting, ModeSpeaking:
		return true
	}
	return false
}

// MemoryState is the spaced-repetition state of a single item.
type MemoryState struct {
	NextReviewAt time.Time `json:"next_review_at"`
	IntervalDays float64   `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	Streak       int       `json:"streak"`
}

// IsDue reports whether the item should be reviewed at now.
func (m MemoryState) IsDue(now time.Time) bool {
	return !m.NextReviewAt.After(now)
}

type VocabularyItem struct {
	ID               string      `json:"id"`
	ProfileID        int64       `json:"profile_id"`
	Term             string      `json:"term"`
	Translation      string      `json:"translation"`
	Definition       string      `json:"definition"`
	ExampleSentence  string      `json:"example_sentence"`
	Pronunciation    string      `json:"pronunciation"`
	PhoneticSpelling string      `json:"phonetic_spelling"`
	PartOfSpeech     string      `json:"part_of_speech"`
	Memory           MemoryState `json:"memory"`
	DateAdded        time.Time   `json:"date_added"`
}

// VocabularyFilter narrows vocabulary listings.
type VocabularyFilter struct {
	ProfileID    int64
	Search       string
	PartOfSpeech string
	DueBefore    *time.Time
	// DueOnly asks the service to fill DueBefore with its clock.
	DueOnly      bool
	Limit        int
	Offset       int
}

type ReviewHistory struct {
	ID          int64     `json:"id"`
	ItemID      string    `json:"item_id"`
	Grade       Grade     `json:"grade"`
	Mode        StudyMode `json:"mode"`
	TimeSeconds float64   `json:"time_seconds"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}

// VocabularyInput is the learner-supplied content of a new item.
type VocabularyInput struct {
	Term             string `json:"term" validate:"required,max=200"`
	Translation      string `json:"translation" validate:"max=500"`
	Definition       string `json:"definition" validate:"max=2000"`
	ExampleSentence  string `json:"example_sentence" validate:"max=2000"`
	Pronunciation    string `json:"pronunciation" validate:"max=200"`
	PhoneticSpelling string `json:"phonetic_spelling" validate:"max=200"`
	PartOfSpeech     string `json:"part_of_speech" validate:"max=50"`
}
