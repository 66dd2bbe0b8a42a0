// Package pronunciation scores a spoken or typed attempt against a target
// word. The score is a continuous similarity signal; GradeFor turns it into
// a review grade.
package pronunciation

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/vytor/lexiflash/internal/models"
)

const (
	// PassScore is the lowest score accepted as a correct pronunciation.
	PassScore = 85

	partialScore = 50
)

// Score returns a similarity between 0 and 100. It never fails: a missing
// transcript is the empty string and scores 0.
func Score(target, spoken string) int {
	t := Normalize(target)
	s := Normalize(spoken)

	if s == "" {
		return 0
	}
	if t == s {
		return 100
	}

	maxLen := max(utf8.RuneCountInString(t), utf8.RuneCountInString(s))
	d := levenshtein.Distance(t, s, nil)
	ratio := math.Max(0, float64(maxLen-d)/float64(maxLen))
	return int(math.Round(ratio * 100))
}

// Normalize lowercases, strips punctuation and collapses whitespace.
func Normalize(s string) string {
	s = cases.Lower(language.Und).String(norm.NFC.String(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Passed reports whether score counts as a correct attempt.
func Passed(score int) bool {
	return score >= PassScore
}

// DisplayScore is the score shown to the learner; passing attempts are
// rounded up to a perfect score.
func DisplayScore(score int) int {
	if Passed(score) {
		return 100
	}
	return score
}

// GradeFor maps a score onto the review scale.
func GradeFor(score int) models.Grade {
	switch {
	case score >= 100:
		return models.GradeEasy
	case Passed(score):
		return models.GradeGood
	case score >= partialScore:
		return models.GradeHard
	default:
		return models.GradeAgain
	}
}
