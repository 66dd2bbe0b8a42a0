package pronunciation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/pronunciation"
)

func TestScore_Identical(t *testing.T) {
	targets := []string{"apple", "Hello, World!", "déjà vu", "über", "sich freuen"}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			assert.Equal(t, 100, pronunciation.Score(target, target))
		})
	}
}

func TestScore_CaseAndPunctuationInsensitive(t *testing.T) {
	assert.Equal(t, 100, pronunciation.Score("Good morning!", "good morning"))
	assert.Equal(t, 100, pronunciation.Score("  it's  ", "its"))
	assert.Equal(t, 100, pronunciation.Score("ice-cream", "icecream"))
}

func TestScore_EmptySpoken(t *testing.T) {
	assert.Equal(t, 0, pronunciation.Score("apple", ""))
	assert.Equal(t, 0, pronunciation.Score("apple", "   ...  "))
}

func TestScore_EditDistance(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		spoken   string
		expected int
	}{
		{name: "one substitution", target: "apple", spoken: "apply", expected: 80},
		{name: "one deletion", target: "banana", spoken: "banan", expected: 83},
		{name: "longer spoken", target: "cat", spoken: "cats", expected: 75},
		{name: "completely different", target: "dog", spoken: "xyz", expected: 0},
		{name: "close phrase", target: "thank you", spoken: "thank yu", expected: 89},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pronunciation.Score(tt.target, tt.spoken))
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	pairs := [][2]string{{"a", "zzzzzzzz"}, {"", "word"}, {"word", "w"}, {"ß", "ss"}}
	for _, p := range pairs {
		s := pronunciation.Score(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 100)
	}
}

func TestDisplayScore(t *testing.T) {
	assert.Equal(t, 100, pronunciation.DisplayScore(85))
	assert.Equal(t, 100, pronunciation.DisplayScore(97))
	assert.Equal(t, 84, pronunciation.DisplayScore(84))
	assert.Equal(t, 0, pronunciation.DisplayScore(0))
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score    int
		expected models.Grade
	}{
		{100, models.GradeEasy},
		{92, models.GradeGood},
		{85, models.GradeGood},
		{84, models.GradeHard},
		{50, models.GradeHard},
		{49, models.GradeAgain},
		{0, models.GradeAgain},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, pronunciation.GradeFor(tt.score), "score=%d", tt.score)
	}
}
