package progress

import "github.com/vytor/lexiflash/internal/models"

type League string

const (
	LeagueBronze   League = "bronze"
	LeagueSilver   League = "silver"
	LeagueGold     League = "gold"
	LeaguePlatinum League = "platinum"
	LeagueDiamond  League = "diamond"
)

var leagueFloors = []struct {
	minXP  int
	league League
}{
	{6000, LeagueDiamond},
	{3000, LeaguePlatinum},
	{1500, LeagueGold},
	{500, LeagueSilver},
}

// LeagueFor maps lifetime XP to a league.
func LeagueFor(xp int) League {
	for _, f := range leagueFloors {
		if xp >= f.minXP {
			return f.league
		}
	}
	return LeagueBronze
}

// XPForGrade is the XP earned for a single review.
func XPForGrade(g models.Grade) int {
	switch g {
	case models.GradeAgain:
		return 2
	case models.GradeHard:
		return 5
	case models.GradeGood:
		return 10
	case models.GradeEasy:
		return 15
	}
	return 0
}

// GoalMet reports whether today's word target has been reached. A zero goal
// is never met.
func GoalMet(p models.DailyProgress, today models.Day) bool {
	if p.DailyGoal <= 0 || p.LastStudyDate != today {
		return false
	}
	return p.WordsStudiedToday >= p.DailyGoal
}

// WordsToday returns the count for today, treating a stale counter as zero.
func WordsToday(p models.DailyProgress, today models.Day) int {
	if p.LastStudyDate != today {
		return 0
	}
	return p.WordsStudiedToday
}
