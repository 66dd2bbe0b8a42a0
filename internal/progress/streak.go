// Package progress maintains daily study counters, streaks and the XP
// economy. Every function takes a DailyProgress value and returns a new one;
// callers decide when to persist it.
package progress

import (
	"errors"

	"github.com/vytor/lexiflash/internal/models"
)

// StreakFreezeCost is the XP price of one streak freeze.
const StreakFreezeCost = 200

var ErrInsufficientFunds = errors.New("insufficient xp")

// RecordStudy books wordCount studied words and xpGained XP on today,
// handling day rollover and streak changes first.
func RecordStudy(p models.DailyProgress, wordCount, xpGained int, today models.Day) models.DailyProgress {
	newDay := p.LastStudyDate != today

	if newDay {
		switch {
		case p.LastStudyDate.IsZero():
			p.Streak = 1
		case p.LastStudyDate == today.AddDays(-1):
			p.Streak++
		case p.StreakFreeze > 0:
			// The gap is forgiven; streak stays where it was.
			p.StreakFreeze--
		default:
			p.Streak = 1
		}
		p.WordsStudiedToday = max(wordCount, 0)
	} else {
		p.WordsStudiedToday += max(wordCount, 0)
	}

	p.XP += max(xpGained, 0)
	p.LastStudyDate = today
	p.LongestStreak = max(p.LongestStreak, p.Streak)
	return p
}

// AwardXP grants XP for activities that are not item reviews. It goes through
// the same rollover logic, so it can extend or break the streak.
func AwardXP(p models.DailyProgress, amount int, today models.Day) models.DailyProgress {
	return RecordStudy(p, 0, amount, today)
}

// BuyStreakFreeze spends StreakFreezeCost XP on one freeze. p is returned
// unchanged with ErrInsufficientFunds when the learner cannot afford it.
func BuyStreakFreeze(p models.DailyProgress) (models.DailyProgress, error) {
	if p.XP < StreakFreezeCost {
		return p, ErrInsufficientFunds
	}
	p.XP -= StreakFreezeCost
	p.StreakFreeze++
	return p, nil
}
