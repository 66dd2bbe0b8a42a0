package models

import "time"

type Profile struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	CreatedAt time.Time     `json:"created_at"`
	Progress  DailyProgress `json:"progress"`
}

// DailyProgress is the learner's day-scale study bookkeeping and XP wallet.
type DailyProgress struct {
	WordsStudiedToday int `json:"words_studied_today"`
	LastStudyDate     Day `json:"last_study_date"`
	Streak            int `json:"streak"`
	LongestStreak     int `json:"longest_streak"`
	StreakFreeze      int `json:"streak_freeze"`
	XP                int `json:"xp"`
	DailyGoal         int `json:"daily_goal"`
}
