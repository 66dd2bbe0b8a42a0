package models

type VocabularyStat struct {
	TotalItems   int     `json:"total_items"`
	DueItems     int     `json:"due_items"`
	WeakItems    int     `json:"weak_items"`
	NewItems     int     `json:"new_items"`
	LearnedItems int     `json:"learned_items"`
	AvgEase      float64 `json:"avg_ease_factor"`
	AvgInterval  float64 `json:"avg_interval_days"`
}
