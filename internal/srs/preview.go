package srs

import (
	"fmt"
	"math"

	"github.com/vytor/lexiflash/internal/models"
)

// Preview holds the human readable interval each grade would produce.
type Preview struct {
	Again string `json:"again"`
	Hard  string `json:"hard"`
	Good  string `json:"good"`
	Easy  string `json:"easy"`
}

// PreviewIntervals describes what each grade would schedule for state.
// Items still in learning get fixed short labels because the formula is
// unstable near zero.
func PreviewIntervals(state models.MemoryState) Preview {
	if state.IntervalDays < 1 {
		return Preview{
			Again: "1 minute",
			Hard:  "6 minutes",
			Good:  "10 minutes",
			Easy:  "1 day",
		}
	}
	return Preview{
		Again: "1 minute",
		Hard:  FormatDays(state.IntervalDays * 1.2),
		Good:  FormatDays(state.IntervalDays * state.EaseFactor),
		Easy:  FormatDays(state.IntervalDays * state.EaseFactor * 1.5),
	}
}

// FormatDays renders a day count, switching to months from 30 days on.
func FormatDays(days float64) string {
	if days >= 30 {
		months := math.Round(days/30*10) / 10
		return plural(months, "month")
	}
	return plural(math.Round(days), "day")
}

func plural(n float64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%s %ss", trimFloat(n), unit)
}

func trimFloat(n float64) string {
	if n == math.Trunc(n) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%.1f", n)
}
