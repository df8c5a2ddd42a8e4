package analytics

import (
	"sort"
	"time"

	"github.com/tineo1298-dev/my-trade-journal/internal/models"
)

// All functions in this package are pure folds over a record snapshot. They
// keep no state, so recomputing on every dashboard read is safe and cheap.

// Summary bundles the scalar dashboard statistics.
type Summary struct {
	NetProfit     float64 `json:"net_profit"`
	ClosedTrades  int     `json:"closed_trades"`
	CurrentStreak int     `json:"current_streak"`
	MaxStreak     int     `json:"max_streak"`
}

// Summarize computes the headline statistics over a full snapshot.
func Summarize(records []models.TradeRecord, now time.Time) Summary {
	current, max := Streaks(records, now)
	return Summary{
		NetProfit:     NetProfit(records),
		ClosedTrades:  ClosedTrades(records),
		CurrentStreak: current,
		MaxStreak:     max,
	}
}

// NetProfit sums realized PnL over Closed records. Open records carry a
// placeholder PnL and never contribute.
func NetProfit(records []models.TradeRecord) float64 {
	var total float64
	for _, r := range records {
		if r.Status == models.StatusClosed {
			total += r.RealPnl
		}
	}
	return total
}

// ClosedTrades counts settled records.
func ClosedTrades(records []models.TradeRecord) int {
	n := 0
	for _, r := range records {
		if r.Status == models.StatusClosed {
			n++
		}
	}
	return n
}

// Streaks computes the consecutive-trading-day streaks over the distinct
// calendar dates in the snapshot, any status. The current streak counts only
// when the most recent trading date is today or yesterday relative to now;
// it then walks backward while consecutive dates differ by exactly one day.
func Streaks(records []models.TradeRecord, now time.Time) (current, max int) {
	dates := distinctDates(records)
	if len(dates) == 0 {
		return 0, 0
	}

	max = 1
	run := 1
	for i := 1; i < len(dates); i++ {
		if daysBetween(dates[i-1], dates[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > max {
			max = run
		}
	}

	today := dateOnly(now)
	yesterday := today.AddDate(0, 0, -1)
	last := dates[len(dates)-1]
	if last.Equal(today) || last.Equal(yesterday) {
		current = 1
		for i := len(dates) - 2; i >= 0; i-- {
			if daysBetween(dates[i], dates[i+1]) != 1 {
				break
			}
			current++
		}
	}
	return current, max
}

// EquityPoint is one step of the cumulative realized PnL series.
type EquityPoint struct {
	Date          time.Time `json:"date"`
	CumulativePnl float64   `json:"cumulative_pnl"`
}

// EquityCurve returns the running total of realized PnL over Closed records
// ordered by trading date. The input snapshot is not modified.
func EquityCurve(records []models.TradeRecord) []EquityPoint {
	var closed []models.TradeRecord
	for _, r := range records {
		if r.Status == models.StatusClosed {
			closed = append(closed, r)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].Date.Before(closed[j].Date)
	})

	curve := make([]EquityPoint, 0, len(closed))
	var sum float64
	for _, r := range closed {
		sum += r.RealPnl
		curve = append(curve, EquityPoint{Date: r.Date, CumulativePnl: sum})
	}
	return curve
}

// TimeHeatmap buckets all records by (weekday, hour) of their creation time.
// Index [0] is Sunday, matching time.Weekday.
func TimeHeatmap(records []models.TradeRecord) [7][24]int {
	var cells [7][24]int
	for _, r := range records {
		cells[int(r.CreatedAt.Weekday())][r.CreatedAt.Hour()]++
	}
	return cells
}

// DayCount is one cell of the calendar-style daily activity view.
type DayCount struct {
	Date    time.Time    `json:"date"`
	Week    int          `json:"week"` // ISO week number
	Weekday time.Weekday `json:"weekday"`
	Count   int          `json:"count"`
}

// DailyActivity counts records per trading date, ordered by date, with the
// (ISO week, weekday) key a calendar heat grid needs.
func DailyActivity(records []models.TradeRecord) []DayCount {
	counts := make(map[time.Time]int)
	for _, r := range records {
		counts[dateOnly(r.Date)]++
	}

	days := make([]DayCount, 0, len(counts))
	for date, count := range counts {
		_, week := date.ISOWeek()
		days = append(days, DayCount{
			Date:    date,
			Week:    week,
			Weekday: date.Weekday(),
			Count:   count,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// distinctDates extracts the sorted set of distinct trading dates.
func distinctDates(records []models.TradeRecord) []time.Time {
	seen := make(map[time.Time]struct{}, len(records))
	for _, r := range records {
		seen[dateOnly(r.Date)] = struct{}{}
	}
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
