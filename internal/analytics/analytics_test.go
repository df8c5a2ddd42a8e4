package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tineo1298-dev/my-trade-journal/internal/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	assert.NoError(t, err)
	return d
}

func closed(date time.Time, pnl float64) models.TradeRecord {
	return models.TradeRecord{Date: date, RealPnl: pnl, Status: models.StatusClosed}
}

func open(date time.Time) models.TradeRecord {
	return models.TradeRecord{Date: date, Status: models.StatusOpen}
}

func TestNetProfitAndClosedTrades(t *testing.T) {
	records := []models.TradeRecord{
		closed(day(t, "2026-08-01"), 50),
		closed(day(t, "2026-08-02"), -20),
		open(day(t, "2026-08-03")), // open PnL is a placeholder and never counts
	}

	assert.Equal(t, 30.0, NetProfit(records))
	assert.Equal(t, 2, ClosedTrades(records))
	assert.Equal(t, 0.0, NetProfit(nil))
	assert.Equal(t, 0, ClosedTrades(nil))
}

func TestStreaks(t *testing.T) {
	now := day(t, "2026-09-01")

	testCases := []struct {
		name            string
		dates           []string
		expectedCurrent int
		expectedMax     int
	}{
		{
			name:  "Empty",
			dates: nil, expectedCurrent: 0, expectedMax: 0,
		},
		{
			name:  "SingleDateToday",
			dates: []string{"2026-09-01"}, expectedCurrent: 1, expectedMax: 1,
		},
		{
			name:  "SingleDateLongAgo",
			dates: []string{"2026-08-01"}, expectedCurrent: 0, expectedMax: 1,
		},
		{
			name:  "ThreeConsecutiveEndingToday",
			dates: []string{"2026-08-30", "2026-08-31", "2026-09-01"},
			expectedCurrent: 3, expectedMax: 3,
		},
		{
			name:  "ThreeConsecutiveEndingYesterday",
			dates: []string{"2026-08-29", "2026-08-30", "2026-08-31"},
			expectedCurrent: 3, expectedMax: 3,
		},
		{
			name:  "GapBreaksCurrent",
			dates: []string{"2026-08-25", "2026-08-27"},
			expectedCurrent: 0, expectedMax: 1,
		},
		{
			name:  "LongRunInPastShortRunNow",
			dates: []string{"2026-08-10", "2026-08-11", "2026-08-12", "2026-08-13", "2026-08-31", "2026-09-01"},
			expectedCurrent: 2, expectedMax: 4,
		},
		{
			name:  "DuplicateDatesCollapse",
			dates: []string{"2026-09-01", "2026-09-01", "2026-08-31"},
			expectedCurrent: 2, expectedMax: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var records []models.TradeRecord
			for _, d := range tc.dates {
				records = append(records, open(day(t, d)))
			}
			current, max := Streaks(records, now)
			assert.Equal(t, tc.expectedCurrent, current, "current streak")
			assert.Equal(t, tc.expectedMax, max, "max streak")
		})
	}
}

func TestEquityCurve(t *testing.T) {
	records := []models.TradeRecord{
		// Deliberately out of date order; the curve must sort by date.
		closed(day(t, "2026-08-03"), 30),
		closed(day(t, "2026-08-01"), 50),
		closed(day(t, "2026-08-02"), -20),
		open(day(t, "2026-08-04")),
	}

	curve := EquityCurve(records)
	assert.Len(t, curve, 3)
	assert.Equal(t, 50.0, curve[0].CumulativePnl)
	assert.Equal(t, 30.0, curve[1].CumulativePnl)
	assert.Equal(t, 60.0, curve[2].CumulativePnl)
	assert.True(t, curve[0].Date.Before(curve[1].Date))
}

func TestEquityCurve_Empty(t *testing.T) {
	assert.Empty(t, EquityCurve(nil))
	assert.Empty(t, EquityCurve([]models.TradeRecord{open(day(t, "2026-08-01"))}))
}

func TestTimeHeatmap(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday9 := time.Date(2026, 8, 31, 9, 15, 0, 0, time.UTC)
	monday23 := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)

	records := []models.TradeRecord{
		{CreatedAt: monday9, Status: models.StatusOpen},
		{CreatedAt: monday9, Status: models.StatusClosed},
		{CreatedAt: monday23, Status: models.StatusOpen},
	}

	cells := TimeHeatmap(records)
	assert.Equal(t, 2, cells[int(time.Monday)][9])
	assert.Equal(t, 1, cells[int(time.Monday)][23])
	assert.Equal(t, 0, cells[int(time.Sunday)][9])
}

func TestDailyActivity(t *testing.T) {
	records := []models.TradeRecord{
		open(day(t, "2026-08-03")),
		open(day(t, "2026-08-03")),
		closed(day(t, "2026-08-05"), 10),
	}

	days := DailyActivity(records)
	assert.Len(t, days, 2)
	assert.Equal(t, 2, days[0].Count)
	assert.Equal(t, time.Monday, days[0].Weekday)
	assert.Equal(t, 1, days[1].Count)
	assert.Equal(t, days[0].Week, days[1].Week, "same ISO week")
}

func TestAnalyticsAreIdempotent(t *testing.T) {
	now := day(t, "2026-09-01")
	records := []models.TradeRecord{
		closed(day(t, "2026-08-30"), 50),
		closed(day(t, "2026-08-31"), -20),
		open(day(t, "2026-09-01")),
	}

	first := Summarize(records, now)
	firstCurve := EquityCurve(records)

	second := Summarize(records, now)
	secondCurve := EquityCurve(records)

	assert.Equal(t, first, second)
	assert.Equal(t, firstCurve, secondCurve)
	// The snapshot itself must be untouched.
	assert.Equal(t, day(t, "2026-08-30"), records[0].Date)
	assert.Equal(t, models.StatusOpen, records[2].Status)
}
