package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionSize(t *testing.T) {
	testCases := []struct {
		name     string
		margin   float64
		leverage int
		expected float64
	}{
		{name: "Typical", margin: 100.0, leverage: 20, expected: 2000.0},
		{name: "NoLeverage", margin: 250.5, leverage: 1, expected: 250.5},
		{name: "ZeroMargin", margin: 0.0, leverage: 50, expected: 0.0},
		{name: "MaxLeverage", margin: 10.0, leverage: 125, expected: 1250.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PositionSize(tc.margin, tc.leverage))
		})
	}
}

func TestRiskReward(t *testing.T) {
	testCases := []struct {
		name          string
		entry, tp, sl float64
		expectedRatio float64
		expectedOk    bool
	}{
		{
			name:  "TwoToOne",
			entry: 100, tp: 120, sl: 90,
			// risk=10, reward=20
			expectedRatio: 2.0,
			expectedOk:    true,
		},
		{
			name:  "NoTakeProfit",
			entry: 100, tp: 0, sl: 90,
			// reward distance is zero but the ratio is still real
			expectedRatio: 0.0,
			expectedOk:    true,
		},
		{
			name:  "NoStopLoss",
			entry: 100, tp: 120, sl: 0,
			// risk=0: not computable, distinct from a real zero
			expectedRatio: 0,
			expectedOk:    false,
		},
		{
			name:  "ShortSetup",
			entry: 100, tp: 80, sl: 110,
			expectedRatio: 2.0,
			expectedOk:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ratio, ok := RiskReward(tc.entry, tc.tp, tc.sl)
			assert.Equal(t, tc.expectedOk, ok)
			assert.InDelta(t, tc.expectedRatio, ratio, 1e-9)
		})
	}
}
