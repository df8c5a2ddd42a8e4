package journal

import "math"

// PositionSize returns the notional size of a position: margin times leverage.
func PositionSize(margin float64, leverage int) float64 {
	return margin * float64(leverage)
}

// RiskReward computes the reward-to-risk ratio of a plan. A stop loss or take
// profit of 0 means "unset" and contributes a zero distance. When the risk
// distance is zero the ratio is not computable and ok is false; a genuine 0.0
// ratio (no reward) reports ok=true.
func RiskReward(entry, takeProfit, stopLoss float64) (ratio float64, ok bool) {
	var risk, reward float64
	if stopLoss > 0 {
		risk = math.Abs(entry - stopLoss)
	}
	if takeProfit > 0 {
		reward = math.Abs(takeProfit - entry)
	}
	if risk == 0 {
		return 0, false
	}
	return reward / risk, true
}
