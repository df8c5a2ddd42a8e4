package models

import (
	"strings"
	"time"
)

// Position side of a trade.
const (
	PositionLong  = "Long"
	PositionShort = "Short"
)

// Lifecycle status of a trade record. A record is created Open and
// transitions exactly once to Closed.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// NoImage is the sentinel stored when no screenshot was uploaded, or when an
// upload failed. It only lives at the storage boundary; use PlanImageURL and
// ResultImageURL in process.
const NoImage = "None"

// TradeRecord represents one planned or executed trade in the journal.
type TradeRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Coin         string  `gorm:"not null" json:"coin"`
	Position     string  `gorm:"not null" json:"position"` // "Long" or "Short"
	Leverage     int     `json:"leverage"`
	Margin       float64 `json:"margin"`
	PositionSize float64 `json:"position_size"`

	EntryPrice float64 `json:"entry_price"`
	PlanTP     float64 `json:"plan_tp"`
	PlanSL     float64 `json:"plan_sl"`
	PlanNote   string  `json:"plan_note"`
	PlanImage  string  `gorm:"column:plan_image_path" json:"plan_image_path"`

	RealPnl     float64 `json:"real_pnl"`
	ExitNote    string  `json:"exit_note"`
	ResultImage string  `gorm:"column:result_image_path" json:"result_image_path"`

	Status string `gorm:"not null;index" json:"status"`
}

// TableName keeps the table name compatible with the original journal schema.
func (TradeRecord) TableName() string {
	return "trade_journal"
}

// ApplyDefaults fills the defaults a partially-populated row carries after
// load: missing leverage is 1, missing margin is 0, and position_size is
// derived from the two. Called once at the store boundary.
func (r *TradeRecord) ApplyDefaults() {
	if r.Leverage <= 0 {
		r.Leverage = 1
	}
	if r.Margin < 0 {
		r.Margin = 0
	}
	r.PositionSize = r.Margin * float64(r.Leverage)
	if r.PlanImage == "" {
		r.PlanImage = NoImage
	}
	if r.ResultImage == "" {
		r.ResultImage = NoImage
	}
	if r.ExitNote == "" {
		r.ExitNote = "-"
	}
}

// IsOpen reports whether the record is still awaiting its result.
func (r *TradeRecord) IsOpen() bool {
	return r.Status == StatusOpen
}

// PlanImageURL returns the plan screenshot URL and whether it is displayable.
func (r *TradeRecord) PlanImageURL() (string, bool) {
	return imageURL(r.PlanImage)
}

// ResultImageURL returns the result screenshot URL and whether it is displayable.
func (r *TradeRecord) ResultImageURL() (string, bool) {
	return imageURL(r.ResultImage)
}

// imageURL treats only references with an http(s) scheme as displayable;
// anything else, including the "None" sentinel, means no image.
func imageURL(ref string) (string, bool) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, true
	}
	return "", false
}
