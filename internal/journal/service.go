package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tineo1298-dev/my-trade-journal/internal/models"
	"go.uber.org/zap"
)

// Session identifies the acting user. Every core operation is scoped to it;
// there is no ambient "current user" state anywhere in the package.
type Session struct {
	UserID string
	Email  string
}

// ImageUploader uploads a screenshot and returns its public reference.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, path string) (string, error)
}

// PlanInput carries the fields of a new trade plan.
type PlanInput struct {
	Date       time.Time
	Coin       string
	Position   string
	Leverage   int
	Margin     float64
	EntryPrice float64
	TakeProfit float64
	StopLoss   float64
	Note       string
	Image      []byte
}

// CloseInput carries the result fields for closing an open trade.
type CloseInput struct {
	RealPnl  float64
	ExitNote string
	Image    []byte
}

// Service is the lifecycle manager for trade records. It owns the
// Open -> Closed state machine and delegates persistence to the Store and
// screenshots to the ImageUploader.
type Service struct {
	store       *Store
	images      ImageUploader
	logger      *zap.Logger
	maxLeverage int
}

// NewService creates a new lifecycle service.
func NewService(store *Store, images ImageUploader, logger *zap.Logger, maxLeverage int) *Service {
	if maxLeverage <= 0 {
		maxLeverage = 125
	}
	return &Service{
		store:       store,
		images:      images,
		logger:      logger,
		maxLeverage: maxLeverage,
	}
}

// CreatePlan validates and persists a new planned trade in the Open state.
// A failed screenshot upload is logged and degrades to the NoImage sentinel;
// it never aborts the plan.
func (s *Service) CreatePlan(ctx context.Context, session Session, in PlanInput) (*models.TradeRecord, error) {
	coin := strings.ToUpper(strings.TrimSpace(in.Coin))
	if coin == "" {
		return nil, fmt.Errorf("%w: coin is required", ErrValidation)
	}
	if in.Position != models.PositionLong && in.Position != models.PositionShort {
		return nil, fmt.Errorf("%w: position must be %q or %q", ErrValidation, models.PositionLong, models.PositionShort)
	}
	if in.Leverage < 1 || in.Leverage > s.maxLeverage {
		return nil, fmt.Errorf("%w: leverage must be between 1 and %d", ErrValidation, s.maxLeverage)
	}
	if in.Margin < 0 {
		return nil, fmt.Errorf("%w: margin must not be negative", ErrValidation)
	}

	planImage := s.uploadImage(ctx, session, in.Image, "PLAN", coin)

	record := &models.TradeRecord{
		UserID:       session.UserID,
		Date:         in.Date,
		Coin:         coin,
		Position:     in.Position,
		Leverage:     in.Leverage,
		Margin:       in.Margin,
		PositionSize: PositionSize(in.Margin, in.Leverage),
		EntryPrice:   in.EntryPrice,
		PlanTP:       in.TakeProfit,
		PlanSL:       in.StopLoss,
		PlanNote:     in.Note,
		PlanImage:    planImage,
		RealPnl:      0.0,
		ExitNote:     "-",
		ResultImage:  models.NoImage,
		Status:       models.StatusOpen,
	}

	if err := s.store.Insert(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Plan created",
		zap.Uint("id", record.ID),
		zap.String("coin", coin),
		zap.String("position", record.Position),
		zap.Float64("position_size", record.PositionSize),
	)
	return record, nil
}

// CloseOrder transitions an Open record to Closed, recording the realized PnL,
// the exit note, and an optional result screenshot. Closing a record that is
// already Closed fails with ErrRecordNotOpen; a record that is absent or owned
// by another user fails with ErrNotFound before any mutation is attempted.
func (s *Service) CloseOrder(ctx context.Context, session Session, id uint, in CloseInput) (*models.TradeRecord, error) {
	record, err := s.store.Get(ctx, id, session.UserID)
	if err != nil {
		return nil, err
	}
	if !record.IsOpen() {
		return nil, fmt.Errorf("%w: id %d is already %s", ErrRecordNotOpen, id, record.Status)
	}

	exitNote := in.ExitNote
	if exitNote == "" {
		exitNote = "-"
	}
	resultImage := s.uploadImage(ctx, session, in.Image, "RES", record.Coin)

	err = s.store.CloseOpen(ctx, id, session.UserID, map[string]any{
		"real_pnl":          in.RealPnl,
		"exit_note":         exitNote,
		"result_image_path": resultImage,
		"status":            models.StatusClosed,
	})
	if err != nil {
		return nil, err
	}

	record.RealPnl = in.RealPnl
	record.ExitNote = exitNote
	record.ResultImage = resultImage
	record.Status = models.StatusClosed

	s.logger.Info("Order closed",
		zap.Uint("id", id),
		zap.String("coin", record.Coin),
		zap.Float64("real_pnl", in.RealPnl),
	)
	return record, nil
}

// DeleteRecord removes a record in either status. A missing or foreign id is
// reported as ErrNotFound, never as a silent success.
func (s *Service) DeleteRecord(ctx context.Context, session Session, id uint) error {
	if err := s.store.Delete(ctx, id, session.UserID); err != nil {
		return err
	}
	s.logger.Info("Record deleted", zap.Uint("id", id))
	return nil
}

// History returns the user's full record snapshot, most recent first.
func (s *Service) History(ctx context.Context, session Session) ([]models.TradeRecord, error) {
	return s.store.List(ctx, session.UserID)
}

// uploadImage pushes a screenshot to the image store and returns its public
// reference, or the NoImage sentinel when there is nothing to upload or the
// upload fails.
func (s *Service) uploadImage(ctx context.Context, session Session, data []byte, prefix, coin string) string {
	if len(data) == 0 || s.images == nil {
		return models.NoImage
	}
	path := fmt.Sprintf("%s/%s_%s_%s.jpg", session.UserID, prefix, coin, time.Now().Format("20060102_150405"))
	ref, err := s.images.Upload(ctx, data, path)
	if err != nil {
		s.logger.Warn("Image upload failed, continuing without image",
			zap.String("path", path), zap.Error(err))
		return models.NoImage
	}
	return ref
}
