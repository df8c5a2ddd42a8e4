package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/tineo1298-dev/my-trade-journal/internal/models"
	"gorm.io/gorm"
)

// Store is the gorm-backed record store adapter. Every operation is scoped to
// an owning user; absence and ownership mismatch are indistinguishable and
// both surface as ErrNotFound.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store on top of an opened gorm connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List returns the full snapshot of a user's records, most recent id first,
// with row defaults applied.
func (s *Store) List(ctx context.Context, userID string) ([]models.TradeRecord, error) {
	var records []models.TradeRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list records: %v", ErrStoreUnavailable, err)
	}
	for i := range records {
		records[i].ApplyDefaults()
	}
	return records, nil
}

// Get fetches a single record scoped to its owner.
func (s *Store) Get(ctx context.Context, id uint, userID string) (*models.TradeRecord, error) {
	var record models.TradeRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get record %d: %v", ErrStoreUnavailable, id, err)
	}
	record.ApplyDefaults()
	return &record, nil
}

// Insert persists a new record and fills in its store-assigned id.
func (s *Store) Insert(ctx context.Context, record *models.TradeRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("%w: insert record: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// CloseOpen applies the Open -> Closed transition as a single scoped update.
// The predicate includes status = Open, so when two closes race at most one
// observes an open row; the other gets ErrRecordNotOpen.
func (s *Store) CloseOpen(ctx context.Context, id uint, userID string, fields map[string]any) error {
	res := s.db.WithContext(ctx).
		Model(&models.TradeRecord{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StatusOpen).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("%w: update record %d: %v", ErrStoreUnavailable, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrRecordNotOpen, id)
	}
	return nil
}

// Delete removes a record scoped to its owner. Deleting a missing or foreign
// record reports ErrNotFound rather than succeeding silently.
func (s *Store) Delete(ctx context.Context, id uint, userID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.TradeRecord{})
	if res.Error != nil {
		return fmt.Errorf("%w: delete record %d: %v", ErrStoreUnavailable, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}
