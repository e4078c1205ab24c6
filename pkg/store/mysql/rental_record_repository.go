package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"minerops/pkg/store/mysql/model"
)

// RentalRecordRepository handles rental audit records in MySQL
type RentalRecordRepository struct {
	ds *Datastore
}

// NewRentalRecordRepository creates a new rental record repository
func NewRentalRecordRepository(ds *Datastore) *RentalRecordRepository {
	return &RentalRecordRepository{ds: ds}
}

// Create stores a new rental record
func (r *RentalRecordRepository) Create(ctx context.Context, record *model.RentalRecord) error {
	return r.ds.DB(ctx).Create(record).Error
}

// Get retrieves a record by marketplace rental ID, nil when not found
func (r *RentalRecordRepository) Get(ctx context.Context, rentalID string) (*model.RentalRecord, error) {
	var record model.RentalRecord
	err := r.ds.DB(ctx).Where("rental_id = ?", rentalID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rental record: %w", err)
	}
	return &record, nil
}

// ListActive retrieves records still marked active
func (r *RentalRecordRepository) ListActive(ctx context.Context) ([]model.RentalRecord, error) {
	var records []model.RentalRecord
	err := r.ds.DB(ctx).
		Where("status = ?", "active").
		Order("start_time DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active rentals: %w", err)
	}
	return records, nil
}

// MarkCancelled flips an active record to cancelled with CAS semantics;
// cancelling twice is an error the caller can surface.
func (r *RentalRecordRepository) MarkCancelled(ctx context.Context, rentalID string, at time.Time) error {
	result := r.ds.DB(ctx).Model(&model.RentalRecord{}).
		Where("rental_id = ? AND status = ?", rentalID, "active").
		Updates(map[string]interface{}{
			"status":       "cancelled",
			"cancelled_at": at,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to cancel rental record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("rental record not found or already cancelled: rental_id=%s", rentalID)
	}
	return nil
}
