package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"minerops/pkg/store/mysql/model"
)

// CryptoPriceRepository handles coin price history persistence in MySQL
type CryptoPriceRepository struct {
	ds *Datastore
}

// NewCryptoPriceRepository creates a new crypto price repository
func NewCryptoPriceRepository(ds *Datastore) *CryptoPriceRepository {
	return &CryptoPriceRepository{ds: ds}
}

// Create stores one price sample
func (r *CryptoPriceRepository) Create(ctx context.Context, price *model.CryptoPrice) error {
	return r.ds.DB(ctx).Create(price).Error
}

// CreateBatch stores a batch of samples in one statement
func (r *CryptoPriceRepository) CreateBatch(ctx context.Context, prices []model.CryptoPrice) error {
	if len(prices) == 0 {
		return nil
	}
	return r.ds.DB(ctx).Create(&prices).Error
}

// Latest retrieves the most recent sample for a symbol, nil when the
// symbol has no history
func (r *CryptoPriceRepository) Latest(ctx context.Context, symbol string) (*model.CryptoPrice, error) {
	var price model.CryptoPrice
	err := r.ds.DB(ctx).
		Where("symbol = ?", symbol).
		Order("timestamp DESC").
		First(&price).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest price: %w", err)
	}
	return &price, nil
}

// History retrieves the price history for a symbol since the given time
func (r *CryptoPriceRepository) History(ctx context.Context, symbol string, since time.Time) ([]model.CryptoPrice, error) {
	var prices []model.CryptoPrice
	err := r.ds.DB(ctx).
		Where("symbol = ? AND timestamp >= ?", symbol, since).
		Order("timestamp ASC").
		Find(&prices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}
	return prices, nil
}
