package service

import (
	"context"
	"time"

	"minerops/internal/model"
	"minerops/pkg/logger"
	smodel "minerops/pkg/store/mysql/model"
)

type rentalRecordStore interface {
	Create(ctx context.Context, record *smodel.RentalRecord) error
	ListActive(ctx context.Context) ([]smodel.RentalRecord, error)
	MarkCancelled(ctx context.Context, rentalID string, at time.Time) error
}

// RentalService exposes the marketplace connector and keeps an audit
// trail of rentals in MySQL. Audit failures never fail the rental
// itself: the marketplace holds the authoritative state.
type RentalService struct {
	rental  RentalSource
	records rentalRecordStore
}

// NewRentalService creates the rental service.
func NewRentalService(rental RentalSource, records rentalRecordStore) *RentalService {
	return &RentalService{rental: rental, records: records}
}

// GetAvailability lists marketplace GPU stock.
func (s *RentalService) GetAvailability(ctx context.Context) []model.GPUAvailability {
	return s.rental.GetAvailability(ctx)
}

// GetPricing lists the marketplace price list.
func (s *RentalService) GetPricing(ctx context.Context) []model.GPUPricing {
	return s.rental.GetPricing(ctx)
}

// GetProfitability returns offers and trends for the given models.
func (s *RentalService) GetProfitability(ctx context.Context, models []string) model.RentalProfitability {
	return s.rental.GetProfitability(ctx, models)
}

// ListActiveRentals returns the audit records still marked active.
func (s *RentalService) ListActiveRentals(ctx context.Context) ([]smodel.RentalRecord, error) {
	return s.records.ListActive(ctx)
}

// Rent places a rental and records it on success.
func (s *RentalService) Rent(ctx context.Context, gpuModel string, hours int) model.RentalReceipt {
	receipt := s.rental.Rent(ctx, gpuModel, hours)
	if receipt.Status != "success" {
		return receipt
	}

	record := &smodel.RentalRecord{
		RentalID:      receipt.RentalID,
		GPUModel:      receipt.GPUModel,
		DurationHours: receipt.DurationHours,
		PricePerHour:  receipt.PricePerHour,
		TotalCost:     receipt.TotalCost,
		Status:        "active",
		Source:        s.rental.Mode(),
		StartTime:     receipt.StartTime,
		EndTime:       receipt.EndTime,
	}
	if err := s.records.Create(ctx, record); err != nil {
		logger.Errorf("rental service: failed to record rental %s: %v", receipt.RentalID, err)
	}

	return receipt
}

// CancelRental cancels a rental and closes its audit record on success.
func (s *RentalService) CancelRental(ctx context.Context, rentalID string) model.ActionResult {
	result := s.rental.CancelRental(ctx, rentalID)
	if result.Status != "success" {
		return result
	}

	if err := s.records.MarkCancelled(ctx, rentalID, time.Now()); err != nil {
		logger.Errorf("rental service: failed to close rental record %s: %v", rentalID, err)
	}

	return result
}
