package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerops/internal/model"
)

func TestRentRecordsSuccessfulRental(t *testing.T) {
	records := &memRentalRecords{}
	rental := &stubRental{
		receipt: model.RentalReceipt{
			Status:        "success",
			RentalID:      "r-1",
			GPUModel:      "NVIDIA GeForce RTX 3080",
			DurationHours: 24,
			PricePerHour:  0.50,
			TotalCost:     12,
			StartTime:     time.Now(),
			EndTime:       time.Now().Add(24 * time.Hour),
		},
		mode: model.SourceMock,
	}
	s := NewRentalService(rental, records)

	receipt := s.Rent(context.Background(), "NVIDIA GeForce RTX 3080", 24)
	require.Equal(t, "success", receipt.Status)

	active, err := s.ListActiveRentals(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "r-1", active[0].RentalID)
	assert.Equal(t, model.SourceMock, active[0].Source)
}

func TestRentFailureLeavesNoRecord(t *testing.T) {
	records := &memRentalRecords{}
	rental := &stubRental{
		receipt: model.RentalReceipt{Status: "error", Error: "marketplace down"},
		mode:    model.SourceLive,
	}
	s := NewRentalService(rental, records)

	receipt := s.Rent(context.Background(), "NVIDIA GeForce RTX 3080", 24)

	assert.Equal(t, "error", receipt.Status)
	active, err := s.ListActiveRentals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCancelRentalClosesRecord(t *testing.T) {
	records := &memRentalRecords{}
	rental := &stubRental{
		receipt: model.RentalReceipt{Status: "success", RentalID: "r-2"},
		cancel:  model.ActionResult{Status: "success"},
		mode:    model.SourceMock,
	}
	s := NewRentalService(rental, records)

	s.Rent(context.Background(), "NVIDIA GeForce RTX 3060", 4)
	result := s.CancelRental(context.Background(), "r-2")

	assert.Equal(t, "success", result.Status)
	active, err := s.ListActiveRentals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCancelRentalFailureKeepsRecordActive(t *testing.T) {
	records := &memRentalRecords{}
	rental := &stubRental{
		receipt: model.RentalReceipt{Status: "success", RentalID: "r-3"},
		cancel:  model.ActionResult{Status: "error", Error: "not found"},
		mode:    model.SourceMock,
	}
	s := NewRentalService(rental, records)

	s.Rent(context.Background(), "NVIDIA GeForce RTX 3060", 4)
	result := s.CancelRental(context.Background(), "r-3")

	assert.Equal(t, "error", result.Status)
	active, err := s.ListActiveRentals(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
