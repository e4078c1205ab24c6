package rental

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"minerops/internal/model"
	"minerops/pkg/catalog"
)

func mockAvailability() []model.GPUAvailability {
	return catalog.Availability(time.Now())
}

func mockPricing() []model.GPUPricing {
	return catalog.Pricing()
}

func mockProfitability(models []string) model.RentalProfitability {
	return model.RentalProfitability{
		Rentals:        catalog.RentalOffers(models),
		MarketTrends:   catalog.MarketTrends(),
		Recommendation: "RVN rentals currently show the best short-term return; ETH remains the safer long-term pick",
		Source:         model.SourceMock,
	}
}

// mockRent issues a synthetic rental with a fresh ID and catalog
// pricing.
func mockRent(gpuModel string, hours int) model.RentalReceipt {
	price := catalog.PriceFor(gpuModel)
	start := time.Now()

	return model.RentalReceipt{
		Status:        "success",
		Message:       fmt.Sprintf("rented %s for %d hours", gpuModel, hours),
		RentalID:      uuid.New().String(),
		GPUModel:      gpuModel,
		DurationHours: hours,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(hours) * time.Hour),
		PricePerHour:  price,
		TotalCost:     price * float64(hours),
		ConnectionInfo: &model.ConnectionInfo{
			IP:       "192.168.100.10",
			Port:     22,
			Username: "miner",
			Password: "demo_password_123",
		},
	}
}

func mockCancel(rentalID string) model.ActionResult {
	return model.ActionResult{
		Status:    "success",
		Message:   fmt.Sprintf("rental %s cancelled", rentalID),
		Timestamp: time.Now(),
	}
}
