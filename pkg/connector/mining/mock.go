package mining

import (
	"time"

	"minerops/internal/model"
	"minerops/pkg/catalog"
)

// mockFleet is the fixed rig composition used for degraded stats, drawn
// from the shared catalog. Model name, temperature and fan speed per slot.
var mockFleet = []struct {
	model       string
	temperature float64
	fanSpeed    float64
}{
	{"NVIDIA GeForce RTX 3060", 62, 65},
	{"NVIDIA GeForce RTX 3060", 64, 70},
	{"NVIDIA GeForce RTX 3070", 61, 60},
	{"NVIDIA GeForce RTX 3080", 68, 75},
	{"NVIDIA GeForce RTX 4070", 58, 55},
}

// mockCoins returns the catalog coin dataset.
func (c *Connector) mockCoins() map[string]model.CoinMarket {
	return catalog.CoinsMap()
}

// mockStats builds the degraded fleet snapshot. Every value except the
// timestamp is deterministic.
func mockStats(coins map[string]model.CoinMarket) model.MiningStats {
	const activeCoin = "ETH"

	stats := model.MiningStats{
		Timestamp:  time.Now(),
		ActiveCoin: activeCoin,
		CoinsData:  coins,
		Source:     model.SourceMock,
	}

	for _, slot := range mockFleet {
		device, ok := catalog.GPU(slot.model)
		if !ok {
			continue
		}
		hashrate := device.HashrateFor(activeCoin)

		stats.ActiveGPUs++
		stats.TotalHashrate += hashrate
		stats.TotalPower += device.PowerConsumption
		stats.GPUs = append(stats.GPUs, model.GPUInfo{
			Model:            slot.model,
			Hashrate:         hashrate,
			PowerConsumption: device.PowerConsumption,
			Temperature:      slot.temperature,
			FanSpeed:         slot.fanSpeed,
			Efficiency:       hashrate / device.PowerConsumption,
		})
	}

	if coin, ok := coins[activeCoin]; ok {
		stats.TotalEarnings24h = stats.TotalHashrate * coin.RewardPerHashrate * 24
	}

	return stats
}
