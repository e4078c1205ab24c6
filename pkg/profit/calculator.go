// Package profit computes mining profitability predictions from GPU
// specs and coin market data. The calculator is pure: no I/O, no
// shared state.
package profit

import (
	"encoding/json"
	"math"

	"minerops/internal/model"
)

// Row is one GPU/coin prediction. Monetary values in EUR.
type Row struct {
	GPUModel        string  `json:"gpu_model"`
	Hashrate        float64 `json:"hashrate"`
	DailyReward     float64 `json:"daily_reward"`
	DailyEnergyCost float64 `json:"daily_energy_cost"`
	DailyProfit     float64 `json:"daily_profit"`
	MonthlyProfit   float64 `json:"monthly_profit"`
	// ROIDays is the payback time for the card's acquisition price.
	// +Inf when the card never pays for itself.
	ROIDays float64 `json:"roi_days"`
}

// MarshalJSON renders an infinite ROI as null; JSON has no
// representation for +Inf.
func (r Row) MarshalJSON() ([]byte, error) {
	type alias Row
	out := struct {
		alias
		ROIDays *float64 `json:"roi_days"`
	}{alias: alias(r)}
	if !math.IsInf(r.ROIDays, 1) {
		out.ROIDays = &r.ROIDays
	}
	return json.Marshal(out)
}

// BestOption is the most profitable coin/GPU pair found, empty when no
// pair turns a profit.
type BestOption struct {
	Coin        string  `json:"coin,omitempty"`
	GPUModel    string  `json:"gpu_model,omitempty"`
	DailyProfit float64 `json:"daily_profit"`
}

// Result holds per-coin prediction tables plus the best option across
// all of them.
type Result struct {
	Predictions map[string][]Row `json:"predictions"`
	BestOption  BestOption       `json:"best_option"`
	CoinOrder   []string         `json:"-"`
}

// Calculate builds the prediction table for every coin/GPU pair.
// Coins and GPUs are evaluated in the order given; the best option is
// the first pair attaining the maximum positive daily profit, so ties
// resolve to the earliest coin, then the earliest GPU.
func Calculate(gpus []model.GPUDevice, coins []model.CoinMarket, energyCostPerKWh float64) Result {
	result := Result{
		Predictions: make(map[string][]Row, len(coins)),
		CoinOrder:   make([]string, 0, len(coins)),
	}

	for _, coin := range coins {
		rows := make([]Row, 0, len(gpus))
		for _, gpu := range gpus {
			row := evaluate(gpu, coin, energyCostPerKWh)
			rows = append(rows, row)

			if row.DailyProfit > result.BestOption.DailyProfit {
				result.BestOption = BestOption{
					Coin:        coin.Symbol,
					GPUModel:    gpu.Model,
					DailyProfit: row.DailyProfit,
				}
			}
		}
		result.Predictions[coin.Symbol] = rows
		result.CoinOrder = append(result.CoinOrder, coin.Symbol)
	}

	return result
}

// evaluate computes one GPU/coin row.
func evaluate(gpu model.GPUDevice, coin model.CoinMarket, energyCostPerKWh float64) Row {
	hashrate := gpu.HashrateFor(coin.Symbol)

	dailyReward := hashrate * coin.RewardPerHashrate * 24
	dailyEnergyCost := gpu.PowerConsumption * energyCostPerKWh * 24 / 1000
	dailyProfit := dailyReward - dailyEnergyCost

	roiDays := math.Inf(1)
	if dailyProfit > 0 && gpu.Price > 0 {
		roiDays = gpu.Price / dailyProfit
	}

	return Row{
		GPUModel:        gpu.Model,
		Hashrate:        hashrate,
		DailyReward:     dailyReward,
		DailyEnergyCost: dailyEnergyCost,
		DailyProfit:     dailyProfit,
		MonthlyProfit:   dailyProfit * 30,
		ROIDays:         roiDays,
	}
}
