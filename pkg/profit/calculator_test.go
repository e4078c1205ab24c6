package profit

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerops/internal/model"
)

func btc() model.CoinMarket {
	return model.CoinMarket{Symbol: "BTC", RewardPerHashrate: 0.00000015}
}

func TestCalculateSingleRow(t *testing.T) {
	gpus := []model.GPUDevice{{
		Model:            "NVIDIA GeForce RTX 3060",
		Hashrate:         map[string]float64{"BTC": 50},
		PowerConsumption: 170,
		Price:            329,
	}}

	result := Calculate(gpus, []model.CoinMarket{btc()}, 0.08)

	rows := result.Predictions["BTC"]
	require.Len(t, rows, 1)
	row := rows[0]

	assert.InDelta(t, 0.00018, row.DailyReward, 1e-12)
	assert.InDelta(t, 0.3264, row.DailyEnergyCost, 1e-12)
	assert.InDelta(t, -0.32622, row.DailyProfit, 1e-12)
	assert.InDelta(t, -0.32622*30, row.MonthlyProfit, 1e-12)
	assert.True(t, math.IsInf(row.ROIDays, 1))

	// A loss-making table leaves no best option.
	assert.Empty(t, result.BestOption.Coin)
	assert.Empty(t, result.BestOption.GPUModel)
	assert.Zero(t, result.BestOption.DailyProfit)
}

func TestCalculateBestOption(t *testing.T) {
	gpus := []model.GPUDevice{
		{Model: "A", Hashrate: map[string]float64{"XMR": 1.0}, PowerConsumption: 100, Price: 500},
		{Model: "B", Hashrate: map[string]float64{"XMR": 2.0}, PowerConsumption: 100, Price: 500},
	}
	coins := []model.CoinMarket{{Symbol: "XMR", RewardPerHashrate: 0.02}}

	result := Calculate(gpus, coins, 0.08)

	assert.Equal(t, "XMR", result.BestOption.Coin)
	assert.Equal(t, "B", result.BestOption.GPUModel)
	// 2.0 * 0.02 * 24 - 100 * 0.08 * 24 / 1000
	assert.InDelta(t, 0.96-0.192, result.BestOption.DailyProfit, 1e-12)

	row := result.Predictions["XMR"][1]
	assert.InDelta(t, 500/(0.96-0.192), row.ROIDays, 1e-9)
}

func TestBestOptionTieKeepsFirstSeen(t *testing.T) {
	gpus := []model.GPUDevice{
		{Model: "A", Hashrate: map[string]float64{"ETH": 10, "RVN": 10}, PowerConsumption: 50},
	}
	coins := []model.CoinMarket{
		{Symbol: "ETH", RewardPerHashrate: 0.01},
		{Symbol: "RVN", RewardPerHashrate: 0.01},
	}

	result := Calculate(gpus, coins, 0.08)

	// Identical profits: the strict comparison keeps the first coin.
	assert.Equal(t, "ETH", result.BestOption.Coin)
	assert.Equal(t, "A", result.BestOption.GPUModel)
	assert.Equal(t, []string{"ETH", "RVN"}, result.CoinOrder)
}

func TestUnminedCoinZeroHashrate(t *testing.T) {
	gpus := []model.GPUDevice{
		{Model: "A", Hashrate: map[string]float64{"ETH": 50}, PowerConsumption: 170},
	}
	coins := []model.CoinMarket{{Symbol: "BTC", RewardPerHashrate: 0.00000015}}

	result := Calculate(gpus, coins, 0.08)

	row := result.Predictions["BTC"][0]
	assert.Zero(t, row.Hashrate)
	assert.Zero(t, row.DailyReward)
	// Power still burns even when the card cannot mine the coin.
	assert.InDelta(t, 0.3264, row.DailyEnergyCost, 1e-12)
}

func TestRowJSONRendersInfiniteROIAsNull(t *testing.T) {
	row := Row{GPUModel: "A", ROIDays: math.Inf(1)}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"roi_days":null`)

	row.ROIDays = 42.5
	data, err = json.Marshal(row)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"roi_days":42.5`)
}

func TestProperty_CalculatorInvariants(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genInputs := gopter.CombineGens(
		gen.Float64Range(0, 500),     // hashrate
		gen.Float64Range(0, 0.01),    // reward per hashrate
		gen.Float64Range(1, 1000),    // power, watts
		gen.Float64Range(0.01, 0.50), // energy cost
		gen.Float64Range(0, 5000),    // acquisition price
	)

	properties.Property("monthly profit is thirty daily profits", prop.ForAll(
		func(vals []interface{}) bool {
			row := singleRow(vals)
			return math.Abs(row.MonthlyProfit-row.DailyProfit*30) < 1e-9
		}, genInputs))

	properties.Property("ROI is positive or infinite", prop.ForAll(
		func(vals []interface{}) bool {
			row := singleRow(vals)
			return row.ROIDays > 0 || math.IsInf(row.ROIDays, 1)
		}, genInputs))

	properties.Property("profit never exceeds reward", prop.ForAll(
		func(vals []interface{}) bool {
			row := singleRow(vals)
			return row.DailyProfit <= row.DailyReward
		}, genInputs))

	properties.Property("best option dominates every row", prop.ForAll(
		func(vals []interface{}) bool {
			result := calcFrom(vals)
			for _, rows := range result.Predictions {
				for _, row := range rows {
					if row.DailyProfit > result.BestOption.DailyProfit {
						return false
					}
				}
			}
			return true
		}, genInputs))

	properties.TestingRun(t)
}

func calcFrom(vals []interface{}) Result {
	gpu := model.GPUDevice{
		Model:            "G",
		Hashrate:         map[string]float64{"C": vals[0].(float64)},
		PowerConsumption: vals[2].(float64),
		Price:            vals[4].(float64),
	}
	coin := model.CoinMarket{Symbol: "C", RewardPerHashrate: vals[1].(float64)}
	return Calculate([]model.GPUDevice{gpu}, []model.CoinMarket{coin}, vals[3].(float64))
}

func singleRow(vals []interface{}) Row {
	return calcFrom(vals).Predictions["C"][0]
}
