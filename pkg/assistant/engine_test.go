package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerops/internal/model"
)

// scriptedGenerator returns a fixed answer and records the prompt.
type scriptedGenerator struct {
	answer string
	err    error
	prompt string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.answer, g.err
}

func sampleInputs() (model.UserConfig, model.MarketData, model.EnergyInput) {
	userCfg := model.UserConfig{
		GPUs:         []string{"NVIDIA GeForce RTX 3080"},
		CurrentCoin:  "ETH",
		RentalBudget: 100,
		ROIThreshold: 180,
	}
	market := model.MarketData{Prices: map[string]float64{"ETH": 3200.75, "XMR": 140.2}}
	energy := model.EnergyInput{CurrentPrice: 0.08, AvailablePower: 4.5}
	return userCfg, market, energy
}

func TestOptimizeStrategyExtractsSuggestions(t *testing.T) {
	gen := &scriptedGenerator{answer: strings.Join([]string{
		"Το πιο κερδοφόρο κρυπτονόμισμα αυτή τη στιγμή είναι το XMR.",
		"Η ενοικίαση επιπλέον GPUs αξίζει με τον τρέχοντα προϋπολογισμό.",
		"Η εκτιμώμενη ημερήσια κερδοφορία είναι 12,50 EUR.",
	}, "\n")}

	e := New(gen)
	userCfg, market, energy := sampleInputs()

	result := e.OptimizeStrategy(context.Background(), userCfg, market, energy)

	assert.Equal(t, gen.answer, result.RawAnalysis)
	assert.Equal(t, "XMR", result.Suggestions.RecommendedCoin)
	assert.Equal(t, "yes", result.Suggestions.RentalRecommendation.Recommendation)
	assert.NotEmpty(t, result.Suggestions.RentalRecommendation.Rationale)
	assert.InDelta(t, 12.50, result.Suggestions.EstimatedProfitability.Daily, 1e-9)
}

func TestOptimizeStrategyAcceptsAnyMarketCoin(t *testing.T) {
	gen := &scriptedGenerator{answer: "Το πιο κερδοφόρο κρυπτονόμισμα για εξόρυξη είναι το DOGE"}
	e := New(gen)
	userCfg, _, energy := sampleInputs()
	market := model.MarketData{Prices: map[string]float64{"DOGE": 0.12}}

	result := e.OptimizeStrategy(context.Background(), userCfg, market, energy)
	assert.Equal(t, "DOGE", result.Suggestions.RecommendedCoin)
}

func TestOptimizeStrategyIgnoresCoinOutsideMarket(t *testing.T) {
	gen := &scriptedGenerator{answer: "Το πιο κερδοφόρο κρυπτονόμισμα είναι το LTC."}
	e := New(gen)
	userCfg, market, energy := sampleInputs()

	// LTC is not in the market data, so no recommendation is made.
	result := e.OptimizeStrategy(context.Background(), userCfg, market, energy)
	assert.Empty(t, result.Suggestions.RecommendedCoin)
}

func TestOptimizeStrategyRentalLineWithoutIntentIsNo(t *testing.T) {
	gen := &scriptedGenerator{answer: "Η ενοικίαση επιπλέον GPUs εξετάστηκε με βάση τον προϋπολογισμό"}
	e := New(gen)
	userCfg, market, energy := sampleInputs()

	result := e.OptimizeStrategy(context.Background(), userCfg, market, energy)
	assert.Equal(t, "no", result.Suggestions.RentalRecommendation.Recommendation)
	assert.NotEmpty(t, result.Suggestions.RentalRecommendation.Rationale)
}

func TestOptimizeStrategyPositiveRentalLineWins(t *testing.T) {
	gen := &scriptedGenerator{answer: strings.Join([]string{
		"Η ενοικίαση εξετάστηκε με βάση τον προϋπολογισμό.",
		"Η ενοικίαση επιπλέον GPUs αξίζει με τις τρέχουσες τιμές.",
	}, "\n")}
	e := New(gen)
	userCfg, market, energy := sampleInputs()

	result := e.OptimizeStrategy(context.Background(), userCfg, market, energy)
	assert.Equal(t, "yes", result.Suggestions.RentalRecommendation.Recommendation)
}

func TestOptimizeStrategyNegatedRental(t *testing.T) {
	gen := &scriptedGenerator{answer: "Η ενοικίαση δεν αξίζει αυτή τη στιγμή."}
	e := New(gen)
	userCfg, market, energy := sampleInputs()

	result := e.OptimizeStrategy(context.Background(), userCfg, market, energy)
	assert.Equal(t, "no", result.Suggestions.RentalRecommendation.Recommendation)
}

func TestOptimizeStrategyPromptCarriesInputsAndQuestions(t *testing.T) {
	gen := &scriptedGenerator{answer: "ok"}
	e := New(gen)
	userCfg, market, energy := sampleInputs()

	e.OptimizeStrategy(context.Background(), userCfg, market, energy)

	assert.Contains(t, gen.prompt, "1.")
	assert.Contains(t, gen.prompt, "5.")
	assert.Contains(t, gen.prompt, "κρυπτονόμισμα")
	assert.Contains(t, gen.prompt, "NVIDIA GeForce RTX 3080")
	assert.Contains(t, gen.prompt, "3200.75")
	assert.LessOrEqual(t, len(gen.prompt), maxPromptLen)
}

func TestOptimizeStrategyGenerationFailure(t *testing.T) {
	e := New(&scriptedGenerator{err: errors.New("backend down")})
	userCfg, market, energy := sampleInputs()

	result := e.OptimizeStrategy(context.Background(), userCfg, market, energy)

	assert.Equal(t, apology, result.RawAnalysis)
	assert.Equal(t, model.OptimizationSuggestion{}, result.Suggestions)
}

func TestOptimizeStrategyUnparseableAnswerKeepsRawText(t *testing.T) {
	gen := &scriptedGenerator{answer: "Γενική συμβουλή χωρίς συγκεκριμένα στοιχεία."}
	e := New(gen)
	userCfg, market, energy := sampleInputs()

	result := e.OptimizeStrategy(context.Background(), userCfg, market, energy)

	assert.Equal(t, gen.answer, result.RawAnalysis)
	assert.Empty(t, result.Suggestions.RecommendedCoin)
	assert.Empty(t, result.Suggestions.RentalRecommendation.Recommendation)
	assert.Zero(t, result.Suggestions.EstimatedProfitability.Daily)
}

func TestAnalyzeMiningDataSplitsSections(t *testing.T) {
	gen := &scriptedGenerator{answer: strings.Join([]string{
		"Σύνοψη",
		"Ο στόλος λειτουργεί σταθερά.",
		"Αδύναμα σημεία",
		"Υψηλή θερμοκρασία στη δεύτερη κάρτα.",
		"Προτάσεις βελτιστοποίησης",
		"Μείωση του power limit κατά 10%.",
		"Εκτίμηση βελτίωσης",
		"Περίπου 5% καλύτερη απόδοση.",
	}, "\n")}

	e := New(gen)
	sections := e.AnalyzeMiningData(context.Background(), model.MiningStats{ActiveCoin: "ETH"})

	require.Len(t, sections, 4)
	assert.Equal(t, "Ο στόλος λειτουργεί σταθερά.", sections["Σύνοψη"])
	assert.Equal(t, "Περίπου 5% καλύτερη απόδοση.", sections["Εκτίμηση βελτίωσης"])
}

func TestAnalyzeMiningDataFailureReturnsApology(t *testing.T) {
	e := New(&scriptedGenerator{err: errors.New("timeout")})
	sections := e.AnalyzeMiningData(context.Background(), model.MiningStats{})
	assert.Equal(t, map[string]string{"general": apology}, sections)
}

func TestChatCarriesQuestionAndStats(t *testing.T) {
	gen := &scriptedGenerator{answer: "  Κλείσε τα 3060 τη νύχτα. "}
	e := New(gen)

	answer := e.Chat(context.Background(), "Ποιες κάρτες να σβήσω;", model.MiningStats{TotalHashrate: 227})

	assert.Equal(t, "Κλείσε τα 3060 τη νύχτα.", answer)
	assert.Contains(t, gen.prompt, "Ποιες κάρτες να σβήσω;")
	assert.Contains(t, gen.prompt, "227")
}

func TestChatFailureReturnsApology(t *testing.T) {
	e := New(&scriptedGenerator{err: errors.New("backend down")})

	answer := e.Chat(context.Background(), "οτιδήποτε", model.MiningStats{})
	assert.Equal(t, apology, answer)
}

func TestFirstEuroAmountFormats(t *testing.T) {
	tests := []struct {
		line string
		want float64
	}{
		{"κέρδος 12,50 EUR την ημέρα", 12.50},
		{"profit: 8.75 € daily", 8.75},
		{"περίπου 100 EUR", 100},
		{"no amount here", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, firstEuroAmount(tt.line), 1e-9, tt.line)
	}
}
