package assistant

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"minerops/internal/model"
)

// currencyPattern captures an amount followed by a euro marker, with
// either decimal separator.
var currencyPattern = regexp.MustCompile(`(\d+[.,]?\d*)\s*(?:EUR|€)`)

// parseSuggestions walks the generated answer line by line and pulls
// out whatever structured fields the text supports. Coin extraction
// only accepts symbols present in the market data. Extraction is
// best-effort: an unrecognizable answer yields an empty suggestion, not
// an error.
func parseSuggestions(analysis string, marketCoins []string) model.OptimizationSuggestion {
	var suggestion model.OptimizationSuggestion

	for _, line := range strings.Split(analysis, "\n") {
		lower := strings.ToLower(line)

		switch {
		case suggestion.RecommendedCoin == "" &&
			strings.Contains(lower, "κρυπτονόμισμα") && strings.Contains(lower, "κερδοφόρο"):
			suggestion.RecommendedCoin = firstMarketCoin(line, marketCoins)

		case strings.Contains(lower, "ενοικίαση"):
			advice := rentalAdvice(line, lower)
			// First rental line decides; a later positive line may
			// still upgrade a default "no".
			if suggestion.RentalRecommendation.Recommendation == "" ||
				(suggestion.RentalRecommendation.Recommendation == "no" && advice.Recommendation == "yes") {
				suggestion.RentalRecommendation = advice
			}

		case suggestion.EstimatedProfitability.Daily == 0 &&
			(strings.Contains(lower, "κερδοφορία") || strings.Contains(lower, "κέρδος") || strings.Contains(lower, "profit")):
			suggestion.EstimatedProfitability.Daily = firstEuroAmount(line)
		}
	}

	return suggestion
}

// marketSymbols lists the coin symbols the market data knows, in a
// stable order.
func marketSymbols(market model.MarketData) []string {
	symbols := make([]string, 0, len(market.Prices))
	for symbol := range market.Prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// firstMarketCoin returns the first market-known coin symbol in the
// line.
func firstMarketCoin(line string, coins []string) string {
	upper := strings.ToUpper(line)
	for _, coin := range coins {
		if strings.Contains(upper, strings.ToUpper(coin)) {
			return coin
		}
	}
	return ""
}

// rentalAdvice reads a go/no-go from a rental line: "αξίζει" means yes
// unless negated, anything else is a no.
func rentalAdvice(line, lower string) model.RentalRecommendation {
	advice := model.RentalRecommendation{
		Recommendation: "no",
		Rationale:      strings.TrimSpace(line),
	}
	if strings.Contains(lower, "αξίζει") && !strings.Contains(lower, "δεν αξίζει") {
		advice.Recommendation = "yes"
	}
	return advice
}

// firstEuroAmount extracts the first euro amount in the line, 0 when
// none parses. A decimal comma is normalized to a dot.
func firstEuroAmount(line string) float64 {
	match := currencyPattern.FindStringSubmatch(line)
	if match == nil {
		return 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil {
		return 0
	}
	return value
}
