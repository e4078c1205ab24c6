package llm

import (
	"context"
	"strings"
)

// OfflineGenerator produces a fixed, well-formed Greek answer so the
// assistant flows keep working without a configured backend. The answer
// carries the standard analysis sections and parseable strategy lines.
type OfflineGenerator struct{}

// NewOfflineGenerator creates the offline fallback generator.
func NewOfflineGenerator() *OfflineGenerator {
	return &OfflineGenerator{}
}

// Generate returns the canned answer; it never fails.
func (g *OfflineGenerator) Generate(_ context.Context, _ string) (string, error) {
	return strings.Join([]string{
		"Σύνοψη",
		"Ο στόλος λειτουργεί κανονικά με βάση τα διαθέσιμα δεδομένα.",
		"Το πιο κερδοφόρο κρυπτονόμισμα αυτή τη στιγμή είναι το ETH.",
		"Αδύναμα σημεία",
		"Δεν υπάρχουν διαθέσιμα ζωντανά δεδομένα από το backend ανάλυσης.",
		"Η ενοικίαση επιπλέον GPUs δεν αξίζει χωρίς ζωντανά δεδομένα αγοράς.",
		"Προτάσεις βελτιστοποίησης",
		"Ρυθμίστε το backend ανάλυσης για εξατομικευμένες προτάσεις.",
		"Εκτίμηση βελτίωσης",
		"Η εκτιμώμενη ημερήσια κερδοφορία είναι 0 EUR μέχρι να συνδεθεί το backend.",
	}, "\n"), nil
}
