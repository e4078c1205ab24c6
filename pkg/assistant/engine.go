// Package assistant turns mining, market and energy state into
// operator-facing advice through a text generation backend. All
// user-facing text is Greek; extraction of structured fields from the
// generated answers is heuristic and best-effort.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"minerops/internal/model"
	"minerops/pkg/logger"
)

// Generator produces text for a prompt. Implementations bound their own
// call duration.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// maxPromptLen caps the prompt handed to the backend; oversized context
// payloads are truncated, never rejected.
const maxPromptLen = 6000

// apology is returned as the raw analysis whenever generation fails.
const apology = "Λυπάμαι, δεν μπόρεσα να ολοκληρώσω την ανάλυση αυτή τη στιγμή. Παρακαλώ δοκιμάστε ξανά αργότερα."

// AnalysisHeaders are the sections requested from every mining data
// analysis, in prompt order.
var AnalysisHeaders = []string{
	"Σύνοψη",
	"Αδύναμα σημεία",
	"Προτάσεις βελτιστοποίησης",
	"Εκτίμηση βελτίωσης",
}

// Engine drives the advice flows on top of a Generator.
type Engine struct {
	gen Generator
}

// New creates an assistant engine.
func New(gen Generator) *Engine {
	return &Engine{gen: gen}
}

// OptimizeStrategy asks the backend for a full mining strategy and
// extracts whatever structured fields the answer supports. Generation
// failure yields the apology text with empty suggestions; the operator
// always gets an answer.
func (e *Engine) OptimizeStrategy(ctx context.Context, userCfg model.UserConfig, market model.MarketData, energy model.EnergyInput) model.OptimizationResult {
	prompt := buildStrategyPrompt(userCfg, market, energy)

	analysis, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Errorf("assistant: strategy generation failed: %v", err)
		return model.OptimizationResult{RawAnalysis: apology}
	}

	return model.OptimizationResult{
		RawAnalysis: analysis,
		Suggestions: parseSuggestions(analysis, marketSymbols(market)),
	}
}

// AnalyzeMiningData asks the backend to review a fleet snapshot and
// splits the answer into the standard sections. Generation failure
// yields the apology under "general".
func (e *Engine) AnalyzeMiningData(ctx context.Context, stats model.MiningStats) map[string]string {
	prompt := buildAnalysisPrompt(stats)

	analysis, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Errorf("assistant: mining analysis generation failed: %v", err)
		return map[string]string{"general": apology}
	}

	sections := ExtractSections(analysis, AnalysisHeaders)
	if len(sections) == 0 {
		sections = map[string]string{"general": strings.TrimSpace(analysis)}
	}
	return sections
}

// Chat answers a free-form operator question against the current fleet
// snapshot. Generation failure yields the apology text.
func (e *Engine) Chat(ctx context.Context, question string, stats model.MiningStats) string {
	prompt := buildChatPrompt(question, stats)

	answer, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Errorf("assistant: chat generation failed: %v", err)
		return apology
	}
	return strings.TrimSpace(answer)
}

func buildStrategyPrompt(userCfg model.UserConfig, market model.MarketData, energy model.EnergyInput) string {
	var b strings.Builder

	b.WriteString("Είσαι σύμβουλος βελτιστοποίησης crypto mining. Με βάση τα παρακάτω δεδομένα, απάντησε στα εξής:\n\n")
	b.WriteString("1. Ποιο κρυπτονόμισμα είναι το πιο κερδοφόρο για mining αυτή τη στιγμή;\n")
	b.WriteString("2. Πώς πρέπει να κατανεμηθούν οι διαθέσιμες GPUs;\n")
	b.WriteString("3. Αξίζει η ενοικίαση επιπλέον GPUs από marketplace με βάση τον προϋπολογισμό;\n")
	b.WriteString("4. Ποιο είναι το βέλτιστο ωράριο mining με βάση το κόστος ενέργειας και την ηλιακή παραγωγή;\n")
	b.WriteString("5. Ποια είναι η εκτιμώμενη ημερήσια κερδοφορία σε EUR;\n\n")

	writeJSONBlock(&b, "Ρυθμίσεις χρήστη", userCfg)
	writeJSONBlock(&b, "Δεδομένα αγοράς", market)
	writeJSONBlock(&b, "Ενεργειακά δεδομένα", energy)

	return truncatePrompt(b.String())
}

func buildAnalysisPrompt(stats model.MiningStats) string {
	var b strings.Builder

	b.WriteString("Είσαι αναλυτής απόδοσης crypto mining. Ανάλυσε τα παρακάτω στατιστικά και δώσε τις εξής ενότητες:\n\n")
	for i, header := range AnalysisHeaders {
		fmt.Fprintf(&b, "%d. %s\n", i+1, header)
	}
	b.WriteString("\n")

	writeJSONBlock(&b, "Στατιστικά mining", stats)

	return truncatePrompt(b.String())
}

func buildChatPrompt(question string, stats model.MiningStats) string {
	var b strings.Builder

	b.WriteString("Είσαι βοηθός διαχείρισης crypto mining. Απάντησε σύντομα και πρακτικά στην ερώτηση του χειριστή.\n\n")
	writeJSONBlock(&b, "Στατιστικά mining", stats)
	fmt.Fprintf(&b, "Ερώτηση: %s\n", question)

	return truncatePrompt(b.String())
}

func writeJSONBlock(b *strings.Builder, title string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", title, data)
}

func truncatePrompt(prompt string) string {
	if len(prompt) <= maxPromptLen {
		return prompt
	}
	cut := maxPromptLen
	for cut > 0 && !utf8.RuneStart(prompt[cut]) {
		cut--
	}
	return prompt[:cut]
}
