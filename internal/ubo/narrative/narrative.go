// Package narrative generates an optional, best-effort plain-language
// summary of a resolved UBO set via Gemini. It sits off the hot resolution
// path: callers that don't configure an API key get a disabled Summarizer
// and nothing in the core depends on its output.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"dsl-ob-poc/internal/agent"
	"dsl-ob-poc/internal/ubo/evaluate"
)

// Summarizer produces a short narrative for a resolved UBO set.
type Summarizer struct {
	agent *agent.Agent
}

// NewSummarizer wraps an agent.Agent; a nil agent yields a Summarizer whose
// Summarize always returns ErrDisabled, matching agent.NewAgent's own
// empty-API-key convention.
func NewSummarizer(a *agent.Agent) *Summarizer {
	return &Summarizer{agent: a}
}

// ErrDisabled is returned when no Gemini agent was configured.
var ErrDisabled = fmt.Errorf("narrative: summarizer disabled (no API key configured)")

const systemPrompt = `You are a KYC analyst writing a one-paragraph plain-language summary of a
beneficial-ownership resolution for a case file. You are given the facts
already computed by the resolution engine (root entity, each beneficial
owner's name, effective capital percentage, effective voting percentage,
and the qualifying reasons). Do not invent owners, percentages, or reasons
beyond what is given. Write 2-4 sentences, plain prose, no markdown, no
bullet points, suitable for pasting directly into a case note.`

// Summarize asks the agent for a short plain-language description of the
// UBO set. Never called on the hot resolve/evaluate path; purely additive.
func (s *Summarizer) Summarize(ctx context.Context, rootName string, ubos []evaluate.UBO) (string, error) {
	if s == nil || s.agent == nil {
		return "", ErrDisabled
	}

	if len(ubos) == 0 {
		return fmt.Sprintf("No natural person meets the beneficial-ownership threshold for %s.", rootName), nil
	}

	userPrompt := buildFactSheet(rootName, ubos)

	text, err := s.agent.GenerateText(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("narrative: generating summary: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// buildFactSheet renders the resolved UBO set as a compact fact list the
// model is instructed to narrate rather than reinterpret.
func buildFactSheet(rootName string, ubos []evaluate.UBO) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Root entity: %s\n", rootName)
	fmt.Fprintf(&b, "Beneficial owners (%d):\n", len(ubos))
	for _, u := range ubos {
		fmt.Fprintf(&b, "- %s: %.2f%% capital, %.2f%% voting, reasons: %s\n",
			u.Name, u.Ownership*100, u.Voting*100, strings.Join(u.Reasons, ", "))
	}
	return b.String()
}
