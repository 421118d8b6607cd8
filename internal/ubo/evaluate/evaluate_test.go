package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsl-ob-poc/internal/ubo/resolve"
)

func pct(v float64) *float64 { return &v }

func TestEvaluate_DirectPersonFiftyPercent(t *testing.T) {
	trace := []resolve.Line{
		{Depth: 0, Text: "Root (IČO 00000001)", EffectivePct: pct(100), Kind: resolve.KindHeader},
		{Depth: 1, Label: "members", Text: "Společníci:", Kind: resolve.KindLabelGroup},
		{Depth: 2, Label: "members", Text: "Novák — 50.00% (efektivně 50.00%)", EffectivePct: pct(50), Kind: resolve.KindPersonOwner},
	}

	result := Evaluate(trace, Options{Threshold: 0.25})

	require.Len(t, result.UBOs, 1)
	assert.Equal(t, "Novák", result.UBOs[0].Name)
	assert.InDelta(t, 0.5, result.UBOs[0].Ownership, 1e-9)
	assert.Contains(t, result.UBOs[0].Reasons[0], "50.00% > 25.00%")
}

func TestEvaluate_BranchSummation(t *testing.T) {
	trace := []resolve.Line{
		{Depth: 0, Text: "A (IČO 00000001)", EffectivePct: pct(100), Kind: resolve.KindHeader},
		{Depth: 1, Label: "members", Text: "Společníci:", Kind: resolve.KindLabelGroup},
		{Depth: 2, Label: "members", Text: "B — 30.00% (IČO 00000002)", EffectivePct: pct(30), Kind: resolve.KindCompanyOwner},
		{Depth: 3, Text: "B (IČO 00000002)", Kind: resolve.KindHeader},
		{Depth: 4, Label: "members", Text: "Společníci:", Kind: resolve.KindLabelGroup},
		{Depth: 5, Label: "members", Text: "Dvořák — 100.00% (efektivně 30.00%)", EffectivePct: pct(30), Kind: resolve.KindPersonOwner},
		{Depth: 2, Label: "members", Text: "C — 30.00% (IČO 00000003)", EffectivePct: pct(30), Kind: resolve.KindCompanyOwner},
		{Depth: 3, Text: "C (IČO 00000003)", Kind: resolve.KindHeader},
		{Depth: 4, Label: "members", Text: "Společníci:", Kind: resolve.KindLabelGroup},
		{Depth: 5, Label: "members", Text: "Dvořák — 100.00% (efektivně 30.00%)", EffectivePct: pct(30), Kind: resolve.KindPersonOwner},
	}

	result := Evaluate(trace, Options{Threshold: 0.25})

	agg := result.Aggregates["Dvořák"]
	require.NotNil(t, agg)
	assert.InDelta(t, 0.60, agg.Ownership, 1e-9)
	require.Len(t, result.UBOs, 1)
	assert.Len(t, agg.Paths, 2)
}

func TestEvaluate_VotingBlockPromotesAllMembers(t *testing.T) {
	half := 0.10
	opts := Options{
		Threshold: 0.25,
		Overrides: map[string]PersonOverride{
			"Alice": {CapitalPct: pct(0), VotingPct: &half},
			"Bob":   {CapitalPct: pct(0), VotingPct: &half},
			"Carol": {CapitalPct: pct(0), VotingPct: &half},
		},
		VotingBlocks: []VotingBlock{
			{Name: "family-block", Members: []string{"Alice", "Bob", "Carol"}},
		},
	}

	result := Evaluate(nil, opts)

	require.Len(t, result.UBOs, 3)
	for _, u := range result.UBOs {
		assert.Equal(t, []string{"účast v voting blocku"}, u.Reasons)
	}
}

func TestEvaluate_VotingBlockAtExactThresholdDoesNotPromote(t *testing.T) {
	third := 1.0 / 12.0
	opts := Options{
		Threshold: 0.25,
		Overrides: map[string]PersonOverride{
			"Alice": {CapitalPct: pct(0), VotingPct: pct(third)},
			"Bob":   {CapitalPct: pct(0), VotingPct: pct(third)},
			"Carol": {CapitalPct: pct(0), VotingPct: pct(third)},
		},
		VotingBlocks: []VotingBlock{
			{Name: "exact-block", Members: []string{"Alice", "Bob", "Carol"}},
		},
	}

	result := Evaluate(nil, opts)
	assert.Empty(t, result.UBOs)
}

func TestEvaluate_SumReportFlagsDeviation(t *testing.T) {
	trace := []resolve.Line{
		{Depth: 0, Text: "A (IČO 00000001)", EffectivePct: pct(100), Kind: resolve.KindHeader},
		{Depth: 2, Label: "members", Text: "Novák — 40.00% (efektivně 40.00%)", EffectivePct: pct(40), Kind: resolve.KindPersonOwner},
	}

	result := Evaluate(trace, Options{Threshold: 0.25})
	assert.False(t, result.Sums.OwnershipOK)
	assert.InDelta(t, -0.60, result.Sums.OwnershipDelta, 1e-9)
}
