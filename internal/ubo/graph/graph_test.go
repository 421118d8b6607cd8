package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsl-ob-poc/internal/ubo/resolve"
)

func pct(v float64) *float64 { return &v }

func TestProject_TwoLevelChainConnectsThroughCompanyNode(t *testing.T) {
	trace := []resolve.Line{
		{Depth: 0, Text: "A (IČO 00000001)", EffectivePct: pct(100), Kind: resolve.KindHeader},
		{Depth: 1, Label: "members", Text: "Společníci:", Kind: resolve.KindLabelGroup},
		{Depth: 2, Label: "members", Text: "B — 100.00% (IČO 00000002)", EffectivePct: pct(100), Kind: resolve.KindCompanyOwner},
		{Depth: 3, Text: "B (IČO 00000002)", Kind: resolve.KindHeader},
		{Depth: 4, Label: "members", Text: "Společníci:", Kind: resolve.KindLabelGroup},
		{Depth: 5, Label: "members", Text: "Svoboda — 40.00% (efektivně 40.00%)", EffectivePct: pct(40), Kind: resolve.KindPersonOwner},
	}

	g := Project(trace)

	var companyNodes, personNodes, labelNodes int
	for _, n := range g.Nodes {
		switch n.Shape {
		case ShapeCompany:
			companyNodes++
		case ShapePerson:
			personNodes++
		case ShapeLabelGroup:
			labelNodes++
		}
	}
	assert.Equal(t, 2, companyNodes)
	assert.Equal(t, 1, personNodes)
	assert.Equal(t, 2, labelNodes)

	require.Len(t, g.Edges, 2)
	assert.Equal(t, "company:00000001", g.Edges[0].From)
	assert.Equal(t, "company:00000002", g.Edges[0].To)
	assert.Equal(t, "company:00000002", g.Edges[1].From)
	assert.Contains(t, g.Edges[1].Label, "40.00%")
}

func TestProject_CompanyOwnerNodeMergesWithItsOwnHeader(t *testing.T) {
	trace := []resolve.Line{
		{Depth: 0, Text: "A (IČO 00000001)", EffectivePct: pct(100), Kind: resolve.KindHeader},
		{Depth: 2, Label: "members", Text: "B — 100.00% (IČO 00000002)", EffectivePct: pct(100), Kind: resolve.KindCompanyOwner},
		{Depth: 3, Text: "B (IČO 00000002)", Kind: resolve.KindHeader},
	}

	g := Project(trace)

	ids := make(map[string]bool)
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	assert.True(t, ids["company:00000002"])
	count := 0
	for _, n := range g.Nodes {
		if n.ID == "company:00000002" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
