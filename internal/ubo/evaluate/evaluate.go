// Package evaluate implements the post-pass UBO determination (§4.5): a
// header-stack-with-pending-multiplier scan of the resolver's trace that
// aggregates effective shares per natural person and applies the threshold
// and qualitative criteria.
package evaluate

import (
	"fmt"
	"math"
	"strings"

	"dsl-ob-poc/internal/ubo/resolve"
)

const sumTolerance = 0.001

// Path records one contribution to a person's aggregate, for auditability.
type Path struct {
	ParentDepth int
	ParentMult  float64
	Effective   float64
	Text        string
}

// PersonAggregate is the running per-person capital/voting sum.
type PersonAggregate struct {
	Name      string
	Ownership float64
	Voting    float64
	Paths     []Path
}

// PersonOverride lets a caller replace a person's computed shares and
// attach qualitative flags.
type PersonOverride struct {
	CapitalPct    *float64
	VotingPct     *float64
	Veto          bool
	OrgMajority   bool
	SubstituteUBO bool
}

// ManualPerson is a caller-supplied person not present in the trace at all.
type ManualPerson struct {
	Name          string
	CapitalPct    float64
	VotingPct     float64
	Veto          bool
	OrgMajority   bool
	SubstituteUBO bool
}

// VotingBlock is a caller-declared set of persons acting in concert.
type VotingBlock struct {
	Name    string
	Members []string
}

// Options configures one Evaluate call.
type Options struct {
	Threshold     float64
	Overrides     map[string]PersonOverride
	ManualPersons []ManualPerson
	VotingBlocks  []VotingBlock
}

// UBO is one person meeting a qualifying criterion, with human-readable
// reasons.
type UBO struct {
	Name      string
	Ownership float64
	Voting    float64
	Reasons   []string
}

// SumReport surfaces whether the aggregate capital/voting sums to 1.0.
type SumReport struct {
	SumOwnership   float64
	SumVoting      float64
	OwnershipOK    bool
	VotingOK       bool
	OwnershipDelta float64
	VotingDelta    float64
}

// Result is the full output of an Evaluate call.
type Result struct {
	Aggregates map[string]*PersonAggregate
	UBOs       []UBO
	Sums       SumReport
}

// Evaluate scans trace and determines the UBO set at threshold opts.Threshold.
func Evaluate(trace []resolve.Line, opts Options) Result {
	aggregates, order := scanTrace(trace)

	flags := make(map[string]qualFlags, len(aggregates))

	for name, ov := range opts.Overrides {
		agg, ok := aggregates[name]
		if !ok {
			agg = &PersonAggregate{Name: name}
			aggregates[name] = agg
			order = append(order, name)
		}
		if ov.CapitalPct != nil {
			agg.Ownership = *ov.CapitalPct
		}
		if ov.VotingPct != nil {
			agg.Voting = *ov.VotingPct
		}
		flags[name] = qualFlags{veto: ov.Veto, orgMajority: ov.OrgMajority, substituteUBO: ov.SubstituteUBO}
	}

	for _, mp := range opts.ManualPersons {
		if _, seen := aggregates[mp.Name]; !seen {
			order = append(order, mp.Name)
		}
		aggregates[mp.Name] = &PersonAggregate{Name: mp.Name, Ownership: mp.CapitalPct, Voting: mp.VotingPct}
		flags[mp.Name] = qualFlags{veto: mp.Veto, orgMajority: mp.OrgMajority, substituteUBO: mp.SubstituteUBO}
	}

	for _, agg := range aggregates {
		agg.Ownership = clamp01(agg.Ownership)
		agg.Voting = clamp01(agg.Voting)
	}

	blockSum := make(map[string]float64, len(opts.VotingBlocks))
	memberBlocks := make(map[string][]string)
	for _, b := range opts.VotingBlocks {
		var sum float64
		for _, m := range b.Members {
			if agg, ok := aggregates[m]; ok {
				sum += agg.Voting
			}
		}
		blockSum[b.Name] = sum
		for _, m := range b.Members {
			memberBlocks[m] = append(memberBlocks[m], b.Name)
		}
	}

	var ubos []UBO
	for _, name := range order {
		agg := aggregates[name]
		f := flags[name]

		var reasons []string
		if agg.Ownership > opts.Threshold {
			reasons = append(reasons, fmt.Sprintf("podíl na kapitálu %.2f%% > %.2f%%", agg.Ownership*100, opts.Threshold*100))
		}
		if agg.Voting > opts.Threshold {
			reasons = append(reasons, fmt.Sprintf("podíl na hlasovacích právech %.2f%% > %.2f%%", agg.Voting*100, opts.Threshold*100))
		}
		if f.veto {
			reasons = append(reasons, "právo veta")
		}
		if f.orgMajority {
			reasons = append(reasons, "jmenování většiny statutárního orgánu")
		}
		if f.substituteUBO {
			reasons = append(reasons, "náhradní skutečný majitel dle § 5 ZESM")
		}
		for _, blockName := range memberBlocks[name] {
			if blockSum[blockName] > opts.Threshold {
				reasons = append(reasons, "účast v voting blocku")
			}
		}

		reasons = dedupStrings(reasons)
		if len(reasons) > 0 {
			ubos = append(ubos, UBO{Name: name, Ownership: agg.Ownership, Voting: agg.Voting, Reasons: reasons})
		}
	}

	return Result{Aggregates: aggregates, UBOs: ubos, Sums: computeSumReport(aggregates)}
}

type qualFlags struct {
	veto          bool
	orgMajority   bool
	substituteUBO bool
}

// scanTrace implements the header-stack-with-pending-multiplier algorithm:
// a company header at depth d pushes the pending multiplier left by the
// owner line just before it (or its parent's, at the root); an owner line
// pops headers deeper than its own parent depth (d_owner - 2) before
// reading the multiplier on top of the stack.
func scanTrace(trace []resolve.Line) (map[string]*PersonAggregate, []string) {
	type headerEntry struct {
		depth int
		mult  float64
	}
	stack := []headerEntry{{depth: -1, mult: 1.0}}
	var pending *float64

	aggregates := make(map[string]*PersonAggregate)
	var order []string

	for _, line := range trace {
		switch line.Kind {
		case resolve.KindHeader:
			d := line.Depth
			for len(stack) > 1 && stack[len(stack)-1].depth >= d {
				stack = stack[:len(stack)-1]
			}
			m := stack[len(stack)-1].mult
			if pending != nil {
				m = *pending
			}
			stack = append(stack, headerEntry{depth: d, mult: m})
			pending = nil

		case resolve.KindCompanyOwner:
			parentDepth := line.Depth - 2
			for len(stack) > 1 && stack[len(stack)-1].depth > parentDepth {
				stack = stack[:len(stack)-1]
			}
			parentMult := stack[len(stack)-1].mult

			if line.EffectivePct != nil && parentMult != 0 {
				local := *line.EffectivePct / 100 / parentMult
				next := parentMult * local
				pending = &next
			} else {
				pending = nil
			}

		case resolve.KindPersonOwner:
			parentDepth := line.Depth - 2
			for len(stack) > 1 && stack[len(stack)-1].depth > parentDepth {
				stack = stack[:len(stack)-1]
			}
			parentMult := stack[len(stack)-1].mult

			if line.EffectivePct == nil {
				continue
			}
			eff := *line.EffectivePct / 100

			name := personName(line.Text)
			agg, ok := aggregates[name]
			if !ok {
				agg = &PersonAggregate{Name: name}
				aggregates[name] = agg
				order = append(order, name)
			}
			agg.Ownership += eff
			agg.Voting += eff
			agg.Paths = append(agg.Paths, Path{ParentDepth: parentDepth, ParentMult: parentMult, Effective: eff, Text: line.Text})
		}
	}

	return aggregates, order
}

func personName(text string) string {
	if idx := strings.Index(text, " — "); idx >= 0 {
		return text[:idx]
	}
	return text
}

func computeSumReport(aggregates map[string]*PersonAggregate) SumReport {
	var sumOwn, sumVote float64
	for _, a := range aggregates {
		sumOwn += a.Ownership
		sumVote += a.Voting
	}
	ownDelta := sumOwn - 1.0
	voteDelta := sumVote - 1.0
	return SumReport{
		SumOwnership:   sumOwn,
		SumVoting:      sumVote,
		OwnershipOK:    math.Abs(ownDelta) <= sumTolerance,
		VotingOK:       math.Abs(voteDelta) <= sumTolerance,
		OwnershipDelta: ownDelta,
		VotingDelta:    voteDelta,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
