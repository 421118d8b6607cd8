// Package resolve implements the recursive ownership-tree walker (§4.4): a
// depth-first pre-order traversal over the registry that produces a linear,
// depth-tagged trace carrying an effective percentage on each owner line.
package resolve

import (
	"context"
	"fmt"

	"dsl-ob-poc/internal/ubo/extract"
	"dsl-ob-poc/internal/ubo/registry"
	"dsl-ob-poc/internal/ubo/shares"
)

// Kind tags a Line with its structural role, sparing downstream consumers
// (the evaluator, the graph projector) from re-parsing Text. It is additive
// metadata alongside the (depth, label, text, effective%) tuple of §3.
type Kind int

const (
	KindHeader Kind = iota
	KindLabelGroup
	KindCompanyOwner
	KindPersonOwner
	KindWarning
	KindTruncation
)

// Line is one entry of the ownership trace: (depth, label, text, effective%).
type Line struct {
	Depth        int
	Label        string
	Text         string
	EffectivePct *float64
	Kind         Kind
}

// WarningKind classifies a structured Warning.
type WarningKind string

const (
	WarnError      WarningKind = "error"
	WarnUnresolved WarningKind = "unresolved"
)

// Warning is a structured note collected alongside the trace, in walk order.
type Warning struct {
	Kind WarningKind
	Ico  string
	Name string
	Text string
}

// Override is one manually supplied owner for a target registry ID.
type Override struct {
	OwnerID  string
	Fraction float64
}

// Options configures one Resolve call.
type Options struct {
	RootID          string
	MaxDepth        int
	ManualOverrides map[string][]Override
}

// Result is the full output of a resolve call.
type Result struct {
	Trace    []Line
	Warnings []Warning
}

// Resolver walks the ownership tree via a registry.Client.
type Resolver struct {
	client *registry.Client
}

// NewResolver builds a Resolver backed by client.
func NewResolver(client *registry.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve performs the depth-first pre-order walk described in spec §4.4.
func (r *Resolver) Resolve(ctx context.Context, opts Options) *Result {
	res := &Result{}
	r.walk(ctx, res, registry.NormalizeID(opts.RootID), 0, 1.0, opts.MaxDepth, opts.ManualOverrides)
	return res
}

func (r *Resolver) walk(ctx context.Context, res *Result, id string, depth int, parentMult float64, maxDepth int, overrides map[string][]Override) {
	if depth > maxDepth {
		res.Trace = append(res.Trace, Line{Depth: depth, Text: "max depth exceeded", Kind: KindTruncation})
		return
	}

	payload, err := r.client.GetByID(ctx, id, false)
	if err != nil {
		res.Warnings = append(res.Warnings, Warning{Kind: WarnError, Ico: id, Text: err.Error()})
		res.Trace = append(res.Trace, Line{Depth: depth, Text: err.Error(), Kind: KindWarning})
		return
	}
	if payload.Error != "" {
		res.Warnings = append(res.Warnings, Warning{Kind: WarnError, Ico: id, Text: payload.Error})
		res.Trace = append(res.Trace, Line{Depth: depth, Text: payload.Error, Kind: KindWarning})
		return
	}

	name, resolvedID, owners, err := extract.Extract(payload)
	if err != nil {
		res.Warnings = append(res.Warnings, Warning{Kind: WarnError, Ico: id, Text: err.Error()})
		return
	}
	if resolvedID != "" {
		id = resolvedID
	}

	var headerPct *float64
	if depth == 0 {
		full := 100.0
		headerPct = &full
	}
	res.Trace = append(res.Trace, Line{
		Depth:        depth,
		Text:         fmt.Sprintf("%s (IČO %s)", name, id),
		EffectivePct: headerPct,
		Kind:         KindHeader,
	})

	for _, ov := range overrides[id] {
		ownerID := registry.NormalizeID(ov.OwnerID)
		ownerName := r.resolveManualOwnerName(ctx, ownerID)
		pct := ov.Fraction * 100
		owners = append(owners, extract.Owner{
			Kind:     extract.Company,
			Name:     ownerName,
			ID:       ownerID,
			SharePct: &pct,
			Label:    extract.LabelManuallyAdded,
		})
	}

	if len(owners) == 0 {
		res.Warnings = append(res.Warnings, Warning{Kind: WarnUnresolved, Ico: id, Name: name})
		return
	}

	order := make([]string, 0, 3)
	groups := make(map[string][]extract.Owner)
	for _, o := range owners {
		if _, seen := groups[o.Label]; !seen {
			order = append(order, o.Label)
		}
		groups[o.Label] = append(groups[o.Label], o)
	}

	for _, label := range order {
		res.Trace = append(res.Trace, Line{Depth: depth + 1, Label: label, Text: displayLabel(label) + ":", Kind: KindLabelGroup})
		for _, o := range groups[label] {
			r.emitOwner(ctx, res, o, depth, parentMult, maxDepth, overrides)
		}
	}
}

func (r *Resolver) emitOwner(ctx context.Context, res *Result, o extract.Owner, depth int, parentMult float64, maxDepth int, overrides map[string][]Override) {
	s, e := localShareAndOverride(o)

	switch o.Kind {
	case extract.Company:
		var effPct *float64
		nextMult := parentMult
		switch {
		case s != nil:
			v := parentMult * *s * 100
			effPct = &v
			nextMult = parentMult * *s
		case e != nil:
			v := *e * 100
			effPct = &v
			nextMult = *e
		}

		res.Trace = append(res.Trace, Line{
			Depth:        depth + 2,
			Label:        o.Label,
			Text:         formatCompanyOwnerText(o, s),
			EffectivePct: effPct,
			Kind:         KindCompanyOwner,
		})

		if o.ID != "" {
			r.walk(ctx, res, o.ID, depth+3, nextMult, maxDepth, overrides)
		}

	case extract.Person:
		switch {
		case s != nil:
			eff := parentMult * *s * 100
			res.Trace = append(res.Trace, Line{
				Depth:        depth + 2,
				Label:        o.Label,
				Text:         fmt.Sprintf("%s — %.2f%% (efektivně %.2f%%)", o.Name, *s*100, eff),
				EffectivePct: &eff,
				Kind:         KindPersonOwner,
			})
		case e != nil:
			base := o.ShareRaw
			if o.SharePct != nil {
				base = fmt.Sprintf("%.2f%%", *o.SharePct)
			}
			eff := *e * 100
			res.Trace = append(res.Trace, Line{
				Depth:        depth + 2,
				Label:        o.Label,
				Text:         fmt.Sprintf("%s — %s (efektivně %.2f%%)", o.Name, base, eff),
				EffectivePct: &eff,
				Kind:         KindPersonOwner,
			})
		default:
			res.Trace = append(res.Trace, Line{Depth: depth + 2, Label: o.Label, Text: o.Name, Kind: KindPersonOwner})
		}
	}
}

// localShareAndOverride derives the local share s (precedence: SharePct,
// then C1 over ShareRaw) and the independent "efektivně X%" override e.
func localShareAndOverride(o extract.Owner) (s *float64, e *float64) {
	switch {
	case o.SharePct != nil:
		v := *o.SharePct / 100
		s = &v
	case o.ShareRaw != "":
		s, _ = shares.Parse(o.ShareRaw)
	}
	e = shares.EffectiveMarker(o.ShareRaw)
	return s, e
}

func formatCompanyOwnerText(o extract.Owner, s *float64) string {
	shareDisplay := o.ShareRaw
	if s != nil {
		shareDisplay = fmt.Sprintf("%.2f%%", *s*100)
	}
	return fmt.Sprintf("%s — %s (IČO %s)", o.Name, shareDisplay, o.ID)
}

func (r *Resolver) resolveManualOwnerName(ctx context.Context, normID string) string {
	payload, err := r.client.GetByID(ctx, normID, false)
	if err == nil && payload != nil && payload.Error == "" {
		if name, _, _, exErr := extract.Extract(payload); exErr == nil && name != "" {
			return name
		}
	}
	return fmt.Sprintf("Společnost (IČO %s)", normID)
}

func displayLabel(label string) string {
	switch label {
	case extract.LabelMembers:
		return "Společníci"
	case extract.LabelShareholders:
		return "Akcionáři"
	case extract.LabelManuallyAdded:
		return "Ručně přidaní vlastníci"
	default:
		return label
	}
}
