// Package extract selects the currently valid owners from a registry
// payload (§4.3): primary-record selection, history-aware name resolution,
// active-member/shareholder scanning, and deduplication.
package extract

import (
	"fmt"
	"strings"

	"dsl-ob-poc/internal/ubo/registry"
	"dsl-ob-poc/internal/ubo/shares"
)

// Kind distinguishes a natural person from a legal entity.
type Kind int

const (
	// Person is a natural-person owner, identified by name only.
	Person Kind = iota
	// Company is a legal-entity owner, identified by a registry ID.
	Company
)

const (
	// LabelMembers is the s.r.o.-style "spolecnici" relationship class.
	LabelMembers = "members"
	// LabelShareholders is the a.s.-style "akcionari" relationship class.
	LabelShareholders = "shareholders"
	// LabelManuallyAdded marks an owner appended via a caller override.
	LabelManuallyAdded = "manually added"
)

// Owner is one current owner record, as produced by Extract.
type Owner struct {
	Kind      Kind
	Name      string
	ID        string // registry ID, companies only
	SharePct  *float64
	ShareRaw  string
	Label     string
	DatumZapisu string // registration date, for dedup tie-breaking only
}

// IdentityKey is the registry ID for companies, the display name for
// persons; used together with (Label, Kind) to detect duplicate owners.
func (o Owner) IdentityKey() string {
	if o.Kind == Company {
		return o.ID
	}
	return o.Name
}

var soleShareholderMarker = "jediny akcionar"

// Extract selects the primary record, resolves the display name, and scans
// the members/shareholders blocks of payload into a deduplicated owner list.
func Extract(payload *registry.Payload) (name string, id string, owners []Owner, err error) {
	if payload == nil {
		return "", "", nil, nil
	}
	if len(payload.Zaznamy) == 0 {
		return "", payload.ID(), nil, nil
	}

	record := selectPrimaryRecord(payload.Zaznamy)
	name = resolveName(record.ObchodniJmeno)
	id = payload.ID()

	var all []Owner
	all = append(all, scanMemberGroups(record.Spolecnici, LabelMembers, func(g registry.MemberGroup) []registry.Member { return g.Spolecnik })...)
	all = append(all, scanMemberGroups(record.Akcionari, LabelShareholders, func(g registry.MemberGroup) []registry.Member { return g.ClenoveOrganu })...)

	owners = dedup(all)
	return name, id, owners, nil
}

func selectPrimaryRecord(records []registry.Record) registry.Record {
	for _, r := range records {
		if r.PrimarniZaznam {
			return r
		}
	}
	return records[0]
}

// resolveName prefers the most recent active (non-deleted) entry; list
// order is assumed newest-first, matching the registry's own convention.
func resolveName(entries []registry.NameEntry) string {
	for _, e := range entries {
		if e.DatumVymazu == "" {
			return e.Hodnota
		}
	}
	if len(entries) > 0 {
		return entries[0].Hodnota
	}
	return ""
}

func scanMemberGroups(groups []registry.MemberGroup, label string, membersOf func(registry.MemberGroup) []registry.Member) []Owner {
	var out []Owner
	for _, g := range groups {
		if g.DatumVymazu != "" {
			continue
		}
		soleShareholder := label == LabelShareholders && strings.Contains(shares.FoldDiacritics(strings.ToLower(g.NazevOrganu)), soleShareholderMarker)

		for _, m := range membersOf(g) {
			if m.DatumVymazu != "" {
				continue
			}
			owner, ok := buildOwner(m, label, soleShareholder)
			if !ok {
				continue
			}
			out = append(out, owner)
		}
	}
	return out
}

func buildOwner(m registry.Member, label string, soleShareholder bool) (Owner, bool) {
	kind, name, id, ok := resolvePerson(m.Osoba)
	if !ok {
		return Owner{}, false
	}

	raw, hasExplicitShare := buildShareText(m.Podil)

	var sharePct *float64
	if hasExplicitShare {
		if frac, layer := shares.Parse(raw); frac != nil {
			_ = layer
			pct := *frac * 100
			sharePct = &pct
		}
	}

	if sharePct == nil && soleShareholder {
		full := 100.0
		sharePct = &full
	}

	return Owner{
		Kind:        kind,
		Name:        name,
		ID:          id,
		SharePct:    sharePct,
		ShareRaw:    raw,
		Label:       label,
		DatumZapisu: m.DatumZapisu,
	}, true
}

func resolvePerson(ref registry.PersonRef) (kind Kind, name string, id string, ok bool) {
	if ref.FyzickaOsoba != nil {
		fo := ref.FyzickaOsoba
		full := strings.TrimSpace(strings.Join(filterEmpty(fo.Jmeno, fo.Prijmeni), " "))
		if full != "" {
			return Person, full, "", true
		}
	}
	if ref.PravnickaOsoba != nil {
		po := ref.PravnickaOsoba
		if po.Ico != "" {
			normID := registry.NormalizeID(po.Ico)
			displayName := po.ObchodniJmeno
			if displayName == "" {
				displayName = fmt.Sprintf("Společník (IČO %s)", normID)
			}
			return Company, displayName, normID, true
		}
	}
	return 0, "", "", false
}

func filterEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// buildShareText joins the active (non-deleted) podil entries into the
// compound "vklad:…; obchodni_podil:…; splaceno:…; druh:…" text C1 expects.
func buildShareText(podily []registry.Podil) (text string, hasAny bool) {
	var parts []string
	for _, p := range podily {
		if p.DatumVymazu != "" {
			continue
		}
		if p.Vklad != nil && p.Vklad.Hodnota != "" {
			parts = append(parts, fmt.Sprintf("vklad:%s %s", p.Vklad.Hodnota, p.Vklad.TypObnos))
		}
		if p.VelikostPodilu != nil && p.VelikostPodilu.Hodnota != "" {
			parts = append(parts, fmt.Sprintf("obchodni_podil:%s %s", p.VelikostPodilu.Hodnota, p.VelikostPodilu.TypObnos))
		}
		if p.Splaceni != nil && p.Splaceni.Hodnota != "" {
			parts = append(parts, fmt.Sprintf("splaceno:%s %s", p.Splaceni.Hodnota, p.Splaceni.TypObnos))
		}
		if p.VelikostPodilu != nil && p.VelikostPodilu.TypObnos != "" {
			parts = append(parts, fmt.Sprintf("druh:%s", p.VelikostPodilu.TypObnos))
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "; "), true
}

// dedup keeps, per (label, kind, identity-key), the record with the newest
// DatumZapisu; ties keep the first-seen entry, preserving input order.
func dedup(owners []Owner) []Owner {
	type key struct {
		label string
		kind  Kind
		id    string
	}
	best := make(map[key]int)
	order := make([]key, 0, len(owners))

	for i, o := range owners {
		k := key{o.Label, o.Kind, o.IdentityKey()}
		if existingIdx, seen := best[k]; !seen {
			best[k] = i
			order = append(order, k)
		} else if owners[i].DatumZapisu > owners[existingIdx].DatumZapisu {
			best[k] = i
		}
	}

	out := make([]Owner, 0, len(order))
	for _, k := range order {
		out = append(out, owners[best[k]])
	}
	return out
}
