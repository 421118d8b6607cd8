// Package shares parses the heterogeneous share-text vocabulary used by
// the Czech business registry (percentages, fractions, and compound
// vklad/obchodní podíl/splaceno clauses) into a fraction in [0,1].
package shares

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Layer identifies which precedence layer of §4.1 produced a result.
type Layer int

const (
	// LayerNone means no layer produced a value.
	LayerNone Layer = iota
	// LayerObchodniPodil is the "obchodní podíl" labeled layer.
	LayerObchodniPodil
	// LayerHlasovaciPrava is the "hlasovací práva" labeled layer.
	LayerHlasovaciPrava
	// LayerGenericFraction is the generic a/b or a;b layer.
	LayerGenericFraction
	// LayerGenericPercent is the generic percentage layer.
	LayerGenericPercent
)

// ErrUnparseable is returned by ParseRequired when no layer yields a value.
var ErrUnparseable = errors.New("shares: unparseable share text")

var (
	percentRe  = regexp.MustCompile(`(?i)(\d+(?:[.,;]\d+)?)\s*(%|procent[ao]?)`)
	fractionRe = regexp.MustCompile(`(\d+)\s*[/;]\s*(\d+)`)
	splacenoRe = regexp.MustCompile(`(?i)splaceno\s*:?\s*(\d+(?:[.,;]\d+)?)\s*(%|procent[ao]?)`)
	effektivneRe = regexp.MustCompile(`(?i)efektivn\w*\s+(\d+(?:[.,;]\d+)?)\s*%`)
)

// Parse applies the four-layer precedence rule from spec §4.1 and returns
// a fraction in [0,1], or nil if no layer produced any value.
func Parse(text string) (*float64, Layer) {
	if strings.TrimSpace(text) == "" {
		return nil, LayerNone
	}

	folded := foldForLabels(text)

	switch {
	case strings.Contains(folded, "obchodni podil") || strings.Contains(folded, "obchodni_podil"):
		return parseObchodniPodilLayer(text)
	case strings.Contains(folded, "hlasovaci prava") || strings.Contains(folded, "hlasovaci_prava"):
		return parseHlasovaciPravaLayer(text)
	default:
		return parseGenericLayers(text)
	}
}

// ParseRequired behaves like Parse but returns ErrUnparseable instead of a
// nil fraction, for callers that cannot tolerate an unknown share.
func ParseRequired(text string) (float64, error) {
	v, _ := Parse(text)
	if v == nil {
		return 0, ErrUnparseable
	}
	return *v, nil
}

// EffectiveMarker extracts an "efektivně X%" marker independent of the
// four-layer precedence; present on a leaf it short-circuits the
// effective-share computation for that line.
func EffectiveMarker(text string) *float64 {
	folded := foldForLabels(text)
	m := effektivneRe.FindStringSubmatch(folded)
	if m == nil {
		return nil
	}
	v, ok := parseDecimal(m[1])
	if !ok {
		return nil
	}
	frac := clamp01(v / 100)
	return &frac
}

func parseObchodniPodilLayer(text string) (*float64, Layer) {
	stripped := splacenoRe.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Repeat(" ", len(m))
	})

	pctSum, pctFound, remainder := sumPercents(stripped)
	fracSum, fracFound := sumFractions(remainder)

	if !pctFound && !fracFound {
		return nil, LayerNone
	}
	total := clamp01(pctSum + fracSum)
	return &total, LayerObchodniPodil
}

func parseHlasovaciPravaLayer(text string) (*float64, Layer) {
	pctSum, pctFound, _ := sumPercents(text)
	if !pctFound {
		return nil, LayerNone
	}
	total := clamp01(pctSum)
	return &total, LayerHlasovaciPrava
}

func parseGenericLayers(text string) (*float64, Layer) {
	pctSum, pctFound, remainder := sumPercents(text)

	fracSum, fracFound := sumFractions(remainder)
	if fracFound {
		total := clamp01(fracSum)
		return &total, LayerGenericFraction
	}

	if pctFound {
		total := clamp01(pctSum)
		return &total, LayerGenericPercent
	}

	return nil, LayerNone
}

// sumPercents finds every "x%"/"x PROCENTA" occurrence, sums them as
// fractions, and returns the text with matched spans masked out (so a
// later fraction scan does not re-read the same digits).
func sumPercents(text string) (sum float64, found bool, remainder string) {
	matches := percentRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return 0, false, text
	}

	remBytes := []byte(text)
	for _, idx := range matches {
		numStr := text[idx[2]:idx[3]]
		v, ok := parseDecimal(numStr)
		if ok {
			sum += v / 100
			found = true
		}
		for i := idx[0]; i < idx[1]; i++ {
			remBytes[i] = ' '
		}
	}
	return sum, found, string(remBytes)
}

// sumFractions finds every "a/b" or "a;b" occurrence and sums a/b.
func sumFractions(text string) (sum float64, found bool) {
	matches := fractionRe.FindAllStringSubmatch(text, -1)
	for _, m := range matches {
		a, errA := strconv.ParseFloat(m[1], 64)
		b, errB := strconv.ParseFloat(m[2], 64)
		if errA != nil || errB != nil || b == 0 {
			continue
		}
		sum += a / b
		found = true
	}
	return sum, found
}

func parseDecimal(s string) (float64, bool) {
	normalized := strings.NewReplacer(",", ".", ";", ".").Replace(s)
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return v, true
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

// foldForLabels lower-cases and strips diacritics so label detection is
// accent-insensitive ("obchodní podíl" matches "obchodni podil").
func foldForLabels(s string) string {
	folded := FoldDiacritics(strings.ToLower(s))
	return strings.ReplaceAll(folded, "_", " ")
}
