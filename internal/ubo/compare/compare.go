// Package compare implements the external-document name comparator (§4.6):
// an accent- and title-insensitive set comparison between the evaluator's
// UBO names and a caller-supplied external name list.
package compare

import (
	"regexp"
	"strings"

	"dsl-ob-poc/internal/ubo/shares"
)

// prefixTitleTokens and suffixTitleTokens are the §6 title lists, lower-
// cased and split on whitespace/period so multi-word abbreviations like
// "Ing. arch." or "LL.M" match token-by-token after normalization.
var prefixTitleTokens = map[string]bool{
	"ing": true, "arch": true, "mgr": true, "bc": true, "judr": true,
	"mudr": true, "phdr": true, "rndr": true, "doc": true, "prof": true,
	"phmr": true, "mddr": true, "mvdr": true, "thdr": true, "thlic": true,
}

var suffixTitleTokens = map[string]bool{
	"mba": true, "ll": true, "m": true, "ph": true, "d": true, "phd": true,
	"dis": true, "csc": true, "dba": true, "msc": true, "ba": true,
	"bba": true, "llb": true, "ma": true, "acca": true, "cfa": true,
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// punctuationRe strips periods and commas (title abbreviations and the
// comma that typically precedes a trailing title) before tokenizing.
var punctuationRe = regexp.MustCompile(`[.,]`)

// Normalize folds accents, strips known academic titles (prefix and
// suffix, with or without a trailing period), lower-cases, and collapses
// whitespace.
func Normalize(name string) string {
	folded := strings.ToLower(shares.FoldDiacritics(name))
	folded = punctuationRe.ReplaceAllString(folded, " ")

	var tokens []string
	for _, t := range whitespaceRe.Split(strings.TrimSpace(folded), -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}

	start := 0
	for start < len(tokens) && prefixTitleTokens[tokens[start]] {
		start++
	}
	end := len(tokens)
	for end > start && suffixTitleTokens[tokens[end-1]] {
		end--
	}
	return strings.Join(tokens[start:end], " ")
}

// Diff is the result of comparing the evaluator's UBO names against an
// externally supplied list.
type Diff struct {
	MissingInExternal []string // present in the evaluator's set, absent from external
	ExtraInExternal   []string // present in external, absent from the evaluator's set
}

// Compare computes Diff by normalized-name set difference, mapping back to
// the original (un-normalized) display names.
func Compare(uboNames []string, externalNames []string) Diff {
	uboByKey := indexByNormalized(uboNames)
	externalByKey := indexByNormalized(externalNames)

	var diff Diff
	for key, original := range uboByKey {
		if _, ok := externalByKey[key]; !ok {
			diff.MissingInExternal = append(diff.MissingInExternal, original)
		}
	}
	for key, original := range externalByKey {
		if _, ok := uboByKey[key]; !ok {
			diff.ExtraInExternal = append(diff.ExtraInExternal, original)
		}
	}
	return diff
}

func indexByNormalized(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[Normalize(n)] = n
	}
	return out
}
