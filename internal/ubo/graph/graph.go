// Package graph implements the trace-to-graph projector (§4.7): a
// deterministic, side-effect-free pass turning the linear resolve trace
// into a node/edge model for an external renderer.
package graph

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"dsl-ob-poc/internal/ubo/resolve"
)

// Shape is one of the three node shapes §4.7 describes.
type Shape int

const (
	ShapeCompany Shape = iota
	ShapePerson
	ShapeLabelGroup // suppressed by the renderer, still modeled here
)

// Node is one projected entity.
type Node struct {
	ID    string
	Shape Shape
	Label string
	// Level buckets nodes for tiered layout (depth/3, the company-header
	// stride); a renderer groups same-level nodes onto one rank.
	Level int
}

// Edge connects the nearest enclosing company header to one of its owner
// lines. Label carries the parsed share text recovered from the line, even
// when the line's effective_pct was null.
type Edge struct {
	From  string
	To    string
	Label string
}

// Graph is the full node/edge projection of a resolve trace.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

var icoInTextRe = regexp.MustCompile(`\(IČO (\d{8})\)`)

// dashSplitRe mirrors the dash-split used to recover "name — share" pairs
// from a rendered owner line when no structured share data survives.
var dashSplitRe = regexp.MustCompile(`\s+[—–-]\s+`)

type frame struct {
	depth  int
	nodeID string
}

// Project turns trace into a Graph. Each company header pushes a parent
// frame; each owner line emits an edge from the nearest enclosing company
// header (the frame whose depth equals the owner's depth minus 2).
func Project(trace []resolve.Line) Graph {
	var stack []frame
	var g Graph
	seen := make(map[string]bool)

	addNode := func(id string, shape Shape, label string, depth int) {
		if seen[id] {
			return
		}
		seen[id] = true
		g.Nodes = append(g.Nodes, Node{ID: id, Shape: shape, Label: label, Level: depth / 3})
	}

	for _, line := range trace {
		switch line.Kind {
		case resolve.KindHeader:
			id := companyNodeID(line.Text)
			addNode(id, ShapeCompany, line.Text, line.Depth)
			for len(stack) > 0 && stack[len(stack)-1].depth >= line.Depth {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, frame{depth: line.Depth, nodeID: id})

		case resolve.KindLabelGroup:
			id := "label:" + hashText(fmt.Sprintf("%d:%s", line.Depth, line.Text))
			addNode(id, ShapeLabelGroup, line.Text, line.Depth)

		case resolve.KindCompanyOwner:
			parent, ok := findParentFrame(stack, line.Depth-2)
			if !ok {
				continue
			}
			id := companyNodeID(line.Text)
			_, shareText := splitNameAndShare(line.Text)
			addNode(id, ShapeCompany, line.Text, line.Depth)
			g.Edges = append(g.Edges, Edge{From: parent, To: id, Label: shareText})

		case resolve.KindPersonOwner:
			parent, ok := findParentFrame(stack, line.Depth-2)
			if !ok {
				continue
			}
			name, shareText := splitNameAndShare(line.Text)
			id := personNodeID(name)
			addNode(id, ShapePerson, line.Text, line.Depth)
			g.Edges = append(g.Edges, Edge{From: parent, To: id, Label: shareText})
		}
	}

	return g
}

func findParentFrame(stack []frame, parentDepth int) (string, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].depth <= parentDepth {
			return stack[i].nodeID, true
		}
	}
	return "", false
}

// splitNameAndShare recovers (name, shareText) from an owner line of the
// form "Name — shareInfo (...)"; if no dash separator is present the whole
// text is treated as the name.
func splitNameAndShare(text string) (name, shareText string) {
	parts := dashSplitRe.Split(text, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return text, ""
}

// companyNodeID is keyed by registry ID (the §3 identity-key for
// companies) so the same entity reached via different branches collapses
// onto one node.
func companyNodeID(text string) string {
	if m := icoInTextRe.FindStringSubmatch(text); m != nil {
		return "company:" + m[1]
	}
	return "company:" + hashText(text)
}

// personNodeID is keyed by display name (the §3 identity-key for persons).
func personNodeID(name string) string {
	return "person:" + hashText(strings.ToLower(strings.TrimSpace(name)))
}

func hashText(text string) string {
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
