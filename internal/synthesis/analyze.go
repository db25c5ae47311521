package synthesis

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/alchemist/internal/dag"
	"github.com/leapstack-labs/alchemist/internal/grapheme"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

// Report summarises the structure of a grammar for the presentation layer.
type Report struct {
	// Reachable lists variables transitively referenced from a root.
	Reachable []string `json:"reachable,omitempty"`
	// Unreachable lists defined variables not referenced from any root.
	Unreachable []string `json:"unreachable,omitempty"`
	// Undefined lists names referenced by a leaf but never defined.
	Undefined []string `json:"undefined,omitempty"`
	// Cycle is one reference cycle, if any (e.g. [A B A]).
	Cycle []string `json:"cycle,omitempty"`
	// EmptyVariableLeaves counts Variable leaves with no name typed yet.
	EmptyVariableLeaves int `json:"empty_variable_leaves,omitempty"`
	// InvalidGraphemes lists leaf graphemes missing from the master inventory.
	InvalidGraphemes []grapheme.Grapheme `json:"invalid_graphemes,omitempty"`
}

// Graph builds the variable reference graph of vars.
func Graph(vars *Vars) *dag.Graph {
	g := dag.NewGraph()
	for _, name := range rootNames {
		g.AddNode(name, true)
	}
	for name := range vars.vars {
		g.AddNode(name, true)
	}

	link := func(from string, rule *OrRule) {
		for _, alt := range rule.alts {
			for _, leaf := range alt.leaves {
				if leaf.Kind != LeafVariable || leaf.Name == "" {
					continue
				}
				_, defined := vars.Get(leaf.Name)
				g.AddNode(leaf.Name, defined)
				_ = g.AddEdge(from, leaf.Name)
			}
		}
	}
	for _, name := range rootNames {
		link(name, vars.roots.byName(name))
	}
	for name, rule := range vars.vars {
		link(name, rule)
	}
	return g
}

// Analyze inspects vars without modifying it. master may be nil.
func Analyze(vars *Vars, master *grapheme.Master) Report {
	g := Graph(vars)

	var rep Report
	reached := make(map[string]bool)
	for _, name := range g.Reachable(rootNames) {
		if IsRoot(name) {
			continue
		}
		reached[name] = true
		if _, ok := vars.vars[name]; ok {
			rep.Reachable = append(rep.Reachable, name)
		}
	}
	for _, name := range vars.Names() {
		if !reached[name] {
			rep.Unreachable = append(rep.Unreachable, name)
		}
	}
	rep.Undefined = g.Undefined()
	if ok, cycle := g.HasCycle(); ok {
		rep.Cycle = cycle
	}

	seenInvalid := make(map[grapheme.Grapheme]bool)
	visit := func(rule *OrRule) {
		for _, alt := range rule.alts {
			for i := range alt.leaves {
				leaf := &alt.leaves[i]
				if leaf.Kind == LeafVariable && leaf.Name == "" {
					rep.EmptyVariableLeaves++
				}
				if leaf.Kind != LeafSequence && leaf.Kind != LeafSet {
					continue
				}
				var gs []grapheme.Grapheme
				if leaf.Kind == LeafSequence {
					gs = leaf.Sequence
				} else {
					gs = leaf.Set.Graphemes()
				}
				for _, gr := range gs {
					if master != nil && !master.Contains(gr) && !seenInvalid[gr] {
						seenInvalid[gr] = true
						rep.InvalidGraphemes = append(rep.InvalidGraphemes, gr)
					}
				}
			}
		}
	}
	for _, name := range rootNames {
		visit(vars.roots.byName(name))
	}
	for _, name := range vars.Names() {
		visit(vars.vars[name])
	}
	return rep
}

// Problems converts a report into presentation findings. None of them block
// generation; malformed grammars simply produce shorter output.
func (r Report) Problems() core.Problems {
	var out core.Problems
	add := func(msg string) {
		out = append(out, core.Problem{Severity: core.SeverityWarning, Component: "syllables", Message: msg})
	}
	for _, name := range r.Unreachable {
		add(fmt.Sprintf("%s: Not reachable from a start variable", name))
	}
	for _, name := range r.Undefined {
		add(fmt.Sprintf("%s: referenced but never defined", name))
	}
	if len(r.Cycle) > 0 {
		add(fmt.Sprintf("recursive variables: %s", strings.Join(r.Cycle, " -> ")))
	}
	if r.EmptyVariableLeaves > 0 {
		add(fmt.Sprintf("%d variable leaf(s) have no variable given", r.EmptyVariableLeaves))
	}
	for _, g := range r.InvalidGraphemes {
		add(fmt.Sprintf("<%s> is not in the graphemic inventory", g))
	}
	return out
}
