package synthesis

import (
	"fmt"

	"github.com/leapstack-labs/alchemist/internal/grapheme"
)

// LeafDoc is the persisted form of a LeafRule.
type LeafDoc struct {
	Kind      string   `json:"kind" yaml:"kind"`
	Graphemes []string `json:"graphemes,omitempty" yaml:"graphemes,omitempty"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
}

// OrDoc is the persisted form of an OrRule: alternatives of leaf sequences.
type OrDoc [][]LeafDoc

// Document is the persisted form of Vars. The reachable set is derived and
// recomputed on load.
type Document struct {
	Initial   OrDoc            `json:"initial" yaml:"initial"`
	Middle    OrDoc            `json:"middle" yaml:"middle"`
	Terminal  OrDoc            `json:"terminal" yaml:"terminal"`
	Single    OrDoc            `json:"single" yaml:"single"`
	Variables map[string]OrDoc `json:"variables,omitempty" yaml:"variables,omitempty"`
}

func leafDoc(l LeafRule) LeafDoc {
	d := LeafDoc{Kind: l.Kind.String()}
	switch l.Kind {
	case LeafSequence:
		d.Graphemes = grapheme.Strings(l.Sequence)
	case LeafSet:
		d.Graphemes = grapheme.Strings(l.Set.Graphemes())
	case LeafVariable:
		d.Name = l.Name
	}
	return d
}

func orDoc(o *OrRule) OrDoc {
	out := make(OrDoc, 0, o.Len())
	for _, alt := range o.Alternatives() {
		leaves := make([]LeafDoc, 0, len(alt.leaves))
		for _, l := range alt.leaves {
			leaves = append(leaves, leafDoc(l))
		}
		out = append(out, leaves)
	}
	return out
}

// Document converts vars to its persisted form.
func (v *Vars) Document() Document {
	d := Document{
		Initial:  orDoc(&v.roots.Initial),
		Middle:   orDoc(&v.roots.Middle),
		Terminal: orDoc(&v.roots.Terminal),
		Single:   orDoc(&v.roots.Single),
	}
	if len(v.vars) > 0 {
		d.Variables = make(map[string]OrDoc, len(v.vars))
		for name, rule := range v.vars {
			d.Variables[name] = orDoc(rule)
		}
	}
	return d
}

func fromLeafDoc(d LeafDoc) (LeafRule, error) {
	kind, err := ParseLeafKind(d.Kind)
	if err != nil {
		return LeafRule{}, err
	}
	gs := make([]grapheme.Grapheme, len(d.Graphemes))
	for i, s := range d.Graphemes {
		gs[i] = grapheme.New(s)
	}
	switch kind {
	case LeafSequence:
		return Sequence(gs...), nil
	case LeafSet:
		return Set(gs...), nil
	case LeafVariable:
		return Variable(d.Name), nil
	case LeafBlank:
		return Blank(), nil
	default:
		return Uninitialized(), nil
	}
}

func fromOrDoc(d OrDoc) (OrRule, error) {
	var alts []AndRule
	for _, leaves := range d {
		if len(leaves) == 0 {
			continue
		}
		rules := make([]LeafRule, 0, len(leaves))
		for _, ld := range leaves {
			l, err := fromLeafDoc(ld)
			if err != nil {
				return OrRule{}, err
			}
			rules = append(rules, l)
		}
		alts = append(alts, NewAndRule(rules[0], rules[1:]...))
	}
	if len(alts) == 0 {
		return EmptyOrRule(), nil
	}
	return NewOrRule(alts[0], alts[1:]...), nil
}

// FromDocument rebuilds a grammar from its persisted form and recomputes
// reachability. Unreachable variables are kept until PruneUnreachable.
func FromDocument(d Document) (*Vars, error) {
	v := NewVars()
	roots := []struct {
		name string
		doc  OrDoc
	}{
		{RootInitial, d.Initial},
		{RootMiddle, d.Middle},
		{RootTerminal, d.Terminal},
		{RootSingle, d.Single},
	}
	for _, r := range roots {
		rule, err := fromOrDoc(r.doc)
		if err != nil {
			return nil, fmt.Errorf("root %s: %w", r.name, err)
		}
		*v.roots.byName(r.name) = rule
	}
	for name, doc := range d.Variables {
		rule, err := fromOrDoc(doc)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		if err := v.SetRule(name, rule); err != nil {
			return nil, err
		}
	}
	FlagReachableVars(v)
	return v, nil
}
