package synthesis

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/leapstack-labs/alchemist/internal/grapheme"
)

// LeafKind identifies the variant held by a LeafRule.
type LeafKind int

// Leaf kinds.
const (
	// LeafUninitialized is a placeholder the author has not set yet.
	LeafUninitialized LeafKind = iota
	// LeafSequence emits its graphemes verbatim, in order.
	LeafSequence
	// LeafSet emits one of its graphemes, chosen uniformly at random.
	LeafSet
	// LeafVariable expands another rule by name.
	LeafVariable
	// LeafBlank emits nothing.
	LeafBlank
)

// String returns the persisted name of the kind.
func (k LeafKind) String() string {
	switch k {
	case LeafUninitialized:
		return "uninitialized"
	case LeafSequence:
		return "sequence"
	case LeafSet:
		return "set"
	case LeafVariable:
		return "variable"
	case LeafBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// ParseLeafKind converts a persisted name back to a LeafKind.
func ParseLeafKind(s string) (LeafKind, error) {
	for k := LeafUninitialized; k <= LeafBlank; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown leaf kind %q", s)
}

// LeafRule is a terminal node in the syllable grammar.
type LeafRule struct {
	Kind LeafKind
	// Sequence holds the graphemes of a LeafSequence.
	Sequence grapheme.List
	// Set holds the graphemes of a LeafSet.
	Set *grapheme.Set
	// Name is the referenced rule of a LeafVariable.
	Name string
}

// Uninitialized returns a placeholder leaf.
func Uninitialized() LeafRule { return LeafRule{Kind: LeafUninitialized} }

// Sequence returns a leaf that emits gs in order.
func Sequence(gs ...grapheme.Grapheme) LeafRule {
	return LeafRule{Kind: LeafSequence, Sequence: slices.Clone(grapheme.List(gs))}
}

// Set returns a leaf that emits one of gs at random.
func Set(gs ...grapheme.Grapheme) LeafRule {
	return LeafRule{Kind: LeafSet, Set: grapheme.NewSet(gs...)}
}

// Variable returns a leaf that expands the named rule. Whitespace is stripped
// from the name.
func Variable(name string) LeafRule {
	return LeafRule{Kind: LeafVariable, Name: stripSpace(name)}
}

// Blank returns a leaf that emits nothing.
func Blank() LeafRule { return LeafRule{Kind: LeafBlank} }

// Initialized reports whether the leaf has been given a real kind.
func (l LeafRule) Initialized() bool {
	return l.Kind != LeafUninitialized
}

// Storage returns the grapheme container of a sequence or set leaf, or nil.
func (l *LeafRule) Storage() grapheme.Storage {
	switch l.Kind {
	case LeafSequence:
		return &l.Sequence
	case LeafSet:
		if l.Set == nil {
			l.Set = grapheme.NewSet()
		}
		return l.Set
	default:
		return nil
	}
}

// Clone returns a deep copy.
func (l LeafRule) Clone() LeafRule {
	out := l
	out.Sequence = slices.Clone(l.Sequence)
	if l.Set != nil {
		out.Set = l.Set.Clone()
	}
	return out
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// LeafChoice is one entry of the "new leaf" menu.
type LeafChoice struct {
	Name string
	New  func() LeafRule
}

var leafChoices = []LeafChoice{
	{Name: "String", New: func() LeafRule { return Sequence() }},
	{Name: "Random", New: func() LeafRule { return Set() }},
	{Name: "Variable", New: func() LeafRule { return Variable("") }},
	{Name: "Blank", New: Blank},
}

// LeafChoices returns the menu of leaf constructors in display order.
func LeafChoices() []LeafChoice {
	return slices.Clone(leafChoices)
}

// AndRule is a non-empty sequence of leaves whose outputs are concatenated.
type AndRule struct {
	leaves []LeafRule
}

// NewAndRule returns an AND rule holding head followed by tail.
func NewAndRule(head LeafRule, tail ...LeafRule) AndRule {
	return AndRule{leaves: append([]LeafRule{head}, tail...)}
}

func (a *AndRule) ensure() {
	if len(a.leaves) == 0 {
		a.leaves = []LeafRule{Uninitialized()}
	}
}

// Len returns the number of leaves.
func (a *AndRule) Len() int {
	a.ensure()
	return len(a.leaves)
}

// Head returns the first leaf.
func (a *AndRule) Head() LeafRule {
	a.ensure()
	return a.leaves[0]
}

// Leaf returns a pointer to the i-th leaf for in-place editing.
func (a *AndRule) Leaf(i int) (*LeafRule, error) {
	a.ensure()
	if i < 0 || i >= len(a.leaves) {
		return nil, fmt.Errorf("%w: leaf %d of %d", ErrIndexOutOfRange, i, len(a.leaves))
	}
	return &a.leaves[i], nil
}

// Leaves returns the leaves in order. The slice must not be modified.
func (a *AndRule) Leaves() []LeafRule {
	a.ensure()
	return a.leaves
}

// Prepend inserts l as the new first leaf.
func (a *AndRule) Prepend(l LeafRule) {
	a.ensure()
	a.leaves = slices.Insert(a.leaves, 0, l)
}

// Insert places l before index i. i == Len appends.
func (a *AndRule) Insert(i int, l LeafRule) error {
	a.ensure()
	if i < 0 || i > len(a.leaves) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, i, len(a.leaves))
	}
	a.leaves = slices.Insert(a.leaves, i, l)
	return nil
}

// Append adds l as the last leaf.
func (a *AndRule) Append(l LeafRule) {
	a.ensure()
	a.leaves = append(a.leaves, l)
}

// remove deletes leaf i. It refuses to remove the only leaf and reports
// that with last == true, leaving the rule untouched.
func (a *AndRule) remove(i int) (last bool, err error) {
	a.ensure()
	if i < 0 || i >= len(a.leaves) {
		return false, fmt.Errorf("%w: leaf %d of %d", ErrIndexOutOfRange, i, len(a.leaves))
	}
	if len(a.leaves) == 1 {
		return true, nil
	}
	a.leaves = slices.Delete(a.leaves, i, i+1)
	return false, nil
}

// Clone returns a deep copy.
func (a AndRule) Clone() AndRule {
	out := AndRule{leaves: make([]LeafRule, len(a.leaves))}
	for i, l := range a.leaves {
		out.leaves[i] = l.Clone()
	}
	return out
}

// OrRule is a non-empty list of alternatives; one is chosen at random when
// generating.
type OrRule struct {
	alts []AndRule
}

// NewOrRule returns an OR rule holding head followed by tail.
func NewOrRule(head AndRule, tail ...AndRule) OrRule {
	return OrRule{alts: append([]AndRule{head}, tail...)}
}

// EmptyOrRule returns a rule with a single uninitialized leaf. It is the
// state of a freshly created variable.
func EmptyOrRule() OrRule {
	return NewOrRule(NewAndRule(Uninitialized()))
}

// Leaves is shorthand for a rule with a single alternative.
func Leaves(head LeafRule, tail ...LeafRule) OrRule {
	return NewOrRule(NewAndRule(head, tail...))
}

func (o *OrRule) ensure() {
	if len(o.alts) == 0 {
		o.alts = []AndRule{NewAndRule(Uninitialized())}
	}
}

// Len returns the number of alternatives.
func (o *OrRule) Len() int {
	o.ensure()
	return len(o.alts)
}

// Alt returns a pointer to alternative i for in-place editing.
func (o *OrRule) Alt(i int) (*AndRule, error) {
	o.ensure()
	if i < 0 || i >= len(o.alts) {
		return nil, fmt.Errorf("%w: alternative %d of %d", ErrIndexOutOfRange, i, len(o.alts))
	}
	return &o.alts[i], nil
}

// Alternatives returns the alternatives in order. The slice must not be modified.
func (o *OrRule) Alternatives() []AndRule {
	o.ensure()
	return o.alts
}

// Initialized reports whether the first leaf of the first alternative has
// real content. Unreachable variables that are not initialized get pruned.
func (o *OrRule) Initialized() bool {
	o.ensure()
	return o.alts[0].Head().Initialized()
}

// AddAlternative appends a new alternative starting with l. The rule must be
// initialized first, mirroring the editor which only offers "OR..." then.
func (o *OrRule) AddAlternative(l LeafRule) error {
	if !o.Initialized() {
		return ErrUninitializedRule
	}
	o.alts = append(o.alts, NewAndRule(l))
	return nil
}

// RemoveLeaf deletes a leaf. Removing the only leaf of an alternative deletes
// the alternative; removing the only leaf of the only alternative resets it
// to an uninitialized placeholder.
func (o *OrRule) RemoveLeaf(alt, leaf int) error {
	a, err := o.Alt(alt)
	if err != nil {
		return err
	}
	last, err := a.remove(leaf)
	if err != nil || !last {
		return err
	}
	if len(o.alts) == 1 {
		o.alts[0] = NewAndRule(Uninitialized())
		return nil
	}
	o.alts = slices.Delete(o.alts, alt, alt+1)
	return nil
}

// RemoveAlternative deletes alternative i, resetting the rule when it is the
// only one.
func (o *OrRule) RemoveAlternative(i int) error {
	if _, err := o.Alt(i); err != nil {
		return err
	}
	if len(o.alts) == 1 {
		o.alts[0] = NewAndRule(Uninitialized())
		return nil
	}
	o.alts = slices.Delete(o.alts, i, i+1)
	return nil
}

// Walk calls fn for every leaf in order.
func (o *OrRule) Walk(fn func(*LeafRule)) {
	o.ensure()
	for i := range o.alts {
		a := &o.alts[i]
		a.ensure()
		for j := range a.leaves {
			fn(&a.leaves[j])
		}
	}
}

// Clone returns a deep copy.
func (o OrRule) Clone() OrRule {
	out := OrRule{alts: make([]AndRule, len(o.alts))}
	for i, a := range o.alts {
		out.alts[i] = a.Clone()
	}
	return out
}
