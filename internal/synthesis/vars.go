package synthesis

import (
	"fmt"
	"sort"
)

// Root rule names.
const (
	RootInitial  = "InitialSyllable"
	RootMiddle   = "MiddleSyllable"
	RootTerminal = "TerminalSyllable"
	RootSingle   = "SingleSyllable"
)

var rootNames = []string{RootInitial, RootMiddle, RootTerminal, RootSingle}

// RootNames returns the four root rule names.
func RootNames() []string {
	return append([]string(nil), rootNames...)
}

// IsRoot reports whether name is one of the four root rules.
func IsRoot(name string) bool {
	for _, r := range rootNames {
		if r == name {
			return true
		}
	}
	return false
}

// Roots holds the four root rules.
type Roots struct {
	Initial  OrRule
	Middle   OrRule
	Terminal OrRule
	Single   OrRule
}

func (r *Roots) byName(name string) *OrRule {
	switch name {
	case RootInitial:
		return &r.Initial
	case RootMiddle:
		return &r.Middle
	case RootTerminal:
		return &r.Terminal
	case RootSingle:
		return &r.Single
	default:
		return nil
	}
}

// Vars is the complete syllable grammar: the roots, the named variables and
// the derived set of variables reachable from a root.
//
// Vars is edited from a single goroutine. Once editing stops it may be read
// by any number of concurrent synthesizers.
type Vars struct {
	roots     Roots
	vars      map[string]*OrRule
	reachable map[string]struct{}
}

// NewVars returns a grammar whose roots are uninitialized.
func NewVars() *Vars {
	return &Vars{
		roots: Roots{
			Initial:  EmptyOrRule(),
			Middle:   EmptyOrRule(),
			Terminal: EmptyOrRule(),
			Single:   EmptyOrRule(),
		},
		vars:      make(map[string]*OrRule),
		reachable: make(map[string]struct{}),
	}
}

// Get returns the rule for a root or variable name.
func (v *Vars) Get(name string) (*OrRule, bool) {
	if r := v.roots.byName(name); r != nil {
		return r, true
	}
	r, ok := v.vars[name]
	return r, ok
}

// Root returns one of the four root rules. It panics on a non-root name.
func (v *Vars) Root(name string) *OrRule {
	r := v.roots.byName(name)
	if r == nil {
		panic(fmt.Sprintf("synthesis: %q is not a root rule", name))
	}
	return r
}

// SetRule replaces the rule for a root or variable name, defining the
// variable if needed.
func (v *Vars) SetRule(name string, rule OrRule) error {
	name = stripSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownRule)
	}
	if r := v.roots.byName(name); r != nil {
		*r = rule
		return nil
	}
	v.vars[name] = &rule
	return nil
}

// Define creates an empty variable unless the name is empty, a root, or
// already defined. It reports whether a variable was created.
func (v *Vars) Define(name string) bool {
	name = stripSpace(name)
	if name == "" || IsRoot(name) {
		return false
	}
	if _, ok := v.vars[name]; ok {
		return false
	}
	r := EmptyOrRule()
	v.vars[name] = &r
	return true
}

// Delete removes a variable. Roots cannot be deleted.
func (v *Vars) Delete(name string) bool {
	if _, ok := v.vars[name]; !ok {
		return false
	}
	delete(v.vars, name)
	delete(v.reachable, name)
	return true
}

// Names returns the variable names (roots excluded) in sorted order.
func (v *Vars) Names() []string {
	out := make([]string, 0, len(v.vars))
	for name := range v.vars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsReachable reports whether name was reachable at the last refresh.
func (v *Vars) IsReachable(name string) bool {
	_, ok := v.reachable[name]
	return ok
}

// Reachable returns the reachable set from the last refresh, sorted.
func (v *Vars) Reachable() []string {
	out := make([]string, 0, len(v.reachable))
	for name := range v.reachable {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SetLeaf replaces leaf idx of alternative alt in the named rule. Typing a
// variable name defines the variable implicitly. The grammar is refreshed
// afterwards.
func (v *Vars) SetLeaf(rule string, alt, idx int, leaf LeafRule) error {
	r, ok := v.Get(rule)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRule, rule)
	}
	a, err := r.Alt(alt)
	if err != nil {
		return err
	}
	l, err := a.Leaf(idx)
	if err != nil {
		return err
	}
	if leaf.Kind == LeafVariable {
		leaf.Name = stripSpace(leaf.Name)
		v.Define(leaf.Name)
	}
	*l = leaf
	v.Refresh()
	return nil
}

// Edit applies fn to the named rule, defines any variables its leaves now
// reference, then refreshes reachability.
func (v *Vars) Edit(rule string, fn func(*OrRule) error) error {
	r, ok := v.Get(rule)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRule, rule)
	}
	if err := fn(r); err != nil {
		return err
	}
	var names []string
	r.Walk(func(l *LeafRule) {
		if l.Kind == LeafVariable {
			names = append(names, l.Name)
		}
	})
	for _, name := range names {
		v.Define(name)
	}
	v.Refresh()
	return nil
}

// Refresh recomputes the reachable set and prunes abandoned variables.
func (v *Vars) Refresh() {
	FlagReachableVars(v)
	PruneUnreachable(v)
}

// Clone returns a deep copy.
func (v *Vars) Clone() *Vars {
	out := &Vars{
		roots: Roots{
			Initial:  v.roots.Initial.Clone(),
			Middle:   v.roots.Middle.Clone(),
			Terminal: v.roots.Terminal.Clone(),
			Single:   v.roots.Single.Clone(),
		},
		vars:      make(map[string]*OrRule, len(v.vars)),
		reachable: make(map[string]struct{}, len(v.reachable)),
	}
	for name, r := range v.vars {
		c := r.Clone()
		out.vars[name] = &c
	}
	for name := range v.reachable {
		out.reachable[name] = struct{}{}
	}
	return out
}
