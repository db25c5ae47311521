package grammar

import "fmt"

// ReplaceKind selects the variant held by a ReplacePattern.
type ReplaceKind int

// Replace pattern kinds.
const (
	ReplaceCapture ReplaceKind = iota
	ReplaceLiteral
)

func (k ReplaceKind) String() string {
	if k == ReplaceLiteral {
		return "literal"
	}
	return "capture"
}

// ReplacePattern is one element of a rule's output: either the constituent
// matched by a find pattern, or a fixed word.
type ReplacePattern struct {
	kind    ReplaceKind
	target  Handle
	literal string
}

// Capture returns a replace pattern echoing the match of h.
func Capture(h Handle) ReplacePattern {
	return ReplacePattern{kind: ReplaceCapture, target: h}
}

// LiteralReplace returns a replace pattern inserting text.
func LiteralReplace(text string) ReplacePattern {
	return ReplacePattern{kind: ReplaceLiteral, literal: text}
}

// Kind returns the variant.
func (p ReplacePattern) Kind() ReplaceKind { return p.kind }

// Target returns the captured handle. It is zero for literals.
func (p ReplacePattern) Target() Handle { return p.target }

// Text returns the literal text. It is empty for captures.
func (p ReplacePattern) Text() string { return p.literal }

// IsResolved reports whether p is a literal or a capture of a live pattern.
func (r *Rule) IsResolved(p ReplacePattern) bool {
	return p.kind == ReplaceLiteral || r.arena.get(p.target) != nil
}

// Resolve returns the pattern captured by p.
func (r *Rule) Resolve(p ReplacePattern) (FindPattern, bool) {
	if p.kind != ReplaceCapture {
		return FindPattern{}, false
	}
	n := r.arena.get(p.target)
	if n == nil {
		return FindPattern{}, false
	}
	return r.view(p.target, n), true
}

// ReplaceText renders p for display: the captured pattern's label, empty
// when the capture is unresolved, or the quoted literal.
func (r *Rule) ReplaceText(p ReplacePattern) string {
	if p.kind == ReplaceLiteral {
		return fmt.Sprintf("%q", p.literal)
	}
	if fp, ok := r.Resolve(p); ok {
		return fp.Label
	}
	return ""
}

// ReplaceChoice is one entry of the "new replace pattern" menu.
type ReplaceChoice struct {
	Name string
	New  func() ReplacePattern
}

// ReplaceChoices lists a capture for every find pattern of the rule in
// pre-order, nested children included, followed by an exact word.
func (r *Rule) ReplaceChoices() []ReplaceChoice {
	var out []ReplaceChoice
	r.Walk(func(fp FindPattern) {
		h := fp.Handle
		out = append(out, ReplaceChoice{Name: fp.ShortLabel, New: func() ReplacePattern { return Capture(h) }})
	})
	out = append(out, ReplaceChoice{Name: "Exact Word", New: func() ReplacePattern { return LiteralReplace(DefaultLiteral) }})
	return out
}
