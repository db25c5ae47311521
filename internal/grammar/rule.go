package grammar

import (
	"fmt"
	"log/slog"
	"slices"
)

// FindPattern is a read-only view of one find pattern.
type FindPattern struct {
	Handle     Handle
	Type       PatternType
	Multimatch bool
	Optional   bool
	// ShortLabel identifies the pattern on its own, e.g. "Noun+ 2".
	ShortLabel string
	// Label is ShortLabel followed by the labels of nested children.
	Label    string
	Parent   Handle
	Children []Handle
}

// Rule is one grammar rewrite rule: a forest of find patterns and an ordered
// list of replace patterns. A Rule is edited by one goroutine at a time.
type Rule struct {
	arena   arena
	roots   []Handle
	replace []ReplacePattern
	logger  *slog.Logger
}

// NewRule returns an empty rule.
func NewRule() *Rule {
	return &Rule{arena: newArena(), logger: slog.New(slog.DiscardHandler)}
}

// SetLogger sets the logger used for invariant reports.
func (r *Rule) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// mutate runs a structural change and recomputes every label afterwards.
// All edits go through here.
func (r *Rule) mutate(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	r.recomputeLabels()
	return nil
}

func (r *Rule) view(h Handle, n *node) FindPattern {
	return FindPattern{
		Handle:     h,
		Type:       n.typ,
		Multimatch: n.multimatch,
		Optional:   n.optional,
		ShortLabel: n.short,
		Label:      n.full,
		Parent:     n.parent,
		Children:   slices.Clone(n.children),
	}
}

// Find returns the pattern behind h.
func (r *Rule) Find(h Handle) (FindPattern, error) {
	n := r.arena.get(h)
	if n == nil {
		return FindPattern{}, ErrStaleHandle
	}
	return r.view(h, n), nil
}

// Alive reports whether h refers to a pattern of this rule.
func (r *Rule) Alive(h Handle) bool {
	return r.arena.get(h) != nil
}

// Roots returns the top-level find patterns in order.
func (r *Rule) Roots() []Handle {
	return slices.Clone(r.roots)
}

// Walk visits every find pattern depth-first in pre-order: a pattern, then
// its children, then its next sibling.
func (r *Rule) Walk(fn func(FindPattern)) {
	var visit func(hs []Handle)
	visit = func(hs []Handle) {
		for _, h := range hs {
			n := r.arena.get(h)
			if n == nil {
				continue
			}
			fn(r.view(h, n))
			visit(n.children)
		}
	}
	visit(r.roots)
}

// Len returns the number of find patterns, nested ones included.
func (r *Rule) Len() int {
	count := 0
	r.Walk(func(FindPattern) { count++ })
	return count
}

// siblings returns the list that holds h: the roots or its parent's children.
func (r *Rule) siblings(parent Handle) (*[]Handle, error) {
	if parent.IsZero() {
		return &r.roots, nil
	}
	p := r.arena.get(parent)
	if p == nil {
		return nil, ErrStaleHandle
	}
	return &p.children, nil
}

func (r *Rule) insert(parent Handle, i int, typ PatternType) (Handle, error) {
	var h Handle
	err := r.mutate(func() error {
		list, err := r.siblings(parent)
		if err != nil {
			return err
		}
		if !parent.IsZero() && r.arena.get(parent).typ.Kind == KindLiteral {
			return ErrLiteralChildren
		}
		if i < 0 || i > len(*list) {
			return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, i, len(*list))
		}
		h = r.arena.alloc(node{typ: typ, parent: parent})
		// alloc may grow the slot slice; re-resolve the sibling list.
		list, _ = r.siblings(parent)
		*list = slices.Insert(*list, i, h)
		return nil
	})
	return h, err
}

// PrependFind inserts a top-level find pattern at the head of the list.
func (r *Rule) PrependFind(typ PatternType) Handle {
	h, _ := r.insert(Handle{}, 0, typ)
	return h
}

// InsertFind inserts a top-level find pattern before index i.
func (r *Rule) InsertFind(i int, typ PatternType) (Handle, error) {
	return r.insert(Handle{}, i, typ)
}

// AppendFind adds a top-level find pattern at the end of the list.
func (r *Rule) AppendFind(typ PatternType) Handle {
	h, _ := r.insert(Handle{}, len(r.roots), typ)
	return h
}

// AddChild appends a deep-match child to parent.
func (r *Rule) AddChild(parent Handle, typ PatternType) (Handle, error) {
	p := r.arena.get(parent)
	if p == nil {
		return Handle{}, ErrStaleHandle
	}
	return r.insert(parent, len(p.children), typ)
}

// InsertChild inserts a deep-match child of parent before index i.
func (r *Rule) InsertChild(parent Handle, i int, typ PatternType) (Handle, error) {
	if parent.IsZero() {
		return Handle{}, ErrStaleHandle
	}
	return r.insert(parent, i, typ)
}

// RemoveFind deletes a find pattern and its subtree. Captures of any removed
// pattern become unresolved.
func (r *Rule) RemoveFind(h Handle) error {
	return r.mutate(func() error {
		n := r.arena.get(h)
		if n == nil {
			return ErrStaleHandle
		}
		list, err := r.siblings(n.parent)
		if err != nil {
			return err
		}
		*list = slices.DeleteFunc(*list, func(x Handle) bool { return x == h })
		r.arena.release(h)
		return nil
	})
}

// MoveFind moves h to position i among its siblings.
func (r *Rule) MoveFind(h Handle, i int) error {
	return r.mutate(func() error {
		n := r.arena.get(h)
		if n == nil {
			return ErrStaleHandle
		}
		list, err := r.siblings(n.parent)
		if err != nil {
			return err
		}
		if i < 0 || i >= len(*list) {
			return fmt.Errorf("%w: move to %d of %d", ErrIndexOutOfRange, i, len(*list))
		}
		from := slices.Index(*list, h)
		*list = slices.Delete(*list, from, from+1)
		*list = slices.Insert(*list, i, h)
		return nil
	})
}

// SetMultimatch sets whether h matches every adjacent constituent of its type.
func (r *Rule) SetMultimatch(h Handle, on bool) error {
	return r.mutate(func() error {
		n := r.arena.get(h)
		if n == nil {
			return ErrStaleHandle
		}
		n.multimatch = on
		return nil
	})
}

// SetOptional sets whether h matches even when its constituent is absent.
func (r *Rule) SetOptional(h Handle, on bool) error {
	return r.mutate(func() error {
		n := r.arena.get(h)
		if n == nil {
			return ErrStaleHandle
		}
		n.optional = on
		return nil
	})
}

// SetLiteral changes the text of an exact word pattern.
func (r *Rule) SetLiteral(h Handle, text string) error {
	return r.mutate(func() error {
		n := r.arena.get(h)
		if n == nil {
			return ErrStaleHandle
		}
		if n.typ.Kind != KindLiteral {
			return ErrNotLiteral
		}
		n.typ.Literal = text
		return nil
	})
}

// Replace returns the replace patterns in order.
func (r *Rule) Replace() []ReplacePattern {
	return slices.Clone(r.replace)
}

// InsertReplace inserts a replace pattern before index i.
func (r *Rule) InsertReplace(i int, p ReplacePattern) error {
	if i < 0 || i > len(r.replace) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, i, len(r.replace))
	}
	r.replace = slices.Insert(r.replace, i, p)
	return nil
}

// PrependReplace inserts a replace pattern at the head of the list.
func (r *Rule) PrependReplace(p ReplacePattern) {
	r.replace = slices.Insert(r.replace, 0, p)
}

// AppendReplace adds a replace pattern at the end of the list.
func (r *Rule) AppendReplace(p ReplacePattern) {
	r.replace = append(r.replace, p)
}

// RemoveReplace deletes replace pattern i.
func (r *Rule) RemoveReplace(i int) error {
	if i < 0 || i >= len(r.replace) {
		return fmt.Errorf("%w: replace %d of %d", ErrIndexOutOfRange, i, len(r.replace))
	}
	r.replace = slices.Delete(r.replace, i, i+1)
	return nil
}

// SetReplaceLiteral changes the text of literal replace pattern i.
func (r *Rule) SetReplaceLiteral(i int, text string) error {
	if i < 0 || i >= len(r.replace) {
		return fmt.Errorf("%w: replace %d of %d", ErrIndexOutOfRange, i, len(r.replace))
	}
	if r.replace[i].kind != ReplaceLiteral {
		return ErrNotLiteral
	}
	r.replace[i].literal = text
	return nil
}

// DropUnresolvedCaptures removes every capture whose target is gone and
// reports how many were removed.
func (r *Rule) DropUnresolvedCaptures() int {
	before := len(r.replace)
	r.replace = slices.DeleteFunc(r.replace, func(p ReplacePattern) bool {
		return !r.IsResolved(p)
	})
	return before - len(r.replace)
}

// IsValid reports whether the rule is ready for execution: it has at least
// one find pattern and at least one replace pattern.
func (r *Rule) IsValid() bool {
	return len(r.roots) > 0 && len(r.replace) > 0
}
