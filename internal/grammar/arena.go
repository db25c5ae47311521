package grammar

import (
	"fmt"
	"sync/atomic"
)

// Handle is a non-owning reference to a find pattern. The zero Handle never
// resolves. A handle goes stale when its pattern is removed, even if the
// slot is later reused.
type Handle struct {
	arena uint64
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h == Handle{} }

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%d.%d)", h.index, h.gen)
}

// node is the stored state of one find pattern.
type node struct {
	typ        PatternType
	multimatch bool
	optional   bool
	parent     Handle
	children   []Handle

	// Derived; rewritten by recomputeLabels.
	short string
	full  string
}

type slot struct {
	gen  uint32
	live bool
	node node
}

var arenaIDs atomic.Uint64

// arena owns the find patterns of one rule. Slots are recycled through a
// free list; every free bumps the slot generation.
type arena struct {
	id    uint64
	slots []slot
	free  []uint32
}

func newArena() arena {
	return arena{id: arenaIDs.Add(1)}
}

func (a *arena) alloc(n node) Handle {
	var idx uint32
	if k := len(a.free); k > 0 {
		idx = a.free[k-1]
		a.free = a.free[:k-1]
	} else {
		a.slots = append(a.slots, slot{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	s.live = true
	s.node = n
	return Handle{arena: a.id, index: idx, gen: s.gen}
}

// get returns the live node for h, or nil.
func (a *arena) get(h Handle) *node {
	if h.arena != a.id || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil
	}
	return &s.node
}

// release frees h and its whole subtree.
func (a *arena) release(h Handle) {
	n := a.get(h)
	if n == nil {
		return
	}
	for _, c := range n.children {
		a.release(c)
	}
	s := &a.slots[h.index]
	s.live = false
	s.gen++
	s.node = node{}
	a.free = append(a.free, h.index)
}
