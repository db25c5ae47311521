package grammar

import (
	"strconv"
	"strings"
)

// labelKey is the structural identity sharing a disambiguation counter.
type labelKey struct {
	typ        PatternType
	multimatch bool
	optional   bool
}

// recomputeLabels rewrites every short and full label of the rule.
//
// The first pass counts each labelKey over the whole forest. The second pass
// numbers the members of every class with more than one member 1..k in
// pre-order, then builds full labels bottom-up.
func (r *Rule) recomputeLabels() {
	total := make(map[labelKey]int)
	r.Walk(func(fp FindPattern) {
		total[labelKey{fp.Type, fp.Multimatch, fp.Optional}]++
	})

	seen := make(map[labelKey]int, len(total))
	var visit func(h Handle) string
	visit = func(h Handle) string {
		n := r.arena.get(h)
		if n == nil {
			return ""
		}
		key := labelKey{n.typ, n.multimatch, n.optional}

		var b strings.Builder
		b.WriteString(n.typ.ShortName())
		b.WriteString(modifierSuffix(n.multimatch, n.optional))
		if total[key] > 1 {
			seen[key]++
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(seen[key]))
		}
		n.short = b.String()

		if len(n.children) == 0 {
			n.full = n.short
			return n.full
		}
		parts := make([]string, 0, len(n.children))
		for _, c := range n.children {
			parts = append(parts, visit(c))
		}
		n.full = n.short + " { " + strings.Join(parts, " ") + " }"
		return n.full
	}
	for _, h := range r.roots {
		visit(h)
	}
	r.checkLabels()
}

// checkLabels verifies that short labels are unique within the rule. A
// duplicate would make the save/load bridge resolve captures to the wrong
// pattern.
func (r *Rule) checkLabels() {
	owner := make(map[string]Handle)
	r.Walk(func(fp FindPattern) {
		if prev, ok := owner[fp.ShortLabel]; ok {
			invariantViolation(r.logger, "duplicate find pattern label",
				"label", fp.ShortLabel, "first", prev.String(), "second", fp.Handle.String())
			return
		}
		owner[fp.ShortLabel] = fp.Handle
	})
}
