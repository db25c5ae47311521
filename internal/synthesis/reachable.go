package synthesis

// FlagReachableVars recomputes vars.reachable with an iterative depth-first
// traversal from the four roots. Every Variable leaf whose name is newly
// inserted into the set pushes that variable's rule; root names are never
// pushed because the roots are all visited directly.
func FlagReachableVars(vars *Vars) {
	clear(vars.reachable)
	if vars.reachable == nil {
		vars.reachable = make(map[string]struct{})
	}

	stack := []*OrRule{
		&vars.roots.Initial,
		&vars.roots.Middle,
		&vars.roots.Terminal,
		&vars.roots.Single,
	}
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, alt := range next.alts {
			for _, leaf := range alt.leaves {
				if leaf.Kind != LeafVariable {
					continue
				}
				if _, seen := vars.reachable[leaf.Name]; seen {
					continue
				}
				vars.reachable[leaf.Name] = struct{}{}
				if rule, ok := vars.vars[leaf.Name]; ok {
					stack = append(stack, rule)
				}
			}
		}
	}
}

// PruneUnreachable removes every variable that is neither reachable nor
// initialized. Unreachable variables with real content are kept so that
// partially authored work is never silently lost.
func PruneUnreachable(vars *Vars) []string {
	var pruned []string
	for name, rule := range vars.vars {
		if _, ok := vars.reachable[name]; ok {
			continue
		}
		if rule.Initialized() {
			continue
		}
		delete(vars.vars, name)
		pruned = append(pruned, name)
	}
	return pruned
}
