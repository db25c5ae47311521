package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagReachableVars(t *testing.T) {
	v := NewVars()
	require.NoError(t, v.SetRule(RootSingle, Leaves(Variable("X"))))
	require.NoError(t, v.SetRule("X", Leaves(Sequence(gs("a")...))))

	FlagReachableVars(v)
	assert.Equal(t, []string{"X"}, v.Reachable())
}

func TestFlagReachableVars_Transitive(t *testing.T) {
	v := NewVars()
	require.NoError(t, v.SetRule(RootInitial, Leaves(Variable("C"), Variable("V"))))
	require.NoError(t, v.SetRule("C", Leaves(Variable("Stop"))))
	require.NoError(t, v.SetRule("Stop", Leaves(Set(gs("p", "t", "k")...))))
	require.NoError(t, v.SetRule("V", Leaves(Variable("V"))))

	FlagReachableVars(v)
	assert.Equal(t, []string{"C", "Stop", "V"}, v.Reachable())
}

func TestFlagReachableVars_IndependentOfRootOrder(t *testing.T) {
	build := func(first, second string) *Vars {
		v := NewVars()
		require.NoError(t, v.SetRule(first, Leaves(Variable("A"))))
		require.NoError(t, v.SetRule(second, Leaves(Variable("B"))))
		require.NoError(t, v.SetRule("A", Leaves(Variable("B"))))
		require.NoError(t, v.SetRule("B", Leaves(Variable("A"))))
		return v
	}
	a := build(RootInitial, RootTerminal)
	b := build(RootTerminal, RootInitial)
	FlagReachableVars(a)
	FlagReachableVars(b)
	assert.Equal(t, a.Reachable(), b.Reachable())
}

func TestPruneUnreachable(t *testing.T) {
	v := NewVars()
	require.NoError(t, v.SetRule(RootSingle, Leaves(Variable("X"))))
	require.NoError(t, v.SetRule("X", Leaves(Sequence(gs("a")...))))
	require.NoError(t, v.SetRule("Kept", Leaves(Sequence(gs("b")...))))
	require.True(t, v.Define("Empty"))

	FlagReachableVars(v)
	pruned := PruneUnreachable(v)

	assert.Equal(t, []string{"Empty"}, pruned)
	assert.Equal(t, []string{"Kept", "X"}, v.Names())
	assert.False(t, v.IsReachable("Kept"))
}

func TestPruneUnreachable_KeepsReachableEmpty(t *testing.T) {
	v := NewVars()
	require.NoError(t, v.SetLeaf(RootSingle, 0, 0, Variable("X")))

	_, ok := v.Get("X")
	assert.True(t, ok, "a referenced variable survives even without content")
	assert.True(t, v.IsReachable("X"))
}

func TestVars_EditDefinesAndPrunes(t *testing.T) {
	v := NewVars()
	require.NoError(t, v.SetLeaf(RootSingle, 0, 0, Variable("X")))
	require.Contains(t, v.Names(), "X")

	// replacing the only reference abandons the empty variable
	require.NoError(t, v.SetLeaf(RootSingle, 0, 0, Blank()))
	assert.Empty(t, v.Names())
}

func TestVars_Edit(t *testing.T) {
	v := NewVars()
	err := v.Edit(RootInitial, func(r *OrRule) error {
		a, err := r.Alt(0)
		if err != nil {
			return err
		}
		a.Append(Variable("Coda"))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Coda"}, v.Names())

	assert.ErrorIs(t, v.Edit("Nope", func(*OrRule) error { return nil }), ErrUnknownRule)
}

func TestVars_DefineIgnoresRoots(t *testing.T) {
	v := NewVars()
	assert.False(t, v.Define(RootMiddle))
	assert.False(t, v.Define("  "))
	assert.True(t, v.Define("V"))
	assert.False(t, v.Define("V"))
}

func TestVars_CloneIsIndependent(t *testing.T) {
	v := NewVars()
	require.NoError(t, v.SetLeaf(RootSingle, 0, 0, Variable("X")))
	c := v.Clone()
	require.NoError(t, c.SetLeaf(RootSingle, 0, 0, Blank()))

	assert.Equal(t, []string{"X"}, v.Names())
	assert.Empty(t, c.Names())
}
