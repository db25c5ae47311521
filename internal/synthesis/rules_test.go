package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/alchemist/internal/grapheme"
)

func gs(ss ...string) []grapheme.Grapheme {
	out := make([]grapheme.Grapheme, len(ss))
	for i, s := range ss {
		out[i] = grapheme.Grapheme(s)
	}
	return out
}

func TestVariable_StripsWhitespace(t *testing.T) {
	assert.Equal(t, "Onset", Variable(" On set\t").Name)
}

func TestParseLeafKind(t *testing.T) {
	for k := LeafUninitialized; k <= LeafBlank; k++ {
		got, err := ParseLeafKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseLeafKind("bogus")
	assert.Error(t, err)
}

func TestLeafChoices(t *testing.T) {
	choices := LeafChoices()
	require.Len(t, choices, 4)
	names := make([]string, len(choices))
	for i, c := range choices {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"String", "Random", "Variable", "Blank"}, names)
	assert.Equal(t, LeafSet, choices[1].New().Kind)
}

func TestOrRule_AddAlternativeRequiresContent(t *testing.T) {
	r := EmptyOrRule()
	assert.ErrorIs(t, r.AddAlternative(Blank()), ErrUninitializedRule)

	r = Leaves(Sequence(gs("a")...))
	require.NoError(t, r.AddAlternative(Blank()))
	assert.Equal(t, 2, r.Len())
}

func TestOrRule_RemoveLeaf(t *testing.T) {
	tests := []struct {
		name     string
		rule     OrRule
		alt      int
		leaf     int
		wantAlts int
		wantInit bool
	}{
		{
			name:     "remove one of several leaves",
			rule:     Leaves(Sequence(gs("a")...), Blank()),
			alt:      0,
			leaf:     1,
			wantAlts: 1,
			wantInit: true,
		},
		{
			name:     "sole leaf of sole alternative resets",
			rule:     Leaves(Sequence(gs("a")...)),
			wantAlts: 1,
			wantInit: false,
		},
		{
			name:     "sole leaf of one alternative deletes it",
			rule:     NewOrRule(NewAndRule(Sequence(gs("a")...)), NewAndRule(Blank())),
			alt:      1,
			wantAlts: 1,
			wantInit: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.rule
			require.NoError(t, r.RemoveLeaf(tt.alt, tt.leaf))
			assert.Equal(t, tt.wantAlts, r.Len())
			assert.Equal(t, tt.wantInit, r.Initialized())
		})
	}
}

func TestOrRule_IndexErrors(t *testing.T) {
	r := Leaves(Blank())
	_, err := r.Alt(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, r.RemoveLeaf(0, 5), ErrIndexOutOfRange)
	assert.ErrorIs(t, r.RemoveAlternative(-1), ErrIndexOutOfRange)

	a, err := r.Alt(0)
	require.NoError(t, err)
	assert.ErrorIs(t, a.Insert(9, Blank()), ErrIndexOutOfRange)
}

func TestAndRule_Editing(t *testing.T) {
	a := NewAndRule(Blank())
	a.Prepend(Sequence(gs("k")...))
	a.Append(Variable("V"))
	require.NoError(t, a.Insert(1, Set(gs("a", "e")...)))

	kinds := []LeafKind{}
	for _, l := range a.Leaves() {
		kinds = append(kinds, l.Kind)
	}
	assert.Equal(t, []LeafKind{LeafSequence, LeafSet, LeafBlank, LeafVariable}, kinds)
}

func TestLeafRule_CloneIsDeep(t *testing.T) {
	l := Set(gs("a")...)
	c := l.Clone()
	c.Set.Add("b")
	assert.False(t, l.Set.Contains("b"))
}

func TestLeafRule_Storage(t *testing.T) {
	seq := Sequence()
	grapheme.AddAll(seq.Storage(), "a a")
	assert.Len(t, seq.Sequence, 2)

	set := Set()
	grapheme.AddAll(set.Storage(), "a a")
	assert.Equal(t, 1, set.Set.Len())

	v := Variable("X")
	assert.Nil(t, v.Storage())
}
