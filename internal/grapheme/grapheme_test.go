package grapheme

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Dedup(t *testing.T) {
	s := NewSet()
	s.Add("sh")
	s.Add("sh")

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("sh"))
}

func TestSet_SortedOrder(t *testing.T) {
	s := NewSet("t", "a", "sh", "k")
	assert.Equal(t, []Grapheme{"a", "k", "sh", "t"}, s.Graphemes())
}

func TestList_AllowsDuplicates(t *testing.T) {
	l := NewList()
	l.Add("sh")
	l.Add("a")
	l.Add("sh")

	assert.Equal(t, []Grapheme{"sh", "a", "sh"}, l.Graphemes())
	assert.True(t, l.Contains("a"))
	assert.False(t, l.Contains("b"))
}

func TestStorage_Policies(t *testing.T) {
	tests := []struct {
		name    string
		storage Storage
		wantLen int
	}{
		{name: "set", storage: NewSet(), wantLen: 2},
		{name: "list", storage: NewList(), wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.storage.IsEmpty())
			AddAll(tt.storage, "sh a  sh\n")
			assert.False(t, tt.storage.IsEmpty())
			assert.Len(t, tt.storage.Graphemes(), tt.wantLen)

			Remove(tt.storage, "sh")
			assert.Equal(t, []Grapheme{"a"}, tt.storage.Graphemes())
		})
	}
}

func TestRetainIf(t *testing.T) {
	l := NewList("p", "a", "t", "a")
	l.RetainIf(func(g Grapheme) bool { return g != "a" })
	assert.Equal(t, []Grapheme{"p", "t"}, l.Graphemes())
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []Grapheme{"ch", "a", "ng"}, Split("  ch a\tng "))
	assert.Empty(t, Split("   "))
}

func TestNew_Normalizes(t *testing.T) {
	// "e" + combining acute accent composes to "é"
	assert.Equal(t, Grapheme("\u00e9"), New("e\u0301"))
}

func TestInvalid(t *testing.T) {
	master := NewSet("a", "k", "t")
	seq := NewList("k", "a", "x", "t", "x")

	assert.Equal(t, []Grapheme{"x", "x"}, Invalid(seq, master))
	assert.Nil(t, Invalid(seq, nil))
	// invalid graphemes are flagged, never removed
	assert.Len(t, seq.Graphemes(), 5)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "kat", Join(NewList("k", "a", "t")))
}

func TestSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewSet("t", "a"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","t"]`, string(data))

	var s Set
	require.NoError(t, json.Unmarshal([]byte(`["t","a","t"]`), &s))
	assert.Equal(t, []Grapheme{"a", "t"}, s.Graphemes())
}
