package grammar

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/alchemist/internal/testutil"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

func roundTrip(t *testing.T, s *RuleSet) *RuleSet {
	t.Helper()
	data, err := json.Marshal(s.PrepareForSave())
	require.NoError(t, err)
	var docs []RuleDoc
	require.NoError(t, json.Unmarshal(data, &docs))
	out, err := ResolveAfterLoad(docs, testutil.NewTestLogger(t))
	require.NoError(t, err)
	return out
}

func TestCaptureRoundTrip(t *testing.T) {
	s := NewRuleSet(nil)
	r := s.Add()
	noun := r.AppendFind(Word(core.WordNoun))
	r.AppendFind(Word(core.WordVerb))
	r.AppendReplace(Capture(noun))

	loaded := roundTrip(t, s)
	lr, err := loaded.At(0)
	require.NoError(t, err)

	fp, ok := lr.Resolve(lr.Replace()[0])
	require.True(t, ok)
	assert.Equal(t, "Noun", fp.Label)
	assert.Equal(t, lr.Roots()[0], fp.Handle)
}

func TestCaptureRoundTrip_NumberedAndNested(t *testing.T) {
	s := NewRuleSet(nil)
	r := s.Add()
	r.AppendFind(Word(core.WordNoun))
	p := r.AppendFind(Phrase(core.PhraseArgument))
	inner, err := r.AddChild(p, Word(core.WordNoun))
	require.NoError(t, err)
	require.NoError(t, r.SetMultimatch(p, true))
	r.AppendReplace(Capture(inner))
	r.AppendReplace(Capture(p))
	r.AppendReplace(LiteralReplace("ma"))

	loaded := roundTrip(t, s)
	lr, err := loaded.At(0)
	require.NoError(t, err)

	assert.Equal(t, labels(r), labels(lr))
	got := make([]string, 0, 3)
	for _, rp := range lr.Replace() {
		got = append(got, lr.ReplaceText(rp))
	}
	assert.Equal(t, []string{"Noun 2", "Arg+ { Noun 2 }", `"ma"`}, got)
}

func TestCaptureRoundTrip_UnresolvedStaysUnresolved(t *testing.T) {
	s := NewRuleSet(nil)
	r := s.Add()
	n := r.AppendFind(Word(core.WordNoun))
	r.AppendReplace(Capture(n))
	require.NoError(t, r.RemoveFind(n))
	r.AppendFind(Word(core.WordVerb))

	docs := s.PrepareForSave()
	assert.Equal(t, "", docs[0].Replace[0].Label)

	loaded := roundTrip(t, s)
	lr, err := loaded.At(0)
	require.NoError(t, err)
	assert.False(t, lr.IsResolved(lr.Replace()[0]))
}

func TestResolveAfterLoad_LabelMiss(t *testing.T) {
	docs := []RuleDoc{{
		Find:    []FindDoc{{Kind: "word", Type: "noun"}},
		Replace: []ReplaceDoc{{Kind: "capture", Label: "Noun 3"}, {Kind: "capture", Label: "Noun"}},
	}}
	s, err := ResolveAfterLoad(docs, nil)
	require.NoError(t, err)
	r, err := s.At(0)
	require.NoError(t, err)
	assert.False(t, r.IsResolved(r.Replace()[0]))
	assert.True(t, r.IsResolved(r.Replace()[1]))
}

func TestResolveAfterLoad_CapturesAreRuleLocal(t *testing.T) {
	docs := []RuleDoc{
		{Find: []FindDoc{{Kind: "word", Type: "verb"}}},
		{Replace: []ReplaceDoc{{Kind: "capture", Label: "Verb"}}},
	}
	s, err := ResolveAfterLoad(docs, nil)
	require.NoError(t, err)
	r, err := s.At(1)
	require.NoError(t, err)
	assert.False(t, r.IsResolved(r.Replace()[0]))
}

func TestResolveAfterLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  RuleDoc
	}{
		{"bad kind", RuleDoc{Find: []FindDoc{{Kind: "clause"}}}},
		{"bad word", RuleDoc{Find: []FindDoc{{Kind: "word", Type: "gerund"}}}},
		{"literal with children", RuleDoc{Find: []FindDoc{{
			Kind: "literal", Literal: "x", Children: []FindDoc{{Kind: "word", Type: "noun"}},
		}}}},
		{"bad replace", RuleDoc{Replace: []ReplaceDoc{{Kind: "echo"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveAfterLoad([]RuleDoc{tt.doc}, nil)
			assert.ErrorContains(t, err, "rule 1")
		})
	}
}

func TestRuleDoc_YAML(t *testing.T) {
	s := NewRuleSet(nil)
	r := s.Add()
	p := r.AppendFind(Phrase(core.PhraseClause))
	_, err := r.AddChild(p, Literal("ka"))
	require.NoError(t, err)
	require.NoError(t, r.SetOptional(p, true))
	r.AppendReplace(Capture(p))

	want := s.PrepareForSave()
	data, err := yaml.Marshal(want)
	require.NoError(t, err)
	var got []RuleDoc
	require.NoError(t, yaml.Unmarshal(data, &got))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Clause?", want[0].Replace[0].Label)
}

func TestRuleSet(t *testing.T) {
	s := NewRuleSet(nil)
	a, b, c := s.Add(), s.Add(), s.Add()
	require.Equal(t, 3, s.Len())

	require.NoError(t, s.Move(2, 0))
	assert.Equal(t, []*Rule{c, a, b}, s.Rules())

	require.NoError(t, s.Remove(1))
	assert.Equal(t, []*Rule{c, b}, s.Rules())

	require.NoError(t, s.Insert(1, a))
	assert.Equal(t, []*Rule{c, a, b}, s.Rules())

	assert.ErrorIs(t, s.Move(0, 3), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Remove(-1), ErrIndexOutOfRange)
	_, err := s.At(9)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
