package language

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/alchemist/internal/grammar"
	"github.com/leapstack-labs/alchemist/internal/grapheme"
	"github.com/leapstack-labs/alchemist/internal/synthesis"
	"github.com/leapstack-labs/alchemist/internal/synthesis/notation"
	"github.com/leapstack-labs/alchemist/internal/testutil"
	"github.com/leapstack-labs/alchemist/internal/wordlength"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

func sample(t *testing.T) *Language {
	t.Helper()
	l := New("Kotava", testutil.NewTestLogger(t))
	grapheme.AddAll(l.Graphemes, "p t k a i u")
	vars, err := notation.Parse("SingleSyllable = C V\nC = {p t k}\nV = {a i u}\n")
	require.NoError(t, err)
	l.Syllables = vars
	require.NoError(t, l.Lexicon.Add("water", "ka"))

	r := l.Rules.Add()
	noun := r.AppendFind(grammar.Word(core.WordNoun))
	r.AppendFind(grammar.Word(core.WordVerb))
	r.AppendReplace(grammar.Capture(noun))
	return l
}

func TestProblems_Clean(t *testing.T) {
	l := sample(t)
	assert.Empty(t, l.Problems())
	assert.True(t, l.IsConfigValid())
}

func TestProblems(t *testing.T) {
	l := New("Empty", nil)
	l.Weights.Function = wordlength.Weights{40, 30, 20}
	l.Rules.Add()

	probs := l.Problems()
	assert.True(t, probs.HasErrors())

	var msgs []string
	for _, p := range probs {
		msgs = append(msgs, p.Message)
	}
	assert.Contains(t, msgs, EmptyInventoryMessage)
	assert.Contains(t, msgs, `The column "Function Words" adds up to 90%`)
	assert.Contains(t, msgs, "rule 1 is not set")
	assert.False(t, l.IsConfigValid())
}

func TestProblems_UnresolvedCapture(t *testing.T) {
	l := sample(t)
	r, err := l.Rules.At(0)
	require.NoError(t, err)
	require.NoError(t, r.RemoveFind(r.Roots()[0]))

	probs := l.Problems()
	require.Len(t, probs, 1)
	assert.Equal(t, core.SeverityWarning, probs[0].Severity)
	assert.False(t, probs.HasErrors())
}

func TestDocument_RoundTrip(t *testing.T) {
	l := sample(t)
	data, err := json.Marshal(l)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	got, err := FromDocument(doc, testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, l.Name, got.Name)
	assert.True(t, l.CreatedAt.Equal(got.CreatedAt))
	if diff := cmp.Diff(l.Document().Rules, got.Document().Rules); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(l.Document().Syllables, got.Document().Syllables); diff != "" {
		t.Errorf("syllables mismatch (-want +got):\n%s", diff)
	}

	r, err := got.Rules.At(0)
	require.NoError(t, err)
	fp, ok := r.Resolve(r.Replace()[0])
	require.True(t, ok)
	assert.Equal(t, "Noun", fp.Label)
}

func TestFromDocument_Errors(t *testing.T) {
	doc := sample(t).Document()

	future := doc
	future.Version = DocumentVersion + 1
	_, err := FromDocument(future, nil)
	assert.ErrorContains(t, err, "newer")

	badID := doc
	badID.ID = "not-a-uuid"
	_, err = FromDocument(badID, nil)
	assert.ErrorContains(t, err, "invalid language id")
}

func TestExportImport(t *testing.T) {
	l := sample(t)
	var buf bytes.Buffer
	require.NoError(t, l.Export(&buf))
	assert.Contains(t, buf.String(), "C = {k p t}")

	got, err := Import(&buf, nil)
	require.NoError(t, err)
	assert.NotEqual(t, l.ID, got.ID, "imports get a fresh id")
	assert.Equal(t, l.Graphemes.Graphemes(), got.Graphemes.Graphemes())
	assert.Equal(t, notation.Format(l.Syllables), notation.Format(got.Syllables))
	assert.Equal(t, l.Lexicon.Entries(), got.Lexicon.Entries())
	assert.Equal(t, l.Weights, got.Weights)

	word := synthesis.SynthesizeMorpheme(got.Syllables, wordlength.Weights{100})
	assert.Len(t, word, 2)
}

func TestExportImport_SymbolGraphemes(t *testing.T) {
	l := New("Glyphs", nil)
	grapheme.AddAll(l.Graphemes, "a # | =")
	vars, err := notation.Parse(`SingleSyllable = [a "#"] {"|" "="}` + "\n")
	require.NoError(t, err)
	l.Syllables = vars

	var buf bytes.Buffer
	require.NoError(t, l.Export(&buf))

	got, err := Import(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, notation.Format(l.Syllables), notation.Format(got.Syllables))
	assert.Equal(t, l.Graphemes.Graphemes(), got.Graphemes.Graphemes())
}

func TestImport_Errors(t *testing.T) {
	_, err := Import(strings.NewReader("graphemes: [a]\n"), nil)
	assert.ErrorContains(t, err, "no name")

	_, err = Import(strings.NewReader("name: x\nsyllables: \"V = {a\"\n"), nil)
	assert.ErrorContains(t, err, "syllables: line 1")
}

func TestTranslator(t *testing.T) {
	l := sample(t)
	out, err := l.Translator(nil).Translate("Water!")
	require.NoError(t, err)
	assert.Equal(t, "ka!", out)
}
