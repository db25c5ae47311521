package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordType_Names(t *testing.T) {
	tests := []struct {
		wt    WordType
		name  string
		short string
	}{
		{WordAdposition, "Adposition", "Adp"},
		{WordConjunction, "Conjunction", "Conj"},
		{WordDeterminer, "Determiner", "Det"},
		{WordNoun, "Noun", "Noun"},
		{WordNounModifier, "Noun Modifier", "NM"},
		{WordPronoun, "Pronoun", "Pro"},
		{WordVerb, "Verb", "Verb"},
		{WordVerbModifier, "Verb Modifier", "VM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.wt.Name())
			assert.Equal(t, tt.short, tt.wt.ShortName())
		})
	}
	assert.Len(t, WordTypes(), len(tests))
}

func TestPhraseType_Names(t *testing.T) {
	assert.Equal(t, []PhraseType{PhraseAction, PhraseArgument, PhraseClause, PhraseRelation}, PhraseTypes())
	assert.Equal(t, "Arg", PhraseArgument.ShortName())
	assert.Equal(t, "Relation Phrase", PhraseRelation.Name())
	assert.Equal(t, "?", PhraseType(42).ShortName())
}

func TestParseWordType(t *testing.T) {
	for _, input := range []string{"noun_modifier", "Noun Modifier", "nm"} {
		got, err := ParseWordType(input)
		require.NoError(t, err, input)
		assert.Equal(t, WordNounModifier, got)
	}

	_, err := ParseWordType("gerund")
	assert.Error(t, err)
}

func TestParsePhraseType(t *testing.T) {
	got, err := ParsePhraseType("Arg")
	require.NoError(t, err)
	assert.Equal(t, PhraseArgument, got)

	_, err = ParsePhraseType("sentence")
	assert.Error(t, err)
}

func TestParseWordClass(t *testing.T) {
	c, err := ParseWordClass("function")
	require.NoError(t, err)
	assert.Equal(t, ClassFunction, c)

	c, err = ParseWordClass("")
	require.NoError(t, err)
	assert.Equal(t, ClassContent, c)

	_, err = ParseWordClass("other")
	assert.Error(t, err)
}

func TestProblems_HasErrors(t *testing.T) {
	assert.False(t, Problems{{Severity: SeverityWarning}}.HasErrors())
	assert.True(t, Problems{{Severity: SeverityWarning}, {Severity: SeverityError}}.HasErrors())
}

func TestProblems_AtLeast(t *testing.T) {
	problems := Problems{
		{Severity: SeverityInfo, Message: "i"},
		{Severity: SeverityError, Message: "e"},
		{Severity: SeverityWarning, Message: "w"},
	}

	tests := []struct {
		min  Severity
		want []string
	}{
		{SeverityError, []string{"e"}},
		{SeverityWarning, []string{"e", "w"}},
		{SeverityInfo, []string{"i", "e", "w"}},
	}
	for _, tt := range tests {
		t.Run(tt.min.String(), func(t *testing.T) {
			var got []string
			for _, p := range problems.AtLeast(tt.min) {
				got = append(got, p.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_Text(t *testing.T) {
	text, err := SeverityWarning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warning", string(text))

	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("INFO")))
	assert.Equal(t, SeverityInfo, s)
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}
