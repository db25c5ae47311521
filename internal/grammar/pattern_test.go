package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/alchemist/pkg/core"
)

func TestFindChoices(t *testing.T) {
	choices := FindChoices()
	require.Len(t, choices, len(core.PhraseTypes())+len(core.WordTypes())+1)
	assert.Equal(t, "Action Phrase", choices[0].Name)
	assert.Equal(t, Phrase(core.PhraseAction), choices[0].New())
	assert.Equal(t, "Adposition", choices[4].Name)
	last := choices[len(choices)-1]
	assert.Equal(t, "Exact Word", last.Name)
	assert.Equal(t, Literal("word"), last.New())
}

func TestParsePatternType(t *testing.T) {
	tests := []struct {
		in      string
		want    PatternType
		wantErr bool
	}{
		{in: "noun", want: Word(core.WordNoun)},
		{in: "VM", want: Word(core.WordVerbModifier)},
		{in: "Arg", want: Phrase(core.PhraseArgument)},
		{in: "phrase:clause", want: Phrase(core.PhraseClause)},
		{in: "word:Det", want: Word(core.WordDeterminer)},
		{in: "literal:ka ta", want: Literal("ka ta")},
		{in: "exact:", want: Literal("")},
		{in: "bogus", wantErr: true},
		{in: "phrase:noun", wantErr: true},
		{in: "thing:x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePatternType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatternType_Names(t *testing.T) {
	assert.Equal(t, "NM", Word(core.WordNounModifier).ShortName())
	assert.Equal(t, "Noun Modifier", Word(core.WordNounModifier).Name())
	assert.Equal(t, `"ka"`, Literal("ka").ShortName())
	assert.Equal(t, "Exact Word", Literal("ka").Name())
	assert.Equal(t, "phrase:relation", Phrase(core.PhraseRelation).String())
}

func TestModifierSuffix(t *testing.T) {
	assert.Equal(t, "*", modifierSuffix(true, true))
	assert.Equal(t, "+", modifierSuffix(true, false))
	assert.Equal(t, "?", modifierSuffix(false, true))
	assert.Equal(t, "", modifierSuffix(false, false))
}
