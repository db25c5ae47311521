package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/alchemist/internal/testutil"
	"github.com/leapstack-labs/alchemist/pkg/core"
)

func TestInvariantViolation_PanicsInTests(t *testing.T) {
	logger, rec := testutil.NewRecordingLogger()
	assert.PanicsWithValue(t, "grammar: duplicate find pattern label [label Noun]", func() {
		invariantViolation(logger, "duplicate find pattern label", "label", "Noun")
	})

	lines := rec.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "level=ERROR")
	assert.Contains(t, lines[0], "label=Noun")
}

func TestCheckLabels_QuietForWellFormedRules(t *testing.T) {
	logger, rec := testutil.NewRecordingLogger()
	r := NewRule()
	r.SetLogger(logger)
	for i := 0; i < 4; i++ {
		r.AppendFind(Word(core.WordNoun))
	}
	r.AppendFind(Literal("Noun"))
	assert.Empty(t, rec.Lines())
}
