package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/alchemist/internal/cli/output"
	"github.com/leapstack-labs/alchemist/internal/cli/testutil"
	logtest "github.com/leapstack-labs/alchemist/internal/testutil"
)

func TestImportWatchNeedsFile(t *testing.T) {
	testutil.SetupWorkspace(t, "", "markdown")

	_, err := execute(NewImportCommand(), "-", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch needs a file")
}

func TestWatchImport(t *testing.T) {
	dir := testutil.SetupWorkspace(t, "elvish", "markdown")
	seedLanguage(t, "elvish")
	runCommand(t, NewLexiconCommand(), "add", "sun", "ke")

	file := filepath.Join(dir, "elvish.yaml")
	runCommand(t, NewExportCommand(), file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), "conlang: ke")
	edited := []byte(strings.Replace(string(data), "conlang: ke", "conlang: ko", 1))

	logger := logtest.NewTestLogger(t)
	store, err := openStore(context.Background(), getConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cmdCtx := &CommandContext{
		Cfg:      getConfig(),
		Logger:   logger,
		Store:    store,
		Renderer: output.NewRenderer(io.Discard, io.Discard, output.ModeMarkdown),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchImport(ctx, cmdCtx, file, "") }()

	// Keep saving until the watcher has picked the edit up.
	require.Eventually(t, func() bool {
		if err := os.WriteFile(file, edited, 0600); err != nil {
			return false
		}
		lang, err := store.GetLanguage(ctx, "elvish")
		if err != nil {
			return false
		}
		c, _ := lang.Lexicon.Get("sun")
		return c == "ko"
	}, 5*time.Second, 200*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
