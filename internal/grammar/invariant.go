//go:build !debug

package grammar

import (
	"fmt"
	"log/slog"
	"testing"
)

// invariantViolation logs a broken rule invariant. Test binaries panic so
// the violation fails the test that caused it.
func invariantViolation(logger *slog.Logger, msg string, args ...any) {
	logger.Error(msg, args...)
	if testing.Testing() {
		panic(fmt.Sprintf("grammar: %s %v", msg, args))
	}
}
