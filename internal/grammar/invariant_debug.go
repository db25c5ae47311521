//go:build debug

package grammar

import (
	"fmt"
	"log/slog"
)

func invariantViolation(logger *slog.Logger, msg string, args ...any) {
	logger.Error(msg, args...)
	panic(fmt.Sprintf("grammar: %s %v", msg, args))
}
