// Package output renders command results for terminals, scripts and agents.
//
// Auto mode picks styled text on a terminal and markdown when piped.
package output

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a configuration string to an OutputMode. Unknown values
// fall back to auto.
func Mode(s string) OutputMode {
	switch OutputMode(s) {
	case ModeText, ModeMarkdown, ModeJSON:
		return OutputMode(s)
	case "md":
		return ModeMarkdown
	}
	return ModeAuto
}
