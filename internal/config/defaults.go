package config

// Default configuration values.
const (
	DefaultStateFile   = ".alchemist/state.db"
	DefaultMaxDepth    = 32
	DefaultSampleCount = 24
	DefaultWorkers     = 4
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
)

// ApplySynthesisDefaults fills unset synthesis settings.
func ApplySynthesisDefaults(c *SynthesisConfig) {
	if c == nil {
		return
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.SampleCount == 0 {
		c.SampleCount = DefaultSampleCount
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
}
