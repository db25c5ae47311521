package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySynthesisDefaults(t *testing.T) {
	c := SynthesisConfig{Workers: 2}
	ApplySynthesisDefaults(&c)
	assert.Equal(t, SynthesisConfig{MaxDepth: 32, SampleCount: 24, Workers: 2}, c)

	ApplySynthesisDefaults(nil)
}

func TestSynthesisConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SynthesisConfig
		wantErr string
	}{
		{"defaults", DefaultSynthesisConfig(), ""},
		{"zero depth", SynthesisConfig{MaxDepth: 0, SampleCount: 1, Workers: 1}, "max_depth"},
		{"negative samples", SynthesisConfig{MaxDepth: 1, SampleCount: -1, Workers: 1}, "sample_count"},
		{"no workers", SynthesisConfig{MaxDepth: 1, SampleCount: 1}, "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, "", FindProjectRoot(nested))

	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileNameAlt), []byte("language: x\n"), 0o644))
	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, filepath.Join(root, ConfigFileNameAlt), FindConfigFile(root))
}
