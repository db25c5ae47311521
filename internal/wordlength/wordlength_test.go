package wordlength

import (
	"math/rand/v2"
	"testing"

	"github.com/leapstack-labs/alchemist/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		want    bool
	}{
		{name: "sums to 100", weights: Weights{40, 30, 30}, want: true},
		{name: "sums to 90", weights: Weights{40, 30, 20}, want: false},
		{name: "single 100", weights: Weights{100}, want: true},
		{name: "empty", weights: nil, want: false},
		{name: "negative entry", weights: Weights{120, -20}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(tt.weights))
		})
	}
}

func TestDistribution_IsConfigValid(t *testing.T) {
	tests := []struct {
		name string
		dist Distribution
		want bool
	}{
		{name: "both valid", dist: Distribution{Function: Weights{100}, Content: Weights{50, 50}}, want: true},
		{name: "function invalid", dist: Distribution{Function: Weights{90}, Content: Weights{50, 50}}, want: false},
		{name: "content invalid", dist: Distribution{Function: Weights{100}, Content: Weights{50, 40}}, want: false},
		{name: "default", dist: Default(), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dist.IsConfigValid())
		})
	}
}

func TestDistribution_Problems(t *testing.T) {
	d := Distribution{Function: Weights{90}, Content: Weights{100}}
	problems := d.Problems()
	require.Len(t, problems, 1)
	assert.Equal(t, core.SeverityError, problems[0].Severity)
	assert.Equal(t, `The column "Function Words" adds up to 90%`, problems[0].Message)
}

func TestWeights_Resize(t *testing.T) {
	w := Weights{40, 60}
	assert.Equal(t, Weights{40, 60, 0, 0}, w.Resize(4))
	assert.Equal(t, Weights{40}, w.Resize(1))
	assert.Len(t, w.Resize(500), MaxSyllables)
}

func TestWeights_Sample(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		assert.Equal(t, 2, Weights{0, 100, 0}.Sample(r))
	}

	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		n := Weights{50, 50}.Sample(r)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 2)
		seen[n] = true
	}
	assert.Len(t, seen, 2)
}

func TestWeights_SampleUnnormalizedPanics(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	assert.Panics(t, func() { Weights{10, 10}.Sample(r) })
}

func TestDistribution_ForSet(t *testing.T) {
	d := Default()
	d.Set(core.ClassFunction, Weights{100})
	assert.Equal(t, Weights{100}, d.For(core.ClassFunction))
	assert.Equal(t, Default().Content, d.For(core.ClassContent))
}
