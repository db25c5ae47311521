// Package wordlength holds the per-word-class word-length distributions.
//
// Each distribution is a vector of percentages indexed by syllable count - 1.
// A vector is usable for generation only when it sums to exactly 100.
package wordlength

import (
	"fmt"
	"math/rand/v2"

	"github.com/leapstack-labs/alchemist/pkg/core"
)

// Total is the sum a weight vector must reach to be valid.
const Total = 100

// MaxSyllables bounds the length of a weight vector.
const MaxSyllables = 100

// Weights is a discrete distribution over syllable counts. Weights[i] is the
// percentage chance of a word with i+1 syllables.
type Weights []int

// Sum returns the total of all weights.
func (w Weights) Sum() int {
	total := 0
	for _, x := range w {
		total += x
	}
	return total
}

// Verify reports whether the weights are non-negative and sum to exactly 100.
func Verify(w Weights) bool {
	for _, x := range w {
		if x < 0 {
			return false
		}
	}
	return w.Sum() == Total
}

// Resize changes the maximum syllable count, padding new entries with 0 and
// truncating surplus ones.
func (w Weights) Resize(n int) Weights {
	if n < 0 {
		n = 0
	}
	if n > MaxSyllables {
		n = MaxSyllables
	}
	out := make(Weights, n)
	copy(out, w)
	return out
}

// Sample draws a syllable count in [1, len(w)] using w as a categorical
// distribution.
//
// The weights must already satisfy Verify. Callers gate generation on
// IsConfigValid, so an unnormalised vector here is a programming error and
// panics.
func (w Weights) Sample(r *rand.Rand) int {
	if !Verify(w) {
		panic(fmt.Sprintf("wordlength: sampling from weights summing to %d", w.Sum()))
	}
	pick := r.IntN(Total)
	for i, x := range w {
		if pick < x {
			return i + 1
		}
		pick -= x
	}
	// unreachable: the weights sum to Total
	return len(w)
}

// Distribution is the pair of weight vectors for function and content words.
type Distribution struct {
	Function Weights `json:"function" yaml:"function"`
	Content  Weights `json:"content" yaml:"content"`
}

// Default returns a small distribution that is valid out of the box.
func Default() Distribution {
	return Distribution{
		Function: Weights{70, 30},
		Content:  Weights{30, 50, 20},
	}
}

// For returns the weights used for class c.
func (d *Distribution) For(c core.WordClass) Weights {
	if c == core.ClassFunction {
		return d.Function
	}
	return d.Content
}

// Set replaces the weights used for class c.
func (d *Distribution) Set(c core.WordClass, w Weights) {
	if c == core.ClassFunction {
		d.Function = w
		return
	}
	d.Content = w
}

// IsConfigValid reports whether both vectors individually sum to 100. It is
// the precondition gate for generation-driven features.
func (d Distribution) IsConfigValid() bool {
	return Verify(d.Function) && Verify(d.Content)
}

// Problems returns one error-level finding per vector that does not sum to 100.
func (d Distribution) Problems() core.Problems {
	var out core.Problems
	for _, c := range []core.WordClass{core.ClassFunction, core.ClassContent} {
		w := d.For(c)
		if !Verify(w) {
			out = append(out, core.Problem{
				Severity:  core.SeverityError,
				Component: "weights",
				Message:   fmt.Sprintf("The column %q adds up to %d%%", c.Title(), w.Sum()),
			})
		}
	}
	return out
}
