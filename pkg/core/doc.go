// Package core defines the shared language of the Alchemist system.
//
// This package contains:
//   - Linguistic taxonomies (WordType, PhraseType)
//   - Word classes used to pick a word-length distribution
//   - Severity levels for validity diagnostics
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
