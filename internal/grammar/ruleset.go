package grammar

import (
	"fmt"
	"log/slog"
	"slices"
)

// RuleSet is the ordered, user-reorderable list of a language's rules.
type RuleSet struct {
	rules  []*Rule
	logger *slog.Logger
}

// NewRuleSet returns an empty rule list. A nil logger discards output.
func NewRuleSet(logger *slog.Logger) *RuleSet {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RuleSet{logger: logger}
}

// Len returns the number of rules.
func (s *RuleSet) Len() int { return len(s.rules) }

// Rules returns the rules in order.
func (s *RuleSet) Rules() []*Rule { return slices.Clone(s.rules) }

// At returns rule i.
func (s *RuleSet) At(i int) (*Rule, error) {
	if i < 0 || i >= len(s.rules) {
		return nil, fmt.Errorf("%w: rule %d of %d", ErrIndexOutOfRange, i, len(s.rules))
	}
	return s.rules[i], nil
}

// Add appends a new empty rule and returns it.
func (s *RuleSet) Add() *Rule {
	r := NewRule()
	r.SetLogger(s.logger)
	s.rules = append(s.rules, r)
	return r
}

// Insert places an existing rule before index i.
func (s *RuleSet) Insert(i int, r *Rule) error {
	if i < 0 || i > len(s.rules) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, i, len(s.rules))
	}
	r.SetLogger(s.logger)
	s.rules = slices.Insert(s.rules, i, r)
	return nil
}

// Remove deletes rule i.
func (s *RuleSet) Remove(i int) error {
	if i < 0 || i >= len(s.rules) {
		return fmt.Errorf("%w: rule %d of %d", ErrIndexOutOfRange, i, len(s.rules))
	}
	s.rules = slices.Delete(s.rules, i, i+1)
	return nil
}

// Move relocates rule from to position to.
func (s *RuleSet) Move(from, to int) error {
	if from < 0 || from >= len(s.rules) || to < 0 || to >= len(s.rules) {
		return fmt.Errorf("%w: move %d to %d of %d", ErrIndexOutOfRange, from, to, len(s.rules))
	}
	r := s.rules[from]
	s.rules = slices.Delete(s.rules, from, from+1)
	s.rules = slices.Insert(s.rules, to, r)
	return nil
}
