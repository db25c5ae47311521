package grammar

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/alchemist/pkg/core"
)

// FindDoc is the persisted form of a find pattern subtree.
type FindDoc struct {
	Kind       string    `json:"kind" yaml:"kind"`
	Type       string    `json:"type,omitempty" yaml:"type,omitempty"`
	Literal    string    `json:"literal,omitempty" yaml:"literal,omitempty"`
	Multimatch bool      `json:"multimatch,omitempty" yaml:"multimatch,omitempty"`
	Optional   bool      `json:"optional,omitempty" yaml:"optional,omitempty"`
	Children   []FindDoc `json:"children,omitempty" yaml:"children,omitempty"`
}

// ReplaceDoc is the persisted form of a replace pattern. A capture stores
// the short label its target had when saved.
type ReplaceDoc struct {
	Kind    string `json:"kind" yaml:"kind"`
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
}

// RuleDoc is the persisted form of a rule.
type RuleDoc struct {
	Find    []FindDoc    `json:"find" yaml:"find"`
	Replace []ReplaceDoc `json:"replace" yaml:"replace"`
}

// Document converts the rule to its persisted form. Captures are written as
// the current short label of their target, or an empty label when the
// target is gone.
func (r *Rule) Document() RuleDoc {
	var doc RuleDoc
	var encode func(h Handle) FindDoc
	encode = func(h Handle) FindDoc {
		n := r.arena.get(h)
		d := FindDoc{Kind: n.typ.Kind.String(), Multimatch: n.multimatch, Optional: n.optional}
		switch n.typ.Kind {
		case KindPhrase:
			d.Type = n.typ.Phrase.String()
		case KindWord:
			d.Type = n.typ.Word.String()
		case KindLiteral:
			d.Literal = n.typ.Literal
		}
		for _, c := range n.children {
			d.Children = append(d.Children, encode(c))
		}
		return d
	}
	for _, h := range r.roots {
		doc.Find = append(doc.Find, encode(h))
	}
	for _, p := range r.replace {
		rd := ReplaceDoc{Kind: p.kind.String()}
		if p.kind == ReplaceLiteral {
			rd.Literal = p.literal
		} else if n := r.arena.get(p.target); n != nil {
			rd.Label = n.short
		}
		doc.Replace = append(doc.Replace, rd)
	}
	return doc
}

func (d FindDoc) patternType() (PatternType, error) {
	kind, err := ParsePatternKind(d.Kind)
	if err != nil {
		return PatternType{}, err
	}
	switch kind {
	case KindPhrase:
		p, err := core.ParsePhraseType(d.Type)
		if err != nil {
			return PatternType{}, err
		}
		return Phrase(p), nil
	case KindWord:
		w, err := core.ParseWordType(d.Type)
		if err != nil {
			return PatternType{}, err
		}
		return Word(w), nil
	default:
		return Literal(d.Literal), nil
	}
}

// RuleFromDocument rebuilds a rule and re-links its captures by label. A
// capture whose label matches no pattern of the rule loads as unresolved.
func RuleFromDocument(doc RuleDoc, logger *slog.Logger) (*Rule, error) {
	r := NewRule()
	r.SetLogger(logger)

	var decode func(parent Handle, d FindDoc) error
	decode = func(parent Handle, d FindDoc) error {
		typ, err := d.patternType()
		if err != nil {
			return err
		}
		if !parent.IsZero() && r.arena.get(parent).typ.Kind == KindLiteral {
			return ErrLiteralChildren
		}
		h := r.arena.alloc(node{typ: typ, multimatch: d.Multimatch, optional: d.Optional, parent: parent})
		if parent.IsZero() {
			r.roots = append(r.roots, h)
		} else {
			p := r.arena.get(parent)
			p.children = append(p.children, h)
		}
		for _, c := range d.Children {
			if err := decode(h, c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, d := range doc.Find {
		if err := decode(Handle{}, d); err != nil {
			return nil, err
		}
	}
	r.recomputeLabels()

	byLabel := make(map[string]Handle)
	r.Walk(func(fp FindPattern) {
		byLabel[fp.ShortLabel] = fp.Handle
	})
	for _, rd := range doc.Replace {
		switch rd.Kind {
		case ReplaceLiteral.String():
			r.replace = append(r.replace, LiteralReplace(rd.Literal))
		case ReplaceCapture.String():
			// A miss yields the zero handle, which never resolves.
			r.replace = append(r.replace, Capture(byLabel[rd.Label]))
		default:
			return nil, fmt.Errorf("unknown replace pattern kind %q", rd.Kind)
		}
	}
	return r, nil
}

// PrepareForSave converts every rule to its persisted form.
func (s *RuleSet) PrepareForSave() []RuleDoc {
	docs := make([]RuleDoc, 0, len(s.rules))
	for _, r := range s.rules {
		docs = append(docs, r.Document())
	}
	return docs
}

// ResolveAfterLoad rebuilds a rule list, resolving each rule's captures
// against that rule's own patterns.
func ResolveAfterLoad(docs []RuleDoc, logger *slog.Logger) (*RuleSet, error) {
	s := NewRuleSet(logger)
	for i, doc := range docs {
		r, err := RuleFromDocument(doc, s.logger)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		s.rules = append(s.rules, r)
	}
	return s, nil
}
