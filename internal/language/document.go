package language

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/alchemist/internal/grammar"
	"github.com/leapstack-labs/alchemist/internal/grapheme"
	"github.com/leapstack-labs/alchemist/internal/lexicon"
	"github.com/leapstack-labs/alchemist/internal/synthesis"
	"github.com/leapstack-labs/alchemist/internal/synthesis/notation"
	"github.com/leapstack-labs/alchemist/internal/wordlength"
)

// DocumentVersion is the current persisted format version.
const DocumentVersion = 1

// Document is the stored form of a language. Grammar rule captures are
// stored by label and re-linked on load.
type Document struct {
	Version   int                     `json:"version"`
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Graphemes []string                `json:"graphemes"`
	Syllables synthesis.Document      `json:"syllables"`
	Weights   wordlength.Distribution `json:"weights"`
	Lexicon   []lexicon.Entry         `json:"lexicon"`
	Rules     []grammar.RuleDoc       `json:"rules"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Document prepares the language for saving.
func (l *Language) Document() Document {
	return Document{
		Version:   DocumentVersion,
		ID:        l.ID.String(),
		Name:      l.Name,
		Graphemes: grapheme.Strings(l.Graphemes.Graphemes()),
		Syllables: l.Syllables.Document(),
		Weights:   l.Weights,
		Lexicon:   l.Lexicon.Entries(),
		Rules:     l.Rules.PrepareForSave(),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// FromDocument rebuilds a language after loading.
func FromDocument(doc Document, logger *slog.Logger) (*Language, error) {
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("language document version %d is newer than supported version %d", doc.Version, DocumentVersion)
	}
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid language id: %w", err)
	}
	vars, err := synthesis.FromDocument(doc.Syllables)
	if err != nil {
		return nil, fmt.Errorf("failed to load syllable rules: %w", err)
	}
	rules, err := grammar.ResolveAfterLoad(doc.Rules, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load grammar rules: %w", err)
	}
	gs := make([]grapheme.Grapheme, len(doc.Graphemes))
	for i, s := range doc.Graphemes {
		gs[i] = grapheme.New(s)
	}
	return &Language{
		ID:        id,
		Name:      doc.Name,
		Graphemes: grapheme.NewSet(gs...),
		Syllables: vars,
		Weights:   doc.Weights,
		Lexicon:   lexicon.FromEntries(doc.Lexicon),
		Rules:     rules,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// MarshalJSON encodes the stored form.
func (l *Language) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Document())
}

// File is the hand-editable YAML form used by import and export. Syllable
// rules are written in rule notation.
type File struct {
	Name      string                  `yaml:"name"`
	Graphemes []string                `yaml:"graphemes,flow"`
	Syllables string                  `yaml:"syllables"`
	Weights   wordlength.Distribution `yaml:"weights"`
	Lexicon   []lexicon.Entry         `yaml:"lexicon,omitempty"`
	Rules     []grammar.RuleDoc       `yaml:"rules,omitempty"`
}

// Export writes the language as YAML.
func (l *Language) Export(w io.Writer) error {
	f := File{
		Name:      l.Name,
		Graphemes: grapheme.Strings(l.Graphemes.Graphemes()),
		Syllables: notation.Format(l.Syllables),
		Weights:   l.Weights,
		Lexicon:   l.Lexicon.Entries(),
		Rules:     l.Rules.PrepareForSave(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode language: %w", err)
	}
	return enc.Close()
}

// Import reads a YAML language file into a new language with a fresh ID.
func Import(r io.Reader, logger *slog.Logger) (*Language, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode language: %w", err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("language file has no name")
	}
	vars, err := notation.Parse(f.Syllables)
	if err != nil {
		return nil, fmt.Errorf("syllables: %w", err)
	}
	rules, err := grammar.ResolveAfterLoad(f.Rules, logger)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}

	l := New(f.Name, logger)
	for _, s := range f.Graphemes {
		l.Graphemes.Add(grapheme.New(s))
	}
	l.Syllables = vars
	if f.Weights.Function != nil || f.Weights.Content != nil {
		l.Weights = f.Weights
	}
	l.Lexicon = lexicon.FromEntries(f.Lexicon)
	l.Rules = rules
	return l, nil
}
