package output

import "github.com/leapstack-labs/alchemist/pkg/core"

// LanguageInfo is one language in list output.
type LanguageInfo struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	LexiconSize int    `json:"lexicon_size"`
	UpdatedAt   string `json:"updated_at"`
}

// ListOutput is the JSON form of the language list.
type ListOutput struct {
	Languages []LanguageInfo `json:"languages"`
	Total     int            `json:"total"`
}

// CheckOutput is the JSON form of a validity check.
type CheckOutput struct {
	Language string         `json:"language"`
	Valid    bool           `json:"valid"`
	Problems []core.Problem `json:"problems"`
}

// GenerateOutput is the JSON form of a batch of generated words.
type GenerateOutput struct {
	Language string   `json:"language"`
	Words    []string `json:"words"`
}

// TranslateOutput is the JSON form of a translation.
type TranslateOutput struct {
	Language string `json:"language"`
	Input    string `json:"input"`
	Output   string `json:"output"`
	NewWords int    `json:"new_words"`
}

// GraphNode is one syllable variable with its references.
type GraphNode struct {
	Name         string   `json:"name"`
	Defined      bool     `json:"defined"`
	ReferencedBy []string `json:"referenced_by,omitempty"`
	References   []string `json:"references,omitempty"`
}

// GraphLevel groups the variables first reached at the same depth.
type GraphLevel struct {
	Level     int         `json:"level"`
	Variables []GraphNode `json:"variables"`
}

// GraphOutput is the JSON form of the syllable reference graph.
type GraphOutput struct {
	Levels     []GraphLevel `json:"levels"`
	TotalNodes int          `json:"total_nodes"`
	TotalEdges int          `json:"total_edges"`
}

// SeedInfo is the result of loading one CSV file into the lexicon.
type SeedInfo struct {
	Name      string `json:"name"`
	FilePath  string `json:"file_path"`
	Rows      int    `json:"rows"`
	Added     int    `json:"added"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
}

// SeedSummary totals a lexicon seed run.
type SeedSummary struct {
	TotalFiles int `json:"total_files"`
	TotalRows  int `json:"total_rows"`
	TotalAdded int `json:"total_added"`
}

// SeedOutput is the JSON form of a lexicon seed run.
type SeedOutput struct {
	Seeds   []SeedInfo  `json:"seeds"`
	Summary SeedSummary `json:"summary"`
}
