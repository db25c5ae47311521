// Package notation reads and writes syllable grammars as text.
//
// Each non-blank line defines one rule:
//
//	InitialSyllable = C V | V
//	C = {p t k s}
//	V = [a] | [a i] | _
//
// Square brackets hold a sequence emitted verbatim, braces a set sampled
// uniformly. A bare word names a variable, "_" is a blank leaf and "?" an
// uninitialized one. Everything after "#" is a comment. Graphemes and names
// that contain whitespace or punctuation are written as Go-quoted strings,
// and a quoted "_" or "?" names a variable.
package notation

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/leapstack-labs/alchemist/internal/grapheme"
	"github.com/leapstack-labs/alchemist/internal/synthesis"
)

const (
	blankWord         = "_"
	uninitializedWord = "?"
)

var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Punct", Pattern: `[=|\[\]{}]`},
	{Name: "Word", Pattern: `[^\s=|\[\]{}#"]+`},
})

// plainWord matches text that lexes as a single Word token.
var plainWord = regexp.MustCompile(`^[^\s=|\[\]{}#"]+$`)

type ruleLine struct {
	Name string     `@(Word | String) "="`
	Alts []*altNode `@@ ( "|" @@ )*`
}

type altNode struct {
	Leaves []*leafNode `@@+`
}

type leafNode struct {
	Seq  *seqNode `  @@`
	Set  *setNode `| @@`
	Word *string  `| @Word`
	Name *string  `| @String`
}

type seqNode struct {
	Items []string `"[" @(Word | String)* "]"`
}

type setNode struct {
	Items []string `"{" @(Word | String)* "}"`
}

var parser = participle.MustBuild[ruleLine](
	participle.Lexer(ruleLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

// ParseRule parses a single rule definition.
func ParseRule(line string) (string, synthesis.OrRule, error) {
	node, err := parser.ParseString("", line)
	if err != nil {
		return "", synthesis.OrRule{}, err
	}
	alts := make([]synthesis.AndRule, 0, len(node.Alts))
	for _, a := range node.Alts {
		leaves := make([]synthesis.LeafRule, 0, len(a.Leaves))
		for _, l := range a.Leaves {
			leaves = append(leaves, l.rule())
		}
		alts = append(alts, synthesis.NewAndRule(leaves[0], leaves[1:]...))
	}
	return node.Name, synthesis.NewOrRule(alts[0], alts[1:]...), nil
}

func (l *leafNode) rule() synthesis.LeafRule {
	switch {
	case l.Seq != nil:
		return synthesis.Sequence(graphemes(l.Seq.Items)...)
	case l.Set != nil:
		return synthesis.Set(graphemes(l.Set.Items)...)
	case l.Name != nil:
		return synthesis.Variable(*l.Name)
	case *l.Word == blankWord:
		return synthesis.Blank()
	case *l.Word == uninitializedWord:
		return synthesis.Uninitialized()
	default:
		return synthesis.Variable(*l.Word)
	}
}

func graphemes(items []string) []grapheme.Grapheme {
	out := make([]grapheme.Grapheme, len(items))
	for i, s := range items {
		out[i] = grapheme.New(s)
	}
	return out
}

// Parse reads a whole grammar. Rules that are never defined keep their
// default uninitialized state and every defined variable is kept, reachable
// or not. Errors name the offending line.
func Parse(text string) (*synthesis.Vars, error) {
	vars := synthesis.NewVars()
	seen := make(map[string]int)

	sc := bufio.NewScanner(strings.NewReader(text))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rule, err := ParseRule(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("line %d: rule %s already defined on line %d", n, name, prev)
		}
		seen[name] = n
		if err := vars.SetRule(name, rule); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	synthesis.FlagReachableVars(vars)
	return vars, nil
}

// FormatRule renders one rule in the notation accepted by ParseRule.
func FormatRule(name string, rule *synthesis.OrRule) string {
	var b strings.Builder
	b.WriteString(quoteName(name))
	b.WriteString(" =")
	for i, alt := range rule.Alternatives() {
		if i > 0 {
			b.WriteString(" |")
		}
		for _, leaf := range alt.Leaves() {
			b.WriteByte(' ')
			b.WriteString(formatLeaf(leaf))
		}
	}
	return b.String()
}

func formatLeaf(l synthesis.LeafRule) string {
	switch l.Kind {
	case synthesis.LeafSequence:
		return "[" + joinGraphemes(l.Sequence) + "]"
	case synthesis.LeafSet:
		return "{" + joinGraphemes(l.Set.Graphemes()) + "}"
	case synthesis.LeafVariable:
		if l.Name == "" {
			return uninitializedWord
		}
		return quoteName(l.Name)
	case synthesis.LeafBlank:
		return blankWord
	default:
		return uninitializedWord
	}
}

func joinGraphemes(gs []grapheme.Grapheme) string {
	parts := make([]string, len(gs))
	for i, g := range gs {
		parts[i] = quote(string(g))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if plainWord.MatchString(s) {
		return s
	}
	return strconv.Quote(s)
}

// quoteName also quotes the words that stand for blank and uninitialized
// leaves.
func quoteName(s string) string {
	if s == blankWord || s == uninitializedWord {
		return strconv.Quote(s)
	}
	return quote(s)
}

// Format renders the four roots followed by every variable in name order.
func Format(vars *synthesis.Vars) string {
	var b strings.Builder
	for _, name := range synthesis.RootNames() {
		b.WriteString(FormatRule(name, vars.Root(name)))
		b.WriteByte('\n')
	}
	for _, name := range vars.Names() {
		rule, _ := vars.Get(name)
		b.WriteString(FormatRule(name, rule))
		b.WriteByte('\n')
	}
	return b.String()
}
