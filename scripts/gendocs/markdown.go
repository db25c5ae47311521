package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// MarkdownWriter accumulates a generated markdown page.
type MarkdownWriter struct {
	buf bytes.Buffer
}

// NewMarkdownWriter returns an empty page.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes the YAML frontmatter block.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	fmt.Fprintf(&w.buf, "---\ntitle: %s\ndescription: %q\n---\n\n", title, description)
}

// GeneratedMarker notes that the page must not be edited by hand.
func (w *MarkdownWriter) GeneratedMarker() {
	w.buf.WriteString("<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->\n\n")
}

func (w *MarkdownWriter) Header(level int, text string) {
	fmt.Fprintf(&w.buf, "%s %s\n\n", strings.Repeat("#", level), text)
}

func (w *MarkdownWriter) Paragraph(text string) {
	w.buf.WriteString(strings.TrimSpace(text) + "\n\n")
}

func (w *MarkdownWriter) CodeBlock(lang, body string) {
	fmt.Fprintf(&w.buf, "```%s\n%s\n```\n\n", lang, strings.TrimRight(body, "\n"))
}

func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		w.buf.WriteString("- " + item + "\n")
	}
	w.buf.WriteString("\n")
}

// Table writes a markdown table.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, c := range row {
			r[i] = c
		}
		t.AppendRow(r)
	}
	w.buf.WriteString(t.RenderMarkdown() + "\n\n")
}

func (w *MarkdownWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// InlineCode wraps s in backticks.
func InlineCode(s string) string {
	return "`" + s + "`"
}

// cleanDescription flattens a help string to one line; the table writer
// escapes pipes itself.
func cleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
