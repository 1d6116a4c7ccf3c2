// Package output renders search results and status messages for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/fathom-search/fathom/internal/hybrid"
)

// ANSI styles used when the destination is a terminal.
const (
	styleReset = "\033[0m"
	styleBold  = "\033[1m"
	styleDim   = "\033[2m"
	styleCyan  = "\033[36m"
	styleGreen = "\033[32m"
	styleRed   = "\033[31m"
)

// Writer renders CLI output. Colors are enabled only when writing to a
// terminal.
type Writer struct {
	out      io.Writer
	useColor bool
}

// New creates a Writer, detecting terminal capability from out.
func New(out io.Writer) *Writer {
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{out: out, useColor: useColor}
}

// NewPlain creates a Writer with colors forced off.
func NewPlain(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) style(code, s string) string {
	if !w.useColor {
		return s
	}
	return code + s + styleReset
}

// Printf writes a formatted line. Write errors are ignored for console
// output.
func (w *Writer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format+"\n", args...)
}

// Success prints a confirmation message.
func (w *Writer) Success(format string, args ...any) {
	w.Printf("%s %s", w.style(styleGreen, "ok"), fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(format string, args ...any) {
	w.Printf("%s %s", w.style(styleRed, "error:"), fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Result renders a hybrid search result: ranked documents, web hits and
// the numbered source list.
func (w *Writer) Result(res *hybrid.HybridSearchResult) {
	if res.TotalResults == 0 {
		w.Printf("no results for %q (%dms)", res.Query, res.SearchTimeMs)
		return
	}

	w.Printf("%s  %d results in %dms, combined score %.2f",
		w.style(styleBold, res.Query), res.TotalResults, res.SearchTimeMs, res.CombinedScore)

	if kg := res.KnowledgeGraph; kg != nil {
		w.Newline()
		w.Printf("%s%s", w.style(styleBold, kg.Title), kgSuffix(kg.Type))
		if kg.Description != "" {
			w.Printf("  %s", kg.Description)
		}
	}

	if len(res.DocumentResults) > 0 {
		w.Newline()
		w.Printf("%s", w.style(styleCyan, "documents"))
		for i, d := range res.DocumentResults {
			w.Printf("  %d. %s  %s", i+1, d.Document.Title,
				w.style(styleDim, fmt.Sprintf("(score %.3f, %s)", d.Score, d.Kind)))
		}
	}

	if len(res.WebResults) > 0 {
		w.Newline()
		w.Printf("%s", w.style(styleCyan, "web"))
		for i, r := range res.WebResults {
			w.Printf("  %d. %s  %s", i+1, r.Title,
				w.style(styleDim, fmt.Sprintf("(%s, rel %.2f, cred %.2f)", r.Domain, r.RelevanceScore, r.CredibilityScore)))
		}
	}

	if len(res.Sources) > 0 {
		w.Newline()
		w.Printf("%s", w.style(styleCyan, "sources"))
		for _, s := range res.Sources {
			w.Printf("  %s", s.Label)
			w.Printf("    %s", w.style(styleDim, s.URL))
		}
	}

	if len(res.RelatedQueries) > 0 {
		w.Newline()
		w.Printf("related: %s", strings.Join(res.RelatedQueries, ", "))
	}
}

func kgSuffix(kgType string) string {
	if kgType == "" {
		return ""
	}
	return " (" + kgType + ")"
}
