// Package diagfmt renders diagnostics for humans (pretty text with source
// excerpts) and machines (JSON).
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"verisem/internal/diag"
	"verisem/internal/source"
)

// ColorMode controls whether pretty output uses ANSI colors.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Options configures the pretty renderer.
type Options struct {
	Color ColorMode
	// IsTTY tells ColorAuto what to do; the caller probes the terminal.
	IsTTY bool
}

func (o Options) useColor() bool {
	switch o.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return o.IsTTY
	}
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	pathColor    = color.New(color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty writes each diagnostic as
//
//	path:line:col: SEVERITY Vnnnn: message
//	  <source line>
//	  <caret underline>
//
// followed by its notes, one per line.
func Pretty(w io.Writer, fileSet *source.FileSet, diags []diag.Diagnostic, opts Options) error {
	paint := opts.useColor()
	for _, d := range diags {
		if err := prettyOne(w, fileSet, d, paint); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, fileSet *source.FileSet, d diag.Diagnostic, paint bool) error {
	head := renderHeader(fileSet, d, paint)
	if _, err := fmt.Fprintln(w, head); err != nil {
		return err
	}
	if err := renderExcerpt(w, fileSet, d.Primary, paint); err != nil {
		return err
	}
	for _, note := range d.Notes {
		loc := renderLocation(fileSet, note.Span)
		if _, err := fmt.Fprintf(w, "  note: %s (%s)\n", note.Msg, loc); err != nil {
			return err
		}
	}
	return nil
}

func renderHeader(fileSet *source.FileSet, d diag.Diagnostic, paint bool) string {
	loc := renderLocation(fileSet, d.Primary)
	sev := d.Severity.String()
	code := d.Code.String()
	if paint {
		loc = pathColor.Sprint(loc)
		sev = severityColor(d.Severity).Sprint(sev)
	}
	return fmt.Sprintf("%s: %s %s: %s", loc, sev, code, d.Message)
}

func renderLocation(fileSet *source.FileSet, span source.Span) string {
	if fileSet == nil || fileSet.Len() == 0 {
		return "<unknown>"
	}
	file := fileSet.Get(span.File)
	start, _ := fileSet.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

// renderExcerpt prints the offending source line with a caret underline.
// Diagnostics without a real span (I/O errors) print nothing extra.
func renderExcerpt(w io.Writer, fileSet *source.FileSet, span source.Span, paint bool) error {
	if fileSet == nil || fileSet.Len() == 0 {
		return nil
	}
	file := fileSet.Get(span.File)
	start, end := fileSet.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" && span.Empty() {
		return nil
	}
	if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
		return err
	}

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	underline := strings.Repeat(" ", int(start.Col-1)) + strings.Repeat("^", width)
	if paint {
		underline = caretColor.Sprint(underline)
	}
	_, err := fmt.Fprintf(w, "  %s\n", underline)
	return err
}
