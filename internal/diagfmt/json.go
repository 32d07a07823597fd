package diagfmt

import (
	"encoding/json"
	"io"

	"verisem/internal/diag"
	"verisem/internal/source"
)

type jsonNote struct {
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Phase    string     `json:"phase"`
	Message  string     `json:"message"`
	File     string     `json:"file,omitempty"`
	Line     uint32     `json:"line,omitempty"`
	Col      uint32     `json:"col,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON writes the diagnostics as one indented JSON array.
func JSON(w io.Writer, fileSet *source.FileSet, diags []diag.Diagnostic) error {
	out := make([]jsonDiagnostic, 0, len(diags))
	for _, d := range diags {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Phase:    d.Code.Phase(),
			Message:  d.Message,
		}
		jd.File, jd.Line, jd.Col = jsonLocation(fileSet, d.Primary)
		for _, note := range d.Notes {
			jn := jsonNote{Message: note.Msg}
			jn.File, jn.Line, jn.Col = jsonLocation(fileSet, note.Span)
			jd.Notes = append(jd.Notes, jn)
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func jsonLocation(fileSet *source.FileSet, span source.Span) (string, uint32, uint32) {
	if fileSet == nil || fileSet.Len() == 0 {
		return "", 0, 0
	}
	file := fileSet.Get(span.File)
	start, _ := fileSet.Resolve(span)
	return file.Path, start.Line, start.Col
}
