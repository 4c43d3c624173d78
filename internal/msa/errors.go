package msa

import "fmt"

// FormatError is returned when an alignment file cannot be parsed as
// Stockholm: missing header, inconsistent row widths, or a reference
// annotation line whose length disagrees with the alignment width.
type FormatError struct {
	// Path of the offending file, empty when parsing from a reader
	Path string

	// Line number of the offending line, 0 when the problem is file-wide
	Line int

	Msg string
}

func (e *FormatError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// formatErrf builds a FormatError for a specific line of the input
func formatErrf(line int, format string, v ...interface{}) *FormatError {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, v...)}
}
