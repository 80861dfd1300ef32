package lsp

import (
	"cmp"
	"errors"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/golean/internal/leanerrors"
	"github.com/leonardinius/golean/internal/parser"
	"github.com/leonardinius/golean/internal/scanner"
)

const diagnosticSource = "golean"

// Check scans and parses source and returns a diagnostic for every failure.
// Columns are measured in UTF-16 code units, as LSP clients expect.
func Check(source string) []protocol.Diagnostic {
	tokens, err := scanner.NewScanner(source).Scan()
	if err == nil {
		_, err = parser.NewParser(tokens).Parse()
	}

	diags := Diagnostics(err)
	lines := strings.Split(source, "\n")
	for i := range diags {
		r := &diags[i].Range
		r.Start.Character = utf16Column(lines, r.Start)
		r.End = r.Start
	}
	return diags
}

// Diagnostics converts err into LSP diagnostics sorted by position.
// Located failures point at their line and column; LSP lines are 0-based.
func Diagnostics(err error) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}

	for _, leaf := range leanerrors.Split(err) {
		diag := protocol.Diagnostic{
			Severity: ptr(protocol.DiagnosticSeverityError),
			Source:   ptr(diagnosticSource),
			Message:  message(leaf),
		}

		if line, pos, ok := leanerrors.Location(leaf); ok {
			at := position(line, pos)
			diag.Range = protocol.Range{Start: at, End: at}
		}

		diags = append(diags, diag)
	}

	slices.SortStableFunc(diags, func(a, b protocol.Diagnostic) int {
		if c := cmp.Compare(a.Range.Start.Line, b.Range.Start.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Range.Start.Character, b.Range.Start.Character)
	})

	return diags
}

// message drops the location prefix, the range already carries it.
func message(err error) string {
	var base *leanerrors.Error
	if errors.As(err, &base) {
		return base.Message()
	}
	return err.Error()
}

func position(line, pos uint) protocol.Position {
	if line > 0 {
		line--
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(pos),
	}
}

// utf16Column converts the rune column of at into UTF-16 code units.
// Columns past the end of the line keep their overflow unchanged.
func utf16Column(lines []string, at protocol.Position) protocol.UInteger {
	if int(at.Line) >= len(lines) {
		return at.Character
	}

	var runes, units protocol.UInteger
	for _, c := range lines[at.Line] {
		if runes == at.Character {
			break
		}
		runes++
		units++
		if c > 0xFFFF {
			units++
		}
	}
	return units + at.Character - runes
}

func ptr[T any](v T) *T {
	return &v
}
