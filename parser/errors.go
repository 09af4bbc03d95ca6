package parser

import (
	"fmt"
	"strings"

	"github.com/ava12/metaphorc/token"
)

// SyntaxError is one recoverable grammar or indentation violation. Unlike
// the teacher's unexpectedEofError/unexpectedTokenError (which build a
// single-line *err.Error per call site), Metaphor's diagnostics all share
// one shape — message plus a two-line caret above the offending source
// line — so a single type and render method cover every case raised by
// parseBlock and the token pump.
type SyntaxError struct {
	Message  string
	Filename string
	Line     int
	Col      int
	Source   string
}

// Error renders the diagnostic in the exact layout spec.md §7 specifies:
// the message and position on one line, then a two-line caret pointing
// down at the offending column, then the saved source line.
func (e *SyntaxError) Error() string {
	caret := strings.Repeat(" ", e.Col-1)
	return fmt.Sprintf("%s: line %d, column %d, file %s\n%s|\n%sv\n%s",
		e.Message, e.Line, e.Col, e.Filename, caret, caret, e.Source)
}

// fail records a recoverable error positioned at tok and continues
// parsing; it never aborts the compilation (spec.md §7).
func (p *Parser) fail(tok *token.Token, message string) {
	p.errors = append(p.errors, &SyntaxError{
		Message:  message,
		Filename: tok.File,
		Line:     tok.Ln,
		Col:      tok.Cl,
		Source:   tok.SourceLine,
	})
}
