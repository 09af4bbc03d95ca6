// Package token defines the lexical token kinds shared by the Metaphor
// and embed lexers, and the immutable Token value they produce.
package token

import "fmt"

// Kind is a tagged union of token kinds. Unlike the source grammar's table
// driven int token types, Kind is a fixed, small enum since the grammar
// it drives is fixed and small.
type Kind int

const (
	// NONE is a sentinel kind; no lexer ever emits it.
	NONE Kind = iota

	// Structural tokens synthesized by the indent tracker.
	INDENT
	OUTDENT
	BAD_INDENT
	BAD_OUTDENT
	END_OF_FILE

	// Content tokens.
	TEXT
	KEYWORD_TEXT

	// Directives, absorbed by the parser's token pump and never seen by
	// the grammar.
	INCLUDE
	EMBED

	// Block keywords.
	TARGET
	SCOPE
	EXAMPLE
)

var names = map[Kind]string{
	NONE:         "NONE",
	INDENT:       "INDENT",
	OUTDENT:      "OUTDENT",
	BAD_INDENT:   "BAD_INDENT",
	BAD_OUTDENT:  "BAD_OUTDENT",
	END_OF_FILE:  "END_OF_FILE",
	TEXT:         "TEXT",
	KEYWORD_TEXT: "KEYWORD_TEXT",
	INCLUDE:      "INCLUDE",
	EMBED:        "EMBED",
	TARGET:       "TARGET",
	SCOPE:        "SCOPE",
	EXAMPLE:      "EXAMPLE",
}

// String implements fmt.Stringer so tokens print legibly in test failures
// and debug dumps.
func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps the canonical keyword spelling (including trailing colon)
// to its token kind. Used by the Metaphor lexer for keyword recognition.
var Keywords = map[string]Kind{
	"Include:": INCLUDE,
	"Embed:":   EMBED,
	"Target:":  TARGET,
	"Scope:":   SCOPE,
	"Example:": EXAMPLE,
}

// SourcePos identifies the origin of a diagnostic: a filename plus a
// 1-based line and column. Both Token and source.Pos implement it, so
// lexererr.FormatPos accepts either.
type SourcePos interface {
	Filename() string
	Line() int
	Col() int
}

// Token is an immutable lexical unit carrying enough provenance to
// reconstruct an error display without re-reading the source file.
type Token struct {
	Kind       Kind
	Value      string
	SourceLine string
	File       string
	Ln         int
	Cl         int
}

// New constructs a Token. Kept as a function rather than a literal at
// every call site so lexer code reads as "emit a TEXT token" rather than
// repeating the struct shape.
func New(kind Kind, value, sourceLine, filename string, line, col int) *Token {
	return &Token{Kind: kind, Value: value, SourceLine: sourceLine, File: filename, Ln: line, Cl: col}
}

func (t *Token) Filename() string { return t.File }
func (t *Token) Line() int        { return t.Ln }
func (t *Token) Col() int         { return t.Cl }

func (t *Token) String() string {
	return fmt.Sprintf("Token(kind=%s, value=%q, line=%d, col=%d)", t.Kind, t.Value, t.Ln, t.Cl)
}

// EOF builds an END_OF_FILE token at the given position, returned
// idempotently by lexers once their input is exhausted.
func EOF(filename string, line, col int) *Token {
	return New(END_OF_FILE, "", "", filename, line, col)
}
