// Package elexer implements the embed lexer described in spec.md §4.2:
// it presents an arbitrary file as a flat sequence of TEXT tokens
// bracketed by a file-header line and a fenced code block, rather than
// as Metaphor source to be parsed.
//
// Ported from original_source's EmbedLexer.py almost unchanged; the only
// addition is the language-tag lookup (langmap.go), which the Python
// original does not have (its fence is a bare "```").
package elexer

import (
	"os"
	"strings"

	"github.com/ava12/metaphorc/lexererr"
	"github.com/ava12/metaphorc/token"
)

// Lexer presents filename's content as a fenced TEXT block.
type Lexer struct {
	filename string
	pending  []*token.Token
	eofSent  bool
}

// New reads filename into memory and prepares the fixed emission
// sequence from spec.md §4.2. Fails with lexererr.FileNotFound or
// lexererr.IOFailure.
func New(filename string) (*Lexer, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lexererr.Format(lexererr.FileNotFound, "file not found: %s", filename)
		}
		return nil, lexererr.Format(lexererr.IOFailure, "could not read %s: %s", filename, err.Error())
	}

	l := &Lexer{filename: filename}
	l.pending = append(l.pending, token.New(token.TEXT, "File: "+filename, "", filename, 0, 1))
	l.pending = append(l.pending, token.New(token.TEXT, "```"+langTagFor(filename), "", filename, 0, 1))

	lineNo := 1
	var lines []string
	if len(content) > 0 {
		lines = strings.Split(string(content), "\n")
		if lines[len(lines)-1] == "" {
			// A trailing newline yields one extra empty element from
			// strings.Split that splitlines() would not produce; drop
			// it so a well-formed file doesn't gain a spurious blank
			// last line. An empty file is handled separately above:
			// it contributes zero body lines, matching "".splitlines().
			lines = lines[:len(lines)-1]
		}
	}
	for _, line := range lines {
		l.pending = append(l.pending, token.New(token.TEXT, line, line, filename, lineNo, 1))
		lineNo++
	}

	l.pending = append(l.pending, token.New(token.TEXT, "```", "", filename, lineNo, 1))
	return l, nil
}

// NextToken returns the next token in the fixed emission sequence,
// ending with an idempotent END_OF_FILE.
func (l *Lexer) NextToken() *token.Token {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	}
	l.eofSent = true
	return token.EOF(l.filename, 0, 1)
}
