// Package source holds a file's raw content together with a line-start
// index, so callers can translate between byte offsets and 1-based
// (line, col) positions without rescanning the buffer.
//
// Ported from the teacher's source.Source almost unchanged: the
// line-start binary search is domain-agnostic. No other package of this
// module imports it: the lexers record line, column and source-line text
// on each token, and the parser's error display uses those. The teacher's
// source.Queue (a ring buffer of byte sources
// feeding one shared regex lexer) is not carried here: Metaphor's two
// lexer kinds each own their own tokenizing state and cannot share a byte
// cursor, so "a stack of sources with a single pump" (see llx.go's
// package doc) is reimplemented over token streams in the parser package
// instead of over raw bytes here (see the frames field of parser.Parser).
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source is an immutable, read-once-built view of a file's content.
type Source struct {
	name          string
	content       []byte
	lineStarts    []int
	prevLineIndex int
}

// New builds a Source from the given name and content, indexing line
// start offsets up front.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt, lineCnt)
	s.lineStarts[0] = 0
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// Name returns the source's filename.
func (s *Source) Name() string {
	return s.name
}

// Content returns the raw file content.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns the number of bytes in the source.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol converts a byte offset to a 1-based (line, col) pair.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts a 1-based (line, col) pair back to a byte offset.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

// Line returns the full physical text of the given 1-based line number,
// or "" when line is out of range.
func (s *Source) Line(line int) string {
	if line <= 0 || line > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[line-1]
	end := len(s.content)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1
	}
	if end < start {
		end = start
	}
	return string(s.content[start:end])
}

func (s *Source) findLineIndex(pos int) int {
	if s.prevLineIndex >= 0 && s.lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(s.lineStarts) - 1
		for lineIndex <= last && s.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	lineStart := 0
	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	index := 0
	if s.prevLineIndex >= 0 {
		lineStart = s.lineStarts[s.prevLineIndex]
		rightIndex = s.prevLineIndex
	}
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart = s.lineStarts[index]
		if lineStart == pos {
			return index
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	s.prevLineIndex = index
	return index
}

// Pos identifies a single point within a Source; implements
// token.SourcePos (Filename/Line/Col) so error formatting can accept
// either a Pos or a *token.Token.
type Pos struct {
	src       *Source
	pos       int
	line, col int
}

// NewPos builds a Pos for the given byte offset within src.
func NewPos(src *Source, pos int) Pos {
	p := Pos{src: src, pos: pos}
	if src != nil {
		p.line, p.col = src.LineCol(pos)
	}
	return p
}

func (p Pos) Source() *Source { return p.src }
func (p Pos) Offset() int     { return p.pos }
func (p Pos) Line() int       { return p.line }
func (p Pos) Col() int        { return p.col }
func (p Pos) Filename() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}
