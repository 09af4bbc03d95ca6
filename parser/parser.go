// Package parser builds a Metaphor AST from one or more token streams,
// enforcing the block grammar of spec.md §4.3 and transparently splicing
// Include:/Embed: targets into the stream via a stack of lexer frames.
//
// Grounded on original_source/src/python/m6rc.py's Parser class
// (parse/parse_target/parse_scope/parse_example/parse_include/
// parse_embed/get_next_token) for the grammar and the token-pump
// absorption rules, and on the teacher's parser/errors.go for the
// unexpected-token error-helper idiom (see errors.go in this package).
// The teacher's own parser.go is a generic, table-driven LL(*) engine
// built from a compiled grammar.Grammar; Metaphor's grammar is small and
// fixed, so it is written directly as recursive descent instead of
// compiled from a grammar table.
package parser

import (
	"fmt"
	"path/filepath"

	"github.com/ava12/metaphorc/ast"
	"github.com/ava12/metaphorc/elexer"
	"github.com/ava12/metaphorc/lexererr"
	"github.com/ava12/metaphorc/mlexer"
	"github.com/ava12/metaphorc/token"
)

// Lexer is satisfied by both *mlexer.Lexer and *elexer.Lexer. The parser's
// token pump speaks only to this interface (spec.md §9, "Lexer
// polymorphism").
type Lexer interface {
	NextToken() *token.Token
}

type lexerFrame struct {
	lex      Lexer
	filename string
}

// blockSpec describes which sub-blocks a keyword's body may directly
// contain, and the name used in its error messages.
type blockSpec struct {
	name         string
	allowScope   bool
	allowExample bool
}

var blockSpecs = map[token.Kind]blockSpec{
	token.TARGET:  {"Target", true, true},
	token.SCOPE:   {"Scope", true, true},
	token.EXAMPLE: {"Example", false, false},
}

// Parser owns the complete mutable state of one compilation: the stack of
// open lexer frames, the global indent level, the set of canonical paths
// already opened, and the accumulated recoverable errors. None of this is
// shared across compilations (spec.md §5).
type Parser struct {
	frames      []lexerFrame
	indentLevel int
	seen        map[string]struct{}
	errors      []*SyntaxError
	pushedBack  *token.Token
}

// New returns a Parser ready to compile a single file.
func New() *Parser {
	return &Parser{seen: make(map[string]struct{})}
}

// Parse compiles filename into an AST. ok is false if any recoverable
// error was recorded (errs holds them); err is non-nil only for a fatal
// condition (file-not-found, io-error, include-cycle) that aborted
// compilation outright, in which case tree and errs are both nil.
func (p *Parser) Parse(filename string) (ok bool, tree *ast.Node, errs []*SyntaxError, err error) {
	if err = p.openInclude(filename); err != nil {
		return false, nil, nil, err
	}

	tok, err := p.nextToken()
	if err != nil {
		return false, nil, nil, err
	}
	if tok.Kind != token.TARGET {
		p.fail(tok, "Expected 'Target' keyword")
		return false, nil, p.errors, nil
	}

	tree, err = p.parseBlock(tok)
	if err != nil {
		return false, nil, nil, err
	}

	next, err := p.nextToken()
	if err != nil {
		return false, nil, nil, err
	}
	if next.Kind != token.END_OF_FILE {
		p.fail(next, "Unexpected text after 'Target' block")
	}

	return len(p.errors) == 0, tree, p.errors, nil
}

// nextToken is the token pump described in spec.md §4.3: it reads from the
// top lexer frame, popping that frame at its END_OF_FILE, and absorbs
// INCLUDE, EMBED, and intra-file END_OF_FILE so the grammar never sees
// them.
func (p *Parser) nextToken() (*token.Token, error) {
	if p.pushedBack != nil {
		tok := p.pushedBack
		p.pushedBack = nil
		return tok, nil
	}

	for len(p.frames) > 0 {
		top := p.frames[len(p.frames)-1]
		tok := top.lex.NextToken()

		switch tok.Kind {
		case token.INDENT:
			p.indentLevel++
			return tok, nil
		case token.OUTDENT:
			p.indentLevel--
			return tok, nil
		case token.INCLUDE:
			if err := p.resolveDirective(true); err != nil {
				return nil, err
			}
		case token.EMBED:
			if err := p.resolveDirective(false); err != nil {
				return nil, err
			}
		case token.END_OF_FILE:
			p.frames = p.frames[:len(p.frames)-1]
		default:
			return tok, nil
		}
	}

	return token.EOF("", 0, 0), nil
}

// pushback returns tok to the front of the token pump, so the next call to
// nextToken yields it again. Used when a lookahead token turns out not to
// belong to the construct that just peeked at it.
func (p *Parser) pushback(tok *token.Token) {
	p.pushedBack = tok
}

// resolveDirective consumes the KEYWORD_TEXT filename that must follow an
// Include:/Embed: directive and pushes the corresponding lexer frame.
func (p *Parser) resolveDirective(isInclude bool) error {
	name := "Include"
	if !isInclude {
		name = "Embed"
	}

	nameTok, err := p.nextToken()
	if err != nil {
		return err
	}
	if nameTok.Kind != token.KEYWORD_TEXT {
		p.fail(nameTok, fmt.Sprintf("Expected file name for '%s'", name))
		return nil
	}

	if isInclude {
		return p.openInclude(nameTok.Value)
	}
	return p.openEmbed(nameTok.Value)
}

func (p *Parser) openInclude(filename string) error {
	lex, err := mlexer.New(filename)
	if err != nil {
		return err
	}
	return p.pushFrame(filename, lex)
}

func (p *Parser) openEmbed(filename string) error {
	lex, err := elexer.New(filename)
	if err != nil {
		return err
	}
	return p.pushFrame(filename, lex)
}

// pushFrame checks filename's canonical path against the seen-set before
// pushing lex's frame, rejecting a cycle (spec.md §4.3, "Cycle
// detection") before any token from lex is produced. The file itself has
// already been read by the lexer's New.
func (p *Parser) pushFrame(filename string, lex Lexer) error {
	canon, err := canonicalPath(filename)
	if err != nil {
		return lexererr.Format(lexererr.IOFailure, "could not resolve %s: %s", filename, err.Error())
	}
	if _, ok := p.seen[canon]; ok {
		return lexererr.Format(lexererr.IncludeCycle, "%q has already been read", filename)
	}
	p.seen[canon] = struct{}{}
	p.frames = append(p.frames, lexerFrame{lex, filename})
	return nil
}

// canonicalPath resolves filename to an absolute path, following
// symlinks when possible. When symlinks cannot be resolved, the plain
// absolute path keys the seen-set instead.
func canonicalPath(filename string) (string, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// parseBlock parses the body of a TARGET, SCOPE, or EXAMPLE block whose
// opening keyword token kw has already been consumed. It implements the
// grammar of spec.md §4.3 uniformly for all three keywords; allowScope
// and allowExample in blockSpecs narrow which sub-blocks EXAMPLE may not
// contain.
func (p *Parser) parseBlock(kw *token.Token) (*ast.Node, error) {
	spec := blockSpecs[kw.Kind]
	node := ast.New(kw)

	initTok, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	switch initTok.Kind {
	case token.KEYWORD_TEXT:
		node.AppendChild(ast.New(initTok))
		indentTok, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		switch indentTok.Kind {
		case token.INDENT:
			// ok
		case token.BAD_INDENT, token.BAD_OUTDENT:
			// Reported at the misaligned token's own column rather than
			// the block keyword's, so callers can point straight at the
			// offending character (spec.md §8 invariant 9).
			p.fail(indentTok, fmt.Sprintf("Misaligned indentation in a '%s' block", spec.name))
		default:
			// A header with nothing indented under it is a valid empty
			// leaf block (spec.md §8 scenario S2: "Scope: A.1" followed
			// directly by a sibling or by the OUTDENT closing the
			// parent), not an error. indentTok is not this block's own
			// content, so hand it back instead of consuming it — this
			// block has no body to parse.
			p.pushback(indentTok)
			return node, nil
		}
	case token.BAD_INDENT, token.BAD_OUTDENT:
		p.fail(initTok, fmt.Sprintf("Misaligned indentation in a '%s' block", spec.name))
	case token.INDENT:
		// Body follows directly; nothing more to do here.
	default:
		p.fail(kw, fmt.Sprintf("Expected description or indent for '%s' block", spec.name))
	}

	seenSubBlock := false
	for {
		tok, err := p.nextToken()
		if err != nil {
			return nil, err
		}

		switch {
		case tok.Kind == token.TEXT:
			if seenSubBlock {
				p.fail(tok, fmt.Sprintf("Text must come first in a '%s' block", spec.name))
			}
			node.AppendChild(ast.New(tok))

		case tok.Kind == token.SCOPE && spec.allowScope:
			child, err := p.parseBlock(tok)
			if err != nil {
				return nil, err
			}
			node.AppendChild(child)
			seenSubBlock = true

		case tok.Kind == token.EXAMPLE && spec.allowExample:
			child, err := p.parseBlock(tok)
			if err != nil {
				return nil, err
			}
			node.AppendChild(child)
			seenSubBlock = true

		case tok.Kind == token.OUTDENT || tok.Kind == token.END_OF_FILE:
			return node, nil

		default:
			p.fail(tok, fmt.Sprintf("Unexpected token: %s in '%s' block", tok.Value, spec.name))
		}
	}
}
