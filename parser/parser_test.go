package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava12/metaphorc/ast"
	"github.com/ava12/metaphorc/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func childKinds(n *ast.Node) []token.Kind {
	ks := make([]token.Kind, len(n.Children))
	for i, c := range n.Children {
		ks[i] = c.Kind
	}
	return ks
}

// S1 — minimal target.
func TestMinimalTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.m6r", "Target: Build widget\n    A widget is assembled.\n")

	ok, tree, errs, err := New().Parse(path)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if !ok {
		t.Fatalf("expected success, got errors: %v", errs)
	}
	if tree.Kind != token.TARGET {
		t.Fatalf("root kind = %s, want TARGET", tree.Kind)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("root children = %v, want [KEYWORD_TEXT TEXT]", childKinds(tree))
	}
	if tree.Children[0].Kind != token.KEYWORD_TEXT || tree.Children[0].Value != "Build widget" {
		t.Errorf("header = %+v", tree.Children[0])
	}
	if tree.Children[1].Kind != token.TEXT || tree.Children[1].Value != "A widget is assembled." {
		t.Errorf("body text = %+v", tree.Children[1])
	}
}

// S2 — nested scopes number independently (numbering itself is the
// renderer's job; here we check the AST shape the renderer walks).
func TestNestedScopesShape(t *testing.T) {
	dir := t.TempDir()
	src := "Target:\n" +
		"    Scope: A\n" +
		"        Scope: A.1\n" +
		"        Scope: A.2\n" +
		"    Scope: B\n"
	path := writeFile(t, dir, "a.m6r", src)

	ok, tree, errs, err := New().Parse(path)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if !ok {
		t.Fatalf("expected success, got errors: %v", errs)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("target children = %v, want two Scope nodes", childKinds(tree))
	}
	scopeA, scopeB := tree.Children[0], tree.Children[1]
	if scopeA.Children[0].Value != "A" || scopeB.Children[0].Value != "B" {
		t.Fatalf("scope headers = %q, %q", scopeA.Children[0].Value, scopeB.Children[0].Value)
	}
	if len(scopeA.Children) != 3 { // header + two nested scopes
		t.Fatalf("scope A children = %v", childKinds(scopeA))
	}
	if scopeA.Children[1].Children[0].Value != "A.1" || scopeA.Children[2].Children[0].Value != "A.2" {
		t.Fatalf("nested scope headers = %q, %q", scopeA.Children[1].Children[0].Value, scopeA.Children[2].Children[0].Value)
	}
}

// S3 — include splices transparently.
func TestIncludeSplicesTransparently(t *testing.T) {
	dir := t.TempDir()
	// An included file's own indentation restarts at column 1 — each
	// Metaphor lexer instance tracks indent independently of the file
	// that included it — so splicing requires the child's content to be
	// written flush-left rather than re-indented to the include point.
	bPath := writeFile(t, dir, "b.m6r", "Scope: Nested\n    Detail text.\n")
	writeFile(t, dir, "a.m6r", "Target:\n"+
		"    Scope: Outer\n"+
		"        Include: "+bPath+"\n")
	aPath := filepath.Join(dir, "a.m6r")

	ok, tree, errs, err := New().Parse(aPath)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if !ok {
		t.Fatalf("expected success, got errors: %v", errs)
	}
	outer := tree.Children[0]
	if outer.Children[0].Value != "Outer" {
		t.Fatalf("outer header = %q", outer.Children[0].Value)
	}
	if len(outer.Children) != 2 || outer.Children[1].Kind != token.SCOPE {
		t.Fatalf("outer children = %v, want header + spliced Scope", childKinds(outer))
	}
	if outer.Children[1].Children[0].Value != "Nested" {
		t.Fatalf("spliced scope header = %q", outer.Children[1].Children[0].Value)
	}
}

// S4 — cycle rejected.
func TestCycleRejected(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.m6r")
	bPath := filepath.Join(dir, "b.m6r")
	writeFile(t, dir, "a.m6r", "Target:\n    Include: "+bPath+"\n")
	writeFile(t, dir, "b.m6r", "    Include: "+aPath+"\n")

	ok, tree, errs, err := New().Parse(aPath)
	if err == nil {
		t.Fatal("expected a fatal include-cycle error")
	}
	if ok || tree != nil || errs != nil {
		t.Fatalf("expected no partial result on cycle, got ok=%v tree=%v errs=%v", ok, tree, errs)
	}
}

// S5 — embed preserves verbatim.
func TestEmbedPreservesVerbatim(t *testing.T) {
	dir := t.TempDir()
	cPath := writeFile(t, dir, "sample.c", "int x;\nint y;")
	writeFile(t, dir, "a.m6r", "Target:\n    Embed: "+cPath+"\n")
	aPath := filepath.Join(dir, "a.m6r")

	ok, tree, errs, err := New().Parse(aPath)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if !ok {
		t.Fatalf("expected success, got errors: %v", errs)
	}
	want := []string{"File: " + cPath, "```c", "int x;", "int y;", "```"}
	if len(tree.Children) != len(want) {
		t.Fatalf("got %d children, want %d: %v", len(tree.Children), len(want), tree.Children)
	}
	for i, w := range want {
		if tree.Children[i].Value != w {
			t.Errorf("child %d = %q, want %q", i, tree.Children[i].Value, w)
		}
	}
}

// S6 — misaligned indent.
func TestMisalignedIndentRecoverable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.m6r", "Target: x\n   bad.\n")

	ok, _, errs, err := New().Parse(path)
	if err != nil {
		t.Fatalf("expected a recoverable error, not a fatal one: %v", err)
	}
	if ok {
		t.Fatal("expected Parse to report failure")
	}
	if len(errs) == 0 {
		t.Fatal("expected at least one recorded error")
	}
	if errs[0].Col != 4 {
		t.Errorf("error column = %d, want 4", errs[0].Col)
	}
}

func TestTextAfterSubBlockIsError(t *testing.T) {
	dir := t.TempDir()
	src := "Target:\n" +
		"    Scope: A\n" +
		"    trailing text\n"
	path := writeFile(t, dir, "a.m6r", src)

	ok, _, errs, err := New().Parse(path)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if ok {
		t.Fatal("expected Parse to report failure")
	}
	found := false
	for _, e := range errs {
		if e.Message == "Text must come first in a 'Target' block" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ordering error, got: %v", errs)
	}
}

func TestFileNotFoundIsFatal(t *testing.T) {
	dir := t.TempDir()
	ok, tree, errs, err := New().Parse(filepath.Join(dir, "missing.m6r"))
	if err == nil {
		t.Fatal("expected a fatal error")
	}
	if ok || tree != nil || errs != nil {
		t.Fatalf("expected no partial result, got ok=%v tree=%v errs=%v", ok, tree, errs)
	}
}
