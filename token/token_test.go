package token

import "testing"

func TestKindStringKnown(t *testing.T) {
	if got := SCOPE.String(); got != "SCOPE" {
		t.Errorf("SCOPE.String() = %q, want %q", got, "SCOPE")
	}
}

func TestKindStringUnknown(t *testing.T) {
	var k Kind = 999
	if got := k.String(); got != "Kind(999)" {
		t.Errorf("Kind(999).String() = %q, want %q", got, "Kind(999)")
	}
}

func TestKeywordsTable(t *testing.T) {
	want := map[string]Kind{
		"Include:": INCLUDE,
		"Embed:":   EMBED,
		"Target:":  TARGET,
		"Scope:":   SCOPE,
		"Example:": EXAMPLE,
	}
	if len(Keywords) != len(want) {
		t.Fatalf("len(Keywords) = %d, want %d", len(Keywords), len(want))
	}
	for spelling, kind := range want {
		if Keywords[spelling] != kind {
			t.Errorf("Keywords[%q] = %v, want %v", spelling, Keywords[spelling], kind)
		}
	}
}

func TestTokenImplementsSourcePos(t *testing.T) {
	tok := New(TEXT, "hello", "hello", "a.m6r", 3, 5)
	var pos SourcePos = tok
	if pos.Filename() != "a.m6r" || pos.Line() != 3 || pos.Col() != 5 {
		t.Errorf("Token as SourcePos = (%s, %d, %d), want (a.m6r, 3, 5)", pos.Filename(), pos.Line(), pos.Col())
	}
}

func TestEOFToken(t *testing.T) {
	tok := EOF("a.m6r", 10, 1)
	if tok.Kind != END_OF_FILE || tok.Value != "" {
		t.Errorf("EOF token = %+v, want Kind=END_OF_FILE Value=\"\"", tok)
	}
}
