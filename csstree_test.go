package csstree_test

import (
	"testing"

	"github.com/go-csstree/csstree"
	"github.com/go-csstree/csstree/ast"
)

func TestParse_PromotesQualifiedRulesToStyleRules(t *testing.T) {
	sheet, errs := csstree.Parse(`a.b, div > span { color: red; width: 10px; @media screen { color: green } & .nested { color: blue; } }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	sr, ok := sheet.Rules[0].(*ast.StyleRule)
	if !ok {
		t.Fatalf("expected StyleRule, got %T", sheet.Rules[0])
	}
	if len(sr.Selectors) != 2 {
		t.Fatalf("expected 2 selectors, got %d", len(sr.Selectors))
	}
	if len(sr.Items) != 3 {
		t.Fatalf("expected 3 items (2 declarations + 1 at-rule), got %d", len(sr.Items))
	}
	// Items preserves source order: color, width, then the nested
	// @media, rather than grouping all declarations before at-rules.
	if _, ok := sr.Items[0].(*ast.Declaration); !ok {
		t.Fatalf("expected item 0 to be a Declaration, got %T", sr.Items[0])
	}
	if _, ok := sr.Items[1].(*ast.Declaration); !ok {
		t.Fatalf("expected item 1 to be a Declaration, got %T", sr.Items[1])
	}
	ar, ok := sr.Items[2].(*ast.AtRule)
	if !ok {
		t.Fatalf("expected item 2 to be an AtRule, got %T", sr.Items[2])
	}
	if ar.Name != "media" {
		t.Fatalf("expected nested @media, got %q", ar.Name)
	}
	if len(sr.Declarations()) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(sr.Declarations()))
	}
	if len(sr.AtRules()) != 1 {
		t.Fatalf("expected 1 nested at-rule, got %d", len(sr.AtRules()))
	}
	if len(sr.NestedRules) != 1 {
		t.Fatalf("expected 1 nested rule, got %d", len(sr.NestedRules))
	}
}

func TestParse_AtRulesPassThroughUnchanged(t *testing.T) {
	sheet, errs := csstree.Parse(`@media screen { a { color: red } }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	if _, ok := sheet.Rules[0].(*ast.AtRule); !ok {
		t.Fatalf("expected AtRule, got %T", sheet.Rules[0])
	}
}

func TestParse_InvalidSelectorRecordsErrorWithoutHalting(t *testing.T) {
	sheet, errs := csstree.Parse(`~ { color: red } a { color: blue }`)
	if len(errs) == 0 {
		t.Fatal("expected an error for the malformed selector")
	}
	if len(sheet.Rules) == 0 {
		t.Fatal("expected parsing to continue past the malformed rule")
	}
}

func TestParseSelectorList(t *testing.T) {
	sels, err := csstree.ParseSelectorList(`a.b, #c`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sels) != 2 {
		t.Fatalf("expected 2 selectors, got %d", len(sels))
	}
}

func TestParseComponentValue_UnicodeRange(t *testing.T) {
	v, err := csstree.ParseComponentValue(`U+1F??-2FFF`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ur, ok := v.(*ast.UnicodeRangeValue)
	if !ok {
		t.Fatalf("expected UnicodeRangeValue, got %T", v)
	}
	if ur.Start != 0x1F00 || ur.End != 0x2FFF {
		t.Fatalf("expected range 0x1F00-0x2FFF, got %#x-%#x", ur.Start, ur.End)
	}
}

func TestLocationsCoverSource(t *testing.T) {
	src := `a { color: red }`
	sheet, errs := csstree.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	loc := sheet.Rules[0].Location()
	if loc.Start != 0 || loc.End != len([]rune(src)) {
		t.Fatalf("expected location to span the whole rule, got %#v", loc)
	}
}

// TestDeclarationLocationRoundTrips checks that a Declaration's
// Location() never extends into the terminating ";" or the enclosing
// block's closing "}", in both the semicolon-terminated and
// last-declaration-in-block cases: the source slice it covers must be
// exactly "name: value", nothing more.
func TestDeclarationLocationRoundTrips(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`* { hello: world; }`, `hello: world`},
		{`a { color: red }`, `color: red`},
		{`a { width: 10px; height: 20px }`, `width: 10px`},
	}
	for _, tt := range tests {
		sheet, errs := csstree.Parse(tt.src)
		if len(errs) != 0 {
			t.Fatalf("%q: unexpected errors: %v", tt.src, errs)
		}
		sr, ok := sheet.Rules[0].(*ast.StyleRule)
		if !ok {
			t.Fatalf("%q: expected StyleRule, got %T", tt.src, sheet.Rules[0])
		}
		decls := sr.Declarations()
		if len(decls) == 0 {
			t.Fatalf("%q: expected at least 1 declaration", tt.src)
		}
		loc := decls[0].Location()
		runes := []rune(tt.src)
		got := string(runes[loc.Start:loc.End])
		if got != tt.want {
			t.Fatalf("%q: expected declaration location to cover %q, got %q (%#v)", tt.src, tt.want, got, loc)
		}
	}
}
