package selector_test

import (
	"testing"

	"github.com/go-csstree/csstree/ast"
	"github.com/go-csstree/csstree/parser"
	"github.com/go-csstree/csstree/selector"
	"github.com/go-csstree/csstree/token"
)

func parseValues(t *testing.T, s string) []ast.ComponentValue {
	t.Helper()
	values, errs := parser.ParseComponentValues(s)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors parsing %q: %v", s, errs)
	}
	return values
}

func TestParseSelectorList_TypeAndUniversal(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `div, *`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sels) != 2 {
		t.Fatalf("expected 2 selectors, got %d", len(sels))
	}
	ts, ok := sels[0].(*ast.TypeSelector)
	if !ok || ts.Name != "div" {
		t.Fatalf("expected type selector div, got %#v", sels[0])
	}
	us, ok := sels[1].(*ast.TypeSelector)
	if !ok || !us.IsUniversal {
		t.Fatalf("expected universal selector, got %#v", sels[1])
	}
}

func TestParseSelectorList_IdClassCollapse(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `#foo`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sels[0].(*ast.IdSelector); !ok {
		t.Fatalf("expected a bare IdSelector (collapsed), got %#v", sels[0])
	}

	sels, err = selector.ParseSelectorList(parseValues(t, `.foo`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sels[0].(*ast.ClassSelector); !ok {
		t.Fatalf("expected a bare ClassSelector (collapsed), got %#v", sels[0])
	}
}

func TestParseSelectorList_CompoundNoCollapse(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `a.b#c`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs, ok := sels[0].(*ast.CompoundSelector)
	if !ok {
		t.Fatalf("expected CompoundSelector, got %#v", sels[0])
	}
	if cs.Type == nil || cs.Type.Name != "a" {
		t.Fatalf("expected type a, got %#v", cs.Type)
	}
	if len(cs.Subclasses) != 2 {
		t.Fatalf("expected 2 subclass selectors, got %d", len(cs.Subclasses))
	}
}

func TestParseSelectorList_AttributeSelector(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `[href^="https://" i]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attr, ok := sels[0].(*ast.AttributeSelector)
	if !ok {
		t.Fatalf("expected AttributeSelector, got %#v", sels[0])
	}
	if attr.Name.Name != "href" {
		t.Fatalf("expected name href, got %q", attr.Name.Name)
	}
	if attr.Operator != ast.AttrPrefix {
		t.Fatalf("expected prefix operator, got %q", attr.Operator)
	}
	if attr.Value != "https://" {
		t.Fatalf("expected value https://, got %q", attr.Value)
	}
	if attr.Modifier != "i" {
		t.Fatalf("expected modifier i, got %q", attr.Modifier)
	}
}

func TestParseSelectorList_PseudoClassAndElement(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `a:hover::before`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs, ok := sels[0].(*ast.CompoundSelector)
	if !ok {
		t.Fatalf("expected CompoundSelector, got %#v", sels[0])
	}
	if len(cs.Subclasses) != 1 {
		t.Fatalf("expected 1 subclass (pseudo-class), got %d", len(cs.Subclasses))
	}
	pc, ok := cs.Subclasses[0].(*ast.PseudoClassSelector)
	if !ok || pc.Name != "hover" {
		t.Fatalf("expected :hover pseudo-class, got %#v", cs.Subclasses[0])
	}
	if len(cs.PseudoElements) != 1 || cs.PseudoElements[0].PseudoElement.PseudoClass.Name != "before" {
		t.Fatalf("expected ::before pseudo-element, got %#v", cs.PseudoElements)
	}
}

func TestParseSelectorList_FunctionalPseudoClassNot(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `:not(.a, .b)`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pc, ok := sels[0].(*ast.PseudoClassSelector)
	if !ok || pc.Function == nil {
		t.Fatalf("expected functional pseudo-class, got %#v", sels[0])
	}
	if len(pc.Function.Arguments) != 2 {
		t.Fatalf("expected 2 arguments to :not(), got %d", len(pc.Function.Arguments))
	}
	if _, ok := pc.Function.Arguments[0].(*ast.ClassSelector); !ok {
		t.Fatalf("expected class selector argument, got %#v", pc.Function.Arguments[0])
	}
}

func TestParseSelectorList_NthChildPreservesRawArguments(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `a:nth-child(2n+1)`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs := sels[0].(*ast.CompoundSelector)
	pc := cs.Subclasses[0].(*ast.PseudoClassSelector)
	if pc.Name != "nth-child" || pc.Function == nil {
		t.Fatalf("expected :nth-child() functional pseudo-class, got %#v", pc)
	}
	if pc.Function.Arguments != nil {
		t.Fatalf("expected nil Arguments for a non-selector-list pseudo-class, got %#v", pc.Function.Arguments)
	}
	if len(pc.Function.Raw) == 0 {
		t.Fatal("expected Raw to preserve the microsyntax's component values")
	}
	tv, ok := pc.Function.Raw[0].(*ast.TokenValue)
	if !ok {
		t.Fatalf("expected first raw value to be a TokenValue, got %#v", pc.Function.Raw[0])
	}
	dim, ok := tv.Token.(*token.Dimension)
	if !ok || dim.Unit != "n" {
		t.Fatalf("expected a dimension token with unit n, got %#v", tv.Token)
	}
}

func TestParseSelectorList_Has(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `a:has(> b)`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs := sels[0].(*ast.CompoundSelector)
	pc := cs.Subclasses[0].(*ast.PseudoClassSelector)
	if pc.Name != "has" || pc.Function == nil {
		t.Fatalf("expected :has() functional pseudo-class, got %#v", pc)
	}
	if len(pc.Function.Arguments) != 1 {
		t.Fatalf("expected 1 relative selector argument, got %d", len(pc.Function.Arguments))
	}
	rel, ok := pc.Function.Arguments[0].(*ast.RelativeSelector)
	if !ok {
		t.Fatalf("expected RelativeSelector, got %T", pc.Function.Arguments[0])
	}
	if rel.Combinator == nil || rel.Combinator.Kind != ast.Child {
		t.Fatalf("expected leading child combinator, got %#v", rel.Combinator)
	}
}

func TestParseSelectorList_Combinators(t *testing.T) {
	tests := []struct {
		s    string
		kind ast.CombinatorKind
	}{
		{`a b`, ast.Descendant},
		{`a > b`, ast.Child},
		{`a+b`, ast.NextSibling},
		{`a ~ b`, ast.SubsequentSibling},
		{`a || b`, ast.Column},
	}
	for _, tt := range tests {
		sels, err := selector.ParseSelectorList(parseValues(t, tt.s))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.s, err)
		}
		cplx, ok := sels[0].(*ast.ComplexSelector)
		if !ok {
			t.Fatalf("%q: expected ComplexSelector, got %#v", tt.s, sels[0])
		}
		if len(cplx.Children) != 3 {
			t.Fatalf("%q: expected 3 children, got %d", tt.s, len(cplx.Children))
		}
		comb, ok := cplx.Children[1].(*ast.Combinator)
		if !ok || comb.Kind != tt.kind {
			t.Fatalf("%q: expected combinator kind %v, got %#v", tt.s, tt.kind, cplx.Children[1])
		}
	}
}

func TestParseSelectorList_NamespacePrefix(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `svg|rect`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, ok := sels[0].(*ast.TypeSelector)
	if !ok {
		t.Fatalf("expected TypeSelector, got %#v", sels[0])
	}
	if ts.Name != "rect" || ts.Prefix == nil || ts.Prefix.Value != "svg" {
		t.Fatalf("expected svg|rect, got %#v", ts)
	}
}

func TestParseSelectorList_ExplicitEmptyNamespacePrefix(t *testing.T) {
	sels, err := selector.ParseSelectorList(parseValues(t, `|rect`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, ok := sels[0].(*ast.TypeSelector)
	if !ok {
		t.Fatalf("expected TypeSelector, got %#v", sels[0])
	}
	if ts.Name != "rect" || ts.Prefix == nil || ts.Prefix.Value != "" || ts.Prefix.IsUniversal {
		t.Fatalf("expected |rect with an empty explicit prefix, got %#v", ts)
	}
}
