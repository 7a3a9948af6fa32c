// Package csstree parses CSS source text into a typed syntax tree: a
// CSS Syntax Level-3 tokenizer and grammar parser, plus a CSS
// Selectors Level-4 parser that turns a style rule's prelude into a
// selector tree. It deliberately stops at the tree — formatting,
// visitor helpers, and file/CLI plumbing are callers' concerns, not
// this package's.
package csstree

import (
	"github.com/go-csstree/csstree/ast"
	"github.com/go-csstree/csstree/parser"
	"github.com/go-csstree/csstree/selector"
	"github.com/go-csstree/csstree/token"
)

// Location is a half-open [Start, End) range of rune offsets into the
// preprocessed source that produced a node or token.
type Location = token.Location

// Error is a single recoverable or hard-fail parse error, carrying the
// Location it occurred at.
type Error = parser.Error

// Parse parses source as a full stylesheet and promotes every
// top-level qualified rule whose prelude parses as a selector list to
// a StyleRule; a rule whose prelude does not stays in Rules as a bare
// *ast.QualifiedRule and an error is recorded for it. Parsing never
// hard-fails: malformed rules are recorded as errors and otherwise
// skipped or left unpromoted, per the grammar's own error-recovery
// rules. The returned errors are those of the grammar and selectors
// parsers; errors the tokenizer records (scanner.Scanner.Errors, such
// as an unterminated string or a bad url) are not included.
func Parse(source string) (*ast.CssStylesheet, []error) {
	return parser.ParseCssStylesheet(source)
}

// ParseSelectorList parses source as a standalone <selector-list>,
// independent of any rule — useful for validating or inspecting a
// selector string on its own.
func ParseSelectorList(source string) ([]ast.Selector, error) {
	values, errs := parser.ParseComponentValues(source)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return selector.ParseSelectorList(values)
}

// ParseRule parses source as a single qualified rule or at-rule,
// hard-failing on empty input, trailing input, or an invalid rule.
func ParseRule(source string) (ast.Rule, error) {
	return parser.ParseRule(source)
}

// ParseDeclaration parses source as a single declaration, hard-failing
// on empty input or input that does not start with an identifier.
func ParseDeclaration(source string) (*ast.Declaration, error) {
	return parser.ParseDeclaration(source)
}

// ParseDeclarationList parses source as a list of declarations and
// at-rules.
func ParseDeclarationList(source string) ([]ast.Node, []error) {
	return parser.ParseDeclarationList(source)
}

// ParseComponentValue parses source as a single component value,
// hard-failing on empty input or trailing input after the value.
func ParseComponentValue(source string) (ast.ComponentValue, error) {
	return parser.ParseComponentValue(source)
}

// ParseComponentValues parses source as a list of component values.
func ParseComponentValues(source string) ([]ast.ComponentValue, []error) {
	return parser.ParseComponentValues(source)
}
