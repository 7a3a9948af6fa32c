// Package parser implements the CSS Syntax Level-3 grammar parser: the
// rule/declaration/component-value consumers described by the CSS
// Syntax spec, producing the full node set (including the promoted
// CssStylesheet/StyleRule) and exposing every entry point — ParseRule,
// ParseDeclarationList, and the root-level ParseStylesheet among them.
package parser

import (
	"fmt"

	"github.com/go-csstree/csstree/ast"
	"github.com/go-csstree/csstree/scanner"
	"github.com/go-csstree/csstree/token"
)

// Scanner is anything that can produce tokens with one token of
// lookahead/unscan, matching scanner.Scanner's shape. The grammar
// parser is written against this interface (rather than *scanner.
// Scanner directly) so the same consumers can run over a bounded
// TokenScanner view of an already-materialized token slice — the way
// consumeDeclarationList and consumeStyleBlockContents re-run
// consumeDeclaration over a declaration's synthetic EOF-terminated
// token run.
type Scanner interface {
	Current() token.Token
	Scan() token.Token
	Unscan()
}

// TokenScanner scans a fixed, already-materialized list of tokens,
// terminated by a synthetic EOF once exhausted.
type TokenScanner struct {
	tokens []token.Token
	i      int
}

// NewTokenScanner returns a TokenScanner over tokens. eofLoc is used
// for the synthetic EOF emitted once tokens is exhausted.
func NewTokenScanner(tokens []token.Token, eofLoc token.Location) *TokenScanner {
	return &TokenScanner{tokens: append(tokens, &token.EOF{Loc: eofLoc})}
}

func (s *TokenScanner) Current() token.Token {
	if s.i == 0 {
		return &token.EOF{}
	}
	return s.tokens[s.i-1]
}

func (s *TokenScanner) Scan() token.Token {
	if s.i < len(s.tokens) {
		tok := s.tokens[s.i]
		s.i++
		return tok
	}
	return s.tokens[len(s.tokens)-1]
}

func (s *TokenScanner) Unscan() {
	if s.i > 0 {
		s.i--
	}
}

// Error is a recoverable or hard-fail grammar-level parse error.
type Error struct {
	Message string
	Loc     token.Location
}

func (e *Error) Error() string { return e.Message }

// ErrorList collects every recoverable error a parse produced.
type ErrorList []error

func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
	}
}

// parser holds the mutable state of one grammar parse: only an
// accumulated error list. Parsing is synchronous and single-threaded;
// there is nothing else to own.
type parser struct {
	errors ErrorList
}

func (p *parser) errorf(loc token.Location, format string, args ...interface{}) {
	p.errors = append(p.errors, &Error{Message: fmt.Sprintf(format, args...), Loc: loc})
}

func (p *parser) result() error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors
}

// ParseStylesheet implements CSS Syntax's "parse a stylesheet":
// top-level CDO/CDC tokens are discarded rather than treated as
// qualified rules, and parsing never hard-fails.
func ParseStylesheet(source string) (*ast.Stylesheet, []error) {
	s := scanner.New(source)
	var p parser
	rules := p.consumeRuleList(s, true)
	return &ast.Stylesheet{Rules: rules, Loc: rulesLoc(rules)}, errSlice(p.errors)
}

// ParseRuleList implements CSS Syntax's "parse a list of rules":
// top-level CDO/CDC tokens are treated as the start of a qualified
// rule instead of being discarded.
func ParseRuleList(source string) ([]ast.Rule, []error) {
	s := scanner.New(source)
	var p parser
	rules := p.consumeRuleList(s, false)
	return rules, errSlice(p.errors)
}

// ParseRule implements CSS Syntax's "parse a rule": a single qualified
// rule or at-rule. It hard-fails on empty input, trailing input after
// the rule, or invalid input.
func ParseRule(source string) (ast.Rule, error) {
	s := scanner.New(source)
	var p parser
	p.skipWhitespace(s)

	tok := s.Scan()
	if _, ok := tok.(*token.EOF); ok {
		return nil, &Error{Message: "unexpected EOF", Loc: tok.Location()}
	}

	var rule ast.Rule
	if _, ok := tok.(*token.AtKeyword); ok {
		s.Unscan()
		rule = p.consumeAtRule(s)
	} else {
		s.Unscan()
		rule = p.consumeQualifiedRule(s)
		if rule == nil {
			return nil, &Error{Message: "invalid rule", Loc: tok.Location()}
		}
	}

	p.skipWhitespace(s)
	if tail := s.Scan(); !isEOF(tail) {
		return nil, &Error{Message: fmt.Sprintf("expected EOF, got %q", tail.String()), Loc: tail.Location()}
	}
	return rule, nil
}

// ParseDeclaration implements CSS Syntax's "parse a declaration". It
// hard-fails on empty input or input that does not start with an
// identifier.
func ParseDeclaration(source string) (*ast.Declaration, error) {
	s := scanner.New(source)
	var p parser
	p.skipWhitespace(s)

	tok := s.Scan()
	if _, ok := tok.(*token.Ident); !ok {
		return nil, &Error{Message: fmt.Sprintf("expected ident, got %q", tok.String()), Loc: tok.Location()}
	}
	s.Unscan()

	d := p.consumeDeclaration(s)
	if d == nil {
		return nil, p.result()
	}
	return d, nil
}

// ParseDeclarationList implements CSS Syntax's "parse a list of
// declarations": a list of declarations and at-rules.
func ParseDeclarationList(source string) ([]ast.Node, []error) {
	s := scanner.New(source)
	var p parser
	items := p.consumeDeclarationList(s)
	return items, errSlice(p.errors)
}

// ParseComponentValue implements CSS Syntax's "parse a component
// value": a single component value. It hard-fails on empty input or
// trailing input after the value.
func ParseComponentValue(source string) (ast.ComponentValue, error) {
	s := scanner.New(source)
	var p parser
	p.skipWhitespace(s)

	if tok := s.Scan(); isEOF(tok) {
		return nil, &Error{Message: "unexpected EOF", Loc: tok.Location()}
	}
	s.Unscan()

	v := p.consumeComponentValue(s)

	p.skipWhitespace(s)
	if tail := s.Scan(); !isEOF(tail) {
		return nil, &Error{Message: fmt.Sprintf("expected EOF, got %q", tail.String()), Loc: tail.Location()}
	}
	return v, nil
}

// ParseComponentValues implements CSS Syntax's "parse a list of
// component values".
func ParseComponentValues(source string) ([]ast.ComponentValue, []error) {
	s := scanner.New(source)
	var p parser
	var values []ast.ComponentValue
	for {
		if tok := s.Scan(); isEOF(tok) {
			break
		}
		s.Unscan()
		values = append(values, p.consumeComponentValue(s))
	}
	return values, errSlice(p.errors)
}

func isEOF(tok token.Token) bool {
	_, ok := tok.(*token.EOF)
	return ok
}

func errSlice(errs ErrorList) []error {
	if len(errs) == 0 {
		return nil
	}
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

func rulesLoc(rules []ast.Rule) token.Location {
	if len(rules) == 0 {
		return token.Location{}
	}
	loc := rules[0].Location()
	for _, r := range rules[1:] {
		loc = loc.Union(r.Location())
	}
	return loc
}
