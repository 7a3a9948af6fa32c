// Package ast defines the grammar-level and selector-level syntax tree
// node types produced by packages parser and selector. It generalizes
// github.com/benbjohnson/css/ast's tagged-interface pattern (an
// unexported marker method per node kind) to the additional kinds the
// promoted stylesheet, the unicode-range microsyntax, and the
// Selectors Level-4 grammar need.
package ast

import "github.com/go-csstree/csstree/token"

// Node is implemented by every tree node. Location always covers the
// union of the node's children's locations.
type Node interface {
	node()
	Location() token.Location
}

// Stylesheet is the untouched top-level rule list produced by
// parser.ParseStylesheet: at-rules and qualified rules, before any
// qualified rule has been promoted to a StyleRule.
type Stylesheet struct {
	Rules []Rule
	Loc   token.Location
}

func (n *Stylesheet) node()                    {}
func (n *Stylesheet) Location() token.Location { return n.Loc }

// CssStylesheet is produced by parser.ParseCssStylesheet (and by
// csstree.Parse): every top-level qualified rule whose prelude parses
// as a selector list has been promoted to a StyleRule by re-parsing
// its prelude as a selector list and its block as a declaration list.
// A qualified rule whose prelude does not parse stays a QualifiedRule.
// At-rules pass through unchanged.
type CssStylesheet struct {
	Rules []Rule
	Loc   token.Location
}

func (n *CssStylesheet) node()                    {}
func (n *CssStylesheet) Location() token.Location { return n.Loc }

// Rule is a qualified rule, an at-rule, or (after promotion) a style
// rule.
type Rule interface {
	Node
	rule()
}

func (n *AtRule) rule()        {}
func (n *QualifiedRule) rule() {}
func (n *StyleRule) rule()     {}

// AtRule is a rule introduced by an "@"-prefixed identifier,
// terminated by either ";" (Block == nil) or a {}-block.
type AtRule struct {
	Name    string
	Prelude []ComponentValue
	Block   *SimpleBlock
	Loc     token.Location
}

func (n *AtRule) node()                    {}
func (n *AtRule) Location() token.Location { return n.Loc }

// QualifiedRule is a prelude followed by a {}-block, before the
// prelude has been interpreted as a selector list.
type QualifiedRule struct {
	Prelude []ComponentValue
	Block   *SimpleBlock
	Loc     token.Location
}

func (n *QualifiedRule) node()                    {}
func (n *QualifiedRule) Location() token.Location { return n.Loc }

// StyleRule is a QualifiedRule whose prelude parsed as a selector list
// and whose block parsed as a declaration list. Items holds the
// declarations and nested at-rules in source order, per the style
// block grammar's declaration-list production; NestedRules (the
// "&"-qualified nested rules CSS Nesting adds on top of that
// production) is kept separate since it is not part of the
// declaration list at all.
type StyleRule struct {
	Selectors   []Selector
	Items       []DeclarationOrAtRule
	NestedRules []*QualifiedRule
	Loc         token.Location
}

func (n *StyleRule) node()                    {}
func (n *StyleRule) Location() token.Location { return n.Loc }

// Declarations returns the Declaration items of Items, in source
// order, discarding the interleaved at-rules.
func (n *StyleRule) Declarations() []*Declaration {
	var decls []*Declaration
	for _, item := range n.Items {
		if d, ok := item.(*Declaration); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// AtRules returns the AtRule items of Items, in source order,
// discarding the interleaved declarations.
func (n *StyleRule) AtRules() []*AtRule {
	var rules []*AtRule
	for _, item := range n.Items {
		if r, ok := item.(*AtRule); ok {
			rules = append(rules, r)
		}
	}
	return rules
}

// DeclarationOrAtRule is the union Declaration | AtRule, the contents
// of a style block's declaration list (§5.4.4, §9.4 of the CSS Syntax
// spec).
type DeclarationOrAtRule interface {
	Node
	declarationOrAtRule()
}

// Declaration is a name/value pair, optionally followed by
// "!important".
type Declaration struct {
	Name      string
	Value     []ComponentValue
	Important bool
	Loc       token.Location
}

func (n *Declaration) node()                    {}
func (n *Declaration) Location() token.Location { return n.Loc }
func (n *Declaration) declarationOrAtRule()     {}

func (n *AtRule) declarationOrAtRule() {}

// SimpleBlock is a balanced ( ), [ ], or { } pair enclosing component
// values. Opening holds the literal opening delimiter.
type SimpleBlock struct {
	Opening string // "(", "[", or "{"
	Value   []ComponentValue
	Loc     token.Location
}

func (n *SimpleBlock) node()                    {}
func (n *SimpleBlock) Location() token.Location { return n.Loc }
func (n *SimpleBlock) componentValue()          {}

// Function is an identifier immediately followed by "(", zero or more
// component values, and a closing ")".
type Function struct {
	Name  string
	Value []ComponentValue
	Loc   token.Location
}

func (n *Function) node()                    {}
func (n *Function) Location() token.Location { return n.Loc }
func (n *Function) componentValue()          {}

// TokenValue wraps a single token.Token as a ComponentValue.
type TokenValue struct {
	Token token.Token
}

func (n *TokenValue) node()                    {}
func (n *TokenValue) Location() token.Location { return n.Token.Location() }
func (n *TokenValue) componentValue()          {}

// UnicodeRangeValue wraps a decoded unicode-range as a ComponentValue,
// exposing Start/End directly rather than forcing callers to type-
// assert into the underlying token.
type UnicodeRangeValue struct {
	Start uint32
	End   uint32
	Loc   token.Location
}

func (n *UnicodeRangeValue) node()                    {}
func (n *UnicodeRangeValue) Location() token.Location { return n.Loc }
func (n *UnicodeRangeValue) componentValue()          {}

// ComponentValue is the union Token | SimpleBlock | Function, with
// UnicodeRangeValue folded in since the tokenizer emits unicode-range
// as its own token kind.
type ComponentValue interface {
	Node
	componentValue()
}
