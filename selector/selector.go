// Package selector implements the CSS Selectors Level-4 grammar: a
// recursive-descent parser that re-parses a qualified rule's prelude —
// already grouped into ast.ComponentValue by package parser — into the
// ast.Selector tree. It follows package parser's own shape (a small
// cursor type plus peek/advance-driven consumers) rather than a
// tokenizer of its own; the transactional, backtracking style of
// consumption is grounded in scanner.Scanner's own Mark/Reset pair,
// generalized here to run over already-grouped component values rather
// than raw source runes.
package selector

import (
	"strings"

	"github.com/go-csstree/csstree/ast"
	"github.com/go-csstree/csstree/token"
)

// Error is a hard parse failure: unlike the grammar parser, a
// malformed selector cannot be recovered from, since there is no
// well-defined notion of "skip to the next selector" mid-compound.
type Error struct {
	Message string
	Loc     token.Location
}

func (e *Error) Error() string { return e.Message }

// cursor is a Mark/Reset-style reader over an already-grouped
// component value sequence.
type cursor struct {
	values []ast.ComponentValue
	pos    int
}

func newCursor(values []ast.ComponentValue) *cursor { return &cursor{values: values} }

func (c *cursor) mark() int        { return c.pos }
func (c *cursor) reset(mark int)   { c.pos = mark }
func (c *cursor) atEnd() bool      { return c.pos >= len(c.values) }
func (c *cursor) peek() ast.ComponentValue {
	if c.atEnd() {
		return nil
	}
	return c.values[c.pos]
}
func (c *cursor) advance() { c.pos++ }

// peekToken returns the wrapped token.Token of the current component
// value, if it is a plain TokenValue.
func (c *cursor) peekToken() token.Token {
	tv, ok := c.peek().(*ast.TokenValue)
	if !ok {
		return nil
	}
	return tv.Token
}

func (c *cursor) locAt(mark int) token.Location {
	if mark >= len(c.values) {
		if len(c.values) == 0 {
			return token.Location{}
		}
		return c.values[len(c.values)-1].Location()
	}
	start := c.values[mark].Location()
	if c.pos == 0 {
		return start
	}
	end := c.values[c.pos-1].Location()
	return start.Union(end)
}

func isWhitespaceCV(v ast.ComponentValue) bool {
	tv, ok := v.(*ast.TokenValue)
	if !ok {
		return false
	}
	_, ok = tv.Token.(*token.Whitespace)
	return ok
}

// skipWhitespace advances past contiguous whitespace/comment values,
// reporting whether any whitespace was actually skipped.
func (c *cursor) skipWhitespace() bool {
	skipped := false
	for !c.atEnd() {
		tv, ok := c.peek().(*ast.TokenValue)
		if !ok {
			break
		}
		switch tv.Token.(type) {
		case *token.Whitespace, *token.Comment:
			c.advance()
			skipped = true
		default:
			return skipped
		}
	}
	return skipped
}

// ParseSelectorList parses values as a <selector-list>: a
// comma-separated list of complex selectors, each collapsed per the
// compound/complex collapsing invariant.
func ParseSelectorList(values []ast.ComponentValue) ([]ast.Selector, error) {
	groups := splitOnComma(values)
	var out []ast.Selector
	for _, g := range groups {
		sel, err := parseComplexSelectorGroup(g)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

// ParseRelativeSelectorList parses values as a <relative-selector-
// list>, used for the arguments of :has(). Each group may begin with
// an explicit combinator, understood relative to an implied anchor.
func ParseRelativeSelectorList(values []ast.ComponentValue) ([]*ast.RelativeSelector, error) {
	groups := splitOnComma(values)
	var out []*ast.RelativeSelector
	for _, g := range groups {
		rel, err := parseRelativeSelectorGroup(g)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, nil
}

func splitOnComma(values []ast.ComponentValue) [][]ast.ComponentValue {
	var groups [][]ast.ComponentValue
	start := 0
	for i, v := range values {
		if tv, ok := v.(*ast.TokenValue); ok {
			if _, ok := tv.Token.(*token.Comma); ok {
				groups = append(groups, values[start:i])
				start = i + 1
			}
		}
	}
	groups = append(groups, values[start:])
	return groups
}

func trimWhitespace(values []ast.ComponentValue) []ast.ComponentValue {
	start, end := 0, len(values)
	for start < end && isWhitespaceCV(values[start]) {
		start++
	}
	for end > start && isWhitespaceCV(values[end-1]) {
		end--
	}
	return values[start:end]
}

func parseComplexSelectorGroup(group []ast.ComponentValue) (ast.Selector, error) {
	group = trimWhitespace(group)
	if len(group) == 0 {
		return nil, &Error{Message: "empty selector"}
	}
	c := newCursor(group)
	sel, err := parseComplexSelector(c)
	if err != nil {
		return nil, err
	}
	if !c.atEnd() {
		return nil, &Error{Message: "unexpected trailing input in selector", Loc: c.peek().Location()}
	}
	return sel, nil
}

func parseRelativeSelectorGroup(group []ast.ComponentValue) (*ast.RelativeSelector, error) {
	group = trimWhitespace(group)
	if len(group) == 0 {
		return nil, &Error{Message: "empty relative selector"}
	}
	c := newCursor(group)

	var lead *ast.Combinator
	if comb, ok := tryParseExplicitCombinator(c); ok {
		lead = comb
		c.skipWhitespace()
	}

	complex, err := parseComplexSelector(c)
	if err != nil {
		return nil, err
	}
	if !c.atEnd() {
		return nil, &Error{Message: "unexpected trailing input in relative selector", Loc: c.peek().Location()}
	}

	cs, ok := complex.(*ast.ComplexSelector)
	if !ok {
		cs = &ast.ComplexSelector{Children: []ast.Selector{complex}, Loc: complex.Location()}
	}
	loc := cs.Loc
	if lead != nil {
		loc = lead.Loc.Union(loc)
	}
	return &ast.RelativeSelector{Combinator: lead, Complex: cs, Loc: loc}, nil
}

// parseComplexSelector parses <compound-selector> [ <combinator>?
// <compound-selector> ]*, returning the collapsed form per the
// collapsing invariant.
func parseComplexSelector(c *cursor) (ast.Selector, error) {
	startMark := c.mark()
	first, err := parseCompoundSelector(c)
	if err != nil {
		return nil, err
	}
	children := []ast.Selector{first}

	for {
		preWS := c.skipWhitespace()
		if c.atEnd() {
			break
		}
		comb, ok := tryParseExplicitCombinator(c)
		if ok {
			c.skipWhitespace()
		} else if preWS {
			comb = &ast.Combinator{Kind: ast.Descendant, Loc: c.peek().Location()}
		} else {
			break
		}
		next, err := parseCompoundSelector(c)
		if err != nil {
			return nil, err
		}
		children = append(children, comb, next)
	}

	complex := &ast.ComplexSelector{Children: children, Loc: c.locAt(startMark)}
	return complex.Collapse(), nil
}

// tryParseExplicitCombinator consumes ">", "+", "~", or "||" if
// present at the cursor, without requiring surrounding whitespace.
func tryParseExplicitCombinator(c *cursor) (*ast.Combinator, bool) {
	tok := c.peekToken()
	if tok == nil {
		return nil, false
	}
	var kind ast.CombinatorKind
	switch tok.(type) {
	case *token.Delim:
		switch tok.(*token.Delim).Value {
		case '>':
			kind = ast.Child
		case '+':
			kind = ast.NextSibling
		case '~':
			kind = ast.SubsequentSibling
		default:
			return nil, false
		}
	case *token.Column:
		kind = ast.Column
	default:
		return nil, false
	}
	loc := tok.Location()
	c.advance()
	return &ast.Combinator{Kind: kind, Loc: loc}, true
}

// parseCompoundSelector parses [ <type-selector>? <subclass-
// selector>* [ <pseudo-element-selector> <pseudo-class-selector>* ]*
// ]!, returning the collapsed form per the collapsing invariant.
func parseCompoundSelector(c *cursor) (ast.Selector, error) {
	startMark := c.mark()
	comp := &ast.CompoundSelector{}

	if typ, ok := tryParseTypeSelector(c); ok {
		comp.Type = typ
	}

	for {
		if sub, ok := tryParseSubclassSelector(c); ok {
			comp.Subclasses = append(comp.Subclasses, sub)
			continue
		}
		break
	}

	for {
		pe, ok := tryParsePseudoElement(c)
		if !ok {
			break
		}
		group := ast.PseudoElementGroup{PseudoElement: pe}
		for {
			pc, ok := tryParsePseudoClass(c)
			if !ok {
				break
			}
			group.PseudoClasses = append(group.PseudoClasses, pc)
		}
		comp.PseudoElements = append(comp.PseudoElements, group)
	}

	if comp.Type == nil && len(comp.Subclasses) == 0 && len(comp.PseudoElements) == 0 {
		loc := token.Location{}
		if !c.atEnd() {
			loc = c.peek().Location()
		}
		return nil, &Error{Message: "expected a selector", Loc: loc}
	}

	comp.Loc = c.locAt(startMark)
	return comp.Collapse(), nil
}

func tryParseNsPrefix(c *cursor) (*ast.NsPrefix, bool) {
	mark := c.mark()
	tok := c.peekToken()

	// <ns-prefix> = [ <ident-token> | '*' ]? '|' — the name/universal
	// part is itself optional, so a bare "|" (explicit "no namespace")
	// is a valid prefix on its own.
	if d, ok := tok.(*token.Delim); ok && d.Value == '|' {
		loc := tok.Location()
		c.advance()
		return &ast.NsPrefix{Loc: loc}, true
	}

	var value string
	var universal bool
	switch t := tok.(type) {
	case *token.Ident:
		value = t.Value
	case *token.Delim:
		if t.Value != '*' {
			return nil, false
		}
		universal = true
		value = "*"
	default:
		return nil, false
	}
	nameLoc := tok.Location()
	c.advance()

	bar := c.peekToken()
	d, ok := bar.(*token.Delim)
	if !ok || d.Value != '|' {
		c.reset(mark)
		return nil, false
	}
	loc := nameLoc.Union(bar.Location())
	c.advance()
	return &ast.NsPrefix{Value: value, IsUniversal: universal, Loc: loc}, true
}

func tryParseTypeSelector(c *cursor) (*ast.TypeSelector, bool) {
	mark := c.mark()
	prefix, _ := tryParseNsPrefix(c)

	tok := c.peekToken()
	switch t := tok.(type) {
	case *token.Ident:
		c.advance()
		return &ast.TypeSelector{Prefix: prefix, Name: t.Value, Loc: c.locAt(mark)}, true
	case *token.Delim:
		if t.Value == '*' {
			c.advance()
			return &ast.TypeSelector{Prefix: prefix, Name: "*", IsUniversal: true, Loc: c.locAt(mark)}, true
		}
	}
	c.reset(mark)
	return nil, false
}

func tryParseSubclassSelector(c *cursor) (ast.Selector, bool) {
	mark := c.mark()
	tok := c.peekToken()

	switch t := tok.(type) {
	case *token.Hash:
		if t.Kind != token.HashID {
			break
		}
		c.advance()
		return &ast.IdSelector{Name: t.Value, Loc: c.locAt(mark)}, true
	case *token.Delim:
		if t.Value == '.' {
			c.advance()
			if ident, ok := c.peekToken().(*token.Ident); ok {
				c.advance()
				return &ast.ClassSelector{Name: ident.Value, Loc: c.locAt(mark)}, true
			}
			c.reset(mark)
			return nil, false
		}
	}

	if block, ok := c.peek().(*ast.SimpleBlock); ok && block.Opening == "[" {
		c.advance()
		attr, err := parseAttributeSelector(block)
		if err != nil {
			c.reset(mark)
			return nil, false
		}
		return attr, true
	}

	if pc, ok := tryParsePseudoClass(c); ok {
		return pc, true
	}

	c.reset(mark)
	return nil, false
}

func parseAttributeSelector(block *ast.SimpleBlock) (*ast.AttributeSelector, error) {
	inner := newCursor(block.Value)
	inner.skipWhitespace()

	name, ok := tryParseWqName(inner)
	if !ok {
		return nil, &Error{Message: "expected attribute name", Loc: block.Loc}
	}
	attr := &ast.AttributeSelector{Name: *name, Loc: block.Loc}
	inner.skipWhitespace()

	if inner.atEnd() {
		return attr, nil
	}

	op, ok := tryParseAttrOperator(inner)
	if !ok {
		return nil, &Error{Message: "expected attribute operator", Loc: block.Loc}
	}
	attr.Operator = op
	inner.skipWhitespace()

	tok := inner.peekToken()
	switch t := tok.(type) {
	case *token.String:
		attr.Value = t.Value
	case *token.Ident:
		attr.Value = t.Value
	default:
		return nil, &Error{Message: "expected attribute value", Loc: block.Loc}
	}
	inner.advance()
	inner.skipWhitespace()

	if ident, ok := inner.peekToken().(*token.Ident); ok {
		low := strings.ToLower(ident.Value)
		if low == "i" || low == "s" {
			attr.Modifier = low
			inner.advance()
		}
	}
	return attr, nil
}

func tryParseWqName(c *cursor) (*ast.WqName, bool) {
	mark := c.mark()
	prefix, _ := tryParseNsPrefix(c)
	if ident, ok := c.peekToken().(*token.Ident); ok {
		c.advance()
		return &ast.WqName{Prefix: prefix, Name: ident.Value, Loc: c.locAt(mark)}, true
	}
	c.reset(mark)
	return nil, false
}

func tryParseAttrOperator(c *cursor) (ast.AttrOperator, bool) {
	tok := c.peekToken()
	var op ast.AttrOperator
	switch tok.(type) {
	case *token.IncludeMatch:
		op = ast.AttrIncludes
	case *token.DashMatch:
		op = ast.AttrDashMatch
	case *token.PrefixMatch:
		op = ast.AttrPrefix
	case *token.SuffixMatch:
		op = ast.AttrSuffix
	case *token.SubstringMatch:
		op = ast.AttrSubstring
	default:
		if d, ok := tok.(*token.Delim); ok && d.Value == '=' {
			op = ast.AttrEquals
		} else {
			return "", false
		}
	}
	c.advance()
	return op, true
}

// selectorListPseudoClasses re-parse their argument list as a
// selector list rather than an opaque token run.
var selectorListPseudoClasses = map[string]bool{
	"not": true, "is": true, "where": true, "matches": true,
}

func tryParsePseudoClass(c *cursor) (*ast.PseudoClassSelector, bool) {
	mark := c.mark()
	if _, ok := c.peekToken().(*token.Colon); !ok {
		return nil, false
	}
	colonLoc := c.peekToken().Location()
	c.advance()

	switch v := c.peek().(type) {
	case *ast.TokenValue:
		ident, ok := v.Token.(*token.Ident)
		if !ok {
			c.reset(mark)
			return nil, false
		}
		c.advance()
		return &ast.PseudoClassSelector{Name: ident.Value, Loc: colonLoc.Union(ident.Loc)}, true
	case *ast.Function:
		c.advance()
		fn, err := parsePseudoClassFunction(v)
		if err != nil {
			c.reset(mark)
			return nil, false
		}
		return &ast.PseudoClassSelector{Name: v.Name, Function: fn, Loc: colonLoc.Union(v.Loc)}, true
	default:
		c.reset(mark)
		return nil, false
	}
}

func parsePseudoClassFunction(fn *ast.Function) (*ast.PseudoClassFunction, error) {
	name := strings.ToLower(fn.Name)
	pf := &ast.PseudoClassFunction{Name: fn.Name, Loc: fn.Loc}

	switch {
	case name == "has":
		rels, err := ParseRelativeSelectorList(fn.Value)
		if err != nil {
			return nil, err
		}
		for _, r := range rels {
			pf.Arguments = append(pf.Arguments, r)
		}
	case selectorListPseudoClasses[name]:
		sels, err := ParseSelectorList(fn.Value)
		if err != nil {
			return nil, err
		}
		pf.Arguments = sels
	default:
		// Other functional pseudo-classes (nth-child, lang, ...) carry
		// their own microsyntax, not a selector list; Arguments is left
		// empty and the original component values are preserved on Raw
		// instead of being discarded.
		pf.Raw = fn.Value
	}
	return pf, nil
}

// tryParsePseudoElement consumes a "::ident" or "::function(...)"
// pseudo-element: two colons followed by the same shape a bare
// pseudo-class selector takes after a single colon.
func tryParsePseudoElement(c *cursor) (*ast.PseudoElementSelector, bool) {
	mark := c.mark()
	firstTok := c.peekToken()
	if _, ok := firstTok.(*token.Colon); !ok {
		return nil, false
	}
	c.advance()
	if _, ok := c.peekToken().(*token.Colon); !ok {
		c.reset(mark)
		return nil, false
	}
	secondLoc := c.peekToken().Location()
	c.advance()

	switch v := c.peek().(type) {
	case *ast.TokenValue:
		ident, ok := v.Token.(*token.Ident)
		if !ok {
			c.reset(mark)
			return nil, false
		}
		c.advance()
		pc := &ast.PseudoClassSelector{Name: ident.Value, Loc: secondLoc.Union(ident.Loc)}
		return &ast.PseudoElementSelector{PseudoClass: pc, Loc: firstTok.Location().Union(pc.Loc)}, true
	case *ast.Function:
		c.advance()
		fn, err := parsePseudoClassFunction(v)
		if err != nil {
			c.reset(mark)
			return nil, false
		}
		pc := &ast.PseudoClassSelector{Name: v.Name, Function: fn, Loc: secondLoc.Union(v.Loc)}
		return &ast.PseudoElementSelector{PseudoClass: pc, Loc: firstTok.Location().Union(pc.Loc)}, true
	default:
		c.reset(mark)
		return nil, false
	}
}
