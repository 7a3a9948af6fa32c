package parser

import (
	"github.com/go-csstree/csstree/ast"
	"github.com/go-csstree/csstree/scanner"
	"github.com/go-csstree/csstree/selector"
	"github.com/go-csstree/csstree/token"
)

// ParseCssStylesheet parses source as a stylesheet and promotes every
// top-level qualified rule to a StyleRule: its prelude is re-parsed as
// a selector list (package selector) and its block as a style-block's
// contents. A qualified rule whose prelude is not a valid selector list
// is kept unpromoted and an error is recorded for it. At-rules pass
// through unchanged. Errors recorded while
// promoting a rule do not stop the promotion of the rules around it.
func ParseCssStylesheet(source string) (*ast.CssStylesheet, []error) {
	s := scanner.New(source)
	var p parser
	rules := p.consumeRuleList(s, true)

	promoted := make([]ast.Rule, len(rules))
	for i, r := range rules {
		promoted[i] = p.promote(r)
	}
	return &ast.CssStylesheet{Rules: promoted, Loc: rulesLoc(promoted)}, errSlice(p.errors)
}

func (p *parser) promote(r ast.Rule) ast.Rule {
	qr, ok := r.(*ast.QualifiedRule)
	if !ok {
		return r
	}

	selectors, err := selector.ParseSelectorList(qr.Prelude)
	if err != nil {
		p.errorf(qr.Location(), "invalid selector: %s", err.Error())
		return qr
	}

	style := &ast.StyleRule{Selectors: selectors, Loc: qr.Loc}
	if qr.Block != nil {
		blockScanner := NewTokenScanner(blockTokens(qr.Block), qr.Block.Loc)
		style.Items, style.NestedRules = p.consumeStyleBlockContents(blockScanner)
	}
	return style
}

// blockTokens re-flattens a SimpleBlock's component values back into a
// token stream so consumeStyleBlockContents (which drives a
// Scanner, not a []ComponentValue) can walk it. This mirrors how the
// grammar parser itself only ever consumes tokens, never pre-grouped
// values, for its own declaration lists.
func blockTokens(b *ast.SimpleBlock) []token.Token {
	var toks []token.Token
	flattenComponentValues(b.Value, &toks)
	return toks
}

func flattenComponentValues(values []ast.ComponentValue, out *[]token.Token) {
	for _, v := range values {
		switch cv := v.(type) {
		case *ast.TokenValue:
			*out = append(*out, cv.Token)
		case *ast.SimpleBlock:
			*out = append(*out, openingToken(cv))
			flattenComponentValues(cv.Value, out)
			*out = append(*out, closingToken(cv))
		case *ast.Function:
			*out = append(*out, &token.Function{Value: cv.Name, Loc: cv.Loc})
			flattenComponentValues(cv.Value, out)
			*out = append(*out, &token.RParen{Loc: cv.Loc})
		case *ast.UnicodeRangeValue:
			*out = append(*out, &token.UnicodeRange{Start: cv.Start, End: cv.End, Loc: cv.Loc})
		}
	}
}

func openingToken(b *ast.SimpleBlock) token.Token {
	switch b.Opening {
	case "[":
		return &token.LBrack{Loc: b.Loc}
	case "{":
		return &token.LBrace{Loc: b.Loc}
	default:
		return &token.LParen{Loc: b.Loc}
	}
}

func closingToken(b *ast.SimpleBlock) token.Token {
	switch b.Opening {
	case "[":
		return &token.RBrack{Loc: b.Loc}
	case "{":
		return &token.RBrace{Loc: b.Loc}
	default:
		return &token.RParen{Loc: b.Loc}
	}
}
