package parser

import (
	"strings"

	"github.com/go-csstree/csstree/ast"
	"github.com/go-csstree/csstree/token"
)

// consumeDeclarationList consumes a list of declarations and at-rules
// (§5.4.4), returning each as *ast.Declaration or *ast.AtRule (both
// implement ast.Node).
func (p *parser) consumeDeclarationList(s Scanner) []ast.Node {
	var items []ast.Node
	for {
		tok := s.Scan()
		switch t := tok.(type) {
		case *token.Whitespace, *token.Comment, *token.Semicolon:
			// nop
		case *token.EOF:
			return items
		case *token.AtKeyword:
			s.Unscan()
			items = append(items, p.consumeAtRule(s))
		case *token.Ident:
			s.Unscan()
			tokens, eofLoc := p.consumeDeclarationTokens(s)
			if d := p.consumeDeclaration(NewTokenScanner(tokens, eofLoc)); d != nil {
				items = append(items, d)
			}
		default:
			p.errorf(t.Location(), "unexpected %s in declaration list", t.String())
			p.skipComponentValues(s)
		}
	}
}

// consumeStyleBlockContents consumes the contents of a style rule's
// block (the "style block" production): declarations and nested
// at-rules, in source order, plus any "&"-prefixed nested qualified
// rules. The nested rules are returned in a separate slice since they
// are not part of the declaration-list production at all.
func (p *parser) consumeStyleBlockContents(s Scanner) (items []ast.DeclarationOrAtRule, nested []*ast.QualifiedRule) {
	for {
		tok := s.Scan()
		switch t := tok.(type) {
		case *token.Whitespace, *token.Comment, *token.Semicolon:
			// nop
		case *token.EOF:
			return items, nested
		case *token.AtKeyword:
			s.Unscan()
			items = append(items, p.consumeAtRule(s))
		case *token.Delim:
			if t.Value == '&' {
				s.Unscan()
				if r := p.consumeQualifiedRule(s); r != nil {
					nested = append(nested, r)
				}
				continue
			}
			p.errorf(t.Location(), "unexpected %s in style block", t.String())
			p.skipComponentValues(s)
		case *token.Ident:
			s.Unscan()
			tokens, eofLoc := p.consumeDeclarationTokens(s)
			if d := p.consumeDeclaration(NewTokenScanner(tokens, eofLoc)); d != nil {
				items = append(items, d)
			}
		default:
			p.errorf(t.Location(), "unexpected %s in style block", t.String())
			p.skipComponentValues(s)
		}
	}
}

// consumeDeclaration consumes a single declaration (§5.4.5). s must
// already be positioned so the next token is the declaration's name.
func (p *parser) consumeDeclaration(s Scanner) *ast.Declaration {
	ident := s.Scan().(*token.Ident)
	d := &ast.Declaration{Name: ident.Value, Loc: ident.Loc}

	p.skipWhitespace(s)

	colon := s.Scan()
	if _, ok := colon.(*token.Colon); !ok {
		p.errorf(colon.Location(), "expected colon, got %q", colon.String())
		return nil
	}

	p.skipWhitespace(s)

	for {
		tok := s.Scan()
		if _, ok := tok.(*token.EOF); ok {
			break
		}
		s.Unscan()
		v := p.consumeComponentValue(s)
		d.Value = append(d.Value, v)
	}

	d.Value, d.Important = cleanImportantFlag(d.Value)

	// d.Loc must cover exactly the declaration's name and (trimmed)
	// value, never the terminating ";" or the enclosing block's span:
	// the synthetic EOF fed to this scanner by consumeDeclarationTokens
	// carries the semicolon's or the whole block's location, not a
	// zero-width boundary, so it must never be unioned into d.Loc.
	for _, v := range d.Value {
		d.Loc = d.Loc.Union(v.Location())
	}
	return d
}

// cleanImportantFlag always strips trailing whitespace from values
// (per §4.3's "read component values until EOF, strip trailing
// whitespace" step), then checks whether the last two remaining
// values are a Delim('!') followed by a case-insensitive
// Ident("important"). If so it additionally strips those two and
// reports important=true.
func cleanImportantFlag(values []ast.ComponentValue) ([]ast.ComponentValue, bool) {
	end := len(values)
	for end > 0 {
		if isWhitespaceValue(values[end-1]) {
			end--
			continue
		}
		break
	}
	values = values[:end]

	if end < 2 {
		return values, false
	}

	ident, ok := tokenIn(values[end-1]).(*token.Ident)
	if !ok || !strings.EqualFold(ident.Value, "important") {
		return values, false
	}
	bang, ok := tokenIn(values[end-2]).(*token.Delim)
	if !ok || bang.Value != '!' {
		return values, false
	}

	kept := end - 2
	for kept > 0 && isWhitespaceValue(values[kept-1]) {
		kept--
	}
	return values[:kept], true
}

func isWhitespaceValue(v ast.ComponentValue) bool {
	tv, ok := v.(*ast.TokenValue)
	if !ok {
		return false
	}
	_, ok = tv.Token.(*token.Whitespace)
	return ok
}

func tokenIn(v ast.ComponentValue) token.Token {
	tv, ok := v.(*ast.TokenValue)
	if !ok {
		return nil
	}
	return tv.Token
}

// consumeDeclarationTokens collects every token up to (but not
// including) the next semicolon or EOF, returning them alongside the
// location to use for the synthetic EOF of a TokenScanner built over
// them.
func (p *parser) consumeDeclarationTokens(s Scanner) ([]token.Token, token.Location) {
	var toks []token.Token
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Semicolon:
			return toks, tok.Location()
		case *token.EOF:
			s.Unscan()
			return toks, tok.Location()
		}
		toks = append(toks, tok)
	}
}

// skipComponentValues discards component values up to (but not
// including) the next semicolon or EOF, used for error recovery.
func (p *parser) skipComponentValues(s Scanner) {
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Semicolon, *token.EOF:
			s.Unscan()
			return
		}
		s.Unscan()
		p.consumeComponentValue(s)
	}
}
