package parser

import (
	"github.com/go-csstree/csstree/ast"
	"github.com/go-csstree/csstree/token"
)

// consumeRuleList consumes a list of rules (§5.4.1). At the top level,
// CDO/CDC tokens are discarded; nested, they are treated as the start
// of a qualified rule.
func (p *parser) consumeRuleList(s Scanner, topLevel bool) []ast.Rule {
	var rules []ast.Rule
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Whitespace, *token.Comment:
			// nop
		case *token.EOF:
			return rules
		case *token.CDO, *token.CDC:
			if !topLevel {
				s.Unscan()
				if r := p.consumeQualifiedRule(s); r != nil {
					rules = append(rules, r)
				}
			}
		case *token.AtKeyword:
			s.Unscan()
			rules = append(rules, p.consumeAtRule(s))
		default:
			s.Unscan()
			if r := p.consumeQualifiedRule(s); r != nil {
				rules = append(rules, r)
			}
		}
	}
}

// consumeAtRule consumes a single at-rule (§5.4.2). The leading
// at-keyword must be the next token.
func (p *parser) consumeAtRule(s Scanner) *ast.AtRule {
	atkw := s.Scan().(*token.AtKeyword)
	r := &ast.AtRule{Name: atkw.Value, Loc: atkw.Loc}

	for {
		tok := s.Scan()
		switch t := tok.(type) {
		case *token.Semicolon:
			r.Loc = r.Loc.Union(t.Loc)
			return r
		case *token.EOF:
			p.errorf(t.Loc, "unexpected EOF in at-rule")
			r.Loc = r.Loc.Union(t.Loc)
			return r
		case *token.LBrace:
			r.Block = p.consumeSimpleBlock(s, t)
			r.Loc = r.Loc.Union(r.Block.Loc)
			return r
		default:
			s.Unscan()
			v := p.consumeComponentValue(s)
			r.Prelude = append(r.Prelude, v)
			r.Loc = r.Loc.Union(v.Location())
		}
	}
}

// consumeQualifiedRule consumes a single qualified rule (§5.4.3).
// Returns nil (with a recorded error) if EOF is hit before the block.
func (p *parser) consumeQualifiedRule(s Scanner) *ast.QualifiedRule {
	r := &ast.QualifiedRule{}
	started := false

	for {
		tok := s.Scan()
		switch t := tok.(type) {
		case *token.EOF:
			p.errorf(t.Loc, "unexpected EOF in qualified rule")
			return nil
		case *token.LBrace:
			r.Block = p.consumeSimpleBlock(s, t)
			if !started {
				r.Loc = r.Block.Loc
			} else {
				r.Loc = r.Loc.Union(r.Block.Loc)
			}
			return r
		default:
			s.Unscan()
			v := p.consumeComponentValue(s)
			r.Prelude = append(r.Prelude, v)
			if !started {
				r.Loc = v.Location()
				started = true
			} else {
				r.Loc = r.Loc.Union(v.Location())
			}
		}
	}
}

// consumeComponentValue consumes a single component value (§5.4.6).
func (p *parser) consumeComponentValue(s Scanner) ast.ComponentValue {
	tok := s.Scan()
	switch t := tok.(type) {
	case *token.LBrace, *token.LBrack, *token.LParen:
		return p.consumeSimpleBlock(s, tok)
	case *token.Function:
		return p.consumeFunction(s, t)
	case *token.UnicodeRange:
		return &ast.UnicodeRangeValue{Start: t.Start, End: t.End, Loc: t.Loc}
	default:
		return &ast.TokenValue{Token: tok}
	}
}

// consumeSimpleBlock consumes a simple block (§5.4.7), given the
// opening token already scanned.
func (p *parser) consumeSimpleBlock(s Scanner, opening token.Token) *ast.SimpleBlock {
	b := &ast.SimpleBlock{Opening: openingGlyph(opening), Loc: opening.Location()}
	appendValue := func(v ast.ComponentValue) {
		b.Value = append(b.Value, v)
		b.Loc = b.Loc.Union(v.Location())
	}
	for {
		tok := s.Scan()
		switch t := tok.(type) {
		case *token.EOF:
			p.errorf(t.Loc, "unexpected EOF in block")
			b.Loc = b.Loc.Union(t.Loc)
			return b
		case *token.RBrack:
			if b.Opening == "[" {
				b.Loc = b.Loc.Union(t.Loc)
				return b
			}
			s.Unscan()
			appendValue(p.consumeComponentValue(s))
		case *token.RBrace:
			if b.Opening == "{" {
				b.Loc = b.Loc.Union(t.Loc)
				return b
			}
			s.Unscan()
			appendValue(p.consumeComponentValue(s))
		case *token.RParen:
			if b.Opening == "(" {
				b.Loc = b.Loc.Union(t.Loc)
				return b
			}
			s.Unscan()
			appendValue(p.consumeComponentValue(s))
		default:
			s.Unscan()
			appendValue(p.consumeComponentValue(s))
		}
	}
}

// consumeFunction consumes a function (§5.4.8), given the
// function-token already scanned.
func (p *parser) consumeFunction(s Scanner, fn *token.Function) *ast.Function {
	f := &ast.Function{Name: fn.Value, Loc: fn.Loc}
	for {
		tok := s.Scan()
		switch t := tok.(type) {
		case *token.EOF:
			p.errorf(t.Loc, "unexpected EOF in function")
			f.Loc = f.Loc.Union(t.Loc)
			return f
		case *token.RParen:
			f.Loc = f.Loc.Union(t.Loc)
			return f
		default:
			s.Unscan()
			v := p.consumeComponentValue(s)
			f.Value = append(f.Value, v)
			f.Loc = f.Loc.Union(v.Location())
		}
	}
}

func openingGlyph(tok token.Token) string {
	switch tok.(type) {
	case *token.LBrack:
		return "["
	case *token.LBrace:
		return "{"
	default:
		return "("
	}
}

// skipWhitespace skips over contiguous whitespace and comment tokens.
func (p *parser) skipWhitespace(s Scanner) {
	for {
		switch s.Scan().(type) {
		case *token.Whitespace, *token.Comment:
			// nop
		default:
			s.Unscan()
			return
		}
	}
}
