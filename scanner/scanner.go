// Package scanner implements the CSS Syntax Level-3 tokenizer. It
// generalizes the rune-by-rune dispatch of github.com/benbjohnson/css's
// scanner package to track half-open source ranges instead of
// line/column positions, so every emitted token can answer Location()
// precisely enough for the grammar and selectors parsers' round-trip
// invariants.
package scanner

import (
	"github.com/go-csstree/csstree/token"
)

// eof is returned by read at the end of the rune sequence.
const eof rune = -1

// Error represents a recoverable tokenizer error. The scanner never
// stops on one of these; it records the error and keeps producing a
// best-effort token.
type Error struct {
	Message string
	Loc     token.Location
}

func (e *Error) Error() string { return e.Message }

// Scanner is a position-addressable, single-pass producer of tokens.
// Once a token has been produced it is cached, so Unscan can move the
// read cursor backward without rescanning, and Mark/Reset give callers
// cheap save points for backtracking. (The grammar parser uses only
// Unscan; the selectors parser backtracks over its own cursor.)
type Scanner struct {
	// Errors accumulates every recoverable tokenizer error in
	// discovery order.
	Errors []*Error

	src []rune // preprocessed source
	sp  int    // rune cursor into src for producing the next new token

	cache []token.Token // every token produced so far, in order
	pos   int           // index into cache; Current() is cache[pos-1]
}

// New returns a Scanner over src after preprocessing it: CRLF/CR/FF
// normalize to LF and NUL normalizes to U+FFFD.
func New(src string) *Scanner {
	return &Scanner{src: Preprocess(src)}
}

// Preprocess implements the input preprocessor as a standalone
// function, so its idempotence (Preprocess(Preprocess(x)) ==
// Preprocess(x)) is directly testable without constructing a Scanner.
func Preprocess(src string) []rune {
	runes := []rune(src)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch ch {
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			out = append(out, '\n')
		case '\f':
			out = append(out, '\n')
		case 0:
			out = append(out, '�')
		default:
			out = append(out, ch)
		}
	}
	return out
}

// Mark returns an opaque cursor position that can later be passed to
// Reset to rewind the scanner without re-tokenizing anything.
func (s *Scanner) Mark() int { return s.pos }

// Reset rewinds the scanner to a position previously returned by Mark.
func (s *Scanner) Reset(mark int) { s.pos = mark }

// Current returns the most recently scanned token, or a zero-width EOF
// if Scan has not yet been called.
func (s *Scanner) Current() token.Token {
	if s.pos == 0 {
		return &token.EOF{Loc: token.Location{}}
	}
	return s.cache[s.pos-1]
}

// Unscan moves the read cursor back by one token.
func (s *Scanner) Unscan() {
	if s.pos > 0 {
		s.pos--
	}
}

// Scan returns the next token, either replaying one already produced
// (after an Unscan/Reset) or tokenizing a new one from the source.
func (s *Scanner) Scan() token.Token {
	if s.pos < len(s.cache) {
		tok := s.cache[s.pos]
		s.pos++
		return tok
	}
	tok := s.next()
	s.cache = append(s.cache, tok)
	s.pos++
	return tok
}

// next tokenizes the next token from src starting at sp, per CSS
// Syntax §4.3.1, and advances sp past it.
func (s *Scanner) next() token.Token {
	for {
		start := s.sp
		ch := s.read()

		switch {
		case ch == eof:
			return &token.EOF{Loc: s.loc(start)}
		case isWhitespace(ch):
			return s.scanWhitespace(start)
		case ch == '"' || ch == '\'':
			return s.scanString(start, ch)
		case ch == '#':
			return s.scanHash(start)
		case ch == '(':
			return &token.LParen{Loc: s.loc(start)}
		case ch == ')':
			return &token.RParen{Loc: s.loc(start)}
		case ch == '[':
			return &token.LBrack{Loc: s.loc(start)}
		case ch == ']':
			return &token.RBrack{Loc: s.loc(start)}
		case ch == '{':
			return &token.LBrace{Loc: s.loc(start)}
		case ch == '}':
			return &token.RBrace{Loc: s.loc(start)}
		case ch == ':':
			return &token.Colon{Loc: s.loc(start)}
		case ch == ';':
			return &token.Semicolon{Loc: s.loc(start)}
		case ch == ',':
			return &token.Comma{Loc: s.loc(start)}
		case ch == '/':
			if s.peek() == '*' {
				s.read()
				return s.scanComment(start)
			}
			return &token.Delim{Value: '/', Loc: s.loc(start)}
		case ch == '<':
			if s.peekAt(0) == '!' && s.peekAt(1) == '-' && s.peekAt(2) == '-' {
				s.read()
				s.read()
				s.read()
				return &token.CDO{Loc: s.loc(start)}
			}
			return &token.Delim{Value: '<', Loc: s.loc(start)}
		case ch == '@':
			if s.wouldStartIdent(0) {
				name := s.scanName()
				return &token.AtKeyword{Value: name, Loc: s.loc(start)}
			}
			return &token.Delim{Value: '@', Loc: s.loc(start)}
		case ch == '\\':
			if s.validEscapeAt(-1) {
				s.unread(1)
				return s.scanIdentLike(start)
			}
			s.Errors = append(s.Errors, &Error{Message: "unescaped backslash", Loc: s.loc(start)})
			return &token.Delim{Value: '\\', Loc: s.loc(start)}
		case ch == '+' || ch == '.':
			if s.wouldStartNumber(-1) {
				s.unread(1)
				return s.scanNumeric(start)
			}
			return &token.Delim{Value: ch, Loc: s.loc(start)}
		case ch == '-':
			if s.wouldStartNumber(-1) {
				s.unread(1)
				return s.scanNumeric(start)
			}
			if s.peekAt(0) == '-' && s.peekAt(1) == '>' {
				s.read()
				s.read()
				return &token.CDC{Loc: s.loc(start)}
			}
			if s.wouldStartIdent(-1) {
				s.unread(1)
				return s.scanIdentLike(start)
			}
			return &token.Delim{Value: '-', Loc: s.loc(start)}
		case isDigit(ch):
			s.unread(1)
			return s.scanNumeric(start)
		case ch == 'u' || ch == 'U':
			if tok, ok := s.tryScanUnicodeRange(start); ok {
				return tok
			}
			s.unread(1)
			return s.scanIdentLike(start)
		case isNameStart(ch):
			s.unread(1)
			return s.scanIdentLike(start)
		case ch == '~':
			return s.matchOrDelim(start, ch, func(loc token.Location) token.Token { return &token.IncludeMatch{Loc: loc} })
		case ch == '|':
			if s.peek() == '=' {
				s.read()
				return &token.DashMatch{Loc: s.loc(start)}
			}
			if s.peek() == '|' {
				s.read()
				return &token.Column{Loc: s.loc(start)}
			}
			return &token.Delim{Value: '|', Loc: s.loc(start)}
		case ch == '^':
			return s.matchOrDelim(start, ch, func(loc token.Location) token.Token { return &token.PrefixMatch{Loc: loc} })
		case ch == '$':
			return s.matchOrDelim(start, ch, func(loc token.Location) token.Token { return &token.SuffixMatch{Loc: loc} })
		case ch == '*':
			return s.matchOrDelim(start, ch, func(loc token.Location) token.Token { return &token.SubstringMatch{Loc: loc} })
		default:
			return &token.Delim{Value: ch, Loc: s.loc(start)}
		}
	}
}

// matchOrDelim implements the `<prefix>=` attribute-matcher tokens:
// it consumes a trailing "=" and returns mk's token if present,
// otherwise backs off to a plain Delim.
func (s *Scanner) matchOrDelim(start int, ch rune, mk func(token.Location) token.Token) token.Token {
	if s.peek() == '=' {
		s.read()
		return mk(s.loc(start))
	}
	return &token.Delim{Value: ch, Loc: s.loc(start)}
}

func (s *Scanner) loc(start int) token.Location {
	return token.Location{Start: start, End: s.sp}
}

// read consumes and returns the next rune, or eof.
func (s *Scanner) read() rune {
	if s.sp >= len(s.src) {
		return eof
	}
	ch := s.src[s.sp]
	s.sp++
	return ch
}

// unread pushes back n runes onto the source cursor.
func (s *Scanner) unread(n int) {
	s.sp -= n
	if s.sp < 0 {
		s.sp = 0
	}
}

// peek returns the next rune without consuming it.
func (s *Scanner) peek() rune { return s.peekAt(0) }

// peekAt returns the rune n positions ahead of the cursor (0 = the
// next unread rune) without consuming anything.
func (s *Scanner) peekAt(n int) rune {
	idx := s.sp + n
	if idx < 0 || idx >= len(s.src) {
		return eof
	}
	return s.src[idx]
}

func isWhitespace(ch rune) bool { return ch == ' ' || ch == '\t' || ch == '\n' }

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isLetter(ch rune) bool { return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') }

func isNonASCII(ch rune) bool { return ch >= 0x80 }

func isNameStart(ch rune) bool { return isLetter(ch) || isNonASCII(ch) || ch == '_' }

func isName(ch rune) bool { return isNameStart(ch) || isDigit(ch) || ch == '-' }

func isNonPrintable(ch rune) bool {
	return (ch >= 0 && ch <= 0x08) || ch == 0x0B || (ch >= 0x0E && ch <= 0x1F) || ch == 0x7F
}
