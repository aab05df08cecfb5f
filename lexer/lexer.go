// Package lexer implements the lexical analysis stage of the PatternScript
// pipeline: source text in, an ordered Token sequence (or the first lexical
// Error) out.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"patternscript/token"
)

// Lexer scans a single PatternScript source string. It is single-pass and
// stateless between calls to Tokenize; construct a new one per source.
type Lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// New returns a Lexer ready to scan src.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// Tokenize scans the entire source and returns its token sequence,
// terminated by a single END_OF_INPUT (token.EOF) token. It returns the
// first lexical Error encountered, if any, and no tokens.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) errorf(pos token.Position, kind ErrorKind, msg string) error {
	return &Error{Pos: pos, Kind: kind, Msg: msg}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return utf8.RuneError
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return utf8.RuneError
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.col}
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentCont(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
func isDigit(r rune) bool      { return r >= '0' && r <= '9' }

// next scans and returns the next token, skipping leading whitespace.
func (l *Lexer) next() (token.Token, error) {
	l.skipWhitespace()
	pos := l.position()

	if l.atEnd() {
		return token.Token{Kind: token.EOF, Pos: pos}, nil
	}

	r := l.peek()
	switch {
	case isIdentStart(r):
		return l.scanIdent(pos), nil
	case isDigit(r):
		return l.scanNumber(pos), nil
	case r == '"':
		return l.scanString(pos)
	}

	return l.scanOperator(pos)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) scanIdent(pos token.Position) token.Token {
	start := l.pos
	for !l.atEnd() && isIdentCont(l.peek()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	return token.Token{Kind: token.Lookup(text), Lexeme: text, Pos: pos}
}

func (l *Lexer) scanNumber(pos token.Position) token.Token {
	start := l.pos
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	return token.Token{Kind: token.NUMBER, Lexeme: text, Pos: pos}
}

// scanString consumes a double-quoted literal. The opening quote has not
// yet been consumed on entry. \" and \\ are the only recognized escapes;
// any other backslash is copied through verbatim along with the rune that
// follows it.
func (l *Lexer) scanString(pos token.Position) (token.Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.atEnd() {
			return token.Token{}, l.errorf(pos, UnterminatedString, "unterminated string literal")
		}
		r := l.peek()
		if r == '\n' {
			return token.Token{}, l.errorf(pos, UnterminatedString, "unterminated string literal")
		}
		if r == '"' {
			l.advance()
			return token.Token{Kind: token.STRING, Lexeme: b.String(), Pos: pos}, nil
		}
		if r == '\\' {
			next := l.peekAt(1)
			if next == '"' || next == '\\' {
				l.advance()
				b.WriteRune(l.advance())
				continue
			}
		}
		b.WriteRune(l.advance())
	}
}

func (l *Lexer) scanOperator(pos token.Position) (token.Token, error) {
	r := l.advance()

	two := func(second rune, kind token.Kind, one token.Kind) token.Token {
		if l.peek() == second {
			l.advance()
			return token.Token{Kind: kind, Lexeme: string(r) + string(second), Pos: pos}
		}
		return token.Token{Kind: one, Lexeme: string(r), Pos: pos}
	}

	switch r {
	case '+':
		return token.Token{Kind: token.PLUS, Lexeme: "+", Pos: pos}, nil
	case '-':
		return token.Token{Kind: token.MINUS, Lexeme: "-", Pos: pos}, nil
	case '*':
		return token.Token{Kind: token.STAR, Lexeme: "*", Pos: pos}, nil
	case '%':
		return token.Token{Kind: token.PERCENT, Lexeme: "%", Pos: pos}, nil
	case '~':
		return token.Token{Kind: token.TILDE, Lexeme: "~", Pos: pos}, nil
	case ':':
		return token.Token{Kind: token.COLON, Lexeme: ":", Pos: pos}, nil
	case '{':
		return token.Token{Kind: token.LBRACE, Lexeme: "{", Pos: pos}, nil
	case '}':
		return token.Token{Kind: token.RBRACE, Lexeme: "}", Pos: pos}, nil
	case '(':
		return token.Token{Kind: token.LPAREN, Lexeme: "(", Pos: pos}, nil
	case ')':
		return token.Token{Kind: token.RPAREN, Lexeme: ")", Pos: pos}, nil
	case '=':
		return two('=', token.EQ, token.ASSIGN), nil
	case '<':
		return two('=', token.LE, token.LT), nil
	case '>':
		return two('=', token.GE, token.GT), nil
	case '.':
		if l.peek() == '.' {
			l.advance()
			return token.Token{Kind: token.RANGE, Lexeme: "..", Pos: pos}, nil
		}
		return token.Token{}, l.errorf(pos, IllegalCharacter, "illegal character '.'")
	case '!':
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.NEQ, Lexeme: "!=", Pos: pos}, nil
		}
		return token.Token{}, l.errorf(pos, IllegalCharacter, "illegal character '!'")
	default:
		return token.Token{}, l.errorf(pos, IllegalCharacter, "illegal character "+string(r))
	}
}
