package glycan

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType uint8

const (
	TokenEOF TokenType = iota

	TokenCCD    // NAG, BMA, MAN-style identifiers
	TokenLink   // 4-1 (Chai grammar only)
	TokenLParen // (
	TokenRParen // )
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenCCD:
		return "CCD"
	case TokenLink:
		return "LINK"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexer token. Pos is the byte offset of the token's
// first character in the input. Left and Right hold the two numeric halves
// of a TokenLink.
type Token struct {
	Type  TokenType
	Text  string
	Left  string
	Right string
	Pos   int
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Text == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}

// lexer tokenizes glycan notation text. The Chai grammar additionally
// recognizes explicit link tokens like "4-1"; the server grammar treats a
// leading digit as an illegal character.
type lexer struct {
	input string
	pos   int
	links bool
}

// tokenize lexes the whole input. Whitespace between tokens is ignored.
func tokenize(input string, links bool) ([]Token, error) {
	l := &lexer{input: input, links: links}
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *lexer) next() (Token, error) {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Text: "(", Pos: start}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Text: ")", Pos: start}, nil
	}

	if isDigit(ch) {
		if l.links {
			return l.scanLink()
		}
		return Token{}, &ParseError{
			Message: fmt.Sprintf("unexpected character %q", ch),
			Pos:     start,
		}
	}

	if isAlpha(ch) {
		return l.scanCCD(), nil
	}

	return Token{}, &ParseError{
		Message: fmt.Sprintf("unexpected character %q", ch),
		Pos:     start,
	}
}

// scanLink scans an explicit link token: DIGITS "-" DIGITS.
func (l *lexer) scanLink() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	left := l.input[start:l.pos]
	if l.pos >= len(l.input) || l.input[l.pos] != '-' {
		return Token{}, &ParseError{Message: "malformed link", Pos: start}
	}
	l.pos++ // consume '-'
	rightStart := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos == rightStart {
		return Token{}, &ParseError{Message: "malformed link", Pos: start}
	}
	return Token{
		Type:  TokenLink,
		Text:  l.input[start:l.pos],
		Left:  left,
		Right: l.input[rightStart:l.pos],
		Pos:   start,
	}, nil
}

// scanCCD scans a CCD code: ALPHA (ALNUM | "-" | "_")*.
func (l *lexer) scanCCD() Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) && isCCDContinue(l.input[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenCCD, Text: l.input[start:l.pos], Pos: start}
}

// Character classification

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isCCDContinue(ch byte) bool {
	return isAlpha(ch) || isDigit(ch) || ch == '-' || ch == '_'
}
