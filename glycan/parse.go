package glycan

import "fmt"

// ParseError represents a glycan parsing error with the byte offset of the
// offending token in the input string.
type ParseError struct {
	Message string
	Pos     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("glycan: %s at offset %d", e.Message, e.Pos)
}

// parser is a recursive-descent parser over a pre-lexed token slice. The
// cursor index is the only mutable state, so subtrees can be parsed and
// tested in isolation.
type parser struct {
	tokens     []Token
	cursor     int
	components []Component
	bonds      []Bond
}

// ParseChai parses the explicit-link grammar:
//
//	glycan := node
//	node   := CCD branch*
//	branch := "(" LINK node ")"
//
// Each branch contributes one bond whose parent atom is "O"+LINK.left and
// whose child atom is "C"+LINK.right.
func ParseChai(input string) (*Graph, error) {
	tokens, err := tokenize(input, true)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if _, err := p.parseChaiNode(); err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return &Graph{Components: p.components, Bonds: p.bonds}, nil
}

// ParseServer parses the implicit-link AlphaFold Server grammar:
//
//	glycan := node
//	node   := CCD branch*
//	branch := "(" node ")"
//
// Linkage is not part of the notation; every bond's parent atom is
// assigned by InferParentAtom and the child atom is always "C1". Bonds
// produced this way are a deterministic best-effort reading, not recorded
// chemistry.
func ParseServer(input string) (*Graph, error) {
	tokens, err := tokenize(input, false)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if _, err := p.parseServerNode(); err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return &Graph{Components: p.components, Bonds: p.bonds}, nil
}

// parseChaiNode parses one node and its branches, returning the node's
// 1-based component index.
func (p *parser) parseChaiNode() (int, error) {
	tok, err := p.expect(TokenCCD)
	if err != nil {
		return 0, err
	}
	idx := len(p.components) + 1
	p.components = append(p.components, Component{CCD: tok.Text})

	for p.peek().Type == TokenLParen {
		p.advance() // consume '('
		link, err := p.expect(TokenLink)
		if err != nil {
			return 0, err
		}
		childIdx, err := p.parseChaiNode()
		if err != nil {
			return 0, err
		}
		p.bonds = append(p.bonds, Bond{
			ParentIndex: idx,
			ParentAtom:  "O" + link.Left,
			ChildIndex:  childIdx,
			ChildAtom:   "C" + link.Right,
		})
		if _, err := p.expect(TokenRParen); err != nil {
			return 0, err
		}
	}
	return idx, nil
}

// parseServerNode parses one node and its branches, inferring linkage for
// each edge once the child subtree is complete.
func (p *parser) parseServerNode() (int, error) {
	tok, err := p.expect(TokenCCD)
	if err != nil {
		return 0, err
	}
	idx := len(p.components) + 1
	p.components = append(p.components, Component{CCD: tok.Text})

	childCount := 0
	for p.peek().Type == TokenLParen {
		p.advance() // consume '('
		childIdx, err := p.parseServerNode()
		if err != nil {
			return 0, err
		}
		trunk := childCount == 0
		ordinal := 0
		if !trunk {
			ordinal = childCount // 1-based among post-trunk branches
		}
		parentAtom := InferParentAtom(
			p.components[idx-1].CCD,
			p.components[childIdx-1].CCD,
			trunk,
			ordinal,
		)
		p.bonds = append(p.bonds, Bond{
			ParentIndex: idx,
			ParentAtom:  parentAtom,
			ChildIndex:  childIdx,
			ChildAtom:   "C1",
		})
		if _, err := p.expect(TokenRParen); err != nil {
			return 0, err
		}
		childCount++
	}
	return idx, nil
}

// peek returns the token at the cursor without advancing.
func (p *parser) peek() Token {
	if p.cursor >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: p.endPos()}
	}
	return p.tokens[p.cursor]
}

// advance moves past the current token and returns it.
func (p *parser) advance() Token {
	tok := p.peek()
	if p.cursor < len(p.tokens) {
		p.cursor++
	}
	return tok
}

// expect advances past a token of the given type or fails.
func (p *parser) expect(typ TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != typ {
		return tok, &ParseError{
			Message: fmt.Sprintf("expected %s, got %s", typ, tok.Type),
			Pos:     tok.Pos,
		}
	}
	p.advance()
	return tok, nil
}

// expectEnd fails if any tokens remain after a complete tree.
func (p *parser) expectEnd() error {
	if tok := p.peek(); tok.Type != TokenEOF {
		return &ParseError{
			Message: fmt.Sprintf("trailing %s after complete glycan", tok.Type),
			Pos:     tok.Pos,
		}
	}
	return nil
}

func (p *parser) endPos() int {
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		return last.Pos + len(last.Text)
	}
	return 0
}
