package lexer

import (
	"contentaudit/internal/token"
)

var punctKinds = [256]token.Kind{
	':': token.Colon,
	',': token.Comma,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	'(': token.LParen,
	')': token.RParen,
	'+': token.Plus,
	'-': token.Minus,
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	kind := punctKinds[b]
	if kind == token.Invalid {
		kind = token.Other
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
