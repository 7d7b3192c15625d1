package lexer

import (
	"contentaudit/internal/token"
)

func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.cursor.PeekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.cursor.BumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		// stray non-letter rune: consume it so the scanner always advances
		lx.cursor.BumpRune()
		sp = lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Other, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}
}
