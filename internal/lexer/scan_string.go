package lexer

import (
	"strings"
	"unicode/utf8"

	"contentaudit/internal/token"
)

// scanQuoted scans a '...' or "..." literal.
// Hand-authored files sometimes break a quoted string across lines; the
// newline is kept in the value and reported, the literal is not cut short.
func (lx *Lexer) scanQuoted(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	var val strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp), Value: val.String(), Quote: quote}
		case b == '\\':
			lx.scanEscape(&val)
		case b == '\n':
			lx.report("NewlineInString", lx.cursor.SpanFrom(start), "newline in string literal")
			val.WriteByte(lx.cursor.Bump())
		default:
			lx.bumpInto(&val)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report("UnterminatedString", sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp), Value: val.String(), Quote: quote}
}

// scanTemplate scans a `...` literal. ${...} substitutions are kept verbatim
// in the value; a backtick nested inside a substitution does not close the literal.
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '`'
	var val strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '`':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp), Value: val.String(), Quote: '`'}
		case b == '\\':
			lx.scanEscape(&val)
		case b == '$':
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '$' && b1 == '{' {
				lx.scanSubstitution(&val)
				continue
			}
			val.WriteByte(lx.cursor.Bump())
		default:
			lx.bumpInto(&val)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report("UnterminatedString", sp, "unterminated template literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp), Value: val.String(), Quote: '`'}
}

func (lx *Lexer) scanSubstitution(val *strings.Builder) {
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		val.WriteByte(b)
		switch b {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

func (lx *Lexer) bumpInto(val *strings.Builder) {
	r, sz := lx.cursor.PeekRune()
	if r == utf8.RuneError && sz <= 1 {
		// invalid UTF-8: keep the raw byte
		val.WriteByte(lx.cursor.Bump())
		return
	}
	val.WriteRune(r)
	lx.cursor.BumpRune()
}

// scanEscape decodes one backslash escape into val.
// Unknown escapes decode to the escaped character itself.
func (lx *Lexer) scanEscape(val *strings.Builder) {
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		val.WriteByte('\\')
		return
	}
	b := lx.cursor.Peek()
	switch b {
	case 'n':
		val.WriteByte('\n')
	case 't':
		val.WriteByte('\t')
	case 'r':
		val.WriteByte('\r')
	case '0':
		val.WriteByte(0)
	case '\n':
		// line continuation
	case 'x':
		lx.cursor.Bump()
		if r, ok := lx.readHex(2); ok {
			val.WriteRune(r)
		} else {
			val.WriteByte('x')
		}
		return
	case 'u':
		lx.cursor.Bump()
		if lx.cursor.Eat('{') {
			r, ok := lx.readHex(6)
			lx.cursor.Eat('}')
			if ok {
				val.WriteRune(r)
			}
			return
		}
		if r, ok := lx.readHex(4); ok {
			val.WriteRune(r)
		} else {
			val.WriteByte('u')
		}
		return
	default:
		lx.bumpInto(val)
		return
	}
	lx.cursor.Bump()
}

// readHex reads up to max hex digits; for fixed-width escapes (2, 4) all digits are required.
func (lx *Lexer) readHex(max int) (rune, bool) {
	mark := lx.cursor.Mark()
	var r rune
	n := 0
	for n < max && isHex(lx.cursor.Peek()) {
		r = r<<4 | hexVal(lx.cursor.Bump())
		n++
	}
	if n == 0 || (max <= 4 && n != max) {
		lx.cursor.Reset(mark)
		return 0, false
	}
	return r, true
}
