package token

import (
	"contentaudit/internal/source"
)

// Token represents a single scanned token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value string // decoded string literal body
	Quote byte   // '\'', '"' or '`' for String tokens
}

// IsLiteral reports whether the token is a string or numeric literal.
func (t Token) IsLiteral() bool {
	return t.Kind == String || t.Kind == Number
}

// Is reports whether the token is an identifier spelled name.
func (t Token) Is(name string) bool {
	return t.Kind == Ident && t.Text == name
}
