package token

// Kind represents the category of a scanned token.
type Kind uint8

const (
	// Invalid indicates an unterminated or otherwise broken token.
	Invalid Kind = iota
	// EOF marks the end of the scanned range.
	EOF

	Ident
	String
	Number

	Colon
	Comma
	LBracket
	RBracket
	LBrace
	RBrace
	LParen
	RParen
	Plus
	Minus

	// Other is any byte the scanner does not care about (operators, '=' and so on).
	Other
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Ident:    "Ident",
	String:   "String",
	Number:   "Number",
	Colon:    ":",
	Comma:    ",",
	LBracket: "[",
	RBracket: "]",
	LBrace:   "{",
	RBrace:   "}",
	LParen:   "(",
	RParen:   ")",
	Plus:     "+",
	Minus:    "-",
	Other:    "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsOpen reports whether k opens a nesting level.
func (k Kind) IsOpen() bool {
	return k == LBracket || k == LBrace || k == LParen
}

// IsClose reports whether k closes a nesting level.
func (k Kind) IsClose() bool {
	return k == RBracket || k == RBrace || k == RParen
}
