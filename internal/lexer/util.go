package lexer

import "unicode"

const utf8RuneSelf = 0x80

// Identifier bytes follow the host language: letters, digits, '_' and '$'.
func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentContinueRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool { return hexVal(b) >= 0 }

// hexVal returns the digit value of b, or -1.
func hexVal(b byte) rune {
	switch {
	case isDec(b):
		return rune(b - '0')
	case 'a' <= b && b <= 'f':
		return rune(b-'a') + 10
	case 'A' <= b && b <= 'F':
		return rune(b-'A') + 10
	}
	return -1
}
