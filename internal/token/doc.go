// Package token defines the lexical vocabulary of the literal scanner.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - String tokens carry their decoded value in Token.Value and the opening
//     quote byte in Token.Quote; every other kind leaves Value empty.
//   - Comments and whitespace never appear in the token stream.
package token
