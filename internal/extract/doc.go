// Package extract turns hand-authored question files into records without a
// full language parser.
//
// Extraction runs in three steps:
//
//   - Blocks finds every line-anchored `id:` assignment (2 to 6 leading
//     spaces, followed by a quoted literal) and cuts the file into blocks,
//     each spanning from one anchor to the next anchor or end of file.
//   - Fields runs the literal scanner from internal/lexer over one block and
//     emits (key, value) pairs in source order. Values are a string (with
//     `+` concatenation folded), an integer, a list of strings, or opaque.
//   - Build maps the pairs onto a record.Record. The first occurrence of a key
//     inside a block wins; keys that never appear stay absent.
//
// Nothing in this package returns an error. Malformed literals are reported
// to the optional zap logger at debug level and the affected field is left
// absent.
package extract
