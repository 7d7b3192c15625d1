package extract

import (
	"strconv"
	"strings"

	"contentaudit/internal/lexer"
	"contentaudit/internal/source"
	"contentaudit/internal/token"
)

// ValueKind classifies the value scanned after a key.
type ValueKind uint8

const (
	// ValueOpaque is anything the extractor does not interpret (objects, identifiers, broken literals).
	ValueOpaque ValueKind = iota
	ValueString
	ValueInt
	ValueList
)

// Field is one (key, value) pair of a block.
type Field struct {
	Key  string
	Kind ValueKind
	Str  string
	Int  int
	List []string
	Span source.Span // key position
}

// Fields scans a block and returns its key/value pairs in source order.
func Fields(f *source.File, b Block, rep lexer.Reporter) []Field {
	s := &fieldScanner{lx: lexer.New(f, lexer.Options{Reporter: rep, Start: b.Start, End: b.End})}
	return s.run()
}

type fieldScanner struct {
	lx  *lexer.Lexer
	out []Field
}

func (s *fieldScanner) run() []Field {
	for {
		tok := s.lx.Next()
		if tok.Kind == token.EOF {
			return s.out
		}
		if !isKey(tok) {
			continue
		}
		if s.lx.Peek().Kind != token.Colon {
			continue
		}
		s.lx.Next() // ':'
		fld := Field{Key: keyName(tok), Span: tok.Span}
		s.value(&fld)
		s.out = append(s.out, fld)
	}
}

func isKey(tok token.Token) bool {
	return tok.Kind == token.Ident || (tok.Kind == token.String && tok.Quote != '`')
}

func keyName(tok token.Token) string {
	if tok.Kind == token.String {
		return tok.Value
	}
	return tok.Text
}

// value reads the value following "key:". Opaque values are not consumed,
// so keys nested inside objects are still visited by run.
func (s *fieldScanner) value(fld *Field) {
	next := s.lx.Peek()
	switch next.Kind {
	case token.String:
		s.lx.Next()
		fld.Kind = ValueString
		fld.Str = s.concat(next.Value)
	case token.Number:
		s.lx.Next()
		if n, ok := parseInt(next.Text); ok {
			fld.Kind, fld.Int = ValueInt, n
		}
	case token.Minus:
		s.lx.Next()
		if num := s.lx.Peek(); num.Kind == token.Number {
			s.lx.Next()
			if n, ok := parseInt(num.Text); ok {
				fld.Kind, fld.Int = ValueInt, -n
			}
		}
	case token.LBracket:
		s.lx.Next()
		fld.Kind = ValueList
		fld.List = s.list()
	}
}

// concat folds `'a' + 'b'` chains into one value.
func (s *fieldScanner) concat(first string) string {
	if s.lx.Peek().Kind != token.Plus {
		return first
	}
	var b strings.Builder
	b.WriteString(first)
	for s.lx.Peek().Kind == token.Plus {
		s.lx.Next()
		part := s.lx.Peek()
		if part.Kind != token.String {
			break
		}
		s.lx.Next()
		b.WriteString(part.Value)
	}
	return b.String()
}

// list collects every string literal up to the matching ']' in order,
// keeping duplicates. An unclosed list ends at the block end.
func (s *fieldScanner) list() []string {
	items := make([]string, 0, 4)
	depth := 1
	for depth > 0 {
		tok := s.lx.Next()
		switch {
		case tok.Kind == token.EOF:
			return items
		case tok.Kind == token.LBracket:
			depth++
		case tok.Kind == token.RBracket:
			depth--
		case tok.Kind == token.String:
			items = append(items, s.concat(tok.Value))
		}
	}
	return items
}

// parseInt accepts decimal, hex and underscore forms; for fractional or
// exponent forms the leading digit run is used.
func parseInt(text string) (int, bool) {
	if n, err := strconv.ParseInt(text, 0, 64); err == nil {
		return int(n), true
	}
	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
