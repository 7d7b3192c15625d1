package extract

import (
	"regexp"

	"fortio.org/safecast"

	"contentaudit/internal/lexer"
	"contentaudit/internal/source"
	"contentaudit/internal/token"
)

// anchorPattern matches an id assignment at record indentation.
// The quote itself is scanned by the lexer so escapes are honoured.
var anchorPattern = regexp.MustCompile("(?m)^[ \t]{2,6}id:[ \t]*['\"`]")

// Block is the raw text span of one record.
type Block struct {
	ID    string
	Start uint32 // offset of the anchor line
	End   uint32 // exclusive
	IDPos uint32 // offset of the `id` key, used for line numbers
}

// Blocks locates record anchors in source order.
// Anchors whose id literal is empty or unterminated are skipped.
func Blocks(f *source.File, rep lexer.Reporter) []Block {
	matches := anchorPattern.FindAllIndex(f.Content, -1)
	blocks := make([]Block, 0, len(matches))
	for _, m := range matches {
		start := mustU32(m[0])
		quote := mustU32(m[1] - 1)
		lx := lexer.New(f, lexer.Options{Reporter: rep, Start: quote, End: 0})
		tok := lx.Next()
		if tok.Kind != token.String || tok.Value == "" {
			continue
		}
		blocks = append(blocks, Block{
			ID:    tok.Value,
			Start: start,
			IDPos: start + indentWidth(f.Content[m[0]:m[1]]),
		})
	}
	end := mustU32(len(f.Content))
	for i := len(blocks) - 1; i >= 0; i-- {
		blocks[i].End = end
		end = blocks[i].Start
	}
	return blocks
}

func indentWidth(b []byte) uint32 {
	var n uint32
	for _, c := range b {
		if c != ' ' && c != '\t' {
			break
		}
		n++
	}
	return n
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	return v
}
