package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"contentaudit/internal/source"
)

// cursor walks a byte window [Off, Limit) of one file. Offsets stay absolute
// so spans can be resolved against the whole file.
type cursor struct {
	src   []byte
	file  source.FileID
	Off   uint32
	Limit uint32
}

// newCursor clamps [start, end) to the file; end == 0 means up to EOF.
func newCursor(f *source.File, start, end uint32) cursor {
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("%s: content too large: %w", f.Path, err))
	}
	if end == 0 || end > size {
		end = size
	}
	start = min(start, end)
	return cursor{src: f.Content, file: f.ID, Off: start, Limit: end}
}

func (c *cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte or 0 at the end of the window.
func (c *cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// Peek2 returns the current and the next byte; ok is false when fewer than two remain.
func (c *cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], true
}

func (c *cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat advances past b if it is the current byte.
func (c *cursor) Eat(b byte) bool {
	if c.Peek() != b || c.EOF() {
		return false
	}
	c.Off++
	return true
}

// PeekRune decodes the rune at the cursor; size is 0 at the end of the window.
func (c *cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.src[c.Off:c.Limit])
}

// BumpRune skips one rune; invalid UTF-8 advances a single byte.
func (c *cursor) BumpRune() {
	_, size := c.PeekRune()
	c.Off += uint32(size) //nolint:gosec // size is at most utf8.UTFMax
}

type mark uint32

func (c *cursor) Mark() mark { return mark(c.Off) }

// Reset откатывает курсор к сохранённой метке.
func (c *cursor) Reset(m mark) { c.Off = uint32(m) }

func (c *cursor) SpanFrom(m mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}
