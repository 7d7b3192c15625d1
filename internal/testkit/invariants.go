// Package testkit holds invariant checks shared by tests.
package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"contentaudit/internal/extract"
	"contentaudit/internal/source"
)

// CheckBlockInvariants runs a minimal set of span invariants on the blocks of a file:
// 1) blocks are non-empty, ordered and tile the file from the first anchor to EOF
// 2) every IDPos is inside its block and points at the `id` key
// 3) every field key span is fully contained in its block
func CheckBlockInvariants(sf *source.File, blocks []extract.Block) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	for i, b := range blocks {
		if b.End <= b.Start {
			return fmt.Errorf("block %d (%s) is empty: [%d, %d)", i, b.ID, b.Start, b.End)
		}
		if i+1 < len(blocks) && b.End != blocks[i+1].Start {
			return fmt.Errorf("block %d (%s) ends at %d, next starts at %d", i, b.ID, b.End, blocks[i+1].Start)
		}
		if i == len(blocks)-1 && b.End != lenContent {
			return fmt.Errorf("last block ends at %d, file is %d bytes", b.End, lenContent)
		}
		if b.IDPos < b.Start || b.IDPos >= b.End {
			return fmt.Errorf("block %d (%s) id position %d outside [%d, %d)", i, b.ID, b.IDPos, b.Start, b.End)
		}
		if !bytes.HasPrefix(sf.Content[b.IDPos:], []byte("id")) {
			return fmt.Errorf("block %d (%s) id position %d does not point at the id key", i, b.ID, b.IDPos)
		}

		for _, fld := range extract.Fields(sf, b, nil) {
			if fld.Span.Start < b.Start || fld.Span.End > b.End || fld.Span.Empty() {
				return fmt.Errorf("block %d (%s) field %q span [%d, %d) escapes the block",
					i, b.ID, fld.Key, fld.Span.Start, fld.Span.End)
			}
		}
	}
	return nil
}
