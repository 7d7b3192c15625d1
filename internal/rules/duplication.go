package rules

import (
	"strings"

	"contentaudit/internal/diag"
	"contentaudit/internal/textnorm"
)

// checkDuplicateOptions flags every option equal (trim + lowercase) to an
// earlier one, at the index of the repeat.
func checkDuplicateOptions(c *recordCtx) {
	opts := c.rec.Options.V
	seen := make(map[string]struct{}, len(opts))
	for i, opt := range opts {
		key := textnorm.Key(opt)
		if _, dup := seen[key]; dup {
			c.critical(diag.CatDuplicateOptions, "Duplicate option at index %d: %q", i, opt).
				With("optionIndex", i).
				With("value", opt).
				With("options", opts).
				Emit()
		}
		seen[key] = struct{}{}
	}
}

// checkNearDuplicateOptions compares every pair after punctuation stripping.
// Equal pairs are CRITICAL; pairs where one contains the other and the
// lengths are within the similarity ratio are HIGH.
func checkNearDuplicateOptions(c *recordCtx) {
	opts := c.rec.Options.V
	if len(opts) < c.t.MinOptions {
		return
	}
	norm := make([]string, len(opts))
	lens := make([]int, len(opts))
	for i, opt := range opts {
		norm[i] = textnorm.Loose(opt)
		lens[i] = textnorm.Len(norm[i])
	}
	for i := 0; i < len(norm); i++ {
		for j := i + 1; j < len(norm); j++ {
			if norm[i] == norm[j] && lens[i] > c.t.NearDupOptionMin {
				c.critical(diag.CatNearDuplicateOptions, "Options %d and %d are near-duplicates after normalization: %q",
					i, j, textnorm.Prefix(opts[i], 50)).
					With("optionI", i).
					With("optionJ", j).
					Emit()
			}
			if lens[i] <= c.t.SimilarMinLen || lens[j] <= c.t.SimilarMinLen {
				continue
			}
			shorter, longer := norm[i], norm[j]
			sl, ll := lens[i], lens[j]
			if sl > ll {
				shorter, longer = longer, shorter
				sl, ll = ll, sl
			}
			if strings.Contains(longer, shorter) && float64(sl)/float64(ll) > c.t.SimilarRatio {
				c.high(diag.CatVerySimilarOptions, "Options %d and %d are very similar (>%.0f%% overlap)", i, j, c.t.SimilarRatio*100).
					With("opt1", textnorm.Prefix(opts[i], 50)).
					With("opt2", textnorm.Prefix(opts[j], 50)).
					Emit()
			}
		}
	}
}
