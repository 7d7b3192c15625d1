package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// snippets cover the shapes the extractor has to tolerate.
var snippets = []string{
	"",
	"export const questions = [];\n",
	"  {\n    id: 'far-001',\n    question: 'What?',\n    options: ['a', 'b'],\n    correctAnswer: 1,\n  },\n",
	"  id: \"x\",\n  text: 'legacy',\n  correctOptionId: 'b',\n",
	"  id: `tpl`,\n  question: 'a' + \"b\" + `c`,\n  correctAnswer: -1,\n",
	"  id: 'nested',\n  meta: { options: ['inner'] },\n  options: [['deep', 'er'], 'x'],\n",
	"  id: 'broken,\n  question: 'unterminated\n",
	"  id: 'esc',\n  question: 'It\\'s \\u00e9t\\xe9 \\\n continued',\n",
	"  id: 'num',\n  correctAnswer: 0x1F,\n  options: [1, 2, 3],\n",
	"  id: '',\n  id: 'after-empty',\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippets {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds question files from $CONTENTAUDIT_FUZZ_SEEDS, if set.
func addTestdataSeeds(f *testing.F) {
	root := os.Getenv("CONTENTAUDIT_FUZZ_SEEDS")
	if root == "" {
		return
	}
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".ts" {
			return nil
		}
		// #nosec G304 -- path comes from an explicit seed directory
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
