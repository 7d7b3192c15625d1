package extract_test

import (
	"testing"

	"contentaudit/internal/extract"
	"contentaudit/internal/source"
	"contentaudit/internal/testkit"
)

func TestBlockInvariants(t *testing.T) {
	inputs := map[string]string{
		"plain": `export const q = [
  {
    id: 'a-1',
    question: 'First?',
    options: ['x', 'y'],
    correctAnswer: 1,
  },
  {
    id: 'a-2',
    question: 'Second?',
  },
];
`,
		"nested": `export const q = [
  {
    id: 'b-1',
    meta: { source: 'book', pages: [1, 2] },
    question: "Nested \"quotes\"?",
  },
    {
      id: ` + "`b-2`" + `,
      explanation: 'tail without closing bracket'
`,
		"unterminated": `[
  {
    id: 'c-1',
    question: 'never closed,
    options: ['a'],
  },
  {
    id: 'c-2',
  },
]`,
		"no anchors": "export const nothing = 1;\n",
	}
	for name, src := range inputs {
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSet()
			f := fs.Get(fs.AddVirtual(name+".ts", []byte(src)))
			blocks := extract.Blocks(f, nil)
			if err := testkit.CheckBlockInvariants(f, blocks); err != nil {
				t.Fatal(err)
			}
		})
	}
}
