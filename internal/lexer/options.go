package lexer

import (
	"contentaudit/internal/source"
)

// Reporter: тонкий интерфейс, чтобы не тянуть логгер сюда.
// Scanner problems are never fatal: the scanner reports and keeps going.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Options configures a Lexer.
type Options struct {
	Reporter Reporter // может быть nil
	// Start and End restrict scanning to a byte range; End == 0 means end of file.
	Start uint32
	End   uint32
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
