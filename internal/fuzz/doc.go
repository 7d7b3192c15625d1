
// Package fuzztests houses Go fuzz harnesses for the tolerant front end
// (source -> lexer -> extractor -> rules). Its goal is to smoke test
// robustness and guard against panics or runaway scans on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, экстрактор и правила.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/extract,
// internal/rules, internal/testkit.

package fuzztests
