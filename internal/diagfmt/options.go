package diagfmt

// Format selects an output renderer.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatShort  Format = "short"
	FormatSarif  Format = "sarif"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case FormatPretty, FormatJSON, FormatShort, FormatSarif:
		return f, true
	}
	return "", false
}

// DefaultDisplayCap is how many issues per severity pretty output lists
// when neither Verbose nor Limit is set.
const DefaultDisplayCap = 50

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color bool
	// Width - максимальная ширина строки, 0 - не ограничено
	Width int
	// Verbose shows file:line for every issue and lifts the display cap.
	Verbose bool
	// Summary prints statistics only.
	Summary bool
	// Limit caps issues listed per severity; 0 means DisplayCap (or all when Verbose).
	Limit      int
	DisplayCap int
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	Limit int // обрезка списка issues, stats не меняются
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
