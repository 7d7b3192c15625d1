package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"

	"contentaudit/internal/diag"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string             `json:"id"`
	DefaultConfiguration sarifConfiguration `json:"defaultConfiguration"`
}

type sarifConfiguration struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine uint32 `json:"startLine"`
}

// SarifLevel maps a severity onto a SARIF result level.
func SarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevCritical, diag.SevHigh:
		return "error"
	case diag.SevMedium:
		return "warning"
	default:
		return "note"
	}
}

// Sarif форматирует issues в SARIF формат (v2.1.0). Каждая категория становится
// правилом, уровень правила берётся из первой встреченной severity.
func Sarif(w io.Writer, issues []diag.Issue, meta SarifRunMeta) error {
	rules := make([]sarifRule, 0)
	seen := make(map[diag.Category]bool)
	results := make([]sarifResult, 0, len(issues))

	for i := range issues {
		is := &issues[i]
		if !seen[is.Category] {
			seen[is.Category] = true
			rules = append(rules, sarifRule{
				ID:                   string(is.Category),
				DefaultConfiguration: sarifConfiguration{Level: SarifLevel(is.Severity)},
			})
		}
		res := sarifResult{
			RuleID:  string(is.Category),
			Level:   SarifLevel(is.Severity),
			Message: sarifMessage{Text: is.Message},
			Properties: map[string]any{
				"severity":   is.Severity.String(),
				"questionId": is.Subject,
			},
		}
		if is.Course != "" {
			res.Properties["course"] = is.Course
		}
		if is.File != "" {
			loc := sarifLocation{PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{URI: filepath.ToSlash(is.File)},
			}}
			if is.Line > 0 {
				loc.PhysicalLocation.Region = &sarifRegion{StartLine: is.Line}
			}
			res.Locations = []sarifLocation{loc}
		}
		results = append(results, res)
	}

	name := meta.ToolName
	if name == "" {
		name = "contentaudit"
	}
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: name, Version: meta.ToolVersion, Rules: rules}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: true,
		}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}
