package output

import (
	"encoding/json"
	"fmt"
	"io"

	"drvaudit/internal/report"
	"drvaudit/internal/review"
)

// SARIFWriter outputs the ranked issues in SARIF v2.1.0 format.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, rep *report.Report) error {
	sarif := buildSARIF(rep)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

type sarifFix struct {
	Description sarifMessage `json:"description"`
}

func buildSARIF(rep *report.Report) sarifLog {
	rulesMap := make(map[string]sarifRule)
	var ruleOrder []string
	var results []sarifResult

	for _, issue := range rep.Issues {
		ruleID := ruleIDFor(issue)

		if _, ok := rulesMap[ruleID]; !ok {
			rulesMap[ruleID] = sarifRule{
				ID:               ruleID,
				Name:             issue.Category.Label(),
				ShortDescription: sarifMessage{Text: issue.Category.Label() + " finding"},
				DefaultConfig:    sarifDefaultConfig{Level: severityToLevel(issue.Severity)},
			}
			ruleOrder = append(ruleOrder, ruleID)
		}

		// SARIF regions are 1-indexed; a file-level issue anchors at line 1.
		line := issue.Location.Line
		if line < 1 {
			line = 1
		}
		result := sarifResult{
			RuleID:  ruleID,
			Level:   severityToLevel(issue.Severity),
			Message: sarifMessage{Text: issue.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: issue.Location.Path},
					Region:           sarifRegion{StartLine: line, EndLine: line},
				},
			}},
		}
		if issue.Suggestion != "" {
			result.Fixes = append(result.Fixes, sarifFix{
				Description: sarifMessage{Text: issue.Suggestion},
			})
		}
		results = append(results, result)
	}

	rules := make([]sarifRule, 0, len(ruleOrder))
	for _, rid := range ruleOrder {
		rules = append(rules, rulesMap[rid])
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           rep.Tool,
						Version:        rep.Version,
						InformationURI: "https://github.com/drvaudit/drvaudit",
						Rules:          rules,
					},
				},
				Results: results,
			},
		},
	}
}

// severityToLevel maps the internal severity to a SARIF level.
func severityToLevel(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return "error"
	case review.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// ruleIDFor derives a stable SARIF rule id from the issue's origin and
// category, so GitHub code scanning groups findings sensibly.
func ruleIDFor(issue review.Issue) string {
	return fmt.Sprintf("drvaudit/%s/%s", issue.Origin, issue.Category)
}
