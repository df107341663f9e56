package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"drvaudit/internal/lintmap"
)

// ReadLintReport parses a Sonar-style issues export, the {"issues": [...]}
// document shape. Only the document structure is validated here; per-record
// validation happens when the findings are mapped.
func ReadLintReport(r io.Reader) ([]lintmap.Finding, error) {
	var doc struct {
		Issues []lintmap.Finding `json:"issues"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing linter report: %w", err)
	}
	return doc.Issues, nil
}
