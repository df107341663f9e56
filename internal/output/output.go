package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"drvaudit/internal/report"
	"drvaudit/internal/review"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, rep *report.Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(rep *report.Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, rep)
}

// categoriesByCount orders the tallied categories descending by count,
// breaking ties by taxonomy declaration order so output stays stable.
func categoriesByCount(counts map[review.Category]int) []review.Category {
	cats := make([]review.Category, 0, len(counts))
	for cat := range counts {
		cats = append(cats, cat)
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats
}
