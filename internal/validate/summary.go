package validate

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Summary is the YAML run artifact written by --summary-out.
type Summary struct {
	FilePath     string         `yaml:"file_path"`
	FieldName    string         `yaml:"field_name"`
	GoodRows     int            `yaml:"good_rows"`
	BadRows      int            `yaml:"bad_rows"`
	DurationMS   int64          `yaml:"duration_ms"`
	GeneratedAt  time.Time      `yaml:"generated_at"`
	ErrorsByKind map[string]int `yaml:"errors_by_kind,omitempty"`
	FailedRows   []RowError     `yaml:"failed_rows,omitempty"`
}

// BuildSummary aggregates a completed report into the artifact form.
func BuildSummary(r *Report) Summary {
	summary := Summary{
		FilePath:    r.FilePath,
		FieldName:   r.FieldName,
		GoodRows:    r.GoodRows,
		BadRows:     r.BadRows,
		DurationMS:  r.Duration.Milliseconds(),
		GeneratedAt: time.Now(),
		FailedRows:  r.Errors,
	}
	if dist := ErrorsByKind(r.Errors); len(dist) > 0 {
		summary.ErrorsByKind = dist
	}
	return summary
}

// ErrorsByKind counts failures per category (empty, preprocess, decode).
func ErrorsByKind(errs []RowError) map[string]int {
	dist := make(map[string]int)
	for _, e := range errs {
		dist[e.Category]++
	}
	return dist
}

// WriteSummary marshals the report summary to YAML at outputPath.
func WriteSummary(outputPath string, r *Report) error {
	yamlBytes, err := yaml.Marshal(BuildSummary(r))
	if err != nil {
		return fmt.Errorf("failed to marshal summary to YAML: %w", err)
	}

	if err := os.WriteFile(outputPath, yamlBytes, 0600); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}

	return nil
}
