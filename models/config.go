// Package models defines data structures for configuration.
package models

// RunConfig holds runtime configuration for one validation run.
// All values come from CLI arguments and flags, not external config files.
type RunConfig struct {
	CSVPath    string
	FieldName  string
	SummaryOut string
	NoHistory  bool
}
