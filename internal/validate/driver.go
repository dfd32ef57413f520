package validate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dmaier/csvjsoncheck/pkg/dialect"
	"github.com/dmaier/csvjsoncheck/pkg/jsoncheck"
)

const separator = "--------------------------------------------------" // 50 hyphens

// RowError is one failed row, kept for the summary artifact and run history.
type RowError struct {
	Line     int    `yaml:"line"`
	Content  string `yaml:"content"`
	Category string `yaml:"category"` // empty, preprocess, decode
	Message  string `yaml:"message"`
}

// Report is the outcome of one driver run.
type Report struct {
	FilePath  string
	FieldName string
	GoodRows  int
	BadRows   int
	Duration  time.Duration
	Errors    []RowError

	// Completed is true when the run reached the summary line. Runs aborted
	// by a missing file, a missing field or a read failure leave it false
	// and must not be recorded or summarized.
	Completed bool
}

// Driver iterates the rows of a delimited file, classifies the target field
// of each row and writes diagnostics to Out. All contract output (per-row
// blocks, summary, run-level errors) goes to Out; Logger carries operational
// events only.
type Driver struct {
	Out    io.Writer
	Logger *slog.Logger
}

// Run validates field fieldName of every data row in the file at path.
// Row-level failures are reported and counted but never abort the run;
// run-level failures are reported as a single line and leave the report
// incomplete. Run itself never fails.
func (d *Driver) Run(path, fieldName string) *Report {
	report := &Report{FilePath: path, FieldName: fieldName}
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(d.Out, "Error: File '%s' not found\n", path)
		return report
	}
	defer f.Close()

	r := dialect.NewReader(f)

	header, err := r.Read()
	if err != nil {
		fmt.Fprintf(d.Out, "Error processing file: %s\n", headerErrText(err))
		return report
	}

	fieldIdx := -1
	for i, name := range header {
		if name == fieldName {
			fieldIdx = i
			break
		}
	}
	if fieldIdx < 0 {
		fmt.Fprintf(d.Out, "Error: Field '%s' not found in CSV. Available fields: %s\n",
			fieldName, strings.Join(header, ", "))
		return report
	}

	d.Logger.Info("validating field", "file", path, "field", fieldName, "columns", len(header))

	lineNum := 1 // header is line 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(d.Out, "Error processing file: %s\n", err)
			return report
		}
		// Blank lines yield a single empty field; they carry no row and
		// no line number.
		if len(record) == 1 && record[0] == "" {
			continue
		}
		lineNum++

		// A row shorter than the header treats the missing field as an
		// empty value, which classifies as invalid.
		var raw string
		if fieldIdx < len(record) {
			raw = record[fieldIdx]
		}

		outcome := jsoncheck.Classify(raw)
		if outcome.Valid {
			report.GoodRows++
			continue
		}

		report.BadRows++
		report.Errors = append(report.Errors, RowError{
			Line:     lineNum,
			Content:  raw,
			Category: string(outcome.Stage),
			Message:  outcome.Message,
		})

		fmt.Fprintf(d.Out, "Line %d: Invalid JSON\n", lineNum)
		fmt.Fprintf(d.Out, "Content: %s\n", raw)
		fmt.Fprintf(d.Out, "Error: %s\n", outcome.Message)
		fmt.Fprintln(d.Out, separator)
	}

	fmt.Fprintf(d.Out, "Validation complete. %d valid rows, %d invalid rows\n",
		report.GoodRows, report.BadRows)

	report.Duration = time.Since(start)
	report.Completed = true
	return report
}

func headerErrText(err error) string {
	if err == io.EOF {
		return "file has no header row"
	}
	return err.Error()
}
