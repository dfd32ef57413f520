package validate

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dmaier/csvjsoncheck/models"
	dbpkg "github.com/dmaier/csvjsoncheck/pkg/db"
	"github.com/urfave/cli/v2"
)

// maxStoredErrors caps how many per-row failures are written to run history.
const maxStoredErrors = 200

const usageLine = "Usage: csvjsoncheck <csv_file> <field_name>"

func ValidateAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit(usageLine, 1)
	}

	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config := &models.RunConfig{
		CSVPath:    c.Args().Get(0),
		FieldName:  c.Args().Get(1),
		SummaryOut: c.String("summary-out"),
		NoHistory:  c.Bool("no-history"),
	}

	driver := &Driver{Out: os.Stdout, Logger: logger}
	report := driver.Run(config.CSVPath, config.FieldName)

	if !report.Completed {
		// Aborted runs are reported on stdout already and produce no
		// artifact or history row. The process still exits cleanly.
		return nil
	}

	logger.Info("run complete",
		"good_rows", report.GoodRows,
		"bad_rows", report.BadRows,
		"duration_ms", report.Duration.Milliseconds(),
	)

	if config.SummaryOut != "" {
		if err := WriteSummary(config.SummaryOut, report); err != nil {
			logger.Warn("failed to write summary artifact", "path", config.SummaryOut, "error", err)
		} else {
			logger.Info("summary artifact written", "path", config.SummaryOut)
		}
	}

	if !config.NoHistory {
		recordRun(logger, report)
	}

	return nil
}

// recordRun stores the run in the history database. Recording is
// best-effort: any failure is logged and the run output stands as printed.
func recordRun(logger *slog.Logger, report *Report) {
	database, err := dbpkg.Open()
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer database.Close()

	runID, err := database.InsertRun(report.FilePath, report.FieldName,
		report.GoodRows, report.BadRows, report.Duration)
	if err != nil {
		logger.Warn("failed to record run", "error", err)
		return
	}

	stored := report.Errors
	if len(stored) > maxStoredErrors {
		stored = stored[:maxStoredErrors]
	}
	runErrors := make([]dbpkg.RunError, len(stored))
	for i, e := range stored {
		runErrors[i] = dbpkg.RunError{Line: e.Line, Category: e.Category, Message: e.Message}
	}
	if err := database.InsertRunErrors(runID, runErrors); err != nil {
		logger.Warn("failed to record run errors", "run_id", runID, "error", err)
		return
	}

	logger.Info("run recorded", "run_id", runID, "db", database.Path())
}

// HistoryAction lists recent runs, or shows one run when an ID is given.
func HistoryAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer database.Close()

	if c.NArg() >= 1 {
		runID, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q", c.Args().Get(0))
		}
		return showRun(database, runID)
	}

	return listRuns(database, c.Int("limit"))
}

func listRuns(database *dbpkg.DB, limit int) error {
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-30s %-15s %-8s %-8s %-10s\n",
		"ID", "Created", "File", "Field", "Valid", "Invalid", "Duration")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-30s %-15s %-8d %-8d %-10s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.FilePath,
			r.FieldName,
			r.GoodRows,
			r.BadRows,
			fmt.Sprintf("%dms", r.DurationMS),
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'csvjsoncheck history <id>' to see details\n")

	return nil
}

func showRun(database *dbpkg.DB, runID int64) error {
	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	runErrors, err := database.GetRunErrors(runID)
	if err != nil {
		return fmt.Errorf("failed to get run errors: %w", err)
	}

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("File:      %s\n", run.FilePath)
	fmt.Printf("Field:     %s\n", run.FieldName)
	fmt.Printf("Rows:      %d valid, %d invalid\n", run.GoodRows, run.BadRows)
	fmt.Printf("Duration:  %dms\n", run.DurationMS)

	if len(runErrors) == 0 {
		return nil
	}

	byKind := make(map[string]int)
	for _, e := range runErrors {
		byKind[e.Category]++
	}

	fmt.Printf("\nStored failures (%d):\n", len(runErrors))
	fmt.Println(strings.Repeat("-", 60))
	for _, e := range runErrors {
		fmt.Printf("Line %-6d %-12s %s\n", e.Line, e.Category, e.Message)
	}

	fmt.Printf("\nBy kind:\n")
	for kind, count := range byKind {
		fmt.Printf("  %-12s %d\n", kind, count)
	}

	return nil
}
