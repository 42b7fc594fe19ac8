package reporting_test

import (
	"fmt"
	"os"
	"time"

	"github.com/opticalmesh/eonsim/pkg/reporting"
)

// Example demonstrates the reporting package usage: logging, saving and
// loading a simulation report, and rendering it to text.
func Example() {
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  reporting.LogLevelInfo,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})

	logger.Info("simulation starting")
	logger.Info("topology loaded", "nodes", 14, "links", 22)
	logger.Info("run completed", "calls_offered", 10000)

	storage, err := reporting.NewStorage("./test-reports", 10, logger)
	if err != nil {
		fmt.Printf("Failed to create storage: %v\n", err)
		return
	}
	defer os.RemoveAll("./test-reports")

	report := &reporting.SimulationReport{
		RunID:      "run-12345",
		ConfigName: "nsfnet-dynamic",
		StartTime:  time.Now().Add(-5 * time.Minute),
		EndTime:    time.Now(),
		Duration:   "5m0s",
		Status:     reporting.StatusCompleted,
		Success:    true,

		CallsOffered: 10000,
		CallsBlocked: 120,
		BitsOffered:  1000000,
		BitsBlocked:  9600,

		CallBlockingProbability:      0.012,
		BandwidthBlockingProbability: 0.0096,

		BlockingByCause: map[string]int{
			"NoSpectrum":  80,
			"OSNRFailure": 40,
		},

		RegeneratorsUsedTotal: 340,
		MeanRegeneratorsUsed:  1.2,
		SpectrumUtilization:   0.43,

		CapEx: 125000,
		OpEx:  8400,
	}

	path, err := storage.SaveReport(report)
	if err != nil {
		fmt.Printf("Failed to save report: %v\n", err)
		return
	}

	fmt.Printf("Report saved successfully\n")

	summaries, err := storage.ListReports()
	if err != nil {
		fmt.Printf("Failed to list reports: %v\n", err)
		return
	}

	fmt.Printf("Found %d report(s)\n", len(summaries))
	for _, summary := range summaries {
		fmt.Printf("  %s: %s (%s)\n", summary.RunID, summary.ConfigName, summary.Status)
	}

	loadedReport, err := storage.LoadReport(path)
	if err != nil {
		fmt.Printf("Failed to load report: %v\n", err)
		return
	}

	fmt.Printf("Loaded report for run: %s\n", loadedReport.RunID)

	formatter := reporting.NewFormatter(logger)

	textPath := "./test-reports/report.txt"
	if err := formatter.GenerateReport(report, reporting.ReportFormatText, textPath); err != nil {
		fmt.Printf("Failed to generate text report: %v\n", err)
		return
	}
	fmt.Printf("Text report generated\n")

	// Output will vary due to timestamps, so we don't include it
}
