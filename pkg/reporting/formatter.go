package reporting

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReportFormat is a persisted-report rendering mode. HTML is dropped:
// simulation reports are consumed by optimisers and CI, not browsed as
// dashboards, so only text and JSON have a caller.
type ReportFormat string

const (
	ReportFormatText ReportFormat = "text"
	ReportFormatJSON ReportFormat = "json"
)

// Formatter renders a SimulationReport to a standalone file, independent
// of the JSON persistence Storage already does for every run.
type Formatter struct {
	logger *Logger
}

// NewFormatter creates a new report formatter.
func NewFormatter(logger *Logger) *Formatter {
	return &Formatter{logger: logger}
}

// GenerateReport writes report to outputPath in the given format.
func (f *Formatter) GenerateReport(report *SimulationReport, format ReportFormat, outputPath string) error {
	switch format {
	case ReportFormatText:
		return f.generateTextReport(report, outputPath)
	case ReportFormatJSON:
		return fmt.Errorf("JSON format is automatically saved by storage")
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func (f *Formatter) generateTextReport(report *SimulationReport, outputPath string) error {
	var buf bytes.Buffer

	buf.WriteString(strings.Repeat("=", 80) + "\n")
	buf.WriteString("   EON SIMULATION REPORT\n")
	buf.WriteString(strings.Repeat("=", 80) + "\n\n")

	status := "COMPLETED"
	if !report.Success {
		status = "FAILED"
	}
	if report.Status == StatusStopped {
		status = "STOPPED"
	}

	buf.WriteString("RUN SUMMARY\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	buf.WriteString(fmt.Sprintf("Status:       %s\n", status))
	buf.WriteString(fmt.Sprintf("Run ID:       %s\n", report.RunID))
	buf.WriteString(fmt.Sprintf("Config:       %s\n", report.ConfigName))
	buf.WriteString(fmt.Sprintf("Start Time:   %s\n", report.StartTime.Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("End Time:     %s\n", report.EndTime.Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("Duration:     %s\n", report.Duration))
	if report.Message != "" {
		buf.WriteString(fmt.Sprintf("Message:      %s\n", report.Message))
	}
	buf.WriteString("\n")

	buf.WriteString("TRAFFIC\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	buf.WriteString(fmt.Sprintf("Calls offered/blocked: %d/%d\n", report.CallsOffered, report.CallsBlocked))
	buf.WriteString(fmt.Sprintf("Bits offered/blocked:  %.2f/%.2f Gbps\n", report.BitsOffered, report.BitsBlocked))
	buf.WriteString(fmt.Sprintf("Call blocking probability:      %.6f\n", report.CallBlockingProbability))
	buf.WriteString(fmt.Sprintf("Bandwidth blocking probability: %.6f\n", report.BandwidthBlockingProbability))
	buf.WriteString("\n")

	if len(report.BlockingByCause) > 0 {
		buf.WriteString("BLOCKING BY CAUSE\n")
		buf.WriteString(strings.Repeat("-", 80) + "\n")
		causes := make([]string, 0, len(report.BlockingByCause))
		for c := range report.BlockingByCause {
			causes = append(causes, c)
		}
		sort.Strings(causes)
		for _, c := range causes {
			buf.WriteString(fmt.Sprintf("%-20s %d\n", c, report.BlockingByCause[c]))
		}
		buf.WriteString("\n")
	}

	buf.WriteString("RESOURCE USAGE\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	buf.WriteString(fmt.Sprintf("Regenerators used (total/mean): %d/%.2f\n",
		report.RegeneratorsUsedTotal, report.MeanRegeneratorsUsed))
	buf.WriteString(fmt.Sprintf("Spectrum utilization:            %.4f\n", report.SpectrumUtilization))
	if len(report.RegeneratorsMaxSimultaneousPerNode) > 0 {
		nodes := make([]string, 0, len(report.RegeneratorsMaxSimultaneousPerNode))
		for n := range report.RegeneratorsMaxSimultaneousPerNode {
			nodes = append(nodes, n)
		}
		sort.Strings(nodes)
		for _, n := range nodes {
			buf.WriteString(fmt.Sprintf("  %-15s max simultaneous regenerators: %d\n",
				n, report.RegeneratorsMaxSimultaneousPerNode[n]))
		}
	}
	buf.WriteString("\n")

	buf.WriteString("COST\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	buf.WriteString(fmt.Sprintf("CapEx: %.2f\n", report.CapEx))
	buf.WriteString(fmt.Sprintf("OpEx:  %.2f\n", report.OpEx))
	buf.WriteString("\n")

	buf.WriteString("RELEASE SUMMARY\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	buf.WriteString(report.ReleaseSummary.String() + "\n\n")

	if len(report.Errors) > 0 {
		buf.WriteString("ERRORS\n")
		buf.WriteString(strings.Repeat("-", 80) + "\n")
		for i, err := range report.Errors {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, err))
		}
		buf.WriteString("\n")
	}

	buf.WriteString(strings.Repeat("=", 80) + "\n")

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}

	f.logger.Info("text report generated", "path", outputPath)
	return nil
}

// CompareReports writes a side-by-side comparison of multiple runs,
// useful for eyeballing a PSO/NSGA-II sweep's generation-by-generation
// reports without reaching for a spreadsheet.
func (f *Formatter) CompareReports(reports []*SimulationReport, outputPath string) error {
	if len(reports) < 2 {
		return fmt.Errorf("need at least 2 reports to compare")
	}

	var buf bytes.Buffer

	buf.WriteString(strings.Repeat("=", 80) + "\n")
	buf.WriteString("   EON SIMULATION COMPARISON\n")
	buf.WriteString(strings.Repeat("=", 80) + "\n\n")

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartTime.Before(reports[j].StartTime)
	})

	buf.WriteString(fmt.Sprintf("%-20s %-15s %-10s %-12s %-12s\n",
		"Run ID", "Config", "Status", "P_block", "P_bb"))
	buf.WriteString(strings.Repeat("-", 80) + "\n")

	for _, report := range reports {
		status := "OK"
		if !report.Success {
			status = "FAILED"
		}
		buf.WriteString(fmt.Sprintf("%-20s %-15s %-10s %-12.6f %-12.6f\n",
			truncate(report.RunID, 20),
			truncate(report.ConfigName, 15),
			status,
			report.CallBlockingProbability,
			report.BandwidthBlockingProbability,
		))
	}
	buf.WriteString("\n")

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write comparison report: %w", err)
	}

	f.logger.Info("comparison report generated", "path", outputPath)
	return nil
}

// GetReportPath builds a report file path for a formatted (non-JSON)
// rendering of report.
func GetReportPath(report *SimulationReport, format ReportFormat, outputDir string) string {
	timestamp := report.StartTime.Format("20060102-150405")
	ext := string(format)
	filename := fmt.Sprintf("report-%s-%s.%s", timestamp, report.RunID, ext)
	return filepath.Join(outputDir, filename)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
