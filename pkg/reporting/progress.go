package reporting

import (
	"encoding/json"
	"fmt"
	"time"
)

// OutputFormat is the progress-output rendering mode.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ProgressReporter reports simulation phase transitions and a final
// summary table, adapted from the teacher's test-progress reporter.
type ProgressReporter struct {
	format OutputFormat
	logger *Logger
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(format OutputFormat, logger *Logger) *ProgressReporter {
	return &ProgressReporter{format: format, logger: logger}
}

// ReportState reports a live mid-run snapshot (phase, elapsed, latest
// sampled metrics).
func (pr *ProgressReporter) ReportState(state LiveRunState) {
	if pr.format == FormatJSON {
		data, err := json.Marshal(state)
		if err != nil {
			pr.logger.Error("failed to marshal state", "error", err)
			return
		}
		fmt.Println(string(data))
		return
	}

	elapsed := state.Elapsed.Round(time.Second)
	fmt.Printf("[%s] %s | calls=%d | elapsed=%s\n",
		time.Now().Format("15:04:05"), state.Phase, state.CallsProcessed, elapsed)
	for name, value := range state.LatestMetrics {
		fmt.Printf("  %s=%.4f\n", name, value)
	}
}

// ReportPhaseTransition reports a Load/Build/Warmup/Run/Drain/Report
// phase transition of the Simulator's state machine (§4.6).
func (pr *ProgressReporter) ReportPhaseTransition(from, to string) {
	if pr.format == FormatJSON {
		data, _ := json.Marshal(map[string]interface{}{
			"event":      "phase_transition",
			"from_phase": from,
			"to_phase":   to,
			"timestamp":  time.Now(),
		})
		fmt.Println(string(data))
		return
	}
	fmt.Printf("[PHASE] %s -> %s\n", from, to)
}

// ReportRunCompleted reports the final summary of a completed run.
func (pr *ProgressReporter) ReportRunCompleted(report *SimulationReport) {
	if pr.format == FormatJSON {
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "run_completed",
			"report":    report,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
		return
	}
	pr.printTextSummary(report)
}

func (pr *ProgressReporter) printTextSummary(report *SimulationReport) {
	status := "PASSED"
	if !report.Success {
		status = "FAILED"
	}
	if report.Status == StatusStopped {
		status = "STOPPED"
	}

	fmt.Printf("\n[RUN SUMMARY] %s\n", status)
	fmt.Printf("  Config: %s\n", report.ConfigName)
	fmt.Printf("  Run ID: %s\n", report.RunID)
	fmt.Printf("  Duration: %s\n", report.Duration)
	fmt.Printf("  Calls offered/blocked: %d/%d\n", report.CallsOffered, report.CallsBlocked)
	fmt.Printf("  P_block: %.6f  P_bb: %.6f\n",
		report.CallBlockingProbability, report.BandwidthBlockingProbability)
	fmt.Printf("  Regenerators used: %d (mean %.2f)\n",
		report.RegeneratorsUsedTotal, report.MeanRegeneratorsUsed)
	fmt.Printf("  Spectrum utilization: %.4f\n", report.SpectrumUtilization)
	fmt.Printf("  CapEx: %.2f  OpEx: %.2f\n", report.CapEx, report.OpEx)
	if len(report.BlockingByCause) > 0 {
		fmt.Printf("  Blocking by cause:\n")
		for cause, count := range report.BlockingByCause {
			fmt.Printf("    %s: %d\n", cause, count)
		}
	}
	fmt.Printf("  Cleanup: %s\n", report.ReleaseSummary.String())
	fmt.Println()
}
