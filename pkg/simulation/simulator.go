// Package simulation drives the §4.6 discrete-event call-arrival loop: a
// Poisson CallGenerator feeds the RMSA pipeline, an event priority queue
// orders arrivals and departures deterministically, and a phase-based
// Simulator — adapted from the teacher's orchestrator state machine —
// reports blocking probability and resource usage at the end of a run.
package simulation

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/opticalmesh/eonsim/pkg/devices"
	"github.com/opticalmesh/eonsim/pkg/metrics"
	"github.com/opticalmesh/eonsim/pkg/reporting"
	"github.com/opticalmesh/eonsim/pkg/rmsa"
	"github.com/opticalmesh/eonsim/pkg/topology"
)

// RunState is the Simulator's lifecycle phase, adapted from the
// teacher's TestState state machine (pkg/core/orchestrator/orchestrator.go)
// to the Load->Build->Warmup->Run->Drain->Report pipeline a single
// simulation run needs instead of a chaos test's parse/inject/detect one.
type RunState int

const (
	RunStateLoad RunState = iota
	RunStateBuild
	RunStateWarmup
	RunStateRun
	RunStateDrain
	RunStateReport
	RunStateCompleted
	RunStateFailed
)

func (s RunState) String() string {
	switch s {
	case RunStateLoad:
		return "LOAD"
	case RunStateBuild:
		return "BUILD"
	case RunStateWarmup:
		return "WARMUP"
	case RunStateRun:
		return "RUN"
	case RunStateDrain:
		return "DRAIN"
	case RunStateReport:
		return "REPORT"
	case RunStateCompleted:
		return "COMPLETED"
	case RunStateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ErrCancelled is returned when ctx is cancelled at an arrival-event
// boundary (§5): the caller (typically a PSO/NSGA-II fitness evaluation)
// is expected to retry with a fresh clone rather than treat it as a
// blocked call or a fatal fault.
var ErrCancelled = errors.New("simulation: run cancelled at arrival boundary")

// Config assembles everything one simulation run needs: a topology
// already built by the caller (so parallel fitness evaluations can each
// own a private clone, §5), a configured RMSA pipeline, traffic
// parameters, and the optional ambient collaborators (metrics, logging,
// progress) a CLI invocation wires in but a fitness evaluation usually
// omits.
type Config struct {
	Arena    *topology.Arena
	Pipeline *rmsa.Pipeline

	// DeviceChain is used only to cost out CapEx/OpEx per link once at
	// report time; nil is fine and yields zero link cost.
	DeviceChain func(l *topology.Link) []devices.Device

	NumCalls    int
	WarmupCalls int
	OfferedLoad float64
	Bitrates    []BitrateProfile
	Seed        int64

	RegeneratorCapExCost float64
	RegeneratorOpExCost  float64

	ConfigName string

	Metrics  *metrics.Registry
	Logger   *reporting.Logger
	Progress *reporting.ProgressReporter
}

func (c Config) validate() error {
	if c.Arena == nil {
		return fmt.Errorf("simulation: config.Arena is required")
	}
	if c.Pipeline == nil {
		return fmt.Errorf("simulation: config.Pipeline is required")
	}
	if c.NumCalls <= 0 {
		return fmt.Errorf("simulation: config.NumCalls must be positive")
	}
	if c.OfferedLoad <= 0 {
		return fmt.Errorf("simulation: config.OfferedLoad must be positive")
	}
	if len(c.Arena.Nodes) < 2 {
		return fmt.Errorf("simulation: topology must have at least two nodes")
	}
	return nil
}

// Simulator owns one run's event queue and statistics, adapted from the
// teacher's Orchestrator.
type Simulator struct {
	cfg   Config
	rng   *rand.Rand
	state RunState

	queue  eventHeap
	seq    int64
	clock  float64
	active map[string]*Call
	ledger *topology.ReleaseLedger
	gen    *CallGenerator
}

// New builds a Simulator from a Config. The config is not validated
// until Run so construction never fails on its own.
func New(cfg Config) *Simulator {
	return &Simulator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		active: make(map[string]*Call),
		ledger: topology.NewReleaseLedger(),
	}
}

// Run executes the Load->Build->Warmup->Run->Drain->Report pipeline and
// returns the §6 "Result format" report. A ConfigError-class validation
// failure or a numeric fault (§7) aborts the run with an error; a
// cancelled context at an arrival boundary returns ErrCancelled.
func (s *Simulator) Run(ctx context.Context) (*reporting.SimulationReport, error) {
	start := time.Now()
	report := &reporting.SimulationReport{
		RunID:           uuid.NewString(),
		ConfigName:      s.cfg.ConfigName,
		StartTime:       start,
		Status:          reporting.StatusRunning,
		BlockingByCause: make(map[string]int),
	}

	s.transition(RunStateLoad)
	if err := s.cfg.validate(); err != nil {
		return s.fail(report, start, err)
	}

	s.transition(RunStateBuild)
	s.gen = NewCallGenerator(s.cfg.OfferedLoad, s.cfg.Bitrates, nodeIDs(s.cfg.Arena), s.rng)
	heap.Init(&s.queue)
	s.scheduleNextArrival()

	s.transition(RunStateWarmup)
	if s.cfg.WarmupCalls > 0 {
		if err := s.drive(ctx, s.cfg.WarmupCalls, nil); err != nil {
			if errors.Is(err, ErrCancelled) {
				return nil, err
			}
			return s.fail(report, start, err)
		}
	}

	s.transition(RunStateRun)
	stats := newRunStats()
	if err := s.drive(ctx, s.cfg.NumCalls, stats); err != nil {
		if errors.Is(err, ErrCancelled) {
			return nil, err
		}
		return s.fail(report, start, err)
	}

	s.transition(RunStateDrain)
	s.drainRemaining()

	s.transition(RunStateReport)
	s.fillReport(report, stats, start)

	s.transition(RunStateCompleted)
	if s.cfg.Progress != nil {
		s.cfg.Progress.ReportRunCompleted(report)
	}
	return report, nil
}

// drive pops events off the queue, admitting arrivals and releasing
// departures, until n arrivals have been processed. Every processed
// arrival, admitted or blocked, immediately schedules the next one so the Poisson process
// keeps running across drive calls (warmup feeding straight into the
// counted run); stats is nil during warmup so those calls never pollute
// the reported statistics. A cancelled context or a fatal admission
// fault aborts the loop.
func (s *Simulator) drive(ctx context.Context, n int, stats *runStats) error {
	processed := 0
	for processed < n {
		if s.queue.Len() == 0 {
			return fmt.Errorf("simulation: event queue starved before %d arrivals processed", n)
		}
		ev := heap.Pop(&s.queue).(Event)
		s.clock = ev.Time

		switch ev.Type {
		case EventArrival:
			select {
			case <-ctx.Done():
				return ErrCancelled
			default:
			}
			if err := s.admit(ev.Call, stats); err != nil {
				return err
			}
			processed++
			s.scheduleNextArrival()
		case EventDeparture:
			s.depart(ev.Call)
		}
	}
	return nil
}

// admit runs the RMSA pipeline for call, updating stats (if non-nil) and
// scheduling a matching departure on success. It returns a non-nil error
// only for a fatal numeric/config fault (§7); blocked calls are recorded
// in stats and otherwise not an error.
func (s *Simulator) admit(call *Call, stats *runStats) error {
	if stats != nil {
		stats.callsOffered++
		stats.bitsOffered += call.BitrateGbps
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.RecordOffered(call.BitrateGbps)
		}
	}

	res, err := s.cfg.Pipeline.AssignCall(s.cfg.Arena, call.Source, call.Destination, call.BitrateGbps, s.rng)
	if err != nil {
		var blocked *rmsa.BlockedError
		if errors.As(err, &blocked) {
			call.State = StateBlocked
			call.Cause = blocked.Cause
			if stats != nil {
				stats.callsBlocked++
				stats.bitsBlocked += call.BitrateGbps
				stats.blockingByCause[string(blocked.Cause)]++
				if s.cfg.Metrics != nil {
					s.cfg.Metrics.RecordBlocked(string(blocked.Cause), call.BitrateGbps)
				}
			}
			return nil
		}
		// Neither a blocked-call cause: either a ConfigError (unrecognised
		// nickname, should have been caught at pipeline construction) or a
		// numeric fault from the physical layer. Both are fatal and must
		// abort the run rather than being folded into blocking statistics.
		return err
	}

	call.State = StateActive
	call.Result = res
	s.active[call.ID] = call
	if stats != nil {
		for _, seg := range res.Segments {
			stats.regeneratorsUsed += seg.NumRegUsed
		}
	}

	heap.Push(&s.queue, Event{
		Time: s.clock + call.Duration,
		Seq:  s.nextSeq(),
		Type: EventDeparture,
		Call: call,
	})
	return nil
}

func (s *Simulator) depart(call *Call) {
	call.State = StateCleared
	delete(s.active, call.ID)
	s.ledger.Release(s.cfg.Arena, call.ID, reservationFromResult(call.Result))
}

// drainRemaining releases every still-active call's resources without
// admitting the one pending arrival drive() always leaves scheduled
// ahead of itself, so the topology is left clean and every
// regenerator/slot accounted for (§8's universal conservation invariant).
func (s *Simulator) drainRemaining() {
	for s.queue.Len() > 0 {
		ev := heap.Pop(&s.queue).(Event)
		if ev.Type == EventDeparture {
			s.clock = ev.Time
			s.depart(ev.Call)
		}
	}
}

func (s *Simulator) scheduleNextArrival() {
	dt := s.gen.NextInterarrival()
	src, dst := s.gen.NextEndpoints()
	call := &Call{
		ID:          uuid.NewString(),
		Source:      src,
		Destination: dst,
		BitrateGbps: s.gen.NextBitrate(),
		ArrivalTime: s.clock + dt,
		Duration:    s.gen.NextHoldingTime(),
		State:       StatePending,
	}
	heap.Push(&s.queue, Event{
		Time: call.ArrivalTime,
		Seq:  s.nextSeq(),
		Type: EventArrival,
		Call: call,
	})
}

func (s *Simulator) nextSeq() int64 {
	s.seq++
	return s.seq
}

func (s *Simulator) transition(to RunState) {
	from := s.state
	s.state = to
	if s.cfg.Progress != nil {
		s.cfg.Progress.ReportPhaseTransition(from.String(), to.String())
	}
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("simulation phase transition", "from", from.String(), "to", to.String())
	}
}

func (s *Simulator) fail(report *reporting.SimulationReport, start time.Time, err error) (*reporting.SimulationReport, error) {
	s.state = RunStateFailed
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(start).String()
	report.Status = reporting.StatusFailed
	report.Success = false
	report.Message = err.Error()
	report.Errors = append(report.Errors, err.Error())
	if s.cfg.Logger != nil {
		s.cfg.Logger.Error("simulation run failed", "error", err)
	}
	return report, err
}

// fillReport populates report's §6 result fields from the accumulated
// stats, the arena's final regenerator high-water marks and spectrum
// occupancy, and the device chain's deployment cost.
func (s *Simulator) fillReport(report *reporting.SimulationReport, stats *runStats, start time.Time) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(start).String()
	report.Status = reporting.StatusCompleted
	report.Success = true

	report.CallsOffered = stats.callsOffered
	report.CallsBlocked = stats.callsBlocked
	report.BitsOffered = stats.bitsOffered
	report.BitsBlocked = stats.bitsBlocked
	if stats.callsOffered > 0 {
		report.CallBlockingProbability = float64(stats.callsBlocked) / float64(stats.callsOffered)
	}
	if stats.bitsOffered > 0 {
		report.BandwidthBlockingProbability = stats.bitsBlocked / stats.bitsOffered
	}
	for cause, n := range stats.blockingByCause {
		report.BlockingByCause[cause] = n
	}

	report.RegeneratorsUsedTotal = stats.regeneratorsUsed
	if stats.callsOffered-stats.callsBlocked > 0 {
		report.MeanRegeneratorsUsed = float64(stats.regeneratorsUsed) / float64(stats.callsOffered-stats.callsBlocked)
	}

	maxSimultaneous := make(map[string]int, len(s.cfg.Arena.Nodes))
	var capex, opex float64
	for _, n := range s.cfg.Arena.Nodes {
		maxSimultaneous[n.Name] = n.MaxSimultaneous()
		capex += float64(n.TotalRegenerators) * s.cfg.RegeneratorCapExCost
	}
	opex += float64(stats.regeneratorsUsed) * s.cfg.RegeneratorOpExCost
	report.RegeneratorsMaxSimultaneousPerNode = maxSimultaneous

	var heldSlots, totalSlots int
	for _, l := range s.cfg.Arena.Links {
		totalSlots += l.Slots().Len()
		heldSlots += l.Slots().Len() - l.Slots().FreeCount()
		if s.cfg.DeviceChain != nil {
			for _, d := range s.cfg.DeviceChain(l) {
				capex += d.CapEx()
				opex += d.OpEx()
			}
		}
	}
	if totalSlots > 0 {
		report.SpectrumUtilization = float64(heldSlots) / float64(totalSlots)
	}
	report.CapEx = capex
	report.OpEx = opex

	report.ReleaseSummary = s.ledger.Summary()
}

func nodeIDs(a *topology.Arena) []topology.NodeID {
	ids := make([]topology.NodeID, len(a.Nodes))
	for i, n := range a.Nodes {
		ids[i] = n.ID
	}
	return ids
}

func reservationFromResult(res rmsa.Result) topology.Reservation {
	var r topology.Reservation
	for _, seg := range res.Segments {
		for _, lid := range seg.Links {
			r.Links = append(r.Links, lid)
			r.SlotStart = append(r.SlotStart, seg.Window.Start)
			r.SlotLength = append(r.SlotLength, seg.Window.Length)
		}
		for i := 0; i < seg.NumRegUsed; i++ {
			r.Regenerators = append(r.Regenerators, seg.EndNode)
		}
	}
	return r
}
