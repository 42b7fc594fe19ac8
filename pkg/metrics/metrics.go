// Package metrics publishes the simulator's per-run counters and gauges
// as Prometheus instruments, the inverse of the teacher's PolygonPoSSLI
// catalogue: that package names PromQL queries against an external
// Prometheus server, this one registers and updates the instruments a
// Prometheus server would scrape directly from this process.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps a private prometheus.Registry (never the global
// default) so a CLI invocation that runs several simulations in one
// process — or a PSO/NSGA-II sweep — never double-registers the same
// instrument, and so every run's metrics are independent of any other
// concurrently-running process.
type Registry struct {
	reg *prometheus.Registry

	CallsBlockedByCause *prometheus.CounterVec
	BandwidthBlocked    prometheus.Counter
	BandwidthOffered    prometheus.Counter
	RegeneratorsInUse   *prometheus.GaugeVec
	SpectrumUtilization *prometheus.GaugeVec
	OSNRMarginDB        prometheus.Histogram
}

// New builds a Registry with every §4.6 "Metrics collected" instrument
// registered: call-blocking by cause, bandwidth-blocking, regenerators
// in use per node, spectrum utilisation per link, and an OSNR-margin
// histogram.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		CallsBlockedByCause: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eonsim_calls_blocked_total",
			Help: "Calls blocked, partitioned by blocking cause.",
		}, []string{"cause"}),
		BandwidthBlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eonsim_bandwidth_blocked_gbps_total",
			Help: "Total requested bandwidth (Gbps) that was blocked.",
		}),
		BandwidthOffered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eonsim_bandwidth_offered_gbps_total",
			Help: "Total requested bandwidth (Gbps) offered to the RMSA pipeline.",
		}),
		RegeneratorsInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "eonsim_regenerators_in_use",
			Help: "Regenerators currently held, per node.",
		}, []string{"node"}),
		SpectrumUtilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "eonsim_spectrum_utilization_ratio",
			Help: "Fraction of slots held, per link.",
		}, []string{"link"}),
		OSNRMarginDB: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eonsim_osnr_margin_db",
			Help:    "OSNR margin above the selected modulation scheme's threshold, in dB.",
			Buckets: prometheus.LinearBuckets(0, 1, 20),
		}),
	}

	reg.MustRegister(
		r.CallsBlockedByCause,
		r.BandwidthBlocked,
		r.BandwidthOffered,
		r.RegeneratorsInUse,
		r.SpectrumUtilization,
		r.OSNRMarginDB,
	)

	return r
}

// Handler returns an http.Handler built against this registry's own
// instruments rather than the global default registerer. No command in
// cmd/eonsim serves it.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// RecordBlocked increments the blocked-call and blocked-bandwidth
// counters for one call.
func (r *Registry) RecordBlocked(cause string, bitrateGbps float64) {
	r.CallsBlockedByCause.WithLabelValues(cause).Inc()
	r.BandwidthBlocked.Add(bitrateGbps)
}

// RecordOffered increments the offered-bandwidth counter for one call,
// regardless of whether it is later admitted or blocked.
func (r *Registry) RecordOffered(bitrateGbps float64) {
	r.BandwidthOffered.Add(bitrateGbps)
}

// SetRegeneratorsInUse updates the per-node regenerator gauge.
func (r *Registry) SetRegeneratorsInUse(node string, inUse int) {
	r.RegeneratorsInUse.WithLabelValues(node).Set(float64(inUse))
}

// SetSpectrumUtilization updates the per-link utilisation gauge.
func (r *Registry) SetSpectrumUtilization(link string, ratio float64) {
	r.SpectrumUtilization.WithLabelValues(link).Set(ratio)
}

// ObserveOSNRMargin records one admitted call's OSNR margin above its
// scheme's threshold.
func (r *Registry) ObserveOSNRMargin(marginDB float64) {
	r.OSNRMarginDB.Observe(marginDB)
}
