// SPDX-License-Identifier: EPL-2.0

package status

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts handle lifecycle events and WAV exports. A nil *Metrics
// records nothing.
type Metrics struct {
	acquired      *prometheus.CounterVec
	released      *prometheus.CounterVec
	releaseErrors *prometheus.CounterVec
	live          prometheus.Gauge
	exports       prometheus.Counter
	exportErrors  prometheus.Counter
	exportBytes   prometheus.Counter
}

// NewMetrics builds the collectors and registers them with reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		acquired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fmodgo_handles_acquired_total",
			Help: "Total number of owning handles acquired.",
		}, []string{"kind"}),
		released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fmodgo_handles_released_total",
			Help: "Total number of owning handles released.",
		}, []string{"kind"}),
		releaseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fmodgo_handle_release_errors_total",
			Help: "Total number of release calls the engine rejected.",
		}, []string{"kind"}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fmodgo_handles_live",
			Help: "Current number of live owning handles.",
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fmodgo_wav_exports_total",
			Help: "Total number of completed WAV exports.",
		}),
		exportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fmodgo_wav_export_errors_total",
			Help: "Total number of failed WAV exports.",
		}),
		exportBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fmodgo_wav_export_bytes_total",
			Help: "Total number of PCM payload bytes exported.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.acquired, m.released, m.releaseErrors, m.live, m.exports, m.exportErrors, m.exportBytes)
	}

	return m
}

func (m *Metrics) RecordAcquired(kind string) {
	if m == nil {
		return
	}
	m.acquired.WithLabelValues(kind).Inc()
	m.live.Inc()
}

// RecordReleased counts a release. The handle is dead afterwards even when
// the engine failed, so the live gauge always drops.
func (m *Metrics) RecordReleased(kind string, err error) {
	if m == nil {
		return
	}
	m.released.WithLabelValues(kind).Inc()
	m.live.Dec()
	if err != nil {
		m.releaseErrors.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) RecordExport(payload int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.exportErrors.Inc()
		return
	}
	m.exports.Inc()
	m.exportBytes.Add(float64(payload))
}
