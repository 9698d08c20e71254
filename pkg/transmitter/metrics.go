package transmitter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of a Transmitter. A nil *Metrics
// records nothing.
type Metrics struct {
	messages      *prometheus.CounterVec   // by outcome: sent, saved, rejected, failed
	packets       prometheus.Counter       // packets framed
	tones         prometheus.Counter       // bit tones emitted, pauses excluded
	transmissions prometheus.Counter       // packets played or assembled
	duration      *prometheus.HistogramVec // by op: send, save
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		messages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "soundmodem_messages_total",
			Help: "Messages handled by the transmitter, by outcome",
		}, []string{"outcome"}),
		packets: factory.NewCounter(prometheus.CounterOpts{
			Name: "soundmodem_packets_framed_total",
			Help: "Packets framed, one per redundant repetition",
		}),
		tones: factory.NewCounter(prometheus.CounterOpts{
			Name: "soundmodem_tones_total",
			Help: "Bit tones emitted to a sink",
		}),
		transmissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "soundmodem_transmissions_total",
			Help: "Packets fully emitted to a sink",
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "soundmodem_operation_seconds",
			Help:    "Wall time of send and save operations",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"op"}),
	}
}

func (m *Metrics) message(outcome string) {
	if m != nil {
		m.messages.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) framed(n int) {
	if m != nil {
		m.packets.Add(float64(n))
	}
}

func (m *Metrics) tone() {
	if m != nil {
		m.tones.Inc()
	}
}

func (m *Metrics) transmission() {
	if m != nil {
		m.transmissions.Inc()
	}
}

func (m *Metrics) observe(op string, start time.Time) {
	if m != nil {
		m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
