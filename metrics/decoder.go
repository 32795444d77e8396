package metrics

import (
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bitflipping/harddecision"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//Decoder collects batch decode outcomes.
type Decoder struct {
	registry    *prometheus.Registry
	frames      *prometheus.CounterVec
	iterations  prometheus.Histogram
	bitsFlipped prometheus.Counter
}

//NewDecoder registers the decoder collectors on a fresh registry. The iteration histogram
// has one bucket per flip round up to maxIterations.
func NewDecoder(maxIterations int) *Decoder {
	if maxIterations < 1 {
		maxIterations = harddecision.DefaultMaxIterations
	}
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Decoder{
		registry: registry,
		frames: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ldpc_decoder_frames_total",
				Help: "Frames decoded by outcome",
			},
			[]string{"outcome"},
		),
		iterations: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ldpc_decoder_iterations",
				Help:    "Flip rounds a frame needed before it stopped",
				Buckets: prometheus.LinearBuckets(0, 1, maxIterations+1),
			},
		),
		bitsFlipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ldpc_decoder_bits_flipped_total",
				Help: "Bits flipped by the decoder",
			},
		),
	}
}

//Observe records every frame of result.
func (d *Decoder) Observe(result *harddecision.Result) {
	for f, syndrome := range result.Syndromes {
		outcome := harddecision.Converged
		if syndrome != 0 {
			outcome = harddecision.Exhausted
		}
		d.frames.WithLabelValues(outcome.String()).Inc()
		d.iterations.Observe(float64(result.FrameIterations[f]))
	}
	d.bitsFlipped.Add(float64(result.Flips))
}

func (d *Decoder) Registry() *prometheus.Registry {
	return d.registry
}

//WriteToTextfile writes the collected metrics in the text exposition format.
func (d *Decoder) WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, d.registry)
}
