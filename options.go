package fsbi

import (
	"log/slog"

	"github.com/hupe1980/fsbi/index"
)

type options struct {
	cfg              index.Config
	flipProbability  float64
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures FSBI constructor behavior.
type Option func(*options)

// WithM sets the width in bits of every bloom node. Default: 2048.
// Larger values lower the false-positive rate of root pruning at the cost of
// memory and snapshot size.
func WithM(m uint32) Option {
	return func(o *options) {
		o.cfg.M = m
	}
}

// WithKLex sets the number of lexical hash functions per subsequence.
// Default: 2.
func WithKLex(k int) Option {
	return func(o *options) {
		o.cfg.KLex = k
	}
}

// WithKSem sets the number of semantic hash functions per subsequence.
// Default: 2.
func WithKSem(k int) Option {
	return func(o *options) {
		o.cfg.KSem = k
	}
}

// WithProjectionDim sets the semantic projector's dimension r. Default: 64.
func WithProjectionDim(r int) Option {
	return func(o *options) {
		o.cfg.ProjectionDim = r
	}
}

// WithProjectorSeed sets the seed controlling all projector randomness.
// Two instances with the same seed produce identical semantic hashes.
// Default: 42.
func WithProjectorSeed(seed uint32) Option {
	return func(o *options) {
		o.cfg.ProjectorSeed = seed
	}
}

// WithMaxPhraseLen sets the longest phrase window in tokens. Default: 3.
func WithMaxPhraseLen(n int) Option {
	return func(o *options) {
		o.cfg.MaxPhraseLen = n
	}
}

// WithFlipProbability sets the per-bit flip probability used when a caller
// explicitly requests a noisy snapshot. Default: 0.01. It has no effect on
// plain Snapshot exports.
func WithFlipProbability(p float64) Option {
	return func(o *options) {
		o.flipProbability = p
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// DefaultFlipProbability is the default per-bit flip probability for noisy
// snapshot export.
const DefaultFlipProbability = 0.01

func applyOptions(optFns []Option) options {
	o := options{
		cfg:              index.DefaultConfig(),
		flipProbability:  DefaultFlipProbability,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
