package classifier

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"reviewsentry/internal/platform/logger"
	"reviewsentry/internal/platform/metrics"
)

// ErrRejected is returned while the breaker is open or saturated in half-open
var ErrRejected = errors.New("classifier: circuit open")

// Scorer is anything that maps a feature vector to class probabilities
type Scorer interface {
	PredictProba(x []float64) ([]float64, error)
}

// BreakerSettings tunes the circuit breaker. Zero fields take defaults
type BreakerSettings struct {
	Name         string
	MaxRequests  uint32        // probes allowed in half-open
	Interval     time.Duration // closed state count reset
	Timeout      time.Duration // open -> half-open delay
	MinRequests  uint32        // window size before the ratio is considered
	FailureRatio float64
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.Name == "" {
		s.Name = "classifier"
	}
	if s.MaxRequests == 0 {
		s.MaxRequests = 3
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.MinRequests == 0 {
		s.MinRequests = 10
	}
	if s.FailureRatio <= 0 || s.FailureRatio > 1 {
		s.FailureRatio = 0.6
	}
	return s
}

// Guarded wraps a Scorer with a circuit breaker
type Guarded struct {
	inner Scorer
	cb    *gobreaker.CircuitBreaker[[]float64]
	name  string
}

// NewGuarded wraps inner
func NewGuarded(inner Scorer, s BreakerSettings) *Guarded {
	s = s.withDefaults()
	log := logger.Named("breaker")

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]float64](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < s.MinRequests {
				return false
			}
			ratio := float64(c.TotalFailures) / float64(c.Requests)
			if ratio >= s.FailureRatio {
				log.Warn().Str("breaker", s.Name).Uint32("failures", c.TotalFailures).Float64("failure_ratio", ratio).Msg("opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
	return &Guarded{inner: inner, cb: cb, name: s.Name}
}

// PredictProba runs the inner scorer through the breaker
// width mismatches are caller bugs and do not count against the breaker
func (g *Guarded) PredictProba(x []float64) ([]float64, error) {
	var callerErr error
	out, err := g.cb.Execute(func() ([]float64, error) {
		p, err := g.inner.PredictProba(x)
		if errors.Is(err, ErrDimension) {
			callerErr = err
			return nil, nil
		}
		return p, err
	})
	switch {
	case callerErr != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
		return nil, callerErr
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
		return nil, ErrRejected
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
	return out, nil
}

// State reports the breaker state as closed, half-open or open
func (g *Guarded) State() string { return g.cb.State().String() }

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
