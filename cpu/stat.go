package cpu

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a sampler.
type State int

const (
	// Fresh means only the construction sample has been taken.
	Fresh State = iota
	// Warm means at least one delta has been computed.
	Warm
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Warm:
		return "warm"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Clock returns the current instant. It must carry a monotonic reading.
type Clock func() time.Time

type options struct {
	clock Clock
}

// Option configures a sampler.
type Option func(*options)

// WithClock replaces the default time.Now clock.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Stat samples a TimeSource and reports usage between consecutive samples.
type Stat struct {
	source TimeSource
	clock  Clock
	last   Sample
	state  State
}

// NewStat takes the first sample from source and returns a Fresh sampler.
// If the source fails, no sampler is returned.
func NewStat(source TimeSource, opts ...Option) (*Stat, error) {
	if source == nil {
		return nil, fmt.Errorf("nil time source")
	}
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Stat{source: source, clock: o.clock}
	first, err := s.sample()
	if err != nil {
		return nil, err
	}
	s.last = first
	return s, nil
}

func (s *Stat) sample() (Sample, error) {
	work, err := s.source.CPUTime()
	if err != nil {
		return Sample{}, err
	}
	return Sample{Work: work, Wall: s.clock()}, nil
}

// advance takes a new sample and replaces the stored one only after the
// delta has been computed. On error the stored sample is left untouched.
func (s *Stat) advance() (float64, time.Duration, error) {
	cur, err := s.sample()
	if err != nil {
		return 0, 0, err
	}
	ratio, consumed := Delta(s.last, cur)
	s.state = Warm
	s.last = cur
	return ratio, consumed, nil
}

// Usage returns the CPU usage since the previous sample as a fraction of one
// core: 0.5 is half of one core, 2.0 is two fully busy cores.
func (s *Stat) Usage() (float64, error) {
	ratio, _, err := s.advance()
	return ratio, err
}

// CPUTime returns the CPU time consumed since the previous sample.
func (s *Stat) CPUTime() (time.Duration, error) {
	_, consumed, err := s.advance()
	return consumed, err
}

// State returns the current lifecycle state.
func (s *Stat) State() State {
	return s.state
}

// Last returns the stored sample.
func (s *Stat) Last() Sample {
	return s.last
}
