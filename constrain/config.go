// Package constrain generates per-path min/max delay constraints for a
// target cycle time, via two LP formulations: pseudoclock and proportional.
package constrain

import "fmt"

// Algorithm selects which constraint generator Run dispatches to.
type Algorithm uint8

const (
	Pseudoclock Algorithm = iota
	Proportional
)

// Config holds the parameters shared by both generators, built with
// functional options mirroring the teacher's WithX option-constructor
// pattern: invalid values panic at construction time rather than surfacing
// as a deferred error.
type Config struct {
	CycleTime      float64
	MinimalDelay   float64
	ForwardMargin  *float64 // converted fraction, (0,1], nil if unset
	BackwardMargin *float64
	Algorithm      Algorithm
}

// Option configures a Config under construction.
type Option func(*Config)

// WithAlgorithm selects Pseudoclock or Proportional.
func WithAlgorithm(a Algorithm) Option {
	return func(c *Config) { c.Algorithm = a }
}

// WithForwardMargin sets the forward margin from a user-facing integer
// percent in [0,100), converting it to the internal fraction 1 - p/100.
// Panics if percent is out of range.
func WithForwardMargin(percent int) Option {
	f := marginFraction(percent)

	return func(c *Config) { c.ForwardMargin = &f }
}

// WithBackwardMargin is the backward-margin counterpart of WithForwardMargin.
func WithBackwardMargin(percent int) Option {
	f := marginFraction(percent)

	return func(c *Config) { c.BackwardMargin = &f }
}

func marginFraction(percent int) float64 {
	if percent < 0 || percent >= 100 {
		panic(fmt.Sprintf("constrain: margin percent %d out of range [0,100)", percent))
	}

	return 1 - float64(percent)/100
}

// NewConfig constructs a Config. Panics if cycleTime <= 0 or minimalDelay <
// 0, matching the generators' own documented preconditions.
func NewConfig(cycleTime, minimalDelay float64, opts ...Option) Config {
	if cycleTime <= 0 {
		panic("constrain: cycle time must be > 0")
	}
	if minimalDelay < 0 {
		panic("constrain: minimal delay must be >= 0")
	}

	c := Config{
		CycleTime:    cycleTime,
		MinimalDelay: minimalDelay,
	}
	for _, o := range opts {
		o(&c)
	}

	return c
}
