// Package sdcfmt renders a constraint generator's result as synthesis-tool
// SDC text: a clock declaration followed by per-channel set_max_delay and
// set_min_delay lines, rail expressions templated from each CircuitNode's
// kind and name.
package sdcfmt
