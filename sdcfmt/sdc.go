package sdcfmt

import (
	"fmt"
	"io"
	"regexp"
	"sort"

	"github.com/marlls1989/gohbcn/hbcn"
	"github.com/marlls1989/gohbcn/structural"
)

// indexedNameRE pulls a trailing bracketed index off a port name, e.g.
// "data[5]" -> ("data", "[5]").
var indexedNameRE = regexp.MustCompile(`^(.+)(\[[0-9]+\])$`)

// portReplaceRE recognises a "port:<bus>/<signal>" qualified port name.
var portReplaceRE = regexp.MustCompile(`^port:([^/]+)/(.+)$`)

// portIndexRE pulls a trailing bracketed index off an already-rewritten
// instance path, e.g. "inst:data/i5" has no match, but "foo[3]" does.
var portIndexRE = regexp.MustCompile(`^(.+)\[([0-9]+)\]$`)

// portWildcard turns a port name into the synthesis tool's bus wildcard: a
// bracketed index is kept outside the wildcard, everything else collapses to
// "name_*". An indexed name also appends its own acknowledge rail
// ("name_*[idx] name_ack"), since the data and ack wires share one base name
// but the ack rail carries no index.
func portWildcard(s string) string {
	if m := indexedNameRE.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s_*%s %s_ack", m[1], m[2], m[1])
	}

	return s + "_*"
}

// portInstance turns a port name into the instance path the synthesis tool
// uses to find the cell driving/sampling it. "port:<bus>/<n>" names become
// "inst:<bus>/i<n>"; a trailing bracketed index then collapses into a "_n"
// suffix.
func portInstance(s string) string {
	inst := "inst:" + s
	if m := portReplaceRE.FindStringSubmatch(s); m != nil {
		inst = fmt.Sprintf("inst:%s/i%s", m[1], m[2])
	}

	if m := portIndexRE.FindStringSubmatch(inst); m != nil {
		return fmt.Sprintf("%s_%s", m[1], m[2])
	}

	return inst
}

// dstRails builds the TCL expression selecting a channel's destination
// pins: a port's output pin or a register's sequential data-input pins.
func dstRails(n structural.CircuitNode) string {
	if n.IsPort() {
		return fmt.Sprintf(
			"[list [get_ports [vfind {%s}] -filter {direction == out}] "+
				"[get_pins -of_objects [get_cells [vfind {%s/*}]] -filter {direction == in}]]",
			portWildcard(n.Name()), portInstance(n.Name()),
		)
	}

	return fmt.Sprintf(
		"[get_pins -of_objects [get_cells [vfind {%s/*}] -filter {is_sequential == true}] -filter {direction == in}]",
		n.Name(),
	)
}

// srcRails builds the TCL expression selecting a channel's source pins: a
// port's input pin or a register's sequential data-output pins.
func srcRails(n structural.CircuitNode) string {
	if n.IsPort() {
		return fmt.Sprintf("[get_ports [vfind {%s}] -filter {direction == in}]", portWildcard(n.Name()))
	}

	return fmt.Sprintf(
		"[get_pins -of_objects [get_cells [vfind {%s/*}] -filter {is_sequential == true}] -filter {direction == out}]",
		n.Name(),
	)
}

// sortedChannels returns res's path constraints in a fixed, deterministic
// order (by source name then destination name) so Write's output is stable
// across map iterations.
func sortedChannels(paths hbcn.PathConstraints) []structural.NodePair {
	keys := make([]structural.NodePair, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Src.Name() != keys[j].Src.Name() {
			return keys[i].Src.Name() < keys[j].Src.Name()
		}

		return keys[i].Dst.Name() < keys[j].Dst.Name()
	})

	return keys
}

// Write renders res as SDC text: a clock declaration at the pseudoclock
// period, then a set_max_delay/set_min_delay pair for every constrained
// channel. A channel's max delay is omitted when it equals the pseudoclock
// period exactly, since that is already implied by the clock declaration.
func Write(w io.Writer, res hbcn.ConstrainerResult) error {
	if _, err := fmt.Fprintf(w, "create_clock -period %.3f [get_port clk]\n", res.PseudoclockPeriod); err != nil {
		return err
	}

	for _, key := range sortedChannels(res.PathConstraints) {
		bounds := res.PathConstraints[key]

		if bounds.Min.Set {
			if _, err := fmt.Fprintf(w, "set_min_delay %.3f \\\n\t-through %s \\\n\t-through %s\n",
				bounds.Min.Value, srcRails(key.Src), dstRails(key.Dst)); err != nil {
				return err
			}
		}

		if bounds.Max.Set && bounds.Max.Value != res.PseudoclockPeriod {
			if _, err := fmt.Fprintf(w, "set_max_delay %.3f \\\n\t-through %s \\\n\t-through %s\n",
				bounds.Max.Value, srcRails(key.Src), dstRails(key.Dst)); err != nil {
				return err
			}
		}
	}

	return nil
}
