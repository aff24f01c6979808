package sdcfmt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlls1989/gohbcn/hbcn"
	"github.com/marlls1989/gohbcn/sdcfmt"
	"github.com/marlls1989/gohbcn/structural"
)

func TestWriteClockDeclaration(t *testing.T) {
	res := hbcn.ConstrainerResult{PseudoclockPeriod: 12.5}

	var buf strings.Builder
	require.NoError(t, sdcfmt.Write(&buf, res))

	assert.Equal(t, "create_clock -period 12.500 [get_port clk]\n", buf.String())
}

func TestWritePortChannelRails(t *testing.T) {
	res := hbcn.ConstrainerResult{
		PseudoclockPeriod: 20,
		PathConstraints: hbcn.PathConstraints{
			structural.NodePair{Src: structural.Port("a"), Dst: structural.Port("b")}: {
				Max: hbcn.Some(18.25),
			},
		},
	}

	var buf strings.Builder
	require.NoError(t, sdcfmt.Write(&buf, res))
	out := buf.String()

	assert.Contains(t, out, "set_max_delay 18.250")
	assert.Contains(t, out, "get_ports [vfind {a_*}]")
	assert.Contains(t, out, "get_cells [vfind {inst:b/*}]")
}

func TestWriteRegisterChannelRails(t *testing.T) {
	res := hbcn.ConstrainerResult{
		PseudoclockPeriod: 20,
		PathConstraints: hbcn.PathConstraints{
			structural.NodePair{
				Src: structural.Register("reg1", structural.RegisterCost),
				Dst: structural.Register("reg2", structural.RegisterCost),
			}: {
				Min: hbcn.Some(2.0),
			},
		},
	}

	var buf strings.Builder
	require.NoError(t, sdcfmt.Write(&buf, res))
	out := buf.String()

	assert.Contains(t, out, "set_min_delay 2.000")
	assert.Contains(t, out, "is_sequential == true")
}

func TestWriteOmitsMaxEqualToPeriod(t *testing.T) {
	res := hbcn.ConstrainerResult{
		PseudoclockPeriod: 10,
		PathConstraints: hbcn.PathConstraints{
			structural.NodePair{Src: structural.Port("a"), Dst: structural.Port("b")}: {
				Max: hbcn.Some(10.0),
			},
		},
	}

	var buf strings.Builder
	require.NoError(t, sdcfmt.Write(&buf, res))

	assert.NotContains(t, buf.String(), "set_max_delay")
}

func TestWriteOrdersChannelsDeterministically(t *testing.T) {
	res := hbcn.ConstrainerResult{
		PseudoclockPeriod: 10,
		PathConstraints: hbcn.PathConstraints{
			structural.NodePair{Src: structural.Port("z"), Dst: structural.Port("y")}: {Max: hbcn.Some(5)},
			structural.NodePair{Src: structural.Port("a"), Dst: structural.Port("b")}: {Max: hbcn.Some(6)},
		},
	}

	var buf strings.Builder
	require.NoError(t, sdcfmt.Write(&buf, res))
	out := buf.String()

	assert.Less(t, strings.Index(out, "a_*"), strings.Index(out, "z_*"))
}

func TestPortIndexWildcardAndInstance(t *testing.T) {
	res := hbcn.ConstrainerResult{
		PseudoclockPeriod: 10,
		PathConstraints: hbcn.PathConstraints{
			structural.NodePair{Src: structural.Port("data[5]"), Dst: structural.Port("q")}: {Max: hbcn.Some(4)},
		},
	}

	var buf strings.Builder
	require.NoError(t, sdcfmt.Write(&buf, res))
	out := buf.String()

	assert.Contains(t, out, "data_*[5] data_ack")
	assert.Contains(t, out, "inst:data_5")
}
