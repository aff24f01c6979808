package hbcn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlls1989/gohbcn/hbcn"
	"github.com/marlls1989/gohbcn/structural"
)

func mustParse(t *testing.T, input string) *structural.Graph {
	t.Helper()
	g, err := structural.Parse(input)
	require.NoError(t, err)

	return g
}

func TestFromStructuralGraphLinearChain(t *testing.T) {
	g := mustParse(t, `
		Port "a" [("b", 20)]
		Port "b" [("c", 15)]
		Port "c" []
	`)

	h := hbcn.FromStructuralGraph(g, hbcn.DefaultRegisterDelay, true)

	assert.Equal(t, 2*g.NodeCount(), h.TransitionCount())
	assert.Equal(t, 4*g.ChannelCount(), h.PlaceCount())

	var tokens int
	for _, p := range h.Places() {
		if p.Place.Token {
			tokens++
		}
	}
	assert.Equal(t, g.ChannelCount(), tokens)
}

func TestFromStructuralGraphTokenPerChannel(t *testing.T) {
	g := mustParse(t, `
		Port "a" [("b", 20)]
		DataReg "b" [("b", 15), ("c", 10)]
		Port "c" []
	`)
	h := hbcn.FromStructuralGraph(g, hbcn.DefaultRegisterDelay, true)

	assert.Equal(t, 2*g.NodeCount(), h.TransitionCount())
	assert.Equal(t, 4*g.ChannelCount(), h.PlaceCount())

	var tokens int
	for _, p := range h.Places() {
		if p.Place.Token {
			tokens++
		}
	}
	assert.Equal(t, g.ChannelCount(), tokens)
}

func TestFromStructuralGraphEmptyPort(t *testing.T) {
	g := mustParse(t, `Port "a" []`)
	h := hbcn.FromStructuralGraph(g, hbcn.DefaultRegisterDelay, true)

	assert.Equal(t, 2, h.TransitionCount())
	assert.Equal(t, 0, h.PlaceCount())
}

func TestCeilLog2ViaFanOutWeights(t *testing.T) {
	// a fans out to b and c; backward_cost(a) = R*ceilLog2(2) = 2R.
	g := mustParse(t, `
		Port "a" [("b", 1), ("c", 1)]
		Port "b" []
		Port "c" []
	`)
	h := hbcn.FromStructuralGraph(g, hbcn.DefaultRegisterDelay, false)

	a, b := structural.Port("a"), structural.Port("b")
	var found bool
	for _, p := range h.Out(hbcn.DataT(b)) {
		if p.Dst == hbcn.SpacerT(a) {
			assert.Equal(t, 2*hbcn.DefaultRegisterDelay, p.Place.Weight)
			found = true
		}
	}
	assert.True(t, found)
}
