package analyse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlls1989/gohbcn/analyse"
	"github.com/marlls1989/gohbcn/hbcn"
	"github.com/marlls1989/gohbcn/structural"
)

func mustParse(t *testing.T, input string) *structural.Graph {
	t.Helper()
	g, err := structural.Parse(input)
	require.NoError(t, err)

	return g
}

func TestComputeCycleTimeLinearChain(t *testing.T) {
	g := mustParse(t, `
		Port "a" [("b", 20)]
		Port "b" [("c", 15)]
		Port "c" []
	`)
	h := hbcn.FromStructuralGraph(g, hbcn.DefaultRegisterDelay, true)

	tStar, dh, err := analyse.ComputeCycleTime(h, true)
	require.NoError(t, err)
	assert.Greater(t, tStar, 0.0)
	assert.Equal(t, h.TransitionCount(), dh.TransitionCount())

	for _, p := range dh.Places() {
		assert.GreaterOrEqual(t, p.Place.Slack.Value, -1e-6)
	}
}

func TestComputeCycleTimeEmptyPort(t *testing.T) {
	g := mustParse(t, `Port "a" []`)
	h := hbcn.FromStructuralGraph(g, hbcn.DefaultRegisterDelay, true)

	tStar, dh, err := analyse.ComputeCycleTime(h, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tStar)
	assert.Equal(t, 0, dh.PlaceCount())
}

func TestFindCriticalCyclesSelfLoop(t *testing.T) {
	g := mustParse(t, `
		Port "a" [("b", 20)]
		DataReg "b" [("b", 15), ("c", 10)]
		Port "c" []
	`)
	h := hbcn.FromStructuralGraph(g, hbcn.DefaultRegisterDelay, true)

	_, dh, err := analyse.ComputeCycleTime(h, true)
	require.NoError(t, err)

	cycles := analyse.FindCriticalCycles(dh)
	assert.NotEmpty(t, cycles)
	for _, c := range cycles {
		assert.NotEmpty(t, c)
	}
}
