package structural_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlls1989/gohbcn/structural"
)

func TestParseLinearChain(t *testing.T) {
	input := `
		Port "a" [("b", 20)]
		Port "b" [("c", 15)]
		Port "c" []
	`
	g, err := structural.Parse(input)
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.ChannelCount())

	channels := g.Channels()
	require.Len(t, channels, 2)
	assert.Equal(t, structural.AckNull, channels[0].Channel.InitialPhase)
	assert.False(t, channels[0].Channel.IsInternal)
	assert.Equal(t, 20.0, channels[0].Channel.VirtualDelay)
}

func TestParseDataRegExpansion(t *testing.T) {
	input := `
		Port "a" [("b", 20)]
		DataReg "b" [("b", 15), ("c", 10)]
		Port "c" []
	`
	g, err := structural.Parse(input)
	require.NoError(t, err)

	// a, b, b/s0, b/s1, c
	assert.Equal(t, 5, g.NodeCount())

	names := make(map[string]structural.CircuitNode)
	for _, n := range g.Nodes() {
		names[n.Name()] = n
	}
	require.Contains(t, names, "b/s0")
	require.Contains(t, names, "b/s1")
	assert.True(t, names["b"].IsPort() == false)
	assert.Equal(t, structural.RegisterCost, names["b"].BaseCost())

	var internalCount int
	for _, ch := range g.Channels() {
		if ch.Channel.IsInternal {
			internalCount++
		}
	}
	assert.Equal(t, 2, internalCount) // b->b/s0, b/s0->b/s1

	// a -> b, b/s1 -> b (self loop), b/s1 -> c : plus 2 internal = 5 total
	assert.Equal(t, 5, g.ChannelCount())
}

func TestParseUnsafeRegExpansion(t *testing.T) {
	input := `
		Port "a" [("r", 5)]
		UnsafeReg "r" [("c", 7)]
		Port "c" []
	`
	g, err := structural.Parse(input)
	require.NoError(t, err)

	assert.Equal(t, 4, g.NodeCount()) // a, r, r/s0, c

	var sawReqData bool
	for _, ch := range g.Channels() {
		if ch.Src.Name() == "r/s0" {
			assert.True(t, ch.Channel.IsInternal)
			assert.Equal(t, structural.ReqData, ch.Channel.InitialPhase)
			sawReqData = true
		}
	}
	assert.True(t, sawReqData)
}

func TestParseControlRegCost(t *testing.T) {
	input := `
		Port "a" [("r", 5)]
		ControlReg "r" []
	`
	g, err := structural.Parse(input)
	require.NoError(t, err)

	for _, n := range g.Nodes() {
		if n.Name() == "r" {
			assert.Equal(t, structural.ControlRegCost, n.BaseCost())
		}
	}
}

func TestParseUndefinedReference(t *testing.T) {
	input := `
		Port "a" [("b", 20)]
	`
	_, err := structural.Parse(input)
	require.ErrorIs(t, err, structural.ErrUndefinedNode)
}

func TestParseDuplicateDefinition(t *testing.T) {
	input := `
		Port "a" []
		Port "a" []
	`
	_, err := structural.Parse(input)
	require.ErrorIs(t, err, structural.ErrDuplicateNode)
}

func TestParseSyntaxError(t *testing.T) {
	input := `
		Port "a" ["b"]
	`
	_, err := structural.Parse(input)
	require.ErrorIs(t, err, structural.ErrSyntax)
}

func TestParseEmptyGraph(t *testing.T) {
	g, err := structural.Parse(`Port "a" []`)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.ChannelCount())
}
