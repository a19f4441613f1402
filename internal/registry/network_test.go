package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeNetwork_ChainScenario(t *testing.T) {
	r := New()

	// Ten objects, object i connects to object i-1 (a chain).
	var prev string
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("node-%d", i)
		obj := newObject(id, float64(i), 0, 0)
		if i > 0 {
			obj.Connect(prev)
		}
		require.NoError(t, r.Register(obj))
		prev = id
	}

	m := r.AnalyzeNetwork()
	assert.Equal(t, 10, m.Objects)
	assert.Equal(t, 9, m.TotalConnections)
	assert.Equal(t, 0, m.Dangling)
	assert.InDelta(t, 0.1, m.Density, 1e-12)
}

func TestAnalyzeNetwork_DensityBounds(t *testing.T) {
	r := New()
	assert.Zero(t, r.AnalyzeNetwork().Density, "empty registry")

	require.NoError(t, r.Register(newObject("a", 0, 0, 0)))
	assert.Zero(t, r.AnalyzeNetwork().Density, "single object")

	require.NoError(t, r.Register(newObject("b", 1, 0, 0)))
	assert.Zero(t, r.AnalyzeNetwork().Density, "two objects, no edges")

	// Full mesh of two: A→B and B→A count separately.
	a, _ := r.Get("a")
	b, _ := r.Get("b")
	a.Connect("b")
	b.Connect("a")

	m := r.AnalyzeNetwork()
	assert.Equal(t, 2, m.TotalConnections)
	assert.Equal(t, 1.0, m.Density)
}

func TestAnalyzeNetwork_DanglingEdges(t *testing.T) {
	r := New()
	a := newObject("a", 0, 0, 0)
	a.Connect("ghost")
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(newObject("b", 1, 0, 0)))

	m := r.AnalyzeNetwork()
	// Edges to nowhere still count toward the total.
	assert.Equal(t, 1, m.TotalConnections)
	assert.Equal(t, 1, m.Dangling)
	assert.InDelta(t, 0.5, m.Density, 1e-12)
}

func TestTopology(t *testing.T) {
	r := New()
	a := newObject("a", 0, 0, 0)
	a.Connect("b")
	a.Connect("ghost")
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(newObject("b", 1, 0, 0)))

	topology := r.Topology()
	require.Len(t, topology, 2)
	// Dangling targets stay in the edge list even though they resolve
	// to no record.
	assert.Equal(t, []string{"b", "ghost"}, topology["a"])
	assert.Empty(t, topology["b"])
}

func TestTopology_AlwaysRebuilt(t *testing.T) {
	r := New()
	a := newObject("a", 0, 0, 0)
	require.NoError(t, r.Register(a))

	before := r.Topology()
	assert.Empty(t, before["a"])

	a.Connect("b")
	after := r.Topology()
	assert.Equal(t, []string{"b"}, after["a"])
}
