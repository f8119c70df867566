package routing

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farezone.transit.org/internal/network"
	"farezone.transit.org/internal/stations"
)

func connect(g *network.Graph, a, b string, w int) {
	g.SetWeight(a, b, w)
	g.SetWeight(b, a, w)
}

func TestShortestPathLinearLine(t *testing.T) {
	ds, err := stations.BuildDataset([]stations.Record{
		{Label: "A01", Name: "s0", DistanceKm: "0"},
		{Label: "A02", Name: "s1", DistanceKm: "0.5"},
		{Label: "A03", Name: "s2", DistanceKm: "1.2"},
	})
	require.NoError(t, err)

	result, err := ShortestPath(network.BuildGraph(ds), "s0")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"s0": 0, "s1": 5, "s2": 12}, result.Dist)
	assert.Equal(t, map[string]string{"s1": "s0", "s2": "s1"}, result.Prev)

	path, ok := result.Path("s2")
	require.True(t, ok)
	assert.Equal(t, []string{"s0", "s1", "s2"}, path)
}

func TestShortestPathUnknownSource(t *testing.T) {
	g := network.NewGraph()
	connect(g, "a", "b", 1)

	result, err := ShortestPath(g, "nowhere")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrecondition)

	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)
	assert.Equal(t, "nowhere", precondition.Source)
}

func TestShortestPathUnreachable(t *testing.T) {
	g := network.NewGraph()
	connect(g, "a", "b", 3)
	connect(g, "x", "y", 1)
	g.AddVertex("island")

	result, err := ShortestPath(g, "a")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Dist["b"])
	for _, name := range []string{"x", "y", "island"} {
		assert.Equal(t, Infinity, result.Dist[name], name)
		_, hasPrev := result.Prev[name]
		assert.False(t, hasPrev, name)
		assert.False(t, result.Reachable(name), name)
		_, ok := result.Path(name)
		assert.False(t, ok, name)
	}

	_, hasPrev := result.Prev["a"]
	assert.False(t, hasPrev)
	assert.Equal(t, map[string]int{"a": 0, "b": 3}, result.Finite())
}

func TestShortestPathTieBreakFollowsInsertionOrder(t *testing.T) {
	g := network.NewGraph()
	for _, v := range []string{"s", "a", "b", "c"} {
		g.AddVertex(v)
	}
	// s lists b before a, but a was inserted into the graph first.
	connect(g, "s", "b", 1)
	connect(g, "s", "a", 1)
	connect(g, "b", "c", 1)
	connect(g, "a", "c", 1)

	result, err := ShortestPath(g, "s")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Dist["c"])
	assert.Equal(t, "a", result.Prev["c"])

	// Reversing insertion order flips the predecessor.
	g2 := network.NewGraph()
	for _, v := range []string{"s", "b", "a", "c"} {
		g2.AddVertex(v)
	}
	connect(g2, "s", "b", 1)
	connect(g2, "s", "a", 1)
	connect(g2, "b", "c", 1)
	connect(g2, "a", "c", 1)

	result, err = ShortestPath(g2, "s")
	require.NoError(t, err)
	assert.Equal(t, "b", result.Prev["c"])
}

func TestShortestPathZeroWeightEdges(t *testing.T) {
	g := network.NewGraph()
	connect(g, "a", "b", 0)
	connect(g, "b", "c", 4)

	result, err := ShortestPath(g, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 0, "b": 0, "c": 4}, result.Dist)
}

// bruteForce enumerates every simple path from source.
func bruteForce(g *network.Graph, source string) map[string]int {
	best := map[string]int{source: 0}
	onPath := map[string]bool{source: true}

	var walk func(v string, d int)
	walk = func(v string, d int) {
		for _, n := range g.Neighbors(v) {
			if onPath[n] {
				continue
			}
			w, _ := g.Weight(v, n)
			nd := d + w
			if cur, ok := best[n]; !ok || nd < cur {
				best[n] = nd
			}
			onPath[n] = true
			walk(n, nd)
			onPath[n] = false
		}
	}
	walk(source, 0)
	return best
}

func TestShortestPathMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 40; round++ {
		t.Run(fmt.Sprintf("graph_%d", round), func(t *testing.T) {
			g := network.NewGraph()
			n := 2 + rng.Intn(6)
			for i := 0; i < n; i++ {
				g.AddVertex(fmt.Sprintf("v%d", i))
			}
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					if rng.Intn(3) == 0 {
						connect(g, fmt.Sprintf("v%d", i), fmt.Sprintf("v%d", j), rng.Intn(50))
					}
				}
			}

			source := fmt.Sprintf("v%d", rng.Intn(n))
			result, err := ShortestPath(g, source)
			require.NoError(t, err)

			want := bruteForce(g, source)
			for _, v := range g.Vertices() {
				if d, ok := want[v]; ok {
					assert.Equal(t, d, result.Dist[v], v)
					path, ok := result.Path(v)
					require.True(t, ok, v)
					assert.Equal(t, d, pathLength(t, g, path), v)
				} else {
					assert.Equal(t, Infinity, result.Dist[v], v)
				}
			}
		})
	}
}

func pathLength(t *testing.T, g *network.Graph, path []string) int {
	t.Helper()
	total := 0
	for i := 1; i < len(path); i++ {
		w, ok := g.Weight(path[i-1], path[i])
		require.True(t, ok)
		total += w
	}
	return total
}
