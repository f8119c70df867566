package network

import (
	"farezone.transit.org/internal/stations"
)

// BuildGraph converts every line of the dataset into adjacency entries keyed by
// display name. Stations sharing a display name merge into one vertex; when two
// stations set a weight for the same neighbor, the line processed later wins.
func BuildGraph(ds *stations.Dataset) *Graph {
	g := NewGraph()
	for _, line := range ds.Lines {
		addLine(g, line)
	}
	return g
}

type neighbor struct {
	index  int
	weight int
}

func addLine(g *Graph, line stations.Line) {
	km := line.Distances()
	n := len(km)

	for i, st := range line.Stations {
		g.AddVertex(st.Name)
		if n < 2 {
			continue
		}

		var adj []neighbor
		if line.Circular() {
			adj = circularNeighbors(km, i)
		} else {
			adj = linearNeighbors(km, i)
		}

		for _, nb := range adj {
			g.SetWeight(st.Name, line.Stations[nb.index].Name, nb.weight)
		}
	}
}

func linearNeighbors(km []int, i int) []neighbor {
	var adj []neighbor
	if i > 0 {
		adj = append(adj, neighbor{i - 1, km[i] - km[i-1]})
	}
	if i+1 < len(km) {
		adj = append(adj, neighbor{i + 1, km[i+1] - km[i]})
	}
	return adj
}

// circularNeighbors applies the loop encoding: station 0 closes the loop with
// weight km[0]-km[n-1], and the edge between stations 0 and 1 weighs km[1]
// rather than km[1]-km[0].
func circularNeighbors(km []int, i int) []neighbor {
	n := len(km)
	switch {
	case i == 0:
		return []neighbor{
			{n - 1, km[0] - km[n-1]},
			{1, km[1]},
		}
	case i == 1:
		adj := []neighbor{{0, km[1]}}
		if n > 2 {
			adj = append(adj, neighbor{2, km[2] - km[1]})
		}
		return adj
	case i == n-1:
		return []neighbor{
			{i - 1, km[i] - km[i-1]},
			{0, km[0] - km[i]},
		}
	default:
		return []neighbor{
			{i - 1, km[i] - km[i-1]},
			{i + 1, km[i+1] - km[i]},
		}
	}
}
