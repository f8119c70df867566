package network

import (
	"bytes"
	"encoding/json"
)

// Edge is a directed view of one adjacency entry. Weight is in deciKm.
type Edge struct {
	From   string
	To     string
	Weight int
}

type adjacency struct {
	order  []string
	weight map[string]int
}

// Graph is an undirected weighted station graph keyed by display name.
// Vertex and neighbor iteration follow insertion order; shortest-path
// tie-breaking depends on it.
type Graph struct {
	vertices []string
	adj      map[string]*adjacency
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[string]*adjacency)}
}

// AddVertex inserts name if it is not already present.
func (g *Graph) AddVertex(name string) {
	if _, ok := g.adj[name]; ok {
		return
	}
	g.vertices = append(g.vertices, name)
	g.adj[name] = &adjacency{weight: make(map[string]int)}
}

// SetWeight records the weight from one vertex to a neighbor. An existing
// weight is overwritten in place and keeps its position in the neighbor order.
// Only the from side is written; callers decide about symmetry.
func (g *Graph) SetWeight(from, to string, weight int) {
	g.AddVertex(from)
	a := g.adj[from]
	if _, ok := a.weight[to]; !ok {
		a.order = append(a.order, to)
	}
	a.weight[to] = weight
}

// HasVertex reports whether name is a vertex.
func (g *Graph) HasVertex(name string) bool {
	_, ok := g.adj[name]
	return ok
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.vertices)
}

// Vertices returns vertex names in insertion order.
func (g *Graph) Vertices() []string {
	out := make([]string, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// Neighbors returns the neighbors of name in insertion order.
func (g *Graph) Neighbors(name string) []string {
	a, ok := g.adj[name]
	if !ok {
		return nil
	}
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Weight returns the edge weight from one vertex to another.
func (g *Graph) Weight(from, to string) (int, bool) {
	a, ok := g.adj[from]
	if !ok {
		return 0, false
	}
	w, ok := a.weight[to]
	return w, ok
}

// Edges returns every adjacency entry, vertex by vertex, in insertion order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, v := range g.vertices {
		a := g.adj[v]
		for _, n := range a.order {
			edges = append(edges, Edge{From: v, To: n, Weight: a.weight[n]})
		}
	}
	return edges
}

// NegativeEdges returns entries with a negative weight. Shortest-path results
// are undefined on such graphs.
func (g *Graph) NegativeEdges() []Edge {
	var out []Edge
	for _, e := range g.Edges() {
		if e.Weight < 0 {
			out = append(out, e)
		}
	}
	return out
}

// Asymmetric returns entries whose reverse entry is missing or differs.
func (g *Graph) Asymmetric() []Edge {
	var out []Edge
	for _, e := range g.Edges() {
		if w, ok := g.Weight(e.To, e.From); !ok || w != e.Weight {
			out = append(out, e)
		}
	}
	return out
}

// Equal reports whether both graphs have the same vertices and neighbor
// weights in the same order.
func (g *Graph) Equal(other *Graph) bool {
	if g.Len() != other.Len() {
		return false
	}
	for i, v := range g.vertices {
		if other.vertices[i] != v {
			return false
		}
		a, b := g.adj[v], other.adj[v]
		if len(a.order) != len(b.order) {
			return false
		}
		for j, n := range a.order {
			if b.order[j] != n || a.weight[n] != b.weight[n] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON writes {vertex: {neighbor: weight}} keeping insertion order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range g.vertices {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, v); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		a := g.adj[v]
		for j, n := range a.order {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, n); err != nil {
				return nil, err
			}
			w, _ := json.Marshal(a.weight[n])
			buf.Write(w)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}
