package routing

import (
	"errors"
	"fmt"
	"math"

	"farezone.transit.org/internal/network"
)

// Infinity is the distance of a vertex that cannot be reached from the source.
const Infinity = math.MaxInt

// ErrPrecondition is matched by every PreconditionError.
var ErrPrecondition = errors.New("precondition failed")

// PreconditionError reports a shortest-path source that is not a graph vertex.
type PreconditionError struct {
	Source string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("source %q is not a station of the graph", e.Source)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// Result holds the distances and predecessors of one shortest-path search.
type Result struct {
	Source string
	// Dist maps every vertex to its distance in deciKm, or Infinity.
	Dist map[string]int
	// Prev maps a vertex to its predecessor; the source and unreachable
	// vertices have no entry.
	Prev map[string]string
}

// Reachable reports whether name has a finite distance.
func (r *Result) Reachable(name string) bool {
	d, ok := r.Dist[name]
	return ok && d != Infinity
}

// Path returns the vertices from the source to target, or false when target
// is unknown or unreachable.
func (r *Result) Path(target string) ([]string, bool) {
	if !r.Reachable(target) {
		return nil, false
	}
	path := []string{target}
	for cur := target; cur != r.Source; {
		prev, ok := r.Prev[cur]
		if !ok {
			return nil, false
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// Finite returns the distances of reachable vertices only.
func (r *Result) Finite() map[string]int {
	out := make(map[string]int, len(r.Dist))
	for name, d := range r.Dist {
		if d != Infinity {
			out[name] = d
		}
	}
	return out
}

// ShortestPath runs Dijkstra's algorithm from source. The frontier is scanned
// linearly; among vertices with equal tentative distance the one inserted into
// the graph first is settled first. Weights must be non-negative.
func ShortestPath(g *network.Graph, source string) (*Result, error) {
	if !g.HasVertex(source) {
		return nil, &PreconditionError{Source: source}
	}

	vertices := g.Vertices()
	dist := make([]int, len(vertices))
	index := make(map[string]int, len(vertices))
	for i, v := range vertices {
		index[v] = i
		dist[i] = Infinity
	}
	dist[index[source]] = 0

	visited := make([]bool, len(vertices))
	prev := make(map[string]string)

	for remaining := len(vertices); remaining > 0; remaining-- {
		curr := -1
		for i := range vertices {
			if visited[i] {
				continue
			}
			if curr == -1 || dist[i] < dist[curr] {
				curr = i
			}
		}
		visited[curr] = true
		if dist[curr] == Infinity {
			continue
		}

		name := vertices[curr]
		for _, adj := range g.Neighbors(name) {
			j, ok := index[adj]
			if !ok || visited[j] {
				continue
			}
			w, _ := g.Weight(name, adj)
			if alt := dist[curr] + w; alt < dist[j] {
				dist[j] = alt
				prev[adj] = name
			}
		}
	}

	result := &Result{
		Source: source,
		Dist:   make(map[string]int, len(vertices)),
		Prev:   prev,
	}
	for i, v := range vertices {
		result.Dist[v] = dist[i]
	}
	return result, nil
}
