package network

import (
	"sort"

	"farezone.transit.org/internal/stations"
)

// Intersections finds every unordered pair of labels joined by a transfer
// declaration, whichever side declares it. Each pair is keyed by the display
// name of its smaller label, or of the other label when the smaller one is
// not part of the dataset.
func Intersections(ds *stations.Dataset) map[string][2]string {
	pairs := make(map[[2]string]struct{})
	for _, line := range ds.Lines {
		for label, target := range line.Transfers() {
			pairs[orderedPair(label, target)] = struct{}{}
		}
	}

	sorted := make([][2]string, 0, len(pairs))
	for p := range pairs {
		sorted = append(sorted, p)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})

	out := make(map[string][2]string, len(sorted))
	for _, p := range sorted {
		name, ok := ds.Names[p[0]]
		if !ok {
			name = ds.Names[p[1]]
		}
		out[name] = p
	}
	return out
}

func orderedPair(a, b string) [2]string {
	if b < a {
		return [2]string{b, a}
	}
	return [2]string{a, b}
}
