// Package zones bands shortest-path distances into fare zones.
package zones

// Map holds the fare zone of each reachable station.
type Map map[string]int

// Zone returns the fare zone for a distance in deciKm. Bands are 4 km wide
// and start 1 km early: zone 1 ends at 3.0 km, zone 10 at 39.0 km.
func Zone(distance int) int {
	return (distance + 49) / 40
}

// Classify applies Zone to every distance. Callers pass finite distances only.
func Classify(distances map[string]int) Map {
	zones := make(Map, len(distances))
	for name, d := range distances {
		zones[name] = Zone(d)
	}
	return zones
}
