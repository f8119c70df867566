package models

// Station is a display name with every label that shares it.
type Station struct {
	Name    string   `json:"name"`
	Labels  []string `json:"labels"`
	LineIDs []string `json:"lineIds"`
}

// Intersection is a declared transfer between two labels.
type Intersection struct {
	Name   string   `json:"name"`
	Labels []string `json:"labels"`
}

// StationZone is the distance, zone and predecessor of one station.
type StationZone struct {
	Name       string  `json:"name"`
	Distance   int     `json:"distance"`
	DistanceKm float64 `json:"distanceKm"`
	Zone       int     `json:"zone"`
	Previous   string  `json:"previous,omitempty"`
}

// ZonesEntry is the zone table seen from one origin.
type ZonesEntry struct {
	Origin      string        `json:"origin"`
	Stations    []StationZone `json:"stations"`
	Unreachable []string      `json:"unreachable"`
}

// PathEntry is the shortest route between two stations.
type PathEntry struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Stations    []string `json:"stations"`
	Distance    int      `json:"distance"`
	DistanceKm  float64  `json:"distanceKm"`
	Zone        int      `json:"zone"`
}

// DeciKmToKm converts tenths of a kilometre to kilometres.
func DeciKmToKm(d int) float64 {
	return float64(d) / 10
}
