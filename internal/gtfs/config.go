package gtfs

// Config controls how a static GTFS feed is turned into station records.
type Config struct {
	// Source is a local zip path or an http(s) URL.
	Source string
	// UnitsPerKm converts shape_dist_traveled to kilometres (1000 for metres).
	UnitsPerKm float64
	// RouteIDs limits the import to these routes; empty means all routes.
	RouteIDs []string
}

func (config Config) unitsPerKm() float64 {
	if config.UnitsPerKm <= 0 {
		return 1
	}
	return config.UnitsPerKm
}

func (config Config) wantsRoute(id string) bool {
	if len(config.RouteIDs) == 0 {
		return true
	}
	for _, r := range config.RouteIDs {
		if r == id {
			return true
		}
	}
	return false
}
