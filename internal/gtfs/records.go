package gtfs

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/jamespfennell/gtfs"

	"farezone.transit.org/internal/stations"
)

const lineLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Records turns a static feed into station records. Every selected route
// becomes one line, lettered in route id order; the route's trip with the
// most stop times supplies the station order and shape_dist_traveled the
// cumulative distance. Transfers between stops of two different lines become
// transfer targets.
func Records(static *gtfs.Static, config Config) ([]stations.Record, error) {
	routes := make([]*gtfs.Route, 0, len(static.Routes))
	for i := range static.Routes {
		if config.wantsRoute(static.Routes[i].Id) {
			routes = append(routes, &static.Routes[i])
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Id < routes[j].Id })

	longest := representativeTrips(static)

	var records []stations.Record
	index := make(map[string]int)           // label -> record position
	stopLabels := make(map[string][]string) // stop id -> labels
	letter := 0

	for _, route := range routes {
		trip, ok := longest[route.Id]
		if !ok {
			continue
		}
		if letter >= len(lineLetters) {
			return nil, &stations.InputFormatError{Field: "route", Reason: fmt.Sprintf("more than %d routes", len(lineLetters))}
		}
		prefix := string(lineLetters[letter])
		letter++

		stopTimes := make([]gtfs.ScheduledStopTime, len(trip.StopTimes))
		copy(stopTimes, trip.StopTimes)
		sort.SliceStable(stopTimes, func(i, j int) bool { return stopTimes[i].StopSequence < stopTimes[j].StopSequence })

		for k, st := range stopTimes {
			if st.Stop == nil {
				return nil, &stations.InputFormatError{Field: "stop_id", Reason: fmt.Sprintf("trip %s has a stop time without a stop", trip.ID)}
			}
			if st.ShapeDistanceTraveled == nil {
				return nil, &stations.InputFormatError{Field: "shape_dist_traveled", Reason: fmt.Sprintf("trip %s stop %s has no distance", trip.ID, st.Stop.Id)}
			}
			name := st.Stop.Name
			if name == "" {
				name = st.Stop.Id
			}
			label := fmt.Sprintf("%s%02d", prefix, k+1)
			km := *st.ShapeDistanceTraveled / config.unitsPerKm()

			index[label] = len(records)
			stopLabels[st.Stop.Id] = append(stopLabels[st.Stop.Id], label)
			records = append(records, stations.Record{
				Label:      label,
				Name:       name,
				DistanceKm: strconv.FormatFloat(km, 'f', -1, 64),
			})
		}
	}

	for _, transfer := range static.Transfers {
		if transfer.From == nil || transfer.To == nil {
			continue
		}
		from, to := stopLabels[transfer.From.Id], stopLabels[transfer.To.Id]
		if len(from) == 0 || len(to) == 0 || from[0][0] == to[0][0] {
			continue
		}
		rec := &records[index[from[0]]]
		if rec.TransferTarget == "" {
			rec.TransferTarget = to[0]
		}
	}

	return records, nil
}

// Dataset loads the feed named by config and builds a dataset from it.
func Dataset(ctx context.Context, config Config) (*stations.Dataset, error) {
	static, err := LoadStatic(ctx, config)
	if err != nil {
		return nil, err
	}
	records, err := Records(static, config)
	if err != nil {
		return nil, err
	}
	return stations.BuildDataset(records)
}

func representativeTrips(static *gtfs.Static) map[string]*gtfs.ScheduledTrip {
	longest := make(map[string]*gtfs.ScheduledTrip)
	for i := range static.Trips {
		trip := &static.Trips[i]
		if trip.Route == nil || len(trip.StopTimes) == 0 {
			continue
		}
		if cur, ok := longest[trip.Route.Id]; !ok || len(trip.StopTimes) > len(cur.StopTimes) {
			longest[trip.Route.Id] = trip
		}
	}
	return longest
}
