package restapi

import (
	"errors"
	"net/http"

	"farezone.transit.org/internal/app"
	"farezone.transit.org/internal/models"
	"farezone.transit.org/internal/routing"
	"farezone.transit.org/internal/utils"
)

// zoningFor validates a station name parameter and runs the search from it.
// It writes the error response itself and returns nil on failure.
func (api *RestAPI) zoningFor(w http.ResponseWriter, r *http.Request, param string) (string, *app.Zoning) {
	origin := utils.ExtractParam(r, param)
	if err := utils.ValidateStationName(origin); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{param: {err.Error()}})
		return "", nil
	}

	zoning, err := api.Zones(origin)
	if errors.Is(err, routing.ErrPrecondition) {
		api.sendNotFound(w, r)
		return "", nil
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return "", nil
	}
	return origin, zoning
}

func (api *RestAPI) zonesHandler(w http.ResponseWriter, r *http.Request) {
	maxZone, fieldErrors := utils.ParseIntParam(r.URL.Query(), "maxZone", nil)
	if err := utils.ValidateZone(maxZone); err != nil {
		fieldErrors["maxZone"] = append(fieldErrors["maxZone"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	origin, zoning := api.zoningFor(w, r, "origin")
	if zoning == nil {
		return
	}

	entry := models.ZonesEntry{
		Origin:      origin,
		Stations:    []models.StationZone{},
		Unreachable: []string{},
	}
	for _, name := range api.Graph.Vertices() {
		zone, ok := zoning.Zones[name]
		if !ok {
			entry.Unreachable = append(entry.Unreachable, name)
			continue
		}
		if maxZone > 0 && zone > maxZone {
			continue
		}
		d := zoning.Result.Dist[name]
		entry.Stations = append(entry.Stations, models.StationZone{
			Name:       name,
			Distance:   d,
			DistanceKm: models.DeciKmToKm(d),
			Zone:       zone,
			Previous:   zoning.Result.Prev[name],
		})
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, api.lineReferences()))
}

func (api *RestAPI) pathHandler(w http.ResponseWriter, r *http.Request) {
	destination := utils.ExtractParam(r, "destination")
	if err := utils.ValidateStationName(destination); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"destination": {err.Error()}})
		return
	}

	origin, zoning := api.zoningFor(w, r, "origin")
	if zoning == nil {
		return
	}

	stations, ok := zoning.Result.Path(destination)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	d := zoning.Result.Dist[destination]
	entry := models.PathEntry{
		Origin:      origin,
		Destination: destination,
		Stations:    stations,
		Distance:    d,
		DistanceKm:  models.DeciKmToKm(d),
		Zone:        zoning.Zones[destination],
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, api.lineReferences()))
}
