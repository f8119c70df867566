package restapi

import (
	"net/http"
	"sort"

	"farezone.transit.org/internal/models"
)

// lineReferences lists every line of the dataset in load order.
func (api *RestAPI) lineReferences() models.ReferencesModel {
	refs := models.NewEmptyReferences()
	for _, line := range api.Dataset.Lines {
		refs.Lines = append(refs.Lines, models.LineReference{
			ID:       line.Letter,
			Name:     api.LineNames.Name(line.Letter),
			Circular: line.Circular(),
			Stations: len(line.Stations),
		})
	}
	return refs
}

func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	list := make([]models.Station, 0, api.Graph.Len())
	for _, name := range api.Graph.Vertices() {
		labels := api.Dataset.Labels[name]

		var lineIDs []string
		seen := make(map[string]bool)
		for _, label := range labels {
			letter := string([]rune(label)[0])
			if !seen[letter] {
				seen[letter] = true
				lineIDs = append(lineIDs, letter)
			}
		}

		list = append(list, models.Station{
			Name:    name,
			Labels:  labels,
			LineIDs: lineIDs,
		})
	}

	api.sendResponse(w, r, models.NewListResponse(list, api.lineReferences()))
}

func (api *RestAPI) intersectionsHandler(w http.ResponseWriter, r *http.Request) {
	table := api.Intersections()

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]models.Intersection, 0, len(names))
	for _, name := range names {
		pair := table[name]
		list = append(list, models.Intersection{Name: name, Labels: []string{pair[0], pair[1]}})
	}

	api.sendResponse(w, r, models.NewListResponse(list, api.lineReferences()))
}

func (api *RestAPI) graphHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(api.Graph, api.lineReferences()))
}
