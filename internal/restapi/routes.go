package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"farezone.transit.org/internal/appconf"
	"farezone.transit.org/internal/webui"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// Routes registers every endpoint on a new router.
func (api *RestAPI) Routes() *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(api.sendNotFound)

	router.Handler(http.MethodGet, "/healthz", http.HandlerFunc(api.healthHandler))
	router.Handler(http.MethodGet, "/api/stations.json", validateAPIKey(api, api.stationsHandler))
	router.Handler(http.MethodGet, "/api/intersections.json", validateAPIKey(api, api.intersectionsHandler))
	router.Handler(http.MethodGet, "/api/graph.json", validateAPIKey(api, api.graphHandler))
	router.Handler(http.MethodGet, "/api/zones/:origin", validateAPIKey(api, api.zonesHandler))
	router.Handler(http.MethodGet, "/api/path/:origin/:destination", validateAPIKey(api, api.pathHandler))

	if api.Config.Env != appconf.Production {
		(&webui.WebUI{Application: api.Application}).SetWebUIRoutes(router)
	}

	return router
}
