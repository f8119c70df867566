package restapi

import (
	"context"
	"net/http"
	"time"

	"farezone.transit.org/internal/models"
)

type healthStatus struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
	Database string `json:"database"`
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{
		Status:   "ok",
		Stations: api.Dataset.StationCount(),
		Database: "disabled",
	}

	code := http.StatusOK
	if api.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status.Database = "connected"
		if err := api.Store.DB.PingContext(ctx); err != nil {
			status.Status = "error"
			status.Database = "disconnected"
			code = http.StatusServiceUnavailable
		}
	}

	api.sendResponse(w, r, models.NewResponse(code, status, http.StatusText(code)))
}
