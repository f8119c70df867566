package restapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"farezone.transit.org/internal/app"
	"farezone.transit.org/internal/appconf"
	"farezone.transit.org/internal/logging"
	"farezone.transit.org/internal/models"
	"farezone.transit.org/internal/report"
	"farezone.transit.org/internal/stations"
)

// createTestApi builds a RestAPI over two lines that meet at Nagoya.
//
//	H: Takabata 0 - Nagoya 4.2 - Sakae 6.3
//	M: Nagoya 0 - Kanayama 3.0 - Jingu 7.7
//	X: Island 0
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	ds, err := stations.BuildDataset([]stations.Record{
		{Label: "H01", Name: "Takabata", DistanceKm: "0"},
		{Label: "H02", Name: "Nagoya", DistanceKm: "4.2", TransferTarget: "M01"},
		{Label: "H03", Name: "Sakae", DistanceKm: "6.3"},
		{Label: "M01", Name: "Nagoya", DistanceKm: "0", TransferTarget: "H02"},
		{Label: "M02", Name: "Kanayama", DistanceKm: "3.0"},
		{Label: "M03", Name: "Jingu", DistanceKm: "7.7"},
		{Label: "X01", Name: "Island", DistanceKm: "0"},
	})
	require.NoError(t, err)

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.ApiKeys = []string{"TEST"}

	logger := logging.NewStructuredLogger(&bytes.Buffer{}, slog.LevelInfo)
	application := app.NewWithDataset(cfg, logger, ds)
	application.LineNames = report.LineNames{"H": "Higashiyama", "M": "Meijo"}

	api := NewRestAPI(application)
	t.Cleanup(api.Close)
	return api
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return resp, response
}

func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	return serveApiAndRetrieveEndpoint(t, createTestApi(t), endpoint)
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)
	return entry
}

func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	list, ok := data["list"].([]interface{})
	require.True(t, ok)
	return list
}
