package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farezone.transit.org/internal/appconf"
	"farezone.transit.org/internal/logging"
	"farezone.transit.org/internal/routing"
)

const stationsCSV = `A01,Takabata,0,
A02,Nagoya,4.2,B01
A03,Sakae,6.3,
B01,Nagoya,1.5,A02
B02,Kanayama,3.0,
B03,Jingu,7.7,
`

func testConfig(t *testing.T) appconf.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "stations.csv")
	require.NoError(t, os.WriteFile(path, []byte(stationsCSV), 0o600))

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.Stations = path
	cfg.LineNames = filepath.Join(dir, "missing.yaml")
	cfg.Origin = "Takabata"
	return cfg
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, 0)

	cfg := testConfig(t)
	cfg.DBPath = ":memory:"

	application, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer func() { _ = application.Close() }()

	assert.Equal(t, 5, application.Dataset.StationCount())
	assert.Equal(t, 5, application.Graph.Len())
	assert.NotNil(t, application.Store)
	assert.Nil(t, application.LineNames)

	// B is circular: the wrap edge from Jingu back to Nagoya is negative.
	assert.Contains(t, buf.String(), "negative edge weight")
	assert.Contains(t, buf.String(), "line name file not found")
	assert.Contains(t, buf.String(), `"msg":"network_built"`)
}

func TestNewMissingStations(t *testing.T) {
	cfg := testConfig(t)
	cfg.Stations = filepath.Join(t.TempDir(), "none.csv")

	_, err := New(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestZones(t *testing.T) {
	cfg := testConfig(t)
	application, err := New(context.Background(), cfg, logging.NewStructuredLogger(&bytes.Buffer{}, 0))
	require.NoError(t, err)

	z, err := application.Zones("Takabata")
	require.NoError(t, err)
	assert.Equal(t, 1, z.Zones["Takabata"])
	assert.Equal(t, 2, z.Zones["Nagoya"])

	again, err := application.Zones("Takabata")
	require.NoError(t, err)
	assert.Same(t, z, again)

	_, err = application.Zones("Atlantis")
	assert.ErrorIs(t, err, routing.ErrPrecondition)
}

func TestIntersections(t *testing.T) {
	application, err := New(context.Background(), testConfig(t), logging.NewStructuredLogger(&bytes.Buffer{}, 0))
	require.NoError(t, err)
	assert.Equal(t, map[string][2]string{"Nagoya": {"A02", "B01"}}, application.Intersections())
}
