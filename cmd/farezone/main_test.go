package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationsCSV = `A01,Takabata,0,
A02,Nagoya,4.2,B01
A03,Sakae,6.3,
B01,Nagoya,1.5,A02
B02,Kanayama,3.0,
B03,Jingu,7.7,
`

const lineNames = `
en:
  A: Higashiyama
  B: Meijo
`

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "station_dists.csv")
	namesPath := filepath.Join(dir, "line_names.yaml")
	require.NoError(t, os.WriteFile(csvPath, []byte(stationsCSV), 0o600))
	require.NoError(t, os.WriteFile(namesPath, []byte(lineNames), 0o600))
	return csvPath, namesPath
}

func noEnv(string) (string, bool) { return "", false }

func TestRunPrintsZoneReport(t *testing.T) {
	csvPath, namesPath := writeFixtures(t)
	exportDir := filepath.Join(t.TempDir(), "export")
	dbPath := filepath.Join(t.TempDir(), "farezone.db")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-stations", csvPath,
		"-line-names", namesPath,
		"-origin", "Takabata",
		"-export-dir", exportDir,
		"-db", dbPath,
	}, &stdout, &stderr, noEnv)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "\n"+strings.Repeat("=", 32)+"\n\n"))
	assert.Contains(t, out, "Higashiyama")
	assert.Contains(t, out, " 1  A01  Takabata\n")
	assert.Contains(t, out, " 2  A02  Nagoya\n     │\n 2  A03  Sakae\n")
	assert.Contains(t, out, "Meijo")

	assert.FileExists(t, filepath.Join(exportDir, "all_data.json"))
	assert.FileExists(t, filepath.Join(exportDir, "graph.json"))
	assert.FileExists(t, dbPath)

	logs := stderr.String()
	assert.Contains(t, logs, "run_saved")
	assert.Contains(t, logs, "negative edge weight")
}

func TestRunUnknownOrigin(t *testing.T) {
	csvPath, namesPath := writeFixtures(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-stations", csvPath,
		"-line-names", namesPath,
		"-origin", "Atlantis",
	}, &stdout, &stderr, noEnv)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Atlantis")
}

func TestRunMalformedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("A01,Takabata,zero,\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-stations", path, "-origin", "Takabata"}, &stdout, &stderr, noEnv)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "failed to load station network")
}

func TestRunRequiresOrigin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr, noEnv)
	assert.Equal(t, 2, code)
}

func TestRunOriginFromEnvironment(t *testing.T) {
	csvPath, namesPath := writeFixtures(t)
	env := map[string]string{"FAREZONE_ORIGIN": "Sakae"}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-stations", csvPath, "-line-names", namesPath}, &stdout, &stderr, lookup)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), " 1  A03  Sakae\n")
}
