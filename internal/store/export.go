package store

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"farezone.transit.org/internal/logging"
	"farezone.transit.org/internal/network"
	"farezone.transit.org/internal/stations"
)

type exportedLine struct {
	Dist []int            `json:"dist"`
	Also map[string]string `json:"also"`
}

type exportedDataset struct {
	Lines  map[string]exportedLine `json:"lines"`
	Names  map[string]string       `json:"names"`
	Labels map[string][]string     `json:"labels"`
}

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc
}

// ExportJSON writes the dataset as {"lines", "names", "labels"}. Each line
// carries its distances in deciKm and its transfer targets.
func ExportJSON(w io.Writer, ds *stations.Dataset) error {
	out := exportedDataset{
		Lines:  make(map[string]exportedLine, len(ds.Lines)),
		Names:  ds.Names,
		Labels: ds.Labels,
	}
	for _, line := range ds.Lines {
		out.Lines[line.Letter] = exportedLine{Dist: line.Distances(), Also: line.Transfers()}
	}
	return newEncoder(w).Encode(out)
}

// ExportGraphJSON writes the graph as {station: {neighbor: weight}} in
// insertion order.
func ExportGraphJSON(w io.Writer, g *network.Graph) error {
	return newEncoder(w).Encode(g)
}

// ExportFiles writes all_data.json and graph.json into dir. Close failures
// are logged to logger, which may be nil.
func ExportFiles(dir string, ds *stations.Dataset, g *network.Graph, logger *slog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating export directory: %w", err)
	}
	if err := writeFile(filepath.Join(dir, "all_data.json"), logger, func(w io.Writer) error { return ExportJSON(w, ds) }); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "graph.json"), logger, func(w io.Writer) error { return ExportGraphJSON(w, g) })
}

func writeFile(path string, logger *slog.Logger, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer logging.HandleDeferredError(&err, f.Close, logger, "close_"+filepath.Base(path))
	if err := write(f); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
