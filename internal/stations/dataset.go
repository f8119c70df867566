package stations

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Record is one raw row from a record source. DistanceKm is kept as text so
// that every source goes through the same parsing and truncation rules.
type Record struct {
	Row            int
	Label          string
	Name           string
	DistanceKm     string
	TransferTarget string
}

// Station is a parsed record. Distance is the cumulative position along the
// line in tenths of a kilometre.
type Station struct {
	Label          string `json:"label"`
	Name           string `json:"name"`
	Distance       int    `json:"distance"`
	TransferTarget string `json:"transferTarget,omitempty"`
}

// Line holds the stations sharing a leading label character, ordered by the
// numeric suffix of their labels.
type Line struct {
	Letter   string    `json:"letter"`
	Stations []Station `json:"stations"`
}

// Distances returns the cumulative distance of every station on the line.
func (l Line) Distances() []int {
	km := make([]int, len(l.Stations))
	for i, st := range l.Stations {
		km[i] = st.Distance
	}
	return km
}

// Transfers maps each label on the line that declares a transfer to its target.
func (l Line) Transfers() map[string]string {
	also := make(map[string]string)
	for _, st := range l.Stations {
		if st.TransferTarget != "" {
			also[st.Label] = st.TransferTarget
		}
	}
	return also
}

// Circular reports whether the line uses the loop encoding (non-zero first distance).
func (l Line) Circular() bool {
	return len(l.Stations) > 0 && l.Stations[0].Distance != 0
}

// Dataset is the in-memory form of a full record set.
type Dataset struct {
	Lines  []Line              `json:"lines"`
	Names  map[string]string   `json:"names"`
	Labels map[string][]string `json:"labels"`
}

// Line returns the line with the given letter.
func (d *Dataset) Line(letter string) (Line, bool) {
	for _, l := range d.Lines {
		if l.Letter == letter {
			return l, true
		}
	}
	return Line{}, false
}

// StationCount returns the number of distinct display names.
func (d *Dataset) StationCount() int {
	return len(d.Labels)
}

// BuildDataset groups records into lines and builds the name lookups.
// Any malformed record aborts the build; no partial dataset is returned.
func BuildDataset(records []Record) (*Dataset, error) {
	type entry struct {
		pos int
		st  Station
		row int
	}

	var letters []string
	grouped := make(map[string][]entry)

	for i, rec := range records {
		row := rec.Row
		if row == 0 {
			row = i + 1
		}
		label := strings.TrimSpace(rec.Label)
		name := strings.TrimSpace(rec.Name)
		if label == "" {
			return nil, formatError(row, "label", "missing")
		}
		if name == "" {
			return nil, formatError(row, "name", "missing")
		}
		letter, pos, err := splitLabel(label)
		if err != nil {
			return nil, formatError(row, "label", "%v", err)
		}
		dist, err := parseDeciKm(rec.DistanceKm)
		if err != nil {
			return nil, formatError(row, "distance", "%v", err)
		}

		if _, seen := grouped[letter]; !seen {
			letters = append(letters, letter)
		}
		grouped[letter] = append(grouped[letter], entry{
			pos: pos,
			row: row,
			st: Station{
				Label:          label,
				Name:           name,
				Distance:       dist,
				TransferTarget: strings.TrimSpace(rec.TransferTarget),
			},
		})
	}

	ds := &Dataset{
		Lines:  make([]Line, 0, len(letters)),
		Names:  make(map[string]string, len(records)),
		Labels: make(map[string][]string),
	}

	for _, letter := range letters {
		entries := grouped[letter]
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].pos < entries[j].pos })

		line := Line{Letter: letter, Stations: make([]Station, len(entries))}
		for i, e := range entries {
			if e.pos != i+1 {
				return nil, formatError(e.row, "label", "line %s expects position %d, got %d", letter, i+1, e.pos)
			}
			line.Stations[i] = e.st
			ds.Names[e.st.Label] = e.st.Name
		}
		ds.Lines = append(ds.Lines, line)
	}

	for label, name := range ds.Names {
		ds.Labels[name] = append(ds.Labels[name], label)
	}
	for name := range ds.Labels {
		sort.Strings(ds.Labels[name])
	}

	return ds, nil
}

func splitLabel(label string) (string, int, error) {
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError || size == len(label) {
		return "", 0, fmt.Errorf("%q has no position suffix", label)
	}
	pos, err := strconv.Atoi(label[size:])
	if err != nil {
		return "", 0, fmt.Errorf("%q has a non-numeric position suffix", label)
	}
	if pos < 1 {
		return "", 0, fmt.Errorf("%q has position %d, positions start at 1", label, pos)
	}
	return string(r), pos, nil
}

// parseDeciKm converts a kilometre value to tenths of a kilometre,
// truncating toward zero.
func parseDeciKm(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("missing")
	}
	km, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return 0, fmt.Errorf("%q is not finite", text)
	}
	return int(10 * km), nil
}
