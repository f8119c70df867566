package stations

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadRecords parses headerless rows of label,name,km[,transfer].
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var records []Record
	row := 0
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, formatError(row, "row", "%v", err)
		}
		if len(fields) < 3 {
			return nil, formatError(row, "row", "expected at least 3 fields, got %d", len(fields))
		}
		rec := Record{
			Row:        row,
			Label:      fields[0],
			Name:       fields[1],
			DistanceKm: fields[2],
		}
		if len(fields) > 3 {
			rec.TransferTarget = fields[3]
		}
		records = append(records, rec)
	}

	return records, nil
}

// LoadFile reads a record file and builds the dataset from it.
func LoadFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening station records: %w", err)
	}
	defer file.Close() // nolint:errcheck

	records, err := ReadRecords(file)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return BuildDataset(records)
}
