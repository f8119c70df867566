package store

import (
	"context"
	"database/sql"
	"fmt"

	"farezone.transit.org/internal/stations"
)

// SaveDataset replaces the stored stations with those of ds.
func (s *Store) SaveDataset(ctx context.Context, ds *stations.Dataset) error {
	return s.withTx(ctx, "save dataset", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
			return fmt.Errorf("error clearing stations: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO stations (label, name, line, seq, distance, transfer_target)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("error preparing statement: %w", err)
		}
		defer stmt.Close() // nolint:errcheck

		for _, line := range ds.Lines {
			for i, st := range line.Stations {
				_, err := stmt.ExecContext(ctx,
					st.Label, st.Name, line.Letter, i+1, st.Distance, toNullString(st.TransferTarget))
				if err != nil {
					return fmt.Errorf("error inserting station %s: %w", st.Label, err)
				}
			}
		}
		return nil
	})
}
