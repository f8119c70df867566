package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"farezone.transit.org/internal/routing"
	"farezone.transit.org/internal/zones"
)

// SaveRun stores the reachable distances, predecessors and zones of one
// shortest-path search and returns the new run id.
func (s *Store) SaveRun(ctx context.Context, result *routing.Result, zm zones.Map) (string, error) {
	runID := uuid.NewString()

	err := s.withTx(ctx, "save run", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, origin, created_at) VALUES (?, ?, ?)`,
			runID, result.Source, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("error inserting run: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO run_results (run_id, station, distance, zone, prev)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("error preparing statement: %w", err)
		}
		defer stmt.Close() // nolint:errcheck

		for station, d := range result.Finite() {
			zone, ok := zm[station]
			if !ok {
				zone = zones.Zone(d)
			}
			if _, err := stmt.ExecContext(ctx, runID, station, d, zone, toNullString(result.Prev[station])); err != nil {
				return fmt.Errorf("error inserting result for %s: %w", station, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// RunZones returns the zones stored for runID.
func (s *Store) RunZones(ctx context.Context, runID string) (zones.Map, error) {
	var origin string
	err := s.DB.QueryRowContext(ctx, `SELECT origin FROM runs WHERE id = ?`, runID).Scan(&origin)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying run: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT station, zone FROM run_results WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("error querying run results: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	zm := make(zones.Map)
	for rows.Next() {
		var (
			station string
			zone    int
		)
		if err := rows.Scan(&station, &zone); err != nil {
			return nil, fmt.Errorf("error scanning run result: %w", err)
		}
		zm[station] = zone
	}
	return zm, rows.Err()
}
