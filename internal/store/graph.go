package store

import (
	"context"
	"database/sql"
	"fmt"

	"farezone.transit.org/internal/network"
)

// SaveGraph replaces the stored graph. Vertex and neighbor order are kept.
func (s *Store) SaveGraph(ctx context.Context, g *network.Graph) error {
	return s.withTx(ctx, "save graph", func(tx *sql.Tx) error {
		for _, table := range []string{"edges", "vertices"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("error clearing %s: %w", table, err)
			}
		}

		vertexStmt, err := tx.PrepareContext(ctx, `INSERT INTO vertices (position, name) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("error preparing statement: %w", err)
		}
		defer vertexStmt.Close() // nolint:errcheck

		edgeStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO edges (from_name, to_name, position, weight)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("error preparing statement: %w", err)
		}
		defer edgeStmt.Close() // nolint:errcheck

		for i, name := range g.Vertices() {
			if _, err := vertexStmt.ExecContext(ctx, i, name); err != nil {
				return fmt.Errorf("error inserting vertex %s: %w", name, err)
			}
			for j, adj := range g.Neighbors(name) {
				w, _ := g.Weight(name, adj)
				if _, err := edgeStmt.ExecContext(ctx, name, adj, j, w); err != nil {
					return fmt.Errorf("error inserting edge %s -> %s: %w", name, adj, err)
				}
			}
		}
		return nil
	})
}

// LoadGraph rebuilds the stored graph.
func (s *Store) LoadGraph(ctx context.Context) (*network.Graph, error) {
	g := network.NewGraph()

	rows, err := s.DB.QueryContext(ctx, `SELECT name FROM vertices ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("error querying vertices: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close() // nolint:errcheck
			return nil, fmt.Errorf("error scanning vertex: %w", err)
		}
		g.AddVertex(name)
	}
	err = rows.Err()
	rows.Close() // nolint:errcheck
	if err != nil {
		return nil, err
	}

	rows, err = s.DB.QueryContext(ctx, `
		SELECT e.from_name, e.to_name, e.weight
		FROM edges e
		JOIN vertices v ON v.name = e.from_name
		ORDER BY v.position, e.position`)
	if err != nil {
		return nil, fmt.Errorf("error querying edges: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	for rows.Next() {
		var (
			from, to string
			weight   int
		)
		if err := rows.Scan(&from, &to, &weight); err != nil {
			return nil, fmt.Errorf("error scanning edge: %w", err)
		}
		g.SetWeight(from, to, weight)
	}
	return g, rows.Err()
}
