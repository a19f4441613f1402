// Package export persists catalog snapshots to PostgreSQL. It is an
// external collaborator of the catalog core: it walks the public
// object and connection views and implements no catalog logic itself.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vchernov/physcat/internal/catalog"
)

// Exporter wraps a pgx connection pool for snapshot writes.
type Exporter struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns an Exporter.
func New(ctx context.Context, dsn string) (*Exporter, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Exporter{pool: pool}, nil
}

// Close closes the database connection pool.
func (e *Exporter) Close() {
	e.pool.Close()
}

// SaveSnapshot replaces the stored snapshot with the catalog's
// current objects and connections, in one transaction.
func (e *Exporter) SaveSnapshot(ctx context.Context, m *catalog.Manager) error {
	objs := m.Objects()

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM object_connections`); err != nil {
		return fmt.Errorf("clearing connections: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM objects`); err != nil {
		return fmt.Errorf("clearing objects: %w", err)
	}

	objectRows := make([][]any, 0, len(objs))
	var connectionRows [][]any
	for _, obj := range objs {
		loc := obj.Location()
		objectRows = append(objectRows, []any{
			obj.ID(), obj.Name, string(obj.Type), string(obj.Material),
			loc.X, loc.Y, loc.Z,
			obj.Mass, obj.Volume, obj.Temperature, obj.Tags(),
		})
		for _, target := range obj.Connections() {
			connectionRows = append(connectionRows, []any{obj.ID(), target})
		}
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"objects"},
		[]string{"id", "name", "object_type", "material", "x", "y", "z", "mass", "volume", "temperature", "tags"},
		pgx.CopyFromRows(objectRows),
	); err != nil {
		return fmt.Errorf("writing objects: %w", err)
	}

	if len(connectionRows) > 0 {
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"object_connections"},
			[]string{"from_id", "to_id"},
			pgx.CopyFromRows(connectionRows),
		); err != nil {
			return fmt.Errorf("writing connections: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	slog.Info("catalog snapshot saved", "objects", len(objectRows), "connections", len(connectionRows))
	return nil
}
