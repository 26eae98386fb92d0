// Package store persists solved detection clouds and vehicle trajectory
// points to SQLite, so a run can be replayed or queried after the fact.
// The solver and frame player never import this package; Store satisfies
// the scene.DetectionSink interface.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/velocity.report/internal/monitoring"
	"github.com/banshee-data/velocity.report/internal/sim/geom"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite-backed detection and trajectory log.
type Store struct {
	*sql.DB
}

// Open opens (creating if necessary) a SQLite database at path and applies
// any pending migrations, mirroring the teacher's open-then-migrate shape.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrateUp runs all pending migrations up to the latest version.
func (s *Store) migrateUp() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// Note: m.Close() is not called here. The sqlite driver's Close()
	// closes the underlying sql.DB connection, which Store manages
	// separately; the iofs source driver holds no resources to release.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

func (s *Store) newMigrate() (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create iofs source driver: %w", err)
	}

	driver, err := sqlite.WithInstance(s.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	return m, nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) { monitoring.Logf(format, v...) }
func (migrateLogger) Verbose() bool                  { return false }

// RecordDetections stores every point of cloud under the same simulated
// timestamp, satisfying scene.DetectionSink.
func (s *Store) RecordDetections(timestamp float64, cloud *geom.PointCloud) error {
	if cloud.Empty() {
		return nil
	}

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("begin detections transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO detections (timestamp, x, y, z) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare detection insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range cloud.Points() {
		if _, err := stmt.Exec(timestamp, p.X, p.Y, p.Z); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert detection: %w", err)
		}
	}

	return tx.Commit()
}

// RecordTrajectoryPoint appends a single vehicle root position to the
// trajectory log.
func (s *Store) RecordTrajectoryPoint(p geom.Point) error {
	_, err := s.Exec("INSERT INTO trajectory (x, y, z) VALUES (?, ?, ?)", p.X, p.Y, p.Z)
	if err != nil {
		return fmt.Errorf("insert trajectory point: %w", err)
	}
	return nil
}

// DetectionsSince returns every stored detection point with timestamp >=
// since, oldest first.
func (s *Store) DetectionsSince(since float64) ([]TimedPoint, error) {
	rows, err := s.Query("SELECT timestamp, x, y, z FROM detections WHERE timestamp >= ? ORDER BY timestamp ASC", since)
	if err != nil {
		return nil, fmt.Errorf("query detections: %w", err)
	}
	defer rows.Close()

	var out []TimedPoint
	for rows.Next() {
		var tp TimedPoint
		if err := rows.Scan(&tp.Timestamp, &tp.Point.X, &tp.Point.Y, &tp.Point.Z); err != nil {
			return nil, fmt.Errorf("scan detection row: %w", err)
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// Trajectory returns every stored trajectory point, oldest first.
func (s *Store) Trajectory() ([]geom.Point, error) {
	rows, err := s.Query("SELECT x, y, z FROM trajectory ORDER BY step_id ASC")
	if err != nil {
		return nil, fmt.Errorf("query trajectory: %w", err)
	}
	defer rows.Close()

	var out []geom.Point
	for rows.Next() {
		var p geom.Point
		if err := rows.Scan(&p.X, &p.Y, &p.Z); err != nil {
			return nil, fmt.Errorf("scan trajectory row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// TimedPoint pairs a detection point with the simulated timestamp it was
// recorded under.
type TimedPoint struct {
	Timestamp float64
	Point     geom.Point
}
