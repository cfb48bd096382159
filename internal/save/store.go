// Package save stores engine save files in SQLite slots.
package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"

	"github.com/samdwyer/profitpilgrim/internal/clock"
	"github.com/samdwyer/profitpilgrim/internal/telemetry"
)

// ErrNotFound is returned when a slot does not exist.
var ErrNotFound = errors.New("save slot not found")

// Slot is one named save.
type Slot struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Data      []byte // engine.EncodeSave output
}

type slotRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	Data      string `db:"data"`
}

func (r slotRow) slot() Slot {
	return Slot{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: time.UnixMilli(r.CreatedAt),
		UpdatedAt: time.UnixMilli(r.UpdatedAt),
		Data:      []byte(r.Data),
	}
}

// Store wraps a SQLite connection holding save slots.
type Store struct {
	conn   *sqlx.DB
	clk    clock.Clock
	tracer trace.Tracer
}

// Open opens or creates a save database at path. A nil clock uses the
// system time.
func Open(path string, clk clock.Clock) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if clk == nil {
		clk = clock.RealClock{}
	}

	s := &Store{conn: conn, clk: clk, tracer: telemetry.Tracer("save")}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
	CREATE TABLE IF NOT EXISTS saves (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		data TEXT NOT NULL
	)`)
	return err
}

// Put writes a slot, creating it when its ID is new. An empty ID gets a fresh
// UUID. The stored slot is returned with its ID and timestamps filled in.
func (s *Store) Put(ctx context.Context, slot Slot) (Slot, error) {
	ctx, span := s.tracer.Start(ctx, "save.put")
	defer span.End()

	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := clock.Millis(s.clk.Now())
	span.SetAttributes(
		attribute.String("slot.id", slot.ID),
		attribute.Int("slot.bytes", len(slot.Data)),
	)

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO saves (id, name, created_at, updated_at, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at,
			data = excluded.data`,
		slot.ID, slot.Name, now, now, string(slot.Data),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "put failed")
		return Slot{}, fmt.Errorf("put slot %s: %w", slot.ID, err)
	}

	stored, err := s.get(ctx, slot.ID)
	if err != nil {
		return Slot{}, err
	}
	slog.Info("game saved", "slot", stored.ID, "bytes", len(stored.Data))
	return stored, nil
}

// Get loads a slot by ID.
func (s *Store) Get(ctx context.Context, id string) (Slot, error) {
	ctx, span := s.tracer.Start(ctx, "save.get")
	defer span.End()
	span.SetAttributes(attribute.String("slot.id", id))

	slot, err := s.get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "get failed")
		}
		return Slot{}, err
	}
	slog.Info("game loaded", "slot", slot.ID, "updated", slot.UpdatedAt)
	return slot, nil
}

func (s *Store) get(ctx context.Context, id string) (Slot, error) {
	var row slotRow
	err := s.conn.GetContext(ctx, &row,
		"SELECT id, name, created_at, updated_at, data FROM saves WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Slot{}, fmt.Errorf("get slot %s: %w", id, err)
	}
	return row.slot(), nil
}

// List returns every slot, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Slot, error) {
	ctx, span := s.tracer.Start(ctx, "save.list")
	defer span.End()

	var rows []slotRow
	err := s.conn.SelectContext(ctx, &rows,
		"SELECT id, name, created_at, updated_at, data FROM saves ORDER BY updated_at DESC, id")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list slots: %w", err)
	}

	slots := make([]Slot, len(rows))
	for i, r := range rows {
		slots[i] = r.slot()
	}
	span.SetAttributes(attribute.Int("slot.count", len(slots)))
	return slots, nil
}

// Delete removes a slot.
func (s *Store) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "save.delete")
	defer span.End()
	span.SetAttributes(attribute.String("slot.id", id))

	result, err := s.conn.ExecContext(ctx, "DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete slot %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
