package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/shipyard/internal/game/device"
	"github.com/cory-johannsen/shipyard/internal/game/item"
	"github.com/cory-johannsen/shipyard/internal/game/ship"
	"github.com/cory-johannsen/shipyard/internal/savestream"
)

// ErrShipNotFound is returned when a ship lookup yields no results.
var ErrShipNotFound = errors.New("ship not found")

// ErrShipNameTaken is returned when saving a ship under a name another ship already uses.
var ErrShipNameTaken = errors.New("ship name already taken")

// ShipSummary is one row of the ship listing.
type ShipSummary struct {
	ID            uuid.UUID
	Name          string
	Player        bool
	FormatVersion uint32
	UpdatedAt     time.Time
}

// ShipRepository persists ships as save-stream blobs.
type ShipRepository struct {
	db      *pgxpool.Pool
	items   *item.Registry
	classes *device.Registry
	opts    ship.Options
	logger  *zap.Logger
}

// NewShipRepository creates a ShipRepository backed by the given pool. Loaded
// ships resolve their items and devices through items and classes.
//
// Precondition: db must be a valid, open connection pool; items and classes must be non-nil.
func NewShipRepository(db *pgxpool.Pool, items *item.Registry, classes *device.Registry, opts ship.Options, logger *zap.Logger) *ShipRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipRepository{db: db, items: items, classes: classes, opts: opts, logger: logger}
}

// Save inserts s or replaces its stored state.
//
// Postcondition: Load(s.ID()) returns an equivalent ship, or ErrShipNameTaken on duplicate name.
func (r *ShipRepository) Save(ctx context.Context, s *ship.Ship) error {
	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO ships (id, name, player, format_version, data)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    player = EXCLUDED.player,
		    format_version = EXCLUDED.format_version,
		    data = EXCLUDED.data,
		    updated_at = NOW()`,
		s.ID(), s.Name, s.IsPlayer(), int64(savestream.CurrentVersion), buf.Bytes(),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrShipNameTaken
		}
		return fmt.Errorf("saving ship: %w", err)
	}
	r.logger.Debug("ship saved", zap.String("ship", s.ID().String()), zap.Int("bytes", buf.Len()))
	return nil
}

// Load retrieves and decodes the ship with the given ID.
//
// Postcondition: Returns the Ship or ErrShipNotFound; decode errors are wrapped.
func (r *ShipRepository) Load(ctx context.Context, id uuid.UUID) (*ship.Ship, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM ships WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrShipNotFound
		}
		return nil, fmt.Errorf("loading ship: %w", err)
	}
	s, err := ship.Load(bytes.NewReader(data), r.items, r.classes, r.opts, r.logger)
	if err != nil {
		return nil, fmt.Errorf("decoding ship %s: %w", id, err)
	}
	return s, nil
}

// LoadByName retrieves the ship with the given name.
//
// Postcondition: Returns the Ship or ErrShipNotFound.
func (r *ShipRepository) LoadByName(ctx context.Context, name string) (*ship.Ship, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM ships WHERE name = $1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrShipNotFound
		}
		return nil, fmt.Errorf("finding ship %q: %w", name, err)
	}
	return r.Load(ctx, id)
}

// List returns every stored ship ordered by name.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *ShipRepository) List(ctx context.Context) ([]ShipSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, player, format_version, updated_at
		FROM ships ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing ships: %w", err)
	}
	defer rows.Close()

	out := make([]ShipSummary, 0)
	for rows.Next() {
		var s ShipSummary
		var version int64
		if err := rows.Scan(&s.ID, &s.Name, &s.Player, &version, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning ship row: %w", err)
		}
		s.FormatVersion = uint32(version)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes the ship with the given ID.
//
// Postcondition: Returns ErrShipNotFound when no row was deleted.
func (r *ShipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting ship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrShipNotFound
	}
	return nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
