// FilePath: internal/repository/sqlite/sqlite.presence.go
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/netcellhq/netcell-hub/internal/database"
	"github.com/netcellhq/netcell-hub/internal/errors"
	"github.com/netcellhq/netcell-hub/internal/models"
	"github.com/netcellhq/netcell-hub/internal/repository"
)

type PresenceRepo struct {
	SQLiteBaseRepo
}

func NewPresenceRepository(db database.DB) (*PresenceRepo, error) {
	repo := &PresenceRepo{SQLiteBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *PresenceRepo) initializeSchema() error {
	query := `CREATE TABLE IF NOT EXISTS device_presence (
		origin_key TEXT PRIMARY KEY,
		associated_device_id TEXT,
		last_seen TIMESTAMP NOT NULL
	)`

	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to initialize presence schema", err)
	}
	return nil
}

// touchQuery upserts the single row per origin. A repeat contact always
// refreshes last_seen; the associated device id is only overwritten when
// the new contact actually names one.
const touchQuery = `
	INSERT INTO device_presence (origin_key, associated_device_id, last_seen)
	VALUES (?, ?, ?)
	ON CONFLICT(origin_key) DO UPDATE SET
		last_seen = excluded.last_seen,
		associated_device_id = COALESCE(excluded.associated_device_id, device_presence.associated_device_id)`

// Touch records a contact from originKey outside any caller transaction.
func (r *PresenceRepo) Touch(ctx context.Context, originKey, deviceID string, now time.Time) error {
	_, err := r.db.GetDB().ExecContext(ctx, touchQuery,
		originKey, nullableDeviceID(deviceID), now.UTC())
	if err != nil {
		return errors.NewDatabaseError("failed to touch presence", err)
	}
	return nil
}

// TouchTx records a contact inside the caller's ingestion transaction.
func (r *PresenceRepo) TouchTx(ctx context.Context, tx database.Transaction, originKey, deviceID string, now time.Time) error {
	_, err := tx.ExecContext(ctx, touchQuery,
		originKey, nullableDeviceID(deviceID), now.UTC())
	if err != nil {
		return errors.NewDatabaseError("failed to touch presence", err)
	}
	return nil
}

// Get returns the presence row for originKey, or repository.ErrNotFound.
func (r *PresenceRepo) Get(ctx context.Context, originKey string) (*models.DevicePresence, error) {
	presence := &models.DevicePresence{}
	query := `
		SELECT origin_key, associated_device_id, last_seen
		FROM device_presence
		WHERE origin_key = ?`

	err := r.db.GetDB().GetContext(ctx, presence, query, originKey)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get presence", err)
	}
	return presence, nil
}

// List returns every known presence row, most recently seen first.
func (r *PresenceRepo) List(ctx context.Context) ([]models.DevicePresence, error) {
	rows := []models.DevicePresence{}
	query := `
		SELECT origin_key, associated_device_id, last_seen
		FROM device_presence
		ORDER BY last_seen DESC`

	err := r.db.GetDB().SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list presence", err)
	}
	return rows, nil
}

func nullableDeviceID(deviceID string) interface{} {
	if deviceID == "" {
		return nil
	}
	return deviceID
}
