// FilePath: internal/repository/sqlite/migrate.go
package sqlite

import (
	"context"

	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/internal/database"
	"github.com/netcellhq/netcell-hub/internal/errors"
)

// EnsureDeviceIDColumn adds the device_id column to a sample table that
// predates per-device attribution. The check is a column probe rather
// than an engine metadata pragma, so it stays portable; running it on an
// already-migrated store is a no-op.
func EnsureDeviceIDColumn(ctx context.Context, db database.DB) error {
	if hasDeviceIDColumn(ctx, db) {
		return nil
	}

	queries := []string{
		`ALTER TABLE cell_samples ADD COLUMN device_id TEXT`,
		`CREATE INDEX IF NOT EXISTS idx_cell_samples_device ON cell_samples(device_id)`,
	}
	for _, query := range queries {
		if _, err := db.GetDB().ExecContext(ctx, query); err != nil {
			return errors.NewDatabaseError("failed to add device_id column", err)
		}
	}

	nuts.L.Infof("[Migrate] Added missing column device_id to cell_samples")
	return nil
}

// hasDeviceIDColumn probes the column by preparing a statement that
// references it; preparation fails iff the column does not exist.
func hasDeviceIDColumn(ctx context.Context, db database.DB) bool {
	stmt, err := db.GetDB().PreparexContext(ctx, `SELECT device_id FROM cell_samples LIMIT 1`)
	if err != nil {
		return false
	}
	stmt.Close()
	return true
}
