// FilePath: internal/repository/sqlite/sqlite.samples.go
package sqlite

import (
	"context"
	"database/sql"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/internal/database"
	"github.com/netcellhq/netcell-hub/internal/errors"
	"github.com/netcellhq/netcell-hub/internal/models"
	"github.com/netcellhq/netcell-hub/internal/repository"
)

type SampleRepo struct {
	SQLiteBaseRepo
}

func NewSampleRepository(db database.DB) (*SampleRepo, error) {
	repo := &SampleRepo{SQLiteBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	if err := EnsureDeviceIDColumn(context.Background(), db); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SampleRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS cell_samples (
			id TEXT PRIMARY KEY,
			device_id TEXT,
			operator TEXT NOT NULL,
			signal_power INTEGER NOT NULL,
			snr REAL NOT NULL,
			network_type TEXT NOT NULL,
			band TEXT NOT NULL,
			cell_id TEXT NOT NULL,
			timestamp TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cell_samples_device ON cell_samples(device_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cell_samples_timestamp ON cell_samples(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_cell_samples_device_timestamp
		 ON cell_samples(device_id, timestamp)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize sample schema", err)
		}
	}
	return nil
}

const insertSampleQuery = `
	INSERT INTO cell_samples (id, device_id, operator, signal_power, snr, network_type, band, cell_id, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Insert appends one sample outside any caller transaction.
func (r *SampleRepo) Insert(ctx context.Context, sample *models.Sample) error {
	r.prepare(sample)
	_, err := r.db.GetDB().ExecContext(ctx, insertSampleQuery,
		sample.ID, sample.DeviceID, sample.Operator, sample.SignalPower,
		sample.SNR, sample.NetworkType, sample.Band, sample.CellID, sample.Timestamp)
	if err != nil {
		return errors.NewDatabaseError("failed to insert sample", err)
	}
	return nil
}

// InsertTx appends one sample inside the caller's ingestion transaction.
func (r *SampleRepo) InsertTx(ctx context.Context, tx database.Transaction, sample *models.Sample) error {
	r.prepare(sample)
	_, err := tx.ExecContext(ctx, insertSampleQuery,
		sample.ID, sample.DeviceID, sample.Operator, sample.SignalPower,
		sample.SNR, sample.NetworkType, sample.Band, sample.CellID, sample.Timestamp)
	if err != nil {
		return errors.NewDatabaseError("failed to insert sample", err)
	}
	return nil
}

// prepare assigns an id and pins the stored instant to UTC. UTC-only
// storage keeps the driver's timestamp text in one offset, so range
// comparisons stay consistent.
func (r *SampleRepo) prepare(sample *models.Sample) {
	if sample.ID == "" {
		sample.ID = nuts.NID("smp", 12)
	}
	sample.Timestamp = sample.Timestamp.UTC()
}

// Rows predating the device_id migration hold NULL there; coalesce so
// they scan as the empty device.
const selectSampleColumns = `
	SELECT id, COALESCE(device_id, '') AS device_id, operator, signal_power, snr, network_type, band, cell_id, timestamp
	FROM cell_samples`

// Range returns the samples of one device with timestamps in the
// inclusive [start, end] window. Ordering is unspecified; the aggregator
// is order-independent.
func (r *SampleRepo) Range(ctx context.Context, deviceID string, start, end time.Time) ([]models.Sample, error) {
	samples := []models.Sample{}
	query := selectSampleColumns + `
	WHERE device_id = ? AND timestamp BETWEEN ? AND ?`

	err := r.db.GetDB().SelectContext(ctx, &samples, query, deviceID, start.UTC(), end.UTC())
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get samples", err)
	}
	return samples, nil
}

// RangeAll returns every sample with a timestamp in the inclusive window,
// regardless of device.
func (r *SampleRepo) RangeAll(ctx context.Context, start, end time.Time) ([]models.Sample, error) {
	samples := []models.Sample{}
	query := selectSampleColumns + `
	WHERE timestamp BETWEEN ? AND ?`

	err := r.db.GetDB().SelectContext(ctx, &samples, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get samples", err)
	}
	return samples, nil
}

// TimeBounds returns the earliest and latest stored timestamps, or
// repository.ErrNoData when the store is empty.
func (r *SampleRepo) TimeBounds(ctx context.Context) (time.Time, time.Time, error) {
	var minRaw, maxRaw sql.NullString
	query := `SELECT MIN(timestamp), MAX(timestamp) FROM cell_samples`

	row := r.db.GetDB().QueryRowContext(ctx, query)
	if err := row.Scan(&minRaw, &maxRaw); err != nil {
		return time.Time{}, time.Time{}, errors.NewDatabaseError("failed to get time bounds", err)
	}
	if !minRaw.Valid || !maxRaw.Valid {
		return time.Time{}, time.Time{}, repository.ErrNoData
	}

	minTS, err := parseStoredTime(minRaw.String)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewDatabaseError("failed to parse min timestamp", err)
	}
	maxTS, err := parseStoredTime(maxRaw.String)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewDatabaseError("failed to parse max timestamp", err)
	}
	return minTS, maxTS, nil
}

// DeviceExists reports whether any sample carries the given device id.
func (r *SampleRepo) DeviceExists(ctx context.Context, deviceID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM cell_samples WHERE device_id = ?)`

	err := r.db.GetDB().GetContext(ctx, &exists, query, deviceID)
	if err != nil {
		return false, errors.NewDatabaseError("failed to check device", err)
	}
	return exists, nil
}

// LatestDeviceID returns the device id of the most recently timestamped
// sample store-wide, or repository.ErrNoData when no sample carries one.
func (r *SampleRepo) LatestDeviceID(ctx context.Context) (string, error) {
	var deviceID string
	query := `
		SELECT device_id FROM cell_samples
		WHERE device_id IS NOT NULL AND device_id != ''
		ORDER BY timestamp DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, &deviceID, query)
	if err == sql.ErrNoRows {
		return "", repository.ErrNoData
	}
	if err != nil {
		return "", errors.NewDatabaseError("failed to get latest device id", err)
	}
	return deviceID, nil
}

// GlobalAverages reduces the window across all devices to mean signal
// power and SNR. SQL AVG over an empty window is NULL, surfaced as zeros.
func (r *SampleRepo) GlobalAverages(ctx context.Context, start, end time.Time) (models.GlobalAverages, error) {
	var avgSignal, avgSNR sql.NullFloat64
	query := `
		SELECT AVG(signal_power), AVG(snr) FROM cell_samples
		WHERE timestamp BETWEEN ? AND ?`

	row := r.db.GetDB().QueryRowContext(ctx, query, start.UTC(), end.UTC())
	if err := row.Scan(&avgSignal, &avgSNR); err != nil {
		return models.GlobalAverages{}, errors.NewDatabaseError("failed to get global averages", err)
	}
	return models.GlobalAverages{
		AvgSignalAllDevices: avgSignal.Float64,
		AvgSNRAllDevices:    avgSNR.Float64,
	}, nil
}

// storedTimeFormats lists the timestamp layouts the sqlite driver writes,
// most precise first. Aggregate results (MIN/MAX) lose the column's
// declared type, so they come back as text and are parsed here.
var storedTimeFormats = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
}

func parseStoredTime(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range storedTimeFormats {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
