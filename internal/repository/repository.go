// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/netcellhq/netcell-hub/internal/database"
	"github.com/netcellhq/netcell-hub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrNoData indicates that the store holds no samples matching the request
	ErrNoData = errors.New("no data")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// SampleRepository defines the interface for the append-only sample store.
// Samples are inserted during ingestion and read back in inclusive
// [start, end] windows; they are never updated or deleted.
type SampleRepository interface {
	database.Repository
	Insert(ctx context.Context, sample *models.Sample) error
	InsertTx(ctx context.Context, tx database.Transaction, sample *models.Sample) error
	Range(ctx context.Context, deviceID string, start, end time.Time) ([]models.Sample, error)
	RangeAll(ctx context.Context, start, end time.Time) ([]models.Sample, error)
	// TimeBounds returns the min and max stored timestamps, or ErrNoData
	// when the store is empty.
	TimeBounds(ctx context.Context) (time.Time, time.Time, error)
	DeviceExists(ctx context.Context, deviceID string) (bool, error)
	// LatestDeviceID returns the device id of the most recently
	// timestamped sample store-wide, or ErrNoData.
	LatestDeviceID(ctx context.Context) (string, error)
	// GlobalAverages reduces the window across all devices to the mean
	// signal power and SNR (zeros when the window is empty).
	GlobalAverages(ctx context.Context, start, end time.Time) (models.GlobalAverages, error)
}

// PresenceRepository defines the interface for the per-origin last-seen
// table. Rows are upserted on ingestion, keyed by the unique origin.
type PresenceRepository interface {
	database.Repository
	Touch(ctx context.Context, originKey, deviceID string, now time.Time) error
	TouchTx(ctx context.Context, tx database.Transaction, originKey, deviceID string, now time.Time) error
	Get(ctx context.Context, originKey string) (*models.DevicePresence, error)
	List(ctx context.Context) ([]models.DevicePresence, error)
}
