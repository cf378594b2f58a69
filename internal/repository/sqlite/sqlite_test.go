// FilePath: internal/repository/sqlite/sqlite_test.go
package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/netcellhq/netcell-hub/internal/config"
	"github.com/netcellhq/netcell-hub/internal/database"
	"github.com/netcellhq/netcell-hub/internal/models"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(config.SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestSampleRepo(t *testing.T) *SampleRepo {
	t.Helper()
	repo, err := NewSampleRepository(newTestDB(t))
	if err != nil {
		t.Fatalf("create sample repository: %v", err)
	}
	return repo
}

func testSample(deviceID string, ts time.Time) *models.Sample {
	return &models.Sample{
		DeviceID:    deviceID,
		Operator:    "Alfa",
		SignalPower: -70,
		SNR:         9,
		NetworkType: "4G",
		Band:        "B3",
		CellID:      "cell-1",
		Timestamp:   ts,
	}
}

func mustInsert(t *testing.T, repo *SampleRepo, sample *models.Sample) {
	t.Helper()
	if err := repo.Insert(context.Background(), sample); err != nil {
		t.Fatalf("insert sample: %v", err)
	}
}
