// FilePath: internal/hubservice/hubservice_test.go
package hubservice

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/netcellhq/netcell-hub/internal/config"
	"github.com/netcellhq/netcell-hub/internal/database"
	apierrors "github.com/netcellhq/netcell-hub/internal/errors"
	"github.com/netcellhq/netcell-hub/internal/localtime"
	"github.com/netcellhq/netcell-hub/internal/models"
	"github.com/netcellhq/netcell-hub/internal/repository/sqlite"
)

func newTestService(t *testing.T) *HubService {
	t.Helper()
	db, err := database.NewSQLiteDB(config.SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	samples, err := sqlite.NewSampleRepository(db)
	if err != nil {
		t.Fatalf("create sample repository: %v", err)
	}
	presence, err := sqlite.NewPresenceRepository(db)
	if err != nil {
		t.Fatalf("create presence repository: %v", err)
	}
	return New(samples, presence, nil)
}

func mustParse(t *testing.T, text string) time.Time {
	t.Helper()
	ts, err := localtime.Parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return ts
}

func record(t *testing.T, svc *HubService, deviceID, operator, networkType string, signal int, snr float64, ts time.Time) {
	t.Helper()
	err := svc.RecordSample(context.Background(), &models.Sample{
		DeviceID:    deviceID,
		Operator:    operator,
		SignalPower: signal,
		SNR:         snr,
		NetworkType: networkType,
		Band:        "B3",
		CellID:      "cell-1",
		Timestamp:   ts,
	}, "")
	if err != nil {
		t.Fatalf("record sample: %v", err)
	}
}

func wantMessage(t *testing.T, err error, want string) {
	t.Helper()
	apiErr, ok := err.(*apierrors.APIError)
	if !ok {
		t.Fatalf("error %v is not an APIError", err)
	}
	if apiErr.Message != want {
		t.Errorf("message = %q, want %q", apiErr.Message, want)
	}
}

func TestDeviceStatsEmptyStore(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.DeviceStats(context.Background(), "unit-1", "", "")
	if !apierrors.IsNotFound(err) {
		t.Fatalf("DeviceStats on empty store = %v, want not found", err)
	}
	wantMessage(t, err, "No data")

	// Supplied bounds do not change the answer when nothing is stored.
	_, err = svc.DeviceStats(context.Background(), "unit-1", "10 Mar 2024 10:00 AM", "10 Mar 2024 06:00 PM")
	if !apierrors.IsNotFound(err) {
		t.Fatalf("DeviceStats with bounds on empty store = %v, want not found", err)
	}
	wantMessage(t, err, "No data")
}

func TestDeviceStatsDefaultsToFullObservedRange(t *testing.T) {
	svc := newTestService(t)

	t1 := mustParse(t, "10 Mar 2024 10:00 AM")
	t2 := mustParse(t, "10 Mar 2024 06:00 PM")
	record(t, svc, "unit-1", "Alfa", "4G", -60, 10, t1)
	record(t, svc, "unit-1", "Touch", "3G", -80, 6, t2)

	got, err := svc.DeviceStats(context.Background(), "unit-1", "", "")
	if err != nil {
		t.Fatalf("DeviceStats: %v", err)
	}
	if got.ConnectivityPerOperator["Alfa"] != "50.0%" {
		t.Errorf("Alfa share = %q, want 50.0%%", got.ConnectivityPerOperator["Alfa"])
	}
	if got.AvgSignalDevice != -70.0 {
		t.Errorf("avg signal device = %v, want -70.0", got.AvgSignalDevice)
	}
}

func TestDeviceStatsHonorsWindow(t *testing.T) {
	svc := newTestService(t)

	record(t, svc, "unit-1", "Alfa", "4G", -60, 10, mustParse(t, "10 Mar 2024 10:00 AM"))
	record(t, svc, "unit-1", "Touch", "3G", -80, 6, mustParse(t, "10 Mar 2024 06:00 PM"))

	got, err := svc.DeviceStats(context.Background(), "unit-1",
		"10 Mar 2024 09:00 AM", "10 Mar 2024 12:00 PM")
	if err != nil {
		t.Fatalf("DeviceStats: %v", err)
	}
	if got.ConnectivityPerOperator["Alfa"] != "100.0%" {
		t.Errorf("windowed Alfa share = %q, want 100.0%%", got.ConnectivityPerOperator["Alfa"])
	}
	if _, present := got.ConnectivityPerOperator["Touch"]; present {
		t.Error("windowed stats include a sample outside the window")
	}
}

func TestDeviceStatsUnknownDevice(t *testing.T) {
	svc := newTestService(t)

	record(t, svc, "unit-1", "Alfa", "4G", -60, 10, mustParse(t, "10 Mar 2024 10:00 AM"))

	_, err := svc.DeviceStats(context.Background(), "unit-9", "", "")
	if !apierrors.IsNotFound(err) {
		t.Fatalf("DeviceStats for unknown device = %v, want not found", err)
	}
	wantMessage(t, err, "No data for device")
}

func TestDeviceStatsInvalidRange(t *testing.T) {
	svc := newTestService(t)

	record(t, svc, "unit-1", "Alfa", "4G", -60, 10, mustParse(t, "10 Mar 2024 10:00 AM"))

	_, err := svc.DeviceStats(context.Background(), "unit-1",
		"10 Mar 2024 06:00 PM", "10 Mar 2024 10:00 AM")
	if !apierrors.IsInvalidRange(err) {
		t.Fatalf("DeviceStats with inverted window = %v, want invalid range", err)
	}
	wantMessage(t, err, "End date must be after start date")
}

func TestDeviceStatsMalformedBound(t *testing.T) {
	svc := newTestService(t)

	record(t, svc, "unit-1", "Alfa", "4G", -60, 10, mustParse(t, "10 Mar 2024 10:00 AM"))

	_, err := svc.DeviceStats(context.Background(), "unit-1", "2024-03-10", "")
	if !apierrors.IsParse(err) {
		t.Fatalf("DeviceStats with malformed start = %v, want parse error", err)
	}
}

func TestGlobalStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record(t, svc, "unit-1", "Alfa", "4G", -60, 10, mustParse(t, "10 Mar 2024 10:00 AM"))
	record(t, svc, "unit-2", "Touch", "3G", -81, 7, mustParse(t, "10 Mar 2024 06:00 PM"))

	got, err := svc.GlobalStats(ctx, "", "")
	if err != nil {
		t.Fatalf("GlobalStats: %v", err)
	}
	if got.AvgSignalAllDevices != -70.5 {
		t.Errorf("avg signal = %v, want -70.5", got.AvgSignalAllDevices)
	}
	if got.AvgSNRAllDevices != 8.5 {
		t.Errorf("avg SNR = %v, want 8.5", got.AvgSNRAllDevices)
	}

	// A window holding no samples reduces to zeros, not an error.
	empty, err := svc.GlobalStats(ctx, "11 Mar 2024 10:00 AM", "11 Mar 2024 06:00 PM")
	if err != nil {
		t.Fatalf("GlobalStats empty window: %v", err)
	}
	if empty.AvgSignalAllDevices != 0 || empty.AvgSNRAllDevices != 0 {
		t.Errorf("empty window averages = %+v, want zeros", empty)
	}
}

func TestGlobalStatsEmptyStore(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GlobalStats(context.Background(), "", "")
	if !apierrors.IsNotFound(err) {
		t.Fatalf("GlobalStats on empty store = %v, want not found", err)
	}
}

func TestResolveDeviceKeyLiteralDevice(t *testing.T) {
	svc := newTestService(t)

	record(t, svc, "unit-7", "Alfa", "4G", -60, 10, mustParse(t, "10 Mar 2024 10:00 AM"))

	got, err := svc.ResolveDeviceKey(context.Background(), "unit-7")
	if err != nil {
		t.Fatalf("ResolveDeviceKey: %v", err)
	}
	if got != "unit-7" {
		t.Errorf("resolved = %q, want unit-7", got)
	}
}

func TestResolveDeviceKeyViaPresence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record(t, svc, "unit-7", "Alfa", "4G", -60, 10, mustParse(t, "10 Mar 2024 10:00 AM"))
	if err := svc.Presence.Touch(ctx, "10.0.0.5", "unit-7", time.Now().UTC()); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	got, err := svc.ResolveDeviceKey(ctx, "10.0.0.5")
	if err != nil {
		t.Fatalf("ResolveDeviceKey: %v", err)
	}
	if got != "unit-7" {
		t.Errorf("resolved = %q, want unit-7", got)
	}
}

func TestResolveDeviceKeyFallsBackToLatest(t *testing.T) {
	svc := newTestService(t)

	record(t, svc, "unit-1", "Alfa", "4G", -60, 10, mustParse(t, "10 Mar 2024 10:00 AM"))
	record(t, svc, "unit-2", "Touch", "3G", -80, 6, mustParse(t, "10 Mar 2024 06:00 PM"))

	got, err := svc.ResolveDeviceKey(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("ResolveDeviceKey: %v", err)
	}
	if got != "unit-2" {
		t.Errorf("resolved = %q, want most recent device unit-2", got)
	}
}

func TestResolveDeviceKeyEmptyStore(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ResolveDeviceKey(context.Background(), "never-seen")
	if !apierrors.IsNotFound(err) {
		t.Fatalf("ResolveDeviceKey on empty store = %v, want not found", err)
	}
	wantMessage(t, err, "No data for device")
}

func TestRecordSampleTouchesPresence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.RecordSample(ctx, &models.Sample{
		DeviceID:    "unit-1",
		Operator:    "Alfa",
		SignalPower: -60,
		SNR:         10,
		NetworkType: "4G",
		Band:        "B3",
		CellID:      "cell-1",
		Timestamp:   mustParse(t, "10 Mar 2024 10:00 AM"),
	}, "10.0.0.5")
	if err != nil {
		t.Fatalf("RecordSample: %v", err)
	}

	presence, err := svc.Presence.Get(ctx, "10.0.0.5")
	if err != nil {
		t.Fatalf("Get presence: %v", err)
	}
	if presence.AssociatedDeviceID == nil || *presence.AssociatedDeviceID != "unit-1" {
		t.Errorf("associated device = %v, want unit-1", presence.AssociatedDeviceID)
	}

	rows, err := svc.ListPresence(ctx)
	if err != nil {
		t.Fatalf("ListPresence: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("ListPresence returned %d rows, want 1", len(rows))
	}
}

func TestRecordSampleWithoutOriginSkipsPresence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record(t, svc, "unit-1", "Alfa", "4G", -60, 10, mustParse(t, "10 Mar 2024 10:00 AM"))

	rows, err := svc.ListPresence(ctx)
	if err != nil {
		t.Fatalf("ListPresence: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("ListPresence returned %d rows, want none", len(rows))
	}
}
