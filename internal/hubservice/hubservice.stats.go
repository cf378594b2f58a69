// FilePath: internal/hubservice/hubservice.stats.go
package hubservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/internal/cache"
	apierrors "github.com/netcellhq/netcell-hub/internal/errors"
	"github.com/netcellhq/netcell-hub/internal/localtime"
	"github.com/netcellhq/netcell-hub/internal/models"
	"github.com/netcellhq/netcell-hub/internal/repository"
	"github.com/netcellhq/netcell-hub/internal/stats"
)

// GlobalScope is the device-key sentinel requesting cross-device
// averages instead of a per-device breakdown.
const GlobalScope = "global"

// resolveWindow determines the effective [start, end] window. Bounds
// supplied as wire-format text are parsed through localtime; missing
// bounds default to the store's full observed range. An entirely empty
// store is NoData regardless of the supplied bounds, and a window whose
// end precedes its start is rejected.
func (s *HubService) resolveWindow(ctx context.Context, startText, endText string) (time.Time, time.Time, error) {
	start, end, err := s.Samples.TimeBounds(ctx)
	if errors.Is(err, repository.ErrNoData) {
		return time.Time{}, time.Time{}, apierrors.NewNotFoundError("No data", err)
	}
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if startText != "" {
		if start, err = localtime.Parse(startText); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endText != "" {
		if end, err = localtime.Parse(endText); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, apierrors.NewInvalidRangeError("End date must be after start date")
	}
	return start, end, nil
}

// DeviceStats computes the full aggregation payload for the literal
// device id over the requested window. No fallback resolution happens
// here; see ResolveDeviceKey for the dashboard's lookup chain.
func (s *HubService) DeviceStats(ctx context.Context, deviceID, startText, endText string) (*models.DeviceStats, error) {
	start, end, err := s.resolveWindow(ctx, startText, endText)
	if err != nil {
		return nil, err
	}

	key := cache.Key("device", deviceID, start, end)
	if data, ok := s.Cache.Get(ctx, key); ok {
		payload := &models.DeviceStats{}
		if err := json.Unmarshal(data, payload); err == nil {
			return payload, nil
		}
	}

	samples, err := s.Samples.Range(ctx, deviceID, start, end)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, apierrors.NewNotFoundError("No data for device", nil)
	}

	payload := stats.Aggregate(samples)
	if data, err := json.Marshal(&payload); err == nil {
		s.Cache.Set(ctx, key, data)
	}
	return &payload, nil
}

// GlobalStats computes the reduced cross-device payload: mean signal
// power and SNR over every sample in the window, skipping the grouped
// breakdown entirely.
func (s *HubService) GlobalStats(ctx context.Context, startText, endText string) (*models.GlobalAverages, error) {
	start, end, err := s.resolveWindow(ctx, startText, endText)
	if err != nil {
		return nil, err
	}

	key := cache.Key(GlobalScope, "", start, end)
	if data, ok := s.Cache.Get(ctx, key); ok {
		payload := &models.GlobalAverages{}
		if err := json.Unmarshal(data, payload); err == nil {
			return payload, nil
		}
	}

	averages, err := s.Samples.GlobalAverages(ctx, start, end)
	if err != nil {
		return nil, err
	}
	averages.AvgSignalAllDevices = stats.Round2(averages.AvgSignalAllDevices)
	averages.AvgSNRAllDevices = stats.Round2(averages.AvgSNRAllDevices)

	if data, err := json.Marshal(&averages); err == nil {
		s.Cache.Set(ctx, key, data)
	}
	return &averages, nil
}

// ResolveDeviceKey maps a caller-supplied device key to the device id to
// query, tolerating callers who only know their network origin:
//
//  1. a device id with stored samples is used as-is;
//  2. otherwise the key is treated as an origin and the presence row's
//     associated device id is used;
//  3. otherwise the device id of the most recently timestamped sample
//     store-wide is used.
//
// Step 3 is kept for compatibility with existing clients, but it returns
// whichever device reported last, regardless of the requested key — a
// caller with an unresolvable key silently sees another device's
// statistics. Do not extend this chain.
func (s *HubService) ResolveDeviceKey(ctx context.Context, key string) (string, error) {
	exists, err := s.Samples.DeviceExists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		return key, nil
	}

	presence, err := s.Presence.Get(ctx, key)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if presence != nil && presence.AssociatedDeviceID != nil && *presence.AssociatedDeviceID != "" {
		return *presence.AssociatedDeviceID, nil
	}

	latest, err := s.Samples.LatestDeviceID(ctx)
	if errors.Is(err, repository.ErrNoData) {
		return "", apierrors.NewNotFoundError("No data for device", err)
	}
	if err != nil {
		return "", err
	}

	nuts.L.Warnf("[Resolver] Key %q did not resolve; falling back to most recent device %q", key, latest)
	return latest, nil
}
