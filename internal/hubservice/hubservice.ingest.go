// FilePath: internal/hubservice/hubservice.ingest.go
package hubservice

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/internal/models"
)

// RecordSample stores one sample and refreshes the presence row for the
// contacting origin in a single transaction: from the caller's view the
// sample insert and the presence touch either both land or neither does.
//
// originKey identifies the network origin of the request (client address
// or forwarded-for entry); an empty originKey skips the presence touch.
func (s *HubService) RecordSample(ctx context.Context, sample *models.Sample, originKey string) error {
	tx, err := s.Samples.BeginTx(ctx)
	if err != nil {
		return err
	}

	if err := s.Samples.InsertTx(ctx, tx, sample); err != nil {
		tx.Rollback()
		return err
	}

	if originKey != "" {
		if err := s.Presence.TouchTx(ctx, tx, originKey, sample.DeviceID, time.Now().UTC()); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	nuts.L.Debugf("[Ingest] Stored sample %s for device %s (origin %s)", sample.ID, sample.DeviceID, originKey)
	return nil
}

// ListPresence returns every known presence row for the dashboard.
func (s *HubService) ListPresence(ctx context.Context) ([]models.DevicePresence, error) {
	return s.Presence.List(ctx)
}
