// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"github.com/netcellhq/netcell-hub/internal/cache"
	"github.com/netcellhq/netcell-hub/internal/errors"
	"github.com/netcellhq/netcell-hub/internal/repository"
)

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Samples  repository.SampleRepository
	Presence repository.PresenceRepository
	Cache    *cache.StatsCache
}

// New creates a new HubService instance. statsCache may be nil; caching
// is then disabled.
func New(
	samples repository.SampleRepository,
	presence repository.PresenceRepository,
	statsCache *cache.StatsCache,
) *HubService {
	return &HubService{
		Samples:  samples,
		Presence: presence,
		Cache:    statsCache,
	}
}

// Validate checks if all required repositories are initialized
func (s *HubService) Validate() error {
	if s.Samples == nil {
		return ErrMissingRepository("samples")
	}
	if s.Presence == nil {
		return ErrMissingRepository("presence")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
