// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/internal/errors"
	"github.com/netcellhq/netcell-hub/internal/hubservice"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Ingest    *IngestHandlers
	Stats     *StatsHandlers
	Dashboard *DashboardHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService) *Resources {
	return &Resources{
		Ingest:    &IngestHandlers{hubservice: svc},
		Stats:     &StatsHandlers{hubservice: svc},
		Dashboard: &DashboardHandlers{hubservice: svc},
	}
}

// Liveness responds with the plain liveness string.
func (r *Resources) Liveness(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Network Cell Hub backend is running."))
}

// Health responds with service status and version.
func (r *Resources) Health(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// asAPIError passes structured errors through unchanged and wraps
// anything unexpected as a client-visible 400 carrying the raw error
// text, matching the no-retries, all-or-nothing request contract.
func asAPIError(err error, requestID string) *errors.APIError {
	if apiErr, ok := err.(*errors.APIError); ok {
		return apiErr.WithRequestID(requestID)
	}
	return errors.NewValidationError(err.Error(), err).WithRequestID(requestID)
}
