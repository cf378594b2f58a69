// FilePath: api/resources/api.resource.stats.go
package resources

import (
	"net/http"

	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/internal/errors"
	"github.com/netcellhq/netcell-hub/internal/hubservice"
)

// StatsHandlers encapsulates the statistics HTTP handlers
type StatsHandlers struct {
	hubservice *hubservice.HubService
}

// statsQuery is the query string of the stats endpoints. start and end
// use the fixed wire timestamp format and default to the full observed
// range when absent.
type statsQuery struct {
	DeviceID string `schema:"device_id"`
	Start    string `schema:"start"`
	End      string `schema:"end"`
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// @Summary Per-device statistics
// @Description Full aggregation payload for one device over an optional time window
// @Tags stats
// @Produce json
// @Param device_id query string true "Device ID"
// @Param start query string false "Window start (02 Jan 2006 03:04 PM, display zone)"
// @Param end query string false "Window end (same format)"
// @Success 200 {object} models.DeviceStats
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /get-stats [get]
func (h *StatsHandlers) GetStats(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query statsQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}
	if query.DeviceID == "" {
		respondWithError(w, errors.NewValidationError("device_id is required", nil).WithRequestID(requestID))
		return
	}

	payload, err := h.hubservice.DeviceStats(r.Context(), query.DeviceID, query.Start, query.End)
	if err != nil {
		respondWithError(w, asAPIError(err, requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, payload)
}

// @Summary Cross-device averages
// @Description Mean signal power and SNR over all devices in an optional time window
// @Tags stats
// @Produce json
// @Param start query string false "Window start (02 Jan 2006 03:04 PM, display zone)"
// @Param end query string false "Window end (same format)"
// @Success 200 {object} models.GlobalAverages
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /get-stats/avg-all [get]
func (h *StatsHandlers) GetAvgAll(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query statsQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	payload, err := h.hubservice.GlobalStats(r.Context(), query.Start, query.End)
	if err != nil {
		respondWithError(w, asAPIError(err, requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, payload)
}
