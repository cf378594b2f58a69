// FilePath: api/resources/api.resource.ingest.go
package resources

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/internal/errors"
	"github.com/netcellhq/netcell-hub/internal/hubservice"
	"github.com/netcellhq/netcell-hub/internal/localtime"
	"github.com/netcellhq/netcell-hub/internal/models"
)

// IngestHandlers encapsulates the sample-ingestion HTTP handlers
type IngestHandlers struct {
	hubservice *hubservice.HubService
}

// receiveDataRequest mirrors the ingestion body. Pointer fields
// distinguish "absent" from zero values so missing required keys can be
// named in the error.
type receiveDataRequest struct {
	DeviceID    *string  `json:"device_id"`
	Operator    *string  `json:"operator"`
	SignalPower *int     `json:"signal_power"`
	SNR         *float64 `json:"snr"`
	NetworkType *string  `json:"network_type"`
	Band        *string  `json:"band"`
	CellID      *string  `json:"cell_id"`
	Timestamp   *string  `json:"timestamp"`
}

// @Summary Ingest a cellular-quality sample
// @Description Store one sample and refresh the presence row for the request origin
// @Tags ingest
// @Accept json
// @Produce json
// @Param sample body receiveDataRequest true "Sample payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Router /receive-data [post]
func (h *IngestHandlers) ReceiveData(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req receiveDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if missing := firstMissingField(&req); missing != "" {
		respondWithError(w, errors.NewValidationError(
			fmt.Sprintf("Missing field '%s'", missing), nil).WithRequestID(requestID))
		return
	}

	timestamp, err := localtime.Parse(*req.Timestamp)
	if err != nil {
		respondWithError(w, asAPIError(err, requestID))
		return
	}

	sample := &models.Sample{
		DeviceID:    *req.DeviceID,
		Operator:    *req.Operator,
		SignalPower: *req.SignalPower,
		NetworkType: *req.NetworkType,
		CellID:      *req.CellID,
		Timestamp:   timestamp,
		Band:        models.BandNotAvailable,
	}
	if req.Band != nil {
		sample.Band = *req.Band
	}
	if req.SNR != nil {
		sample.SNR = *req.SNR
	}

	if err := h.hubservice.RecordSample(r.Context(), sample, originKey(r)); err != nil {
		respondWithError(w, asAPIError(err, requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Data received"})
}

// firstMissingField returns the name of the first absent required key,
// in the documented field order, or "" when all are present.
func firstMissingField(req *receiveDataRequest) string {
	required := []struct {
		name    string
		present bool
	}{
		{"device_id", req.DeviceID != nil},
		{"operator", req.Operator != nil},
		{"signal_power", req.SignalPower != nil},
		{"network_type", req.NetworkType != nil},
		{"cell_id", req.CellID != nil},
		{"timestamp", req.Timestamp != nil},
	}
	for _, field := range required {
		if !field.present {
			return field.name
		}
	}
	return ""
}

// originKey identifies the contacting network origin: the first
// X-Forwarded-For entry when present, else the remote address without
// its port.
func originKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
