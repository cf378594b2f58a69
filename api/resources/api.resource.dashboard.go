// FilePath: api/resources/api.resource.dashboard.go
package resources

import (
	"embed"
	"html/template"
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/netcellhq/netcell-hub/internal/errors"
	"github.com/netcellhq/netcell-hub/internal/hubservice"
	"github.com/netcellhq/netcell-hub/internal/localtime"
	"github.com/netcellhq/netcell-hub/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// DashboardHandlers encapsulates the human-facing HTML pages
type DashboardHandlers struct {
	hubservice *hubservice.HubService
}

// deviceStatsPage feeds the device-stats template with either the
// per-device breakdown or the global summary.
type deviceStatsPage struct {
	RequestedKey string
	DeviceID     string
	Device       *models.DeviceStats
	Global       *models.GlobalAverages
}

type presenceRow struct {
	Origin   string
	DeviceID string
	LastSeen string
}

type centralStatsPage struct {
	TotalDevices int
	Devices      []presenceRow
}

// @Summary Device statistics page
// @Description Renders per-device statistics; the key resolves through the origin fallback chain, and "global" requests cross-device averages
// @Tags dashboard
// @Produce html
// @Param device_id query string true "Device ID, origin key, or 'global'"
// @Param start query string false "Window start (02 Jan 2006 03:04 PM, display zone)"
// @Param end query string false "Window end (same format)"
// @Success 200 {string} string
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /device-stats [get]
func (h *DashboardHandlers) DeviceStatsPage(w http.ResponseWriter, r *http.Request) {
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

	page := deviceStatsPage{RequestedKey: query.DeviceID}

	if query.DeviceID == hubservice.GlobalScope {
		global, err := h.hubservice.GlobalStats(r.Context(), query.Start, query.End)
		if err != nil {
			respondWithError(w, asAPIError(err, requestID))
			return
		}
		page.Global = global
	} else {
		deviceID, err := h.hubservice.ResolveDeviceKey(r.Context(), query.DeviceID)
		if err != nil {
			respondWithError(w, asAPIError(err, requestID))
			return
		}
		device, err := h.hubservice.DeviceStats(r.Context(), deviceID, query.Start, query.End)
		if err != nil {
			respondWithError(w, asAPIError(err, requestID))
			return
		}
		page.DeviceID = deviceID
		page.Device = device
	}

	renderPage(w, "device_stats.html", page, requestID)
}

// @Summary Presence dashboard
// @Description Lists every known origin with its last contact time and best-known device id
// @Tags dashboard
// @Produce html
// @Success 200 {string} string
// @Failure 400 {object} errors.APIError
// @Router /central-stats [get]
func (h *DashboardHandlers) CentralStatsPage(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	presence, err := h.hubservice.ListPresence(r.Context())
	if err != nil {
		respondWithError(w, asAPIError(err, requestID))
		return
	}

	page := centralStatsPage{TotalDevices: len(presence)}
	for _, p := range presence {
		row := presenceRow{
			Origin:   p.OriginKey,
			DeviceID: "unknown",
			LastSeen: localtime.Format(p.LastSeen),
		}
		if p.AssociatedDeviceID != nil && *p.AssociatedDeviceID != "" {
			row.DeviceID = *p.AssociatedDeviceID
		}
		page.Devices = append(page.Devices, row)
	}

	renderPage(w, "central_stats.html", page, requestID)
}

func renderPage(w http.ResponseWriter, name string, data interface{}, requestID string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		nuts.L.Errorf("[Dashboard] Failed to render %s (request %s): %v", name, requestID, err)
	}
}
