// FilePath: api/api.router.go
package api

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/netcellhq/netcell-hub/api/resources"
	"github.com/netcellhq/netcell-hub/internal/hubservice"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Service routes
	r.router.HandleFunc("/", r.resources.Liveness).Methods(http.MethodGet)
	r.router.HandleFunc("/health", r.resources.Health).Methods(http.MethodGet)

	// Ingestion
	r.router.HandleFunc("/receive-data", r.resources.Ingest.ReceiveData).Methods(http.MethodPost)

	// Statistics API
	r.router.HandleFunc("/get-stats", r.resources.Stats.GetStats).Methods(http.MethodGet)
	r.router.HandleFunc("/get-stats/avg-all", r.resources.Stats.GetAvgAll).Methods(http.MethodGet)

	// Dashboards
	r.router.HandleFunc("/device-stats", r.resources.Dashboard.DeviceStatsPage).Methods(http.MethodGet)
	r.router.HandleFunc("/central-stats", r.resources.Dashboard.CentralStatsPage).Methods(http.MethodGet)
}

// Handler returns the router wrapped with access logging and permissive
// CORS, matching the open ingestion surface the field devices expect.
func (r *Router) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return handlers.CombinedLoggingHandler(os.Stdout, cors(r.router))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
