package http

import (
	"net/http"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/store"
	"github.com/harborlane/tenantd/pkg/accountsdk"
	"github.com/harborlane/tenantd/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It verifies the database connection
// and returns 503 when any dependency check fails.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &accountsdk.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := accountsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
