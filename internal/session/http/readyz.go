package http

import (
	"net/http"
	"time"

	"github.com/nestnote/nestnote/internal/session/store"
	"github.com/nestnote/nestnote/pkg/httpx"
	"github.com/nestnote/nestnote/pkg/nestsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and database connectivity
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	nestsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	nestsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &nestsdk.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, nestsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
