package http

import (
	"net/http"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/settle"
	"github.com/chillarlabs/chillar/internal/wallet/store"
	"github.com/chillarlabs/chillar/pkg/httpx"
	"github.com/chillarlabs/chillar/pkg/jwtx"
	"github.com/chillarlabs/chillar/pkg/walletsdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning service status, uptime, and version.
//	@Description	Always returns 200 OK if the process is running.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	walletsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, walletsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database, the session signer, and the settlement service.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	walletsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	walletsdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	verifier jwtx.Verifier,
	settlement settle.Service,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &walletsdk.HealthChecks{
			Database:   "ok",
			Signer:     "ok",
			Settlement: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if ready, ok := verifier.(interface{ Ready() bool }); ok && !ready.Ready() {
			checks.Signer = "error: no signing key loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := settlement.Healthy(r.Context()); err != nil {
			checks.Settlement = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, walletsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
