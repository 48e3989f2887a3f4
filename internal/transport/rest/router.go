package rest

import (
	"log/slog"
	"net/http"

	"github.com/pitlane/racecontrol/internal/config"
	"github.com/pitlane/racecontrol/internal/transport/middleware"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Log           *slog.Logger
	Infringements *InfringementHandler
	Penalties     *PenaltyHandler
	Sessions      *SessionHandler
	Settings      *SettingsHandler
	Health        *HealthHandler
	Hub           http.Handler
	CORS          config.CORSConfig
	RateLimiter   *middleware.RateLimiter
	RatePerMinute int
}

// NewRouter builds the route table and wraps it in the shared middleware
// chain: request id, logging, panic recovery, CORS, rate limiting.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /infringements/{$}", deps.Infringements.Create)
	mux.HandleFunc("GET /infringements/{$}", deps.Infringements.List)
	mux.HandleFunc("PUT /infringements/{id}", deps.Infringements.Update)
	mux.HandleFunc("DELETE /infringements/{id}", deps.Infringements.Delete)
	mux.HandleFunc("GET /infringement_log/{$}", deps.Infringements.Log)
	mux.HandleFunc("GET /history/{kart_number}", deps.Infringements.KartHistory)

	mux.HandleFunc("GET /penalties/pending", deps.Penalties.Pending)
	mux.HandleFunc("POST /penalties/apply_individual/{id}", deps.Penalties.ApplyIndividual)
	mux.HandleFunc("POST /penalties/apply/{kart_number}", deps.Penalties.ApplyAllForKart)

	mux.HandleFunc("GET /session/{$}", deps.Sessions.List)
	mux.HandleFunc("POST /session/start", deps.Sessions.Start)
	mux.HandleFunc("POST /session/load", deps.Sessions.Load)
	mux.HandleFunc("POST /session/close", deps.Sessions.Close)
	mux.HandleFunc("DELETE /session/delete", deps.Sessions.Delete)
	mux.HandleFunc("GET /session/export", deps.Sessions.Export)
	mux.HandleFunc("POST /session/import", deps.Sessions.Import)

	mux.HandleFunc("GET /api/config", deps.Settings.Get)
	mux.HandleFunc("PUT /api/config", deps.Settings.Put)

	mux.HandleFunc("GET /api/health", deps.Health.Health)
	mux.HandleFunc("GET /api/health/live", deps.Health.Live)
	mux.HandleFunc("GET /api/health/ready", deps.Health.Ready)

	if deps.Hub != nil {
		mux.Handle("GET /ws", deps.Hub)
	}

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(deps.Log),
		middleware.Recovery(deps.Log),
		middleware.CORS(deps.CORS),
	}
	if deps.RateLimiter != nil && deps.RatePerMinute > 0 {
		mws = append(mws, deps.RateLimiter.Limit(deps.RatePerMinute))
	}

	return middleware.Chain(mws...)(mux)
}
