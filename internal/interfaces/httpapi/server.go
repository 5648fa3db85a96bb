package httpapi

import (
	"net/http"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/metrics"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	rec *metrics.Recorder,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
	metricsHandler http.Handler,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled, metricsHandler)
	registerDraftRoutes(mux, handler)
	registerManagerRoutes(mux, handler)
	registerLineupRoutes(mux, handler)
	registerScoringRoutes(mux, handler)
	registerCompetitionRoutes(mux, handler)
	registerPlayerRoutes(mux, handler)
	registerScheduleRoutes(mux, handler)
	registerInternalSyncRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, rec, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
