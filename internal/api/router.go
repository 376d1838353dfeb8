package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ivalero/marketlens/internal/api/handlers"
	"github.com/ivalero/marketlens/pkg/logger"
)

// NewRouter wires all routes and middleware.
func NewRouter(marketHandler *handlers.MarketHandler, hub *handlers.ProgressHub, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/markets", marketHandler.ListMarkets).Methods("GET")
	api.HandleFunc("/markets/{market}/stocks", marketHandler.GetStocks).Methods("GET")
	api.HandleFunc("/markets/{market}/stocks/{ticker}/history", marketHandler.GetHistory).Methods("GET")
	api.HandleFunc("/markets/{market}/stats", marketHandler.GetStats).Methods("GET")
	api.HandleFunc("/markets/{market}/alerts", marketHandler.GetAlerts).Methods("GET")
	api.HandleFunc("/markets/{market}/estimates", marketHandler.GetEstimates).Methods("GET")
	api.HandleFunc("/markets/{market}/refresh", marketHandler.Refresh).Methods("POST")
	api.HandleFunc("/markets/{market}/purge", marketHandler.Purge).Methods("POST")
	api.HandleFunc("/refresh/ws", hub.HandleWS).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "marketlens-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
