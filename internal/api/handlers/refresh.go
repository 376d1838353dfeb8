package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ivalero/marketlens/internal/refresh"
)

// refreshTimeout bounds one background cycle; a wedged provider must
// not hold the market lock forever.
const refreshTimeout = 30 * time.Minute

// Refresh starts a refresh cycle in the background. ?force=1 bypasses
// the freshness check. Responds 409 when a cycle for the market is
// already running; progress is streamed on the websocket.
// POST /api/markets/{market}/refresh
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	marketID := mux.Vars(r)["market"]
	if _, ok := h.stores[marketID]; !ok {
		respondError(w, http.StatusNotFound, "Unknown market: "+marketID)
		return
	}

	force := r.URL.Query().Get("force") == "1"

	if h.controller.Running(marketID) {
		respondError(w, http.StatusConflict, "Refresh already running for "+marketID)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		summary, err := h.controller.RefreshMarket(ctx, marketID, force, h.hub.Broadcast)
		if err != nil {
			if errors.Is(err, refresh.ErrAlreadyRunning) {
				return
			}
			h.logger.WithError(err).WithField("market", marketID).Error("Background refresh failed")
			return
		}
		h.hub.BroadcastDone(summary)
	}()

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"status": "started",
		"market": marketID,
		"force":  force,
	})
}
