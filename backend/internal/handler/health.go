package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/itchan-dev/hoots/shared/logger"
)

const readyTimeout = 2 * time.Second

// Health answers as long as the process serves HTTP.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// Ready reports whether hoots can be read and written, i.e. the storage backend answers a ping.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.Log.Warn("readiness check failed", "error", err)
		writeText(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeText(w, http.StatusOK, "ok")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.WriteHeader(status)
	w.Write([]byte(body))
}
