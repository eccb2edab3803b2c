package handler

import (
	"net/http"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.redisContext()
	defer cancel()

	status := map[string]string{"database": "ok", "redis": "ok"}
	healthy := true

	if err := h.repository.Ping(ctx); err != nil {
		status["database"] = err.Error()
		healthy = false
	}
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		status["redis"] = err.Error()
		healthy = false
	}

	if !healthy {
		h.writeJSON(w, r, http.StatusServiceUnavailable, Response{Success: false, Message: "serviço indisponível", Data: status})
		return
	}

	h.successResponse(w, r, "ok", status)
}
