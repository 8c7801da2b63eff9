package handler

import (
	"net/http"

	"authapi/internal/http/handler/middleware"

	"go.uber.org/zap"
)

var HealthPath = "/healthz"

type HealthHandler struct {
	logs    *zap.SugaredLogger
	checker HealthChecker
}

func NewHealthHandler(logger *zap.SugaredLogger, checker HealthChecker) *HealthHandler {
	return &HealthHandler{
		logs:    logger,
		checker: checker,
	}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	requestId := middleware.RequestIDFromContext(r.Context())

	if err := h.checker.Ping(r.Context()); err != nil {
		respond(h.logs, w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable, requestId)
		h.logs.Errorw("health check failed",
			"error", err,
			"handler", HealthPath,
			"request_id", requestId)
		return
	}

	respond(h.logs, w, map[string]string{"status": "ok"}, http.StatusOK, requestId)
}
