package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/UnknownOlympus/odyssey/internal/repository"
	"github.com/UnknownOlympus/odyssey/internal/service"
)

// OptimizeRouteHandler computes an optimal closed route over the posted locations.
func (s *Server) OptimizeRouteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req optimizeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.log.DebugContext(ctx, "Rejected malformed request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Locations) == 0 {
		writeError(w, http.StatusBadRequest, "At least one location is required.")
		return
	}

	plan, err := s.routes.Optimize(ctx, req.inputs(), req.StartID)

	var (
		insufficient *service.InsufficientLocationsError
		tooMany      *service.TooManyLocationsError
	)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, newRouteResponse(plan))
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusBadRequest, insufficientResponse{
			Error:            "Need at least 2 valid locations to calculate a route.",
			InvalidLocations: invalidLocations(insufficient.Unresolved),
		})
	case errors.As(err, &tooMany):
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf(
			"Too many valid locations for exact optimization: %d (limit %d).", tooMany.Count, tooMany.Limit))
	case errors.Is(err, service.ErrUnknownAnchor):
		writeError(w, http.StatusBadRequest, "Start location must be one of the valid locations.")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.ErrorContext(ctx, "Error processing request", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process request")
	}
}

// RouteByIDHandler returns a previously computed route.
func (s *Server) RouteByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	plan, err := s.routes.GetPlan(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load route", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	writeJSON(w, http.StatusOK, newRouteResponse(plan))
}

// HealthHandler pings every configured dependency.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.log.DebugContext(ctx, "Performing health checks...")

	status, body := http.StatusOK, "OK"
	for _, check := range s.checks {
		if err := check.Ping(ctx); err != nil {
			s.log.WarnContext(ctx, "Health check failed", "check", check.Name, "error", err)
			status, body = http.StatusServiceUnavailable, check.Name+" ping failed"
			break
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		s.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}

	s.log.DebugContext(ctx, "Health checks completed", "status", status)
}
