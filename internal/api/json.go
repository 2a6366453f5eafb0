package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/UnknownOlympus/odyssey/internal/models"
)

type locationRequest struct {
	ID          int                 `json:"id"`
	Address     string              `json:"address"`
	Coordinates *models.Coordinates `json:"coordinates,omitempty"`
}

type optimizeRequest struct {
	Locations []locationRequest `json:"locations"`
	StartID   *int              `json:"startId,omitempty"`
}

type stopResponse struct {
	ID             int                 `json:"id"`
	Address        string              `json:"address"`
	Coordinates    *models.Coordinates `json:"coordinates,omitempty"`
	GeocodingError string              `json:"geocodingError,omitempty"`
}

type invalidLocation struct {
	Address string `json:"address"`
	Error   string `json:"error"`
}

type warnings struct {
	Message          string            `json:"message"`
	InvalidLocations []invalidLocation `json:"invalidLocations"`
	DistanceNote     string            `json:"distanceNote"`
}

type routeResponse struct {
	ID             string         `json:"id"`
	AnchorID       int            `json:"anchorId"`
	OptimizedRoute []stopResponse `json:"optimizedRoute"`
	TotalDistance  string         `json:"totalDistance"`
	Warnings       *warnings      `json:"warnings,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type insufficientResponse struct {
	Error            string            `json:"error"`
	InvalidLocations []invalidLocation `json:"invalidLocations"`
}

const distanceNote = "Locations that could not be geocoded are listed after the route and are not included in totalDistance."

func (r optimizeRequest) inputs() []models.StopInput {
	inputs := make([]models.StopInput, len(r.Locations))
	for i, loc := range r.Locations {
		inputs[i] = models.StopInput{ID: loc.ID, Address: loc.Address, Coordinates: loc.Coordinates}
	}

	return inputs
}

func newStopResponse(stop models.Stop) stopResponse {
	resp := stopResponse{ID: stop.ID, Address: stop.Address, GeocodingError: stop.Reason()}
	if p, ok := stop.Coordinates(); ok {
		resp.Coordinates = &p
	}

	return resp
}

func invalidLocations(unresolved []models.Stop) []invalidLocation {
	out := make([]invalidLocation, 0, len(unresolved))
	for _, stop := range unresolved {
		out = append(out, invalidLocation{Address: stop.Address, Error: stop.Reason()})
	}

	return out
}

func newRouteResponse(plan *models.RoutePlan) routeResponse {
	resp := routeResponse{
		ID:             plan.ID,
		AnchorID:       plan.AnchorID,
		OptimizedRoute: make([]stopResponse, 0, len(plan.Stops)),
		TotalDistance:  fmt.Sprintf("%.2f", plan.TotalDistanceKm),
		CreatedAt:      plan.CreatedAt,
	}
	for _, stop := range plan.Stops {
		resp.OptimizedRoute = append(resp.OptimizedRoute, newStopResponse(stop))
	}

	if n := len(plan.Unresolved); n > 0 {
		resp.Warnings = &warnings{
			Message:          fmt.Sprintf("%d location(s) could not be geocoded and were excluded from the route.", n),
			InvalidLocations: invalidLocations(plan.Unresolved),
			DistanceNote:     distanceNote,
		}
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
