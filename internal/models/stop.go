package models

// Resolution is the outcome of geocoding a stop: either Resolved or Unresolved.
// The interface is sealed so a stop can never carry coordinates and a failure reason at once.
type Resolution interface {
	isResolution()
}

// Resolved holds the coordinates of a successfully geocoded stop.
type Resolved struct {
	Point Coordinates
}

// Unresolved holds the human-readable reason coordinates are missing.
type Unresolved struct {
	Reason string
}

func (Resolved) isResolution()   {}
func (Unresolved) isResolution() {}

// Stop is a candidate point to visit.
type Stop struct {
	ID         int        // ID is the caller-assigned ordinal, unique within a request.
	Address    string     // Address is an opaque display label.
	Resolution Resolution // Resolution is nil until geocoding has run.
}

// Coordinates returns the stop's point and true when the stop is resolved.
func (s Stop) Coordinates() (Coordinates, bool) {
	if r, ok := s.Resolution.(Resolved); ok {
		return r.Point, true
	}

	return Coordinates{}, false
}

// Reason returns the failure reason of an unresolved stop, or an empty string.
func (s Stop) Reason() string {
	if u, ok := s.Resolution.(Unresolved); ok {
		return u.Reason
	}

	return ""
}

// StopInput is a stop as supplied by a caller, optionally with known coordinates.
type StopInput struct {
	ID          int
	Address     string
	Coordinates *Coordinates
}
