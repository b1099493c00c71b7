package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Observation represents a timestamped geographic point reported by or about
// a moving subject. Observations are immutable once submitted to analysis;
// edits produce a new observation set with a new content hash.
type Observation struct {
	ID        string    `json:"id"`
	Lat       float64   `json:"lat" binding:"min=-90,max=90"`
	Lng       float64   `json:"lng" binding:"min=-180,max=180"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
	Label     string    `json:"label,omitempty"`
}

// Point returns the observation's coordinate.
func (o Observation) Point() LatLng {
	return LatLng{Lat: o.Lat, Lng: o.Lng}
}

// HashObservations computes a content hash over an observation sequence.
// The hash identifies an analysis result: callers compare it against the hash
// of their current observation set to detect staleness. Only analysis-relevant
// fields participate (id, coordinates, timestamp); labels do not.
func HashObservations(observations []Observation) string {
	h := sha256.New()
	for _, o := range observations {
		fmt.Fprintf(h, "%s|%s|%s|%d\n",
			o.ID,
			strconv.FormatFloat(o.Lat, 'f', -1, 64),
			strconv.FormatFloat(o.Lng, 'f', -1, 64),
			o.Timestamp.UnixMilli(),
		)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
