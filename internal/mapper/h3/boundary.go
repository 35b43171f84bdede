package h3mapper

import (
	"fmt"

	h3 "github.com/uber/h3-go/v4"

	"github.com/nikhilsingh/trackemdown/internal/core/model"
)

// Boundary returns the hexagon vertex ring of a cell in order. The ring is
// open: callers drawing it close it by repeating the first vertex.
func (m *Mapper) Boundary(cell string) ([]model.LatLng, error) {
	var c h3.Cell
	if err := c.UnmarshalText([]byte(cell)); err != nil {
		return nil, fmt.Errorf("parse cell: %w", err)
	}

	if !c.IsValid() {
		return nil, fmt.Errorf("invalid h3 cell %q", cell)
	}

	boundary, err := c.Boundary()
	if err != nil {
		return nil, fmt.Errorf("h3 boundary: %w", err)
	}

	out := make([]model.LatLng, 0, len(boundary))
	for _, v := range boundary {
		out = append(out, model.LatLng{Lat: v.Lat, Lng: v.Lng})
	}
	return out, nil
}
