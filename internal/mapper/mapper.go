// Package mapper converts between geographic coordinates and H3 cells.
package mapper

import (
	"github.com/nikhilsingh/trackemdown/internal/core/model"
)

type Interface interface {
	CellFromLatLng(lat, lng float64, res int) (string, error)
	Boundary(cell string) ([]model.LatLng, error)
}
