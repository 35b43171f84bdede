package h3mapper

import (
	"fmt"

	h3 "github.com/uber/h3-go/v4"
)

type Mapper struct{}

func New() *Mapper { return &Mapper{} }

// CellFromLatLng indexes a point at the given resolution. v4 takes degrees.
func (m *Mapper) CellFromLatLng(lat, lng float64, res int) (string, error) {
	if err := validateRes(res); err != nil {
		return "", err
	}

	// v4 returns (h3.Cell, error)
	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lng), res)
	if err != nil {
		return "", fmt.Errorf("h3 index: %w", err)
	}
	return cell.String(), nil
}

func validateRes(res int) error {
	if res < 0 || res > 15 {
		return fmt.Errorf("invalid H3 resolution %d (must be 0..15)", res)
	}
	return nil
}
