// Package model defines core domain types shared across the service.
package model

import "fmt"

// GeoTag is one resolved location: a geocoder candidate that survived
// parsing and indexing, tagged with its H3 cell at the requested resolution.
type GeoTag struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Geotag    string  `json:"geotag"`
}

// Candidate is one raw record from the geocoding service. Lat and Lon stay
// strings until the resolver parses them, so one malformed record can be
// skipped without failing its siblings.
type Candidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type LatLng struct {
	Lat float64
	Lng float64
}

func (p LatLng) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// QueryResponse is the success envelope for /geotag.
type QueryResponse struct {
	Status     string   `json:"status"`
	Query      string   `json:"query"`
	Resolution int      `json:"resolution"`
	Result     []GeoTag `json:"result"`
}

// ErrorResponse carries the detail message for every mapped failure status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
