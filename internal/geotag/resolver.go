// Package geotag resolves free-form location queries into H3 geotags.
package geotag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nikhilsingh/trackemdown/internal/core/model"
	"github.com/nikhilsingh/trackemdown/internal/core/observability"
	"github.com/nikhilsingh/trackemdown/internal/geocode"
	"github.com/nikhilsingh/trackemdown/internal/mapper"
)

// User-facing failure messages.
const (
	msgInvalidCoordinates = "Invalid coordinate format. Use 'latitude,longitude'."
	msgGeocoderConnect    = "Error connecting to geocoding service"
	msgNoResults          = "No results found for the given query."
	msgMalformedResults   = "Geocoding service returned malformed data."
)

// Geocoder is the upstream search surface the resolver depends on.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]model.Candidate, error)
}

type Resolver struct {
	logger   *slog.Logger
	geocoder Geocoder
	mapr     mapper.Interface
}

func New(logger *slog.Logger, g Geocoder, mapr mapper.Interface) *Resolver {
	return &Resolver{
		logger:   logger,
		geocoder: g,
		mapr:     mapr,
	}
}

// Resolve turns a query into geotags at the given resolution. Coordinate-shaped
// queries are parsed locally and never geocoded; anything else goes through
// exactly one geocoding call. Validating the resolution range is the caller's
// contract.
func (r *Resolver) Resolve(ctx context.Context, query string, resolution int) ([]model.GeoTag, error) {
	branch := "address"
	if looksLikeCoordinates(query) {
		branch = "coordinates"
	}

	candidates, err := r.candidates(ctx, query, branch)
	if err != nil {
		observability.IncResolution(branch, outcomeOf(err))
		return nil, err
	}

	if len(candidates) == 0 {
		observability.IncResolution(branch, "no_results")
		return nil, &Error{Kind: KindNoResults, Message: msgNoResults}
	}

	// One malformed candidate never fails its siblings.
	results := make([]model.GeoTag, 0, len(candidates))
	for i, cand := range candidates {
		lat, err := strconv.ParseFloat(cand.Lat, 64)
		if err != nil {
			r.skip(i, "latitude", err)
			continue
		}
		lng, err := strconv.ParseFloat(cand.Lon, 64)
		if err != nil {
			r.skip(i, "longitude", err)
			continue
		}
		cell, err := r.mapr.CellFromLatLng(lat, lng, resolution)
		if err != nil {
			r.skip(i, "index", err)
			continue
		}
		address := cand.DisplayName
		if address == "" {
			address = "N/A"
		}
		results = append(results, model.GeoTag{
			Address:   address,
			Latitude:  lat,
			Longitude: lng,
			Geotag:    cell,
		})
	}

	if len(results) == 0 {
		observability.IncResolution(branch, "malformed_results")
		return nil, &Error{Kind: KindNoResults, Message: msgMalformedResults}
	}

	observability.IncResolution(branch, "ok")
	r.logger.Debug("resolved query",
		"branch", branch,
		"resolution", resolution,
		"results", len(results))
	return results, nil
}

func (r *Resolver) candidates(ctx context.Context, query, branch string) ([]model.Candidate, error) {
	if branch == "coordinates" {
		lat, lng, err := parseCoordinatePair(query)
		if err != nil {
			r.logger.Warn("rejected coordinate query", "err", err)
			return nil, &Error{Kind: KindInvalidCoordinates, Message: msgInvalidCoordinates}
		}
		return []model.Candidate{{
			Lat:         strconv.FormatFloat(lat, 'f', -1, 64),
			Lon:         strconv.FormatFloat(lng, 'f', -1, 64),
			DisplayName: fmt.Sprintf("Coordinates: %.6f, %.6f", lat, lng),
		}}, nil
	}

	candidates, err := r.geocoder.Search(ctx, query)
	if err != nil {
		var reqErr *geocode.RequestError
		if errors.As(err, &reqErr) {
			return nil, &Error{Kind: KindServiceUnavailable, Message: msgGeocoderConnect, Err: err}
		}
		return nil, err
	}
	return candidates, nil
}

func (r *Resolver) skip(i int, reason string, err error) {
	r.logger.Warn("skipping candidate",
		"index", i,
		"reason", reason,
		"err", err)
	observability.IncCandidateSkipped(reason)
}

func outcomeOf(err error) string {
	switch kindOf(err) {
	case KindInvalidCoordinates:
		return "invalid_coordinates"
	case KindServiceUnavailable:
		return "unavailable"
	case KindNoResults:
		return "no_results"
	default:
		return "error"
	}
}
