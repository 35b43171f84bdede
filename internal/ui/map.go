package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"net/http"
	"time"

	"github.com/morikuni/go-geoplot"

	"github.com/nikhilsingh/trackemdown/internal/core/config"
	"github.com/nikhilsingh/trackemdown/internal/core/model"
	"github.com/nikhilsingh/trackemdown/internal/core/observability"
	"github.com/nikhilsingh/trackemdown/internal/core/router"
	"github.com/nikhilsingh/trackemdown/internal/mapper"
)

// Hexagon outline palette, cycled per result.
var palette = []color.RGBA{
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // blue
	{R: 0x00, G: 0x80, B: 0x00, A: 0xff}, // green
	{R: 0x80, G: 0x00, B: 0x80, A: 0xff}, // purple
	{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}, // orange
	{R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff}, // brown
	{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff}, // pink
	{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, // gray
	{R: 0x80, G: 0x80, B: 0x00, A: 0xff}, // olive
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff}, // cyan
	{R: 0xff, G: 0x00, B: 0xff, A: 0xff}, // magenta
}

// HandleMap serves a standalone interactive map for a query: one marker per
// result with the H3 hexagon boundary drawn around each geotag. Stateless,
// so the page's iframe and direct links both work.
func HandleMap(logger *slog.Logger, cfg config.Config, res router.Resolver, mapr mapper.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		query, resolution, err := router.ParseGeotagRequest(r, cfg.H3ResDefault)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/map", http.StatusBadRequest, time.Since(start).Seconds())
			return
		}

		results, err := res.Resolve(r.Context(), query, resolution)
		if err != nil {
			status := router.StatusFor(err)
			http.Error(w, router.Detail(err), status)
			observability.ObserveHTTP(r.Method, "/map", status, time.Since(start).Seconds())
			return
		}

		m := buildMap(logger, mapr, results, resolution)
		status := http.StatusOK
		if err := geoplot.ServeMap(w, r, m); err != nil {
			logger.Error("render map", "err", err)
			status = http.StatusInternalServerError
		}
		observability.ObserveHTTP(r.Method, "/map", status, time.Since(start).Seconds())
	}
}

func buildMap(logger *slog.Logger, mapr mapper.Interface, results []model.GeoTag, resolution int) *geoplot.Map {
	center := &geoplot.LatLng{
		Latitude:  results[0].Latitude,
		Longitude: results[0].Longitude,
	}
	m := &geoplot.Map{
		Center: center,
		Zoom:   zoomFor(resolution),
		Area: &geoplot.Area{
			From: center.Offset(-10, -10),
			To:   center.Offset(10, 10),
		},
	}

	markerIcon := geoplot.ColorIcon(255, 0, 0)
	for i, gt := range results {
		m.AddMarker(&geoplot.Marker{
			LatLng:  &geoplot.LatLng{Latitude: gt.Latitude, Longitude: gt.Longitude},
			Tooltip: fmt.Sprintf("%s (Geotag: %s)", gt.Address, gt.Geotag),
			Icon:    markerIcon,
		})

		ring, err := mapr.Boundary(gt.Geotag)
		if err != nil {
			// a bad boundary never drops the rest of the map
			logger.Warn("skipping hexagon", "cell", gt.Geotag, "err", err)
			continue
		}
		pts := make([]*geoplot.LatLng, 0, len(ring)+1)
		for _, v := range ring {
			pts = append(pts, &geoplot.LatLng{Latitude: v.Lat, Longitude: v.Lng})
		}
		pts = append(pts, pts[0]) // close the ring

		outline := palette[i%len(palette)]
		m.AddPolyline(&geoplot.Polyline{
			LatLngs: pts,
			Popup:   "H3 Geotag: " + gt.Geotag,
			Color:   &outline,
		})
	}
	return m
}

// zoomFor picks a zoom that keeps a cell of the given resolution visible:
// coarse cells get a world view, fine cells a street view.
func zoomFor(res int) int {
	z := res + 3
	if z < 2 {
		z = 2
	}
	if z > 18 {
		z = 18
	}
	return z
}
