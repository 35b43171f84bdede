package ui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nikhilsingh/trackemdown/internal/core/config"
	"github.com/nikhilsingh/trackemdown/internal/core/model"
	"github.com/nikhilsingh/trackemdown/internal/geotag"
	h3mapper "github.com/nikhilsingh/trackemdown/internal/mapper/h3"
)

func renderMap(fx *fakeResolver, params url.Values) *httptest.ResponseRecorder {
	cfg := config.Config{H3ResDefault: 12}
	h := HandleMap(discardLogger(), cfg, fx, h3mapper.New())
	req := httptest.NewRequest(http.MethodGet, "/map", nil)
	req.URL.RawQuery = params.Encode()
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHandleMap_EmbedsResultData(t *testing.T) {
	mapr := h3mapper.New()
	cell, err := mapr.CellFromLatLng(52.5170365, 13.3888599, 8)
	if err != nil {
		t.Fatalf("CellFromLatLng: %v", err)
	}

	fx := &fakeResolver{results: []model.GeoTag{
		{Address: "Berlin, Germany", Latitude: 52.5170365, Longitude: 13.3888599, Geotag: cell},
	}}

	params := url.Values{}
	params.Set("q", "Berlin")
	params.Set("resolution", "8")
	rr := renderMap(fx, params)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want 200, body=%s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	// the page is client-rendered, so marker and hexagon data must be embedded
	if !strings.Contains(body, cell) {
		t.Fatalf("cell %s not embedded in map page", cell)
	}
	if !strings.Contains(body, "Berlin, Germany") {
		t.Fatalf("address not embedded in map page")
	}
}

func TestHandleMap_BadBoundary_StillServes(t *testing.T) {
	fx := &fakeResolver{results: []model.GeoTag{
		{Address: "Somewhere", Latitude: 1.5, Longitude: 2.5, Geotag: "zzz"},
	}}

	params := url.Values{}
	params.Set("q", "somewhere")
	rr := renderMap(fx, params)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want 200 despite bad boundary", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "zzz") {
		t.Fatalf("marker for the unmappable cell missing")
	}
}

func TestHandleMap_MissingQ(t *testing.T) {
	fx := &fakeResolver{}
	rr := renderMap(fx, url.Values{})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "missing required parameter: q") {
		t.Fatalf("body=%q", rr.Body.String())
	}
	if fx.calls != 0 {
		t.Fatalf("resolver called for an invalid request")
	}
}

func TestHandleMap_ResolverFailureMapsToStatus(t *testing.T) {
	fx := &fakeResolver{err: &geotag.Error{
		Kind:    geotag.KindServiceUnavailable,
		Message: "Error connecting to geocoding service",
		Err:     errors.New("dial tcp: refused"),
	}}

	params := url.Values{}
	params.Set("q", "somewhere")
	rr := renderMap(fx, params)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want 503", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Error connecting to geocoding service") {
		t.Fatalf("body=%q", rr.Body.String())
	}
}

func TestZoomFor_TracksResolution(t *testing.T) {
	cases := []struct{ res, want int }{
		{0, 3},
		{5, 8},
		{12, 15},
		{15, 18},
	}
	for _, tc := range cases {
		if got := zoomFor(tc.res); got != tc.want {
			t.Errorf("zoomFor(%d)=%d want %d", tc.res, got, tc.want)
		}
	}
}
