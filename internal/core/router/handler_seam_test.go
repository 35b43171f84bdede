package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/nikhilsingh/trackemdown/internal/core/config"
	"github.com/nikhilsingh/trackemdown/internal/core/model"
	"github.com/nikhilsingh/trackemdown/internal/geotag"
)

type fakeResolver struct {
	results []model.GeoTag
	err     error
	calls   int
	lastQ   string
	lastRes int
}

func (f *fakeResolver) Resolve(_ context.Context, query string, resolution int) ([]model.GeoTag, error) {
	f.calls++
	f.lastQ = query
	f.lastRes = resolution
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func newHandler(res Resolver) http.HandlerFunc {
	cfg := config.Config{H3ResDefault: 12}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return HandleGeotag(logger, cfg, res)
}

func doGet(h http.HandlerFunc, params url.Values, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/geotag", nil)
	req.URL.RawQuery = params.Encode()
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHandleGeotag_SuccessEnvelope(t *testing.T) {
	fx := &fakeResolver{results: []model.GeoTag{
		{Address: "Berlin, Germany", Latitude: 52.517, Longitude: 13.3889, Geotag: "881f1d4889fffff"},
	}}
	h := newHandler(fx)

	q := url.Values{}
	q.Set("q", "Berlin")
	q.Set("resolution", "8")
	rr := doGet(h, q, nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want 200, body=%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}
	if fx.lastQ != "Berlin" || fx.lastRes != 8 {
		t.Fatalf("resolver got q=%q res=%d", fx.lastQ, fx.lastRes)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &keys); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	for _, k := range []string{"status", "query", "resolution", "result"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("envelope missing %q: %s", k, rr.Body.String())
		}
	}

	var env model.QueryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Status != "success" || env.Query != "Berlin" || env.Resolution != 8 {
		t.Fatalf("envelope=%+v", env)
	}
	if len(env.Result) != 1 || env.Result[0].Geotag != "881f1d4889fffff" {
		t.Fatalf("result=%+v", env.Result)
	}
}

func TestHandleGeotag_ETagRoundTrip(t *testing.T) {
	fx := &fakeResolver{results: []model.GeoTag{
		{Address: "A", Latitude: 1.5, Longitude: 2.5, Geotag: "abc"},
	}}
	h := newHandler(fx)

	q := url.Values{}
	q.Set("q", "somewhere")

	first := doGet(h, q, nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status=%d", first.Code)
	}
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("no ETag on success response")
	}

	revalidated := doGet(h, q, http.Header{"If-None-Match": {etag}})
	if revalidated.Code != http.StatusNotModified {
		t.Fatalf("status=%d want 304", revalidated.Code)
	}
	if revalidated.Body.Len() != 0 {
		t.Fatalf("304 must not carry a body, got %q", revalidated.Body.String())
	}

	wildcard := doGet(h, q, http.Header{"If-None-Match": {"*"}})
	if wildcard.Code != http.StatusNotModified {
		t.Fatalf("wildcard status=%d want 304", wildcard.Code)
	}

	stale := doGet(h, q, http.Header{"If-None-Match": {`"deadbeef"`}})
	if stale.Code != http.StatusOK {
		t.Fatalf("stale tag status=%d want 200", stale.Code)
	}
}

func TestHandleGeotag_MissingQ_NeverResolves(t *testing.T) {
	fx := &fakeResolver{}
	h := newHandler(fx)

	rr := doGet(h, url.Values{}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", rr.Code)
	}
	if fx.calls != 0 {
		t.Fatalf("resolver called %d times for an invalid request", fx.calls)
	}

	var e model.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if e.Detail != "missing required parameter: q" {
		t.Fatalf("detail=%q", e.Detail)
	}
}

func TestHandleGeotag_TaxonomyStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		want   int
		detail string
	}{
		{
			name:   "invalid coordinates",
			err:    &geotag.Error{Kind: geotag.KindInvalidCoordinates, Message: "Invalid coordinate format. Use 'latitude,longitude'."},
			want:   http.StatusBadRequest,
			detail: "Invalid coordinate format. Use 'latitude,longitude'.",
		},
		{
			name:   "no results",
			err:    &geotag.Error{Kind: geotag.KindNoResults, Message: "No results found for the given query."},
			want:   http.StatusNotFound,
			detail: "No results found for the given query.",
		},
		{
			name:   "unavailable",
			err:    &geotag.Error{Kind: geotag.KindServiceUnavailable, Message: "Error connecting to geocoding service", Err: errors.New("dial tcp: refused")},
			want:   http.StatusServiceUnavailable,
			detail: "Error connecting to geocoding service: dial tcp: refused",
		},
		{
			name:   "unclassified",
			err:    errors.New("kaput"),
			want:   http.StatusInternalServerError,
			detail: "An unexpected error occurred: kaput",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHandler(&fakeResolver{err: tc.err})

			q := url.Values{}
			q.Set("q", "anything")
			rr := doGet(h, q, nil)

			if rr.Code != tc.want {
				t.Fatalf("status=%d want %d", rr.Code, tc.want)
			}
			var e model.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
				t.Fatalf("unmarshal error body: %v", err)
			}
			if e.Detail != tc.detail {
				t.Fatalf("detail=%q want %q", e.Detail, tc.detail)
			}
		})
	}
}
