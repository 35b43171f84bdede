package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/nikhilsingh/trackemdown/internal/core/config"
	"github.com/nikhilsingh/trackemdown/internal/core/model"
	"github.com/nikhilsingh/trackemdown/internal/core/observability"
	"github.com/nikhilsingh/trackemdown/internal/geotag"
)

// Resolver turns a validated query into geotags.
type Resolver interface {
	Resolve(ctx context.Context, query string, resolution int) ([]model.GeoTag, error)
}

// HandleGeotag validates input query params, resolves, and writes the
// JSON envelope. Failures map onto the taxonomy statuses.
func HandleGeotag(logger *slog.Logger, cfg config.Config, res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		query, resolution, err := ParseGeotagRequest(r, cfg.H3ResDefault)
		if err != nil {
			writeDetail(sw, http.StatusBadRequest, err.Error())
			observability.ObserveHTTP(r.Method, "/geotag", sw.code, time.Since(start).Seconds())
			return
		}

		results, err := res.Resolve(r.Context(), query, resolution)
		if err != nil {
			status := StatusFor(err)
			if status >= http.StatusInternalServerError {
				logger.Error("resolution failed", "q", query, "err", err)
			}
			writeDetail(sw, status, Detail(err))
			observability.ObserveHTTP(r.Method, "/geotag", sw.code, time.Since(start).Seconds())
			return
		}

		body, err := json.Marshal(model.QueryResponse{
			Status:     "success",
			Query:      query,
			Resolution: resolution,
			Result:     results,
		})
		if err != nil {
			writeDetail(sw, http.StatusInternalServerError, Detail(err))
			observability.ObserveHTTP(r.Method, "/geotag", sw.code, time.Since(start).Seconds())
			return
		}

		// Content-derived tag; nothing is stored server side.
		etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
		sw.Header().Set("ETag", etag)
		if matchesETag(r.Header.Get("If-None-Match"), etag) {
			sw.WriteHeader(http.StatusNotModified)
			observability.ObserveHTTP(r.Method, "/geotag", sw.code, time.Since(start).Seconds())
			return
		}

		sw.Header().Set("Content-Type", "application/json")
		sw.WriteHeader(http.StatusOK)
		_, _ = sw.Write(body)
		observability.ObserveHTTP(r.Method, "/geotag", sw.code, time.Since(start).Seconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// ParseGeotagRequest validates q and resolution. The resolution range is
// enforced here; the resolver trusts its callers.
func ParseGeotagRequest(r *http.Request, defaultRes int) (string, int, error) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		return "", 0, errors.New("missing required parameter: q")
	}

	resolution := defaultRes
	if raw := strings.TrimSpace(r.URL.Query().Get("resolution")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", 0, fmt.Errorf("invalid resolution %q: must be an integer in 0..15", raw)
		}
		resolution = n
	}
	if resolution < 0 || resolution > 15 {
		return "", 0, fmt.Errorf("invalid resolution %d: must be in 0..15", resolution)
	}
	return q, resolution, nil
}

// StatusFor maps a resolution failure onto its HTTP status.
func StatusFor(err error) int {
	switch {
	case geotag.IsInvalidCoordinates(err):
		return http.StatusBadRequest
	case geotag.IsNoResults(err):
		return http.StatusNotFound
	case geotag.IsServiceUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Detail is the user-facing message for a resolution failure.
func Detail(err error) string {
	var resErr *geotag.Error
	if errors.As(err, &resErr) {
		return resErr.Error()
	}
	return fmt.Sprintf("An unexpected error occurred: %v", err)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Detail: detail})
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, v := range strings.Split(header, ",") {
		v = strings.TrimSpace(v)
		if v == etag || v == "*" {
			return true
		}
	}
	return false
}
