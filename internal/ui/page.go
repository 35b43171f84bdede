// Package ui serves the interactive query page and the map view.
package ui

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nikhilsingh/trackemdown/internal/core/observability"
	"github.com/nikhilsingh/trackemdown/internal/core/router"
)

// The page default is deliberately finer than the API default: the form is
// for pinpointing a single location.
const pageDefaultRes = 15

type pageRow struct {
	Address   string
	Latitude  string
	Longitude string
	Geotag    string
}

type pageView struct {
	Query      string
	Resolution int
	Rows       []pageRow
	Error      string
	MapURL     string
}

// HandlePage renders the query form and, when a query is present, the
// results table plus the embedded map. Failures become inline errors, not
// error statuses.
func HandlePage(logger *slog.Logger, res router.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status := http.StatusOK

		view := buildView(r, res)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, view); err != nil {
			logger.Error("render page", "err", err)
			status = http.StatusInternalServerError
		}
		observability.ObserveHTTP(r.Method, "/", status, time.Since(start).Seconds())
	}
}

func buildView(r *http.Request, res router.Resolver) pageView {
	view := pageView{Resolution: pageDefaultRes}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	view.Query = q
	if q == "" {
		return view
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("resolution")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 15 {
			view.Error = "Error: resolution must be an integer in 0..15"
			return view
		}
		view.Resolution = n
	}

	results, err := res.Resolve(r.Context(), q, view.Resolution)
	if err != nil {
		view.Error = "Error: " + router.Detail(err)
		return view
	}

	for _, gt := range results {
		view.Rows = append(view.Rows, pageRow{
			Address:   gt.Address,
			Latitude:  strconv.FormatFloat(gt.Latitude, 'f', 6, 64),
			Longitude: strconv.FormatFloat(gt.Longitude, 'f', 6, 64),
			Geotag:    gt.Geotag,
		})
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("resolution", strconv.Itoa(view.Resolution))
	view.MapURL = "/map?" + params.Encode()
	return view
}

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>TrackEmDown</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
  form { display: flex; flex-wrap: wrap; gap: 1rem; align-items: end; margin-bottom: 0.5rem; }
  label { display: flex; flex-direction: column; font-size: 0.85rem; gap: 0.25rem; }
  input[type=text] { width: 24rem; max-width: 80vw; }
  input, button { padding: 0.4rem 0.6rem; font-size: 1rem; }
  .legend { color: #666; font-size: 0.85rem; }
  .error { background: #fdecea; border: 1px solid #f5c6cb; color: #842029; padding: 0.75rem 1rem; border-radius: 4px; margin: 1rem 0; }
  table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
  th, td { border: 1px solid #ddd; padding: 0.5rem 0.75rem; text-align: left; }
  th { background: #f5f5f5; }
  iframe { width: 100%; height: 500px; border: 1px solid #ddd; border-radius: 4px; }
</style>
</head>
<body>
<h1>TrackEmDown</h1>
<form method="get" action="/">
  <label>Address or Coordinates
    <input type="text" name="q" value="{{.Query}}" placeholder="1600 Amphitheatre Parkway or 37.42,-122.08">
  </label>
  <label>H3 Resolution
    <input type="number" name="resolution" value="{{.Resolution}}" min="0" max="15">
  </label>
  <button type="submit">Generate Geotags</button>
</form>
<p class="legend">Resolution scale: 0 &asymp; continent, 5 &asymp; large city, 9 &asymp; neighborhood, 12 &asymp; building, 15 &asymp; room.</p>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
{{if .Rows}}
<table>
  <tr><th>Address</th><th>Latitude</th><th>Longitude</th><th>H3 Geotag</th></tr>
  {{range .Rows}}<tr><td>{{.Address}}</td><td>{{.Latitude}}</td><td>{{.Longitude}}</td><td><code>{{.Geotag}}</code></td></tr>
  {{end}}
</table>
<iframe src="{{.MapURL}}" title="Map View"></iframe>
{{end}}
</body>
</html>
`
