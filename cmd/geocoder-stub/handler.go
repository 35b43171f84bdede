package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type candidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type place struct {
	key        string
	candidates []candidate
}

// built-in gazetteer; keys match queries in either substring direction
var gazetteer = []place{
	{
		key: "eiffel tower",
		candidates: []candidate{
			{Lat: "48.8582599", Lon: "2.2945006", DisplayName: "Tour Eiffel, Avenue Gustave Eiffel, Quartier du Gros-Caillou, Paris 7e Arrondissement, Paris, Ile-de-France, Metropolitan France, 75007, France"},
		},
	},
	{
		key: "googleplex",
		candidates: []candidate{
			{Lat: "37.4224082", Lon: "-122.0856086", DisplayName: "Googleplex, 1600, Amphitheatre Parkway, Mountain View, Santa Clara County, California, 94043, United States"},
		},
	},
	{
		key: "statue of liberty",
		candidates: []candidate{
			{Lat: "40.6892494", Lon: "-74.0445004", DisplayName: "Statue of Liberty, Flagpole Plaza, Liberty Island, Manhattan, New York County, City of New York, New York, United States"},
		},
	},
	{
		key: "berlin",
		candidates: []candidate{
			{Lat: "52.5170365", Lon: "13.3888599", DisplayName: "Berlin, Germany"},
			{Lat: "44.4688795", Lon: "-71.1836654", DisplayName: "Berlin, Coos County, New Hampshire, United States"},
			{Lat: "39.7910437", Lon: "-74.9290881", DisplayName: "Berlin, Camden County, New Jersey, United States"},
		},
	},
	{
		key: "springfield",
		candidates: []candidate{
			{Lat: "39.7990175", Lon: "-89.6439575", DisplayName: "Springfield, Sangamon County, Illinois, United States"},
			{Lat: "42.1018764", Lon: "-72.5886727", DisplayName: "Springfield, Hampden County, Massachusetts, United States"},
			{Lat: "37.2089572", Lon: "-93.2922989", DisplayName: "Springfield, Greene County, Missouri, United States"},
		},
	},
}

// answers like the Nominatim search endpoint: a JSON array of candidates,
// empty when nothing in the gazetteer matches
func searchHandler(logger *slog.Logger, malformedEvery int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
		if q == "" {
			http.Error(w, "missing required parameter: q", http.StatusBadRequest)
			return
		}

		results := make([]candidate, 0, 4)
		for _, p := range gazetteer {
			if strings.Contains(q, p.key) || strings.Contains(p.key, q) {
				results = append(results, p.candidates...)
			}
		}

		if malformedEvery > 0 {
			for i := range results {
				if (i+1)%malformedEvery == 0 {
					results[i].Lat = "not-a-number"
				}
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			logger.Error("encode search response", "err", err)
		}

		logger.Info("search",
			"q", q,
			"results", len(results),
			"duration_ms", time.Since(start).Milliseconds())
	})
}
