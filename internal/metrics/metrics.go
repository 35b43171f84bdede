// Package metrics exposes the dedicated Prometheus listener for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type BuildInfo struct {
	Version   string
	Revision  string
	Branch    string
	BuildDate string
}

type Provider struct {
	reg *prometheus.Registry
}

func Init(build BuildInfo) *Provider {
	reg := prometheus.NewRegistry()

	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_details",
			Help: "Build details for this binary (value is always 1).",
		},
		[]string{"version", "revision", "branch", "build_date"},
	)
	reg.MustRegister(gauge)
	if build.Version == "" {
		build.Version = "dev"
	}
	gauge.WithLabelValues(build.Version, build.Revision, build.Branch, build.BuildDate).Set(1)

	return &Provider{reg: reg}
}

// Handler merges this provider's registry with the default one, so the
// dedicated listener carries the service metrics plus the runtime and process
// collectors the default registry already holds. The provider registry itself
// stays collector-free to keep the merged families unique.
func (p *Provider) Handler() http.Handler {
	g := prometheus.Gatherers{p.reg, prometheus.DefaultGatherer}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
