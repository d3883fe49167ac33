package settings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// reasons a read fell back to the default document.
const (
	reasonMissing  = "missing"
	reasonNoMedium = "no_medium"
	reasonRead     = "read_error"
	reasonDecode   = "decode_error"
)

var (
	readsRecovered = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "settings_read_recovered_total",
			Help: "Number of settings reads answered with the default document, by reason.",
		},
		[]string{"reason"},
	)

	saveFailures = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "settings_save_failures_total",
			Help: "Number of settings saves that could not be persisted.",
		},
	)
)
