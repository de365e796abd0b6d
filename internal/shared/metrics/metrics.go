package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DerivationsTotal counts board views derived, by the operation that triggered them.
	DerivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesaya_board_derivations_total",
			Help: "Total number of board views derived",
		},
		[]string{"operation"},
	)
	// SkippedRecordsTotal counts malformed reservations left out of loaded collections.
	SkippedRecordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mesaya_board_skipped_records_total",
			Help: "Total number of malformed reservation records skipped on load",
		},
	)
	// SourceLoadsTotal counts reservation source fetches by result.
	SourceLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesaya_board_source_loads_total",
			Help: "Total number of reservation source fetches",
		},
		[]string{"result"},
	)
	// OpenBoards is the number of board sessions currently held in memory.
	OpenBoards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mesaya_board_open_boards",
			Help: "Number of open board sessions",
		},
	)
)
