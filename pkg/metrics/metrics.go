package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Import pipeline counters, labelled by record kind.
var (
	RowsValidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "importer_rows_validated_total",
		Help: "Rows that passed validation.",
	}, []string{"kind"})

	RowsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "importer_rows_rejected_total",
		Help: "Rows rejected by validation.",
	}, []string{"kind"})

	RowsCommitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "importer_rows_committed_total",
		Help: "Validated records inserted into the backing store.",
	}, []string{"kind"})

	RowsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "importer_rows_failed_total",
		Help: "Validated records the backing store rejected.",
	}, []string{"kind"})

	ImportsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "importer_batches_rejected_total",
		Help: "Import invocations rejected at the validation gate.",
	}, []string{"kind"})
)
