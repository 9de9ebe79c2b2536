package importing

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
	"github.com/taskdock/importer/pkg/metrics"
)

// RecordSink is the backing store boundary: one insert per record, a
// mapping of field names to values, success or error back.
type RecordSink interface {
	Insert(ctx context.Context, collection string, fields map[string]any) error
}

type CommitResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Committer submits validated records to the sink one by one. Inserts
// are sequential, so the tally needs no synchronization, and a failing
// insert never aborts the batch: this stage is best-effort per record,
// unlike the all-or-nothing validation gate before it.
type Committer struct {
	sink RecordSink
	log  *logrus.Logger
}

func NewCommitter(sink RecordSink, log *logrus.Logger) *Committer {
	return &Committer{sink: sink, log: log}
}

func (c *Committer) Commit(ctx context.Context, kind importentry.Kind, records []*importentry.ValidatedRecord) CommitResult {
	collection := kind.Collection()
	var result CommitResult
	for _, rec := range records {
		if err := c.sink.Insert(ctx, collection, rec.Fields(kind)); err != nil {
			result.Failed++
			metrics.RowsFailed.WithLabelValues(string(kind)).Inc()
			c.log.WithError(err).WithFields(logrus.Fields{
				"collection": collection,
				"row":        rec.Row,
			}).Error("record insert failed")
			continue
		}
		result.Succeeded++
		metrics.RowsCommitted.WithLabelValues(string(kind)).Inc()
	}
	return result
}
