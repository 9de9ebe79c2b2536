package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
	"github.com/taskdock/importer/modules/tasks/importing"
	"github.com/taskdock/importer/pkg/metrics"
)

// ReferenceProvider supplies the read-only lookup snapshot one import
// invocation resolves rows against.
type ReferenceProvider interface {
	Snapshot(ctx context.Context) (*importentry.ReferenceSet, error)
}

// ImportRowError is the JSON-facing shape of one rejected row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult reports one full invocation: every bad row (not just the
// first), and the commit tally when the batch passed the gate.
type ImportResult struct {
	Kind      importentry.Kind `json:"kind"`
	TotalRows int              `json:"totalRows"`
	ValidRows int              `json:"validRows"`
	Errors    []ImportRowError `json:"errors,omitempty"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Committed bool             `json:"committed"`
}

// ImportService runs the pipeline: parse, validate every row, and only
// when the whole batch is clean, commit record by record.
type ImportService struct {
	refs ReferenceProvider
	sink importing.RecordSink
	log  *logrus.Logger
}

func NewImportService(refs ReferenceProvider, sink importing.RecordSink, log *logrus.Logger) *ImportService {
	return &ImportService{refs: refs, sink: sink, log: log}
}

// Import processes one uploaded workbook. Structural problems (missing
// sheet, unreadable file, reference snapshot failure) return an error;
// row-level problems are reported in the result with zero commits.
func (s *ImportService) Import(ctx context.Context, kind importentry.Kind, data []byte) (*ImportResult, error) {
	batchID := uuid.NewString()
	log := s.log.WithFields(logrus.Fields{"batch": batchID, "kind": kind})

	refs, err := s.refs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	reader, err := importing.NewRowReader(data, kind)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	validator := importing.NewValidator(kind, refs)
	result := &ImportResult{Kind: kind}
	var records []*importentry.ValidatedRecord

	for reader.Next() {
		result.TotalRows++
		rec, rowErr := validator.Validate(reader.Row())
		if rowErr != nil {
			metrics.RowsRejected.WithLabelValues(string(kind)).Inc()
			result.Errors = append(result.Errors, ImportRowError{
				Row:     rowErr.Row,
				Code:    rowErr.Code(),
				Message: rowErr.Message(),
			})
			continue
		}
		metrics.RowsValidated.WithLabelValues(string(kind)).Inc()
		records = append(records, rec)
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	result.ValidRows = len(records)

	// All-rows-valid-or-nothing: any row error rejects the whole batch
	// before a single insert.
	if len(result.Errors) > 0 {
		metrics.ImportsRejected.WithLabelValues(string(kind)).Inc()
		log.WithFields(logrus.Fields{
			"rows":   result.TotalRows,
			"errors": len(result.Errors),
		}).Warn("import rejected at validation gate")
		return result, nil
	}

	committer := importing.NewCommitter(s.sink, s.log)
	tally := committer.Commit(ctx, kind, records)
	result.Succeeded = tally.Succeeded
	result.Failed = tally.Failed
	result.Committed = true

	log.WithFields(logrus.Fields{
		"rows":      result.TotalRows,
		"succeeded": tally.Succeeded,
		"failed":    tally.Failed,
	}).Info("import committed")
	return result, nil
}
