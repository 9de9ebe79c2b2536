package persistence

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// allowedCollections guards the dynamically assembled INSERT: only the
// two import destinations are addressable.
var allowedCollections = map[string]struct{}{
	"tasks":         {},
	"routine_tasks": {},
}

var ErrUnknownCollection = fmt.Errorf("unknown collection")

// PgRecordSink inserts one record at a time into a destination table.
// Each call is an independent statement; the committer tolerates and
// counts per-record failures.
type PgRecordSink struct {
	db *pgxpool.Pool
}

func NewPgRecordSink(db *pgxpool.Pool) *PgRecordSink {
	return &PgRecordSink{db: db}
}

func (s *PgRecordSink) Insert(ctx context.Context, collection string, fields map[string]any) error {
	query, args, err := buildInsert(collection, fields)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "insert into %s", collection)
	}
	return nil
}

// buildInsert assembles the statement with sorted column order so the
// SQL for a given field set is stable.
func buildInsert(collection string, fields map[string]any) (string, []any, error) {
	if _, ok := allowedCollections[collection]; !ok {
		return "", nil, errors.Wrapf(ErrUnknownCollection, "%q", collection)
	}
	if len(fields) == 0 {
		return "", nil, errors.New("empty record")
	}

	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}
	slices.Sort(columns)
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[col]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		collection,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	return query, args, nil
}
