package importing

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
)

type stubSink struct {
	inserts []map[string]any
	failOn  int // 1-based call number to fail, 0 for never
	calls   int
}

func (s *stubSink) Insert(ctx context.Context, collection string, fields map[string]any) error {
	s.calls++
	if s.failOn != 0 && s.calls == s.failOn {
		return errors.New("store unavailable")
	}
	s.inserts = append(s.inserts, fields)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func commitRecords(n int) []*importentry.ValidatedRecord {
	records := make([]*importentry.ValidatedRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, &importentry.ValidatedRecord{
			Row:     i + 2,
			Content: "task",
			ListID:  3,
			UserID:  "u1",
		})
	}
	return records
}

func TestCommit_PartialFailure(t *testing.T) {
	t.Parallel()

	sink := &stubSink{failOn: 3}
	committer := NewCommitter(sink, quietLogger())

	result := committer.Commit(context.Background(), importentry.KindTasks, commitRecords(5))
	require.Equal(t, 4, result.Succeeded)
	require.Equal(t, 1, result.Failed)
	// Records 1,2,4,5 persisted; the batch ran to completion.
	require.Len(t, sink.inserts, 4)
	require.Equal(t, 5, sink.calls)
}

func TestCommit_StripsRowIndex(t *testing.T) {
	t.Parallel()

	sink := &stubSink{}
	committer := NewCommitter(sink, quietLogger())

	committer.Commit(context.Background(), importentry.KindTasks, commitRecords(1))
	require.Len(t, sink.inserts, 1)
	for key := range sink.inserts[0] {
		require.NotContains(t, []string{"row", "_rowIndex"}, key)
	}
}

func TestCommit_RoutineCollection(t *testing.T) {
	t.Parallel()

	var gotCollection string
	sink := &collectionSink{collection: &gotCollection}
	committer := NewCommitter(sink, quietLogger())

	committer.Commit(context.Background(), importentry.KindRoutines, []*importentry.ValidatedRecord{
		{
			Row:                2,
			Content:            "Water plants",
			ListID:             3,
			UserID:             "u1",
			RecurrenceType:     importentry.RecurrenceDaily,
			RecurrenceInterval: 1,
			StartDate:          "2024-01-01",
			Persistent:         true,
		},
	})
	require.Equal(t, "routine_tasks", gotCollection)
}

type collectionSink struct {
	collection *string
}

func (s *collectionSink) Insert(ctx context.Context, collection string, fields map[string]any) error {
	*s.collection = collection
	return nil
}
