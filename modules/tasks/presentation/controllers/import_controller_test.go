package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
	"github.com/taskdock/importer/modules/tasks/services"
	"github.com/taskdock/importer/pkg/excel"
)

type stubProvider struct {
	refs *importentry.ReferenceSet
}

func (s *stubProvider) Snapshot(ctx context.Context) (*importentry.ReferenceSet, error) {
	return s.refs, nil
}

type memorySink struct {
	inserts int
}

func (s *memorySink) Insert(ctx context.Context, collection string, fields map[string]any) error {
	s.inserts++
	return nil
}

func controllerRefs() *importentry.ReferenceSet {
	return &importentry.ReferenceSet{
		Lists:    map[int]importentry.ListRef{3: {Name: "Groceries", ProjectID: 1}},
		Projects: map[int]string{1: "Home"},
		Users:    map[string]string{"u1": "Jane"},
		Membership: map[int]map[string]struct{}{
			3: {"u1": {}},
		},
	}
}

func newTestRouter(t *testing.T, sink *memorySink) *mux.Router {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	provider := &stubProvider{refs: controllerRefs()}
	controller := NewImportController(
		services.NewTemplateService(),
		services.NewImportService(provider, sink, log),
		provider,
		log,
		32<<20,
	)

	r := mux.NewRouter()
	controller.Register(r)
	return r
}

func uploadRequest(t *testing.T, kind string, workbook []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("kind", kind))
	part, err := form.CreateFormFile("file", "upload.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/tasks/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func taskWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	exporter := excel.NewExporter(excel.DefaultExportOptions(), excel.DefaultStyleOptions())
	data, err := exporter.Export(
		context.Background(),
		excel.NewSliceDataSource("Tasks", importentry.KindTasks.Headers(), rows),
	)
	require.NoError(t, err)
	return data
}

func TestDownloadTemplate(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &memorySink{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks/import/template?kind=tasks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "tasks_import_")

	wb, err := excel.OpenBuffer(rec.Body.Bytes())
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	_, err = wb.Sheet("Tasks")
	require.NoError(t, err)
}

func TestDownloadTemplate_BadKind(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &memorySink{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks/import/template?kind=notes", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_CommitsValidBatch(t *testing.T) {
	t.Parallel()

	sink := &memorySink{}
	router := newTestRouter(t, sink)

	workbook := taskWorkbook(t, [][]any{
		{"Buy milk", "Groceries", "Jane", "2024-12-31", "true", ""},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "tasks", workbook))

	require.Equal(t, http.StatusOK, rec.Code)
	var result services.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Committed)
	require.Equal(t, 1, result.Succeeded)
	require.Equal(t, 1, sink.inserts)
}

func TestUpload_RejectedBatchIs422(t *testing.T) {
	t.Parallel()

	sink := &memorySink{}
	router := newTestRouter(t, sink)

	workbook := taskWorkbook(t, [][]any{
		{"", "Groceries", "Jane", "", "", ""},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "tasks", workbook))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var result services.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.False(t, result.Committed)
	require.Len(t, result.Errors, 1)
	require.Zero(t, sink.inserts)
}

func TestUpload_MissingSheetIs400(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &memorySink{})

	// A tasks upload whose workbook only has a Routines sheet.
	exporter := excel.NewExporter(excel.DefaultExportOptions(), excel.DefaultStyleOptions())
	workbook, err := exporter.Export(
		context.Background(),
		excel.NewSliceDataSource("Routines", importentry.KindRoutines.Headers(), nil),
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "tasks", workbook))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
