package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
	"github.com/taskdock/importer/modules/tasks/services"
	"github.com/taskdock/importer/pkg/excel"
	"github.com/taskdock/importer/pkg/server"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportController exposes the pipeline over HTTP: template download
// and workbook upload. It only moves bytes and renders results; every
// rule lives in the services it calls.
type ImportController struct {
	templates     *services.TemplateService
	imports       *services.ImportService
	refs          services.ReferenceProvider
	log           *logrus.Logger
	maxUploadSize int64
}

func NewImportController(
	templates *services.TemplateService,
	imports *services.ImportService,
	refs services.ReferenceProvider,
	log *logrus.Logger,
	maxUploadSize int64,
) server.Controller {
	return &ImportController{
		templates:     templates,
		imports:       imports,
		refs:          refs,
		log:           log,
		maxUploadSize: maxUploadSize,
	}
}

func (c *ImportController) Key() string {
	return "/tasks/import"
}

func (c *ImportController) Register(r *mux.Router) {
	r.HandleFunc("/tasks/import/template", c.DownloadTemplate).Methods(http.MethodGet)
	r.HandleFunc("/tasks/import", c.Upload).Methods(http.MethodPost)
}

func (c *ImportController) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	kind, err := importentry.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	refs, err := c.refs.Snapshot(r.Context())
	if err != nil {
		c.log.WithError(err).Error("loading reference snapshot failed")
		http.Error(w, "failed to load reference data", http.StatusInternalServerError)
		return
	}

	data, err := c.templates.Generate(r.Context(), kind, refs)
	if err != nil {
		c.log.WithError(err).Error("template generation failed")
		http.Error(w, "failed to generate template", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_import_%s.xlsx", kind, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

func (c *ImportController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(c.maxUploadSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	kind, err := importentry.ParseKind(r.FormValue("kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, c.maxUploadSize))
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	result, err := c.imports.Import(r.Context(), kind, data)
	if err != nil {
		if errors.Is(err, excel.ErrSheetNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c.log.WithError(err).Error("import failed")
		http.Error(w, "import failed", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if !result.Committed {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		c.log.WithError(err).Error("encoding import result failed")
	}
}
