package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"labelit/internal/core/annotate"
	perr "labelit/internal/platform/errors"
	"labelit/internal/services/api/labeling/domain"
	"labelit/internal/services/api/labeling/repo"
)

const (
	// CSVName is the tabular export, header fingerprint,content,target
	CSVName = "labelled_tag.csv"
	// DBName is the database file export
	DBName = "labelled_tag.db"

	downloadType = "application/octet-stream"
)

var csvHeader = []string{"fingerprint", "content", "target"}

// Artifacts holds the rendered exports of a completed session
type Artifacts struct {
	CSV  []byte
	DB   []byte
	Rows int
}

// Get returns the named artifact
func (a *Artifacts) Get(name string) (domain.Artifact, bool) {
	switch name {
	case CSVName:
		return domain.Artifact{Name: CSVName, ContentType: downloadType, Data: a.CSV}, true
	case DBName:
		return domain.Artifact{Name: DBName, ContentType: downloadType, Data: a.DB}, true
	default:
		return domain.Artifact{}, false
	}
}

// Names lists the artifact names in download order
func (a *Artifacts) Names() []string { return []string{CSVName, DBName} }

// Exporter renders the whole store as a csv table and a database copy
type Exporter struct {
	repo   repo.Repo
	tmpDir string
}

// NewExporter builds an exporter, tmpDir "" uses the os temp dir
func NewExporter(r repo.Repo, tmpDir string) *Exporter {
	if r == nil {
		panic("labeling.Exporter requires a non nil Repo")
	}
	return &Exporter{repo: r, tmpDir: tmpDir}
}

// Export reads every stored row, not only this session's submissions
func (e *Exporter) Export(ctx context.Context) (Artifacts, error) {
	rows, err := e.repo.ExportAll(ctx)
	if err != nil {
		return Artifacts{}, err
	}
	table, err := EncodeCSV(rows)
	if err != nil {
		return Artifacts{}, err
	}

	dir, err := os.MkdirTemp(e.tmpDir, "labelit-export-")
	if err != nil {
		return Artifacts{}, perr.Wrap(err, perr.ErrorCodeIO, "labeling: export temp dir")
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, DBName)
	if err := e.repo.Snapshot(ctx, path); err != nil {
		return Artifacts{}, err
	}
	db, err := os.ReadFile(path)
	if err != nil {
		return Artifacts{}, perr.Wrapf(err, perr.ErrorCodeIO, "labeling: read %s", path)
	}
	return Artifacts{CSV: table, DB: db, Rows: len(rows)}, nil
}

// EncodeCSV renders rows under the fingerprint,content,target header
// fields holding separators, quotes or line breaks are quoted
func EncodeCSV(rows []annotate.Annotation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeIO, "labeling: csv header")
	}
	for _, a := range rows {
		if err := w.Write([]string{a.Fingerprint, a.Content, a.Target}); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeIO, "labeling: csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeIO, "labeling: csv flush")
	}
	return buf.Bytes(), nil
}
