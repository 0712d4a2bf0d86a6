package finesreport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/library/features/query/outstandingfines"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/blob"
)

const (
	// DefaultPrefix is used when no key prefix is configured.
	DefaultPrefix = "reports/"

	contentType = "application/json"
	keyPattern  = "%soutstanding-fines-%s.json"
)

var (
	// ErrNilBlobStore is returned when the exporter is created without a blob store.
	ErrNilBlobStore = errors.New("blob store must not be nil")

	// ErrNilQueryHandler is returned when the exporter is created without a query handler.
	ErrNilQueryHandler = errors.New("outstanding fines query handler must not be nil")

	// ErrExportFailed wraps failures of reading the fines or writing the report.
	ErrExportFailed = errors.New("fines report export failed")
)

// FinesQuery is the query handler the report reads from, optionally wrapped for observability.
type FinesQuery = shell.CoreQueryHandler[outstandingfines.Query, outstandingfines.OutstandingFines]

// Report is the document written to the blob store.
type Report struct {
	ReportDate  core.DateString             `json:"reportDate"`
	GeneratedAt time.Time                   `json:"generatedAt"`
	Count       int                         `json:"count"`
	Total       decimal.Decimal             `json:"total"`
	Fines       []outstandingfines.FineInfo `json:"fines"`
}

// Exporter builds and uploads the report.
type Exporter struct {
	fines  FinesQuery
	store  blob.Store
	prefix string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPrefix sets the key prefix, e.g. "reports/". An empty prefix keeps the default.
func WithPrefix(prefix string) Option {
	return func(e *Exporter) {
		if prefix != "" {
			e.prefix = prefix
		}
	}
}

// NewExporter creates an Exporter.
func NewExporter(fines FinesQuery, store blob.Store, opts ...Option) (Exporter, error) {
	if fines == nil {
		return Exporter{}, ErrNilQueryHandler
	}

	if store == nil {
		return Exporter{}, ErrNilBlobStore
	}

	exporter := Exporter{fines: fines, store: store, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&exporter)
	}

	return exporter, nil
}

// Key returns the object key of the report for the date of asOf.
func Key(prefix string, asOf time.Time) string {
	return fmt.Sprintf(keyPattern, prefix, core.FormatDate(asOf))
}

// Export writes the report for the date of now and returns where it was stored.
func (e Exporter) Export(ctx context.Context, now time.Time) (blob.Info, Report, error) {
	fines, err := e.fines.Handle(ctx, outstandingfines.BuildQuery())
	if err != nil {
		return blob.Info{}, Report{}, errors.Join(ErrExportFailed, err)
	}

	report := Report{
		ReportDate:  core.FormatDate(now),
		GeneratedAt: now.UTC(),
		Count:       fines.Count,
		Total:       fines.Total,
		Fines:       fines.Fines,
	}

	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
	if err != nil {
		return blob.Info{}, Report{}, errors.Join(ErrExportFailed, err)
	}

	info, err := e.store.Put(ctx, Key(e.prefix, now), body, contentType)
	if err != nil {
		return blob.Info{}, Report{}, errors.Join(ErrExportFailed, err)
	}

	return info, report, nil
}

// List returns the stored reports.
func (e Exporter) List(ctx context.Context) ([]blob.Info, error) {
	infos, err := e.store.List(ctx, e.prefix)
	if err != nil {
		return nil, err
	}

	reports := make([]blob.Info, 0, len(infos))
	for _, info := range infos {
		if strings.HasPrefix(strings.TrimPrefix(info.Key, e.prefix), "outstanding-fines-") {
			reports = append(reports, info)
		}
	}

	return reports, nil
}

// Read loads and decodes the report stored for the date of day.
func (e Exporter) Read(ctx context.Context, day time.Time) (Report, error) {
	_, body, err := e.store.Get(ctx, Key(e.prefix, day))
	if err != nil {
		return Report{}, err
	}

	var report Report
	if err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &report); err != nil {
		return Report{}, err
	}

	return report, nil
}
