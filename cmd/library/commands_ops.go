package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/lendingstore/promadapters"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

const (
	timeLayout = time.RFC3339

	logMsgSweepFinished   = "overdue sweep finished"
	logMsgSweepFailed     = "overdue sweep failed"
	logMsgReportExported  = "fines report exported"
	logMsgReportFailed    = "fines report export failed"
	logMsgServing         = "serving metrics"
	logMsgServerFailed    = "metrics server failed"
	logAttrAffected       = "affected"
	logAttrLocation       = "location"
	logAttrAddr           = "addr"
	logAttrError          = "error"
	serverShutdownTimeout = 5 * time.Second
	serverReadTimeout     = 5 * time.Second
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables of the configured database",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(_ context.Context, _ shell.LendingStore, _ []string) error {
			return a.printer.value(map[string]string{"engine": a.cfg.DB.Engine, "schema": "ready"}, func(t *table) {
				t.withTitle("Schema ready").withHeaders("ENGINE")
				t.addRow(a.cfg.DB.Engine)
			})
		}),
	}
}

type journalOutput struct {
	Sequence   int64               `json:"sequence"`
	EventType  string              `json:"eventType"`
	OccurredAt time.Time           `json:"occurredAt"`
	Payload    jsoniter.RawMessage `json:"payload"`
	Metadata   jsoniter.RawMessage `json:"metadata"`
}

func newJournalCommand(a *app) *cobra.Command {
	var limit uint

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the most recent lending journal entries, oldest first",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			entries, err := store.ReadJournal(ctx, limit)
			if err != nil {
				return err
			}

			out := make([]journalOutput, 0, len(entries))
			for _, e := range entries {
				out = append(out, journalOutput{
					Sequence:   e.SequenceNumber,
					EventType:  e.EventType,
					OccurredAt: e.OccurredAt,
					Payload:    e.PayloadJSON,
					Metadata:   e.MetadataJSON,
				})
			}

			return a.printer.value(out, func(t *table) {
				t.withTitle("Lending journal").withHeaders("SEQ", "OCCURRED", "EVENT", "PAYLOAD")
				for _, e := range out {
					t.addRow(strconv.FormatInt(e.Sequence, 10), e.OccurredAt.Format(timeLayout), e.EventType, string(e.Payload))
				}
			})
		}),
	}

	cmd.Flags().UintVar(&limit, "limit", 20, "number of entries")

	return cmd
}

func newServeCommand(a *app) *cobra.Command {
	var interval time.Duration
	var metricsAddr string
	var exportReports bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the overdue sweep periodically and expose Prometheus metrics",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a.prom = promadapters.NewMetricsCollector()
			if err := a.open(ctx); err != nil {
				return err
			}

			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.Sweep.Interval
			}
			if !cmd.Flags().Changed("metrics-addr") {
				metricsAddr = a.cfg.Observability.MetricsAddr
			}

			s := &sweeper{app: a, store: a.store, interval: interval, exportReports: exportReports}

			return serve(ctx, a, metricsAddr, s)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Hour, "time between overdue sweeps")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "listen address of /metrics")
	cmd.Flags().BoolVar(&exportReports, "export-reports", false, "export the fines report after every sweep")

	return cmd
}

func serve(ctx context.Context, a *app, addr string, s *sweeper) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.prom.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: serverReadTimeout}

	errChan := make(chan error, 1)
	go func() {
		a.logger.InfoContext(ctx, logMsgServing, logAttrAddr, addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		s.run(ctx)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errChan:
		a.logger.ErrorContext(ctx, logMsgServerFailed, logAttrError, serveErr.Error())
	}

	stop()
	<-sweepDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)

	return errors.Join(serveErr, shutdownErr)
}

// sweeper marks loans overdue on every tick and optionally exports the fines report.
type sweeper struct {
	app           *app
	store         shell.LendingStore
	interval      time.Duration
	exportReports bool
}

func (s *sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *sweeper) tick(ctx context.Context) {
	logger := s.app.logger

	now, err := s.app.now()
	if err != nil {
		logger.ErrorContext(ctx, logMsgSweepFailed, logAttrError, err.Error())
		return
	}

	result, err := runSweep(ctx, s.app, s.store, now)
	if err != nil {
		if !shell.IsCancellationError(err) {
			logger.ErrorContext(ctx, logMsgSweepFailed, logAttrError, err.Error())
		}
		return
	}
	logger.InfoContext(ctx, logMsgSweepFinished, logAttrAffected, result.Affected)

	if !s.exportReports {
		return
	}

	exporter, err := s.app.reportExporter(ctx, s.store)
	if err != nil {
		logger.ErrorContext(ctx, logMsgReportFailed, logAttrError, err.Error())
		return
	}

	info, _, err := exporter.Export(ctx, now)
	if err != nil {
		logger.ErrorContext(ctx, logMsgReportFailed, logAttrError, err.Error())
		return
	}
	logger.InfoContext(ctx, logMsgReportExported, logAttrLocation, info.Location)
}
