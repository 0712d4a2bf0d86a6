package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/assessfine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/createmanualfine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/settlefine"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/outstandingfines"
	"github.com/AntonStoeckl/library-lending-go/library/features/report/finesreport"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

func newFineCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "fine", Short: "Assess, enter and settle fines"}
	cmd.AddCommand(
		newFineAssessCommand(a),
		newFineManualCommand(a),
		newFineSettleCommand(a),
		newFineOutstandingCommand(a),
	)

	return cmd
}

func newFineAssessCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assess <loan-id>",
		Short: "Assess the fine of a closed loan that has none yet",
		Args:  exactArgs(1),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, args []string) error {
			loanID, err := parseID("loan", args[0], false)
			if err != nil {
				return err
			}

			now, err := a.now()
			if err != nil {
				return err
			}

			handler, err := observeCommand[assessfine.Command](a, assessfine.NewCommandHandler(store))
			if err != nil {
				return err
			}

			fineID := uuid.Must(uuid.NewV7())
			result, err := handler.Handle(ctx, assessfine.BuildCommand(fineID, loanID, now))
			if err != nil {
				return err
			}

			id := fineID.String()
			if result.Idempotent {
				id = ""
			}

			return a.printer.result(assessfine.CommandType, id, result)
		}),
	}
}

func newFineManualCommand(a *app) *cobra.Command {
	var amount, motive, notes string

	cmd := &cobra.Command{
		Use:   "manual <loan-id>",
		Short: "Enter a fine by hand for a closed loan without a fine",
		Args:  exactArgs(1),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, args []string) error {
			loanID, err := parseID("loan", args[0], false)
			if err != nil {
				return err
			}

			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("%w: --amount %q is not a decimal", core.ErrValidation, amount)
			}

			now, err := a.now()
			if err != nil {
				return err
			}

			handler, err := observeCommand[createmanualfine.Command](a, createmanualfine.NewCommandHandler(store))
			if err != nil {
				return err
			}

			fineID := uuid.Must(uuid.NewV7())
			result, err := handler.Handle(ctx, createmanualfine.BuildCommand(fineID, loanID, value, motive, notes, now))
			if err != nil {
				return err
			}

			return a.printer.result(createmanualfine.CommandType, fineID.String(), result)
		}),
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 12.50")
	cmd.Flags().StringVar(&motive, "motive", "", "why the fine is charged")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")

	return cmd
}

func newFineSettleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "settle <fine-id>",
		Short: "Mark a fine as paid",
		Args:  exactArgs(1),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, args []string) error {
			fineID, err := parseID("fine", args[0], false)
			if err != nil {
				return err
			}

			now, err := a.now()
			if err != nil {
				return err
			}

			handler, err := observeCommand[settlefine.Command](a, settlefine.NewCommandHandler(store))
			if err != nil {
				return err
			}

			result, err := handler.Handle(ctx, settlefine.BuildCommand(fineID, now))
			if err != nil {
				return err
			}

			return a.printer.result(settlefine.CommandType, fineID.String(), result)
		}),
	}
}

func newFineOutstandingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "outstanding",
		Short: "List all unsettled fines",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			handler, err := outstandingFinesHandler(a, store)
			if err != nil {
				return err
			}

			fines, err := handler.Handle(ctx, outstandingfines.BuildQuery())
			if err != nil {
				return err
			}

			return a.printer.value(fines, func(t *table) {
				t.withTitle("Outstanding fines").withHeaders("FINE", "LOAN", "AMOUNT", "ISSUED", "REASON")
				for _, f := range fines.Fines {
					t.addRow(f.FineID, f.LoanID, f.Amount.StringFixed(2), core.FormatDate(f.IssuedOn), f.Reason)
				}
				t.addFooter("%d fine(s), %s in total", fines.Count, fines.Total.StringFixed(2))
			})
		}),
	}
}

func outstandingFinesHandler(a *app, store shell.LendingStore) (finesreport.FinesQuery, error) {
	return observeQuery[outstandingfines.Query, outstandingfines.OutstandingFines](a, outstandingfines.NewQueryHandler(store))
}

func newReportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "report", Short: "Export and read the outstanding fines report"}
	cmd.AddCommand(newReportExportCommand(a), newReportListCommand(a), newReportShowCommand(a))

	return cmd
}

func (a *app) reportExporter(ctx context.Context, store shell.LendingStore) (finesreport.Exporter, error) {
	fines, err := outstandingFinesHandler(a, store)
	if err != nil {
		return finesreport.Exporter{}, err
	}

	blobs, err := a.openBlobStore(ctx)
	if err != nil {
		return finesreport.Exporter{}, err
	}

	return finesreport.NewExporter(fines, blobs, finesreport.WithPrefix(a.cfg.Blob.Prefix))
}

func newReportExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write today's outstanding fines report to the blob store",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			exporter, err := a.reportExporter(ctx, store)
			if err != nil {
				return err
			}

			now, err := a.now()
			if err != nil {
				return err
			}

			info, report, err := exporter.Export(ctx, now)
			if err != nil {
				return err
			}

			return a.printer.value(info, func(t *table) {
				t.withTitle("Report exported").withHeaders("LOCATION", "SIZE", "FINES", "TOTAL")
				t.addRow(info.Location, strconv.FormatInt(info.Size, 10), strconv.Itoa(report.Count), report.Total.StringFixed(2))
			})
		}),
	}
}

func newReportListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the exported reports",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			exporter, err := a.reportExporter(ctx, store)
			if err != nil {
				return err
			}

			infos, err := exporter.List(ctx)
			if err != nil {
				return err
			}

			return a.printer.value(infos, func(t *table) {
				t.withTitle("Reports").withHeaders("KEY", "SIZE", "MODIFIED")
				for _, info := range infos {
					t.addRow(info.Key, strconv.FormatInt(info.Size, 10), info.LastModified.Format(timeLayout))
				}
			})
		}),
	}
}

func newReportShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <YYYY-MM-DD>",
		Short: "Print the report exported on a day",
		Args:  exactArgs(1),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, args []string) error {
			day, err := core.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q is not a date", core.ErrValidation, args[0])
			}

			exporter, err := a.reportExporter(ctx, store)
			if err != nil {
				return err
			}

			report, err := exporter.Read(ctx, day)
			if err != nil {
				return err
			}

			return a.printer.value(report, func(t *table) {
				t.withTitle("Outstanding fines on "+report.ReportDate).withHeaders("FINE", "LOAN", "AMOUNT", "REASON")
				for _, f := range report.Fines {
					t.addRow(f.FineID, f.LoanID, f.Amount.StringFixed(2), f.Reason)
				}
				t.addFooter("%d fine(s), %s in total", report.Count, report.Total.StringFixed(2))
			})
		}),
	}
}
