package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/assessfine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/closeloan"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/createloan"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/markalloverdue"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/loansbystatus"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

func newLoanCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "loan", Short: "Lend and return books"}
	cmd.AddCommand(
		newLoanCreateCommand(a),
		newLoanCloseCommand(a),
		newLoanListCommand(a),
		newLoanOverdueCommand(a),
	)

	return cmd
}

func newLoanCreateCommand(a *app) *cobra.Command {
	var id, bookID, memberID, start, due string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Lend an available book to a member",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			loanID, err := parseID("loan", id, true)
			if err != nil {
				return err
			}

			book, err := parseID("book", bookID, false)
			if err != nil {
				return err
			}

			member, err := parseID("member", memberID, false)
			if err != nil {
				return err
			}

			startDate, err := parseOptionalDate("start", start)
			if err != nil {
				return err
			}

			dueDate, err := parseOptionalDate("due", due)
			if err != nil {
				return err
			}

			now, err := a.now()
			if err != nil {
				return err
			}

			handler, err := observeCommand[createloan.Command](a, createloan.NewCommandHandler(store))
			if err != nil {
				return err
			}

			result, err := handler.Handle(ctx, createloan.BuildCommand(loanID, book, member, startDate, dueDate, now))
			if err != nil {
				return err
			}

			return a.printer.result(createloan.CommandType, loanID.String(), result)
		}),
	}

	cmd.Flags().StringVar(&id, "id", "", "loan id (generated when empty)")
	cmd.Flags().StringVar(&bookID, "book", "", "book id")
	cmd.Flags().StringVar(&memberID, "member", "", "member id")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")

	return cmd
}

func newLoanCloseCommand(a *app) *cobra.Command {
	var condition, notes string

	cmd := &cobra.Command{
		Use:   "close <loan-id>",
		Short: "Return a lent book and assess the fine of the loan",
		Args:  exactArgs(1),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, args []string) error {
			loanID, err := parseID("loan", args[0], false)
			if err != nil {
				return err
			}

			returnCondition, err := core.ParseReturnCondition(condition)
			if err != nil {
				return err
			}

			now, err := a.now()
			if err != nil {
				return err
			}

			assessor, err := observeCommand[assessfine.Command](a, assessfine.NewCommandHandler(store))
			if err != nil {
				return err
			}

			closer, err := closeloan.NewCommandHandler(store, assessor)
			if err != nil {
				return err
			}

			handler, err := observeCommand[closeloan.Command](a, closer)
			if err != nil {
				return err
			}

			fineID := uuid.Must(uuid.NewV7())
			result, err := handler.Handle(ctx, closeloan.BuildCommand(loanID, fineID, returnCondition, notes, now))
			if err != nil {
				return err
			}

			return a.printer.result(closeloan.CommandType, loanID.String(), result)
		}),
	}

	cmd.Flags().StringVar(&condition, "condition", "", "GOOD|MINOR_DAMAGE|MAJOR_DAMAGE|LOST (empty when not reported)")
	cmd.Flags().StringVar(&notes, "notes", "", "notes on the returned book")

	return cmd
}

func newLoanListCommand(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loans by status",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			query, err := loansbystatus.BuildQuery(strings.ToUpper(status))
			if err != nil {
				return err
			}

			handler, err := observeQuery[loansbystatus.Query, loansbystatus.Loans](a, loansbystatus.NewQueryHandler(store))
			if err != nil {
				return err
			}

			loans, err := handler.Handle(ctx, query)
			if err != nil {
				return err
			}

			return a.printer.value(loans, func(t *table) {
				t.withTitle(loans.Status+" loans").withHeaders("LOAN", "BOOK", "MEMBER", "START", "DUE", "RETURNED", "CONDITION")
				for _, l := range loans.Loans {
					t.addRow(l.LoanID, l.BookID, l.MemberID, core.FormatDate(l.StartDate),
						optionalDate(l.DueDate), optionalDate(l.ReturnDate), l.ReturnCondition)
				}
				t.addFooter("%d loan(s)", len(loans.Loans))
			})
		}),
	}

	cmd.Flags().StringVar(&status, "status", string(core.LoanActive), "ACTIVE|OVERDUE|CLOSED")

	return cmd
}

func newLoanOverdueCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List open loans past the lending period with their late days",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			now, err := a.now()
			if err != nil {
				return err
			}

			handler, err := observeQuery[overdueloans.Query, overdueloans.OverdueLoans](a, overdueloans.NewQueryHandler(store))
			if err != nil {
				return err
			}

			loans, err := handler.Handle(ctx, overdueloans.BuildQuery(now))
			if err != nil {
				return err
			}

			return a.printer.value(loans, func(t *table) {
				t.withTitle("Overdue loans as of "+core.FormatDate(loans.AsOf)).
					withHeaders("LOAN", "BOOK", "MEMBER", "STATUS", "START", "LATE DAYS")
				for _, l := range loans.Loans {
					t.addRow(l.LoanID, l.BookID, l.MemberID, l.Status, core.FormatDate(l.StartDate), strconv.Itoa(l.LateDays))
				}
				t.addFooter("%d loan(s)", len(loans.Loans))
			})
		}),
	}
}

func newSweepCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Mark every active loan past its due date as overdue",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			now, err := a.now()
			if err != nil {
				return err
			}

			result, err := runSweep(ctx, a, store, now)
			if err != nil {
				return err
			}

			return a.printer.result(markalloverdue.CommandType, "", result)
		}),
	}
}

func runSweep(ctx context.Context, a *app, store shell.LendingStore, now time.Time) (shell.HandlerResult, error) {
	handler, err := observeCommand[markalloverdue.Command](a, markalloverdue.NewCommandHandler(store))
	if err != nil {
		return shell.HandlerResult{}, err
	}

	return handler.Handle(ctx, markalloverdue.BuildCommand(now))
}
