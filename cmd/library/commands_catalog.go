package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/registermember"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/setbookmaintenance"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/availablebooks"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/loansbymember"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/memberfines"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

func newBookCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "book", Short: "Manage the catalog"}
	cmd.AddCommand(newBookAddCommand(a), newBookMaintenanceCommand(a), newBookAvailableCommand(a))

	return cmd
}

func newBookAddCommand(a *app) *cobra.Command {
	var id, title, author, isbn, category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			bookID, err := parseID("book", id, true)
			if err != nil {
				return err
			}

			now, err := a.now()
			if err != nil {
				return err
			}

			handler, err := observeCommand[addbook.Command](a, addbook.NewCommandHandler(store))
			if err != nil {
				return err
			}

			result, err := handler.Handle(ctx, addbook.BuildCommand(bookID, title, author, isbn, category, now))
			if err != nil {
				return err
			}

			return a.printer.result(addbook.CommandType, bookID.String(), result)
		}),
	}

	cmd.Flags().StringVar(&id, "id", "", "book id (generated when empty)")
	cmd.Flags().StringVar(&title, "title", "", "title")
	cmd.Flags().StringVar(&author, "author", "", "author")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN, unique in the catalog")
	cmd.Flags().StringVar(&category, "category", "", "category")

	return cmd
}

func newBookMaintenanceCommand(a *app) *cobra.Command {
	var release bool

	cmd := &cobra.Command{
		Use:   "maintenance <book-id>",
		Short: "Put an available book under maintenance, or release it with --release",
		Args:  exactArgs(1),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, args []string) error {
			bookID, err := parseID("book", args[0], false)
			if err != nil {
				return err
			}

			now, err := a.now()
			if err != nil {
				return err
			}

			handler, err := observeCommand[setbookmaintenance.Command](a, setbookmaintenance.NewCommandHandler(store))
			if err != nil {
				return err
			}

			result, err := handler.Handle(ctx, setbookmaintenance.BuildCommand(bookID, !release, now))
			if err != nil {
				return err
			}

			return a.printer.result(setbookmaintenance.CommandType, bookID.String(), result)
		}),
	}

	cmd.Flags().BoolVar(&release, "release", false, "take the book out of maintenance")

	return cmd
}

func newBookAvailableCommand(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "available",
		Short: "List the books that can be lent",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			handler, err := observeQuery[availablebooks.Query, availablebooks.AvailableBooks](
				a, availablebooks.NewQueryHandler(store))
			if err != nil {
				return err
			}

			books, err := handler.Handle(ctx, availablebooks.BuildQuery(category))
			if err != nil {
				return err
			}

			return a.printer.value(books, func(t *table) {
				t.withTitle("Available books").withHeaders("BOOK", "TITLE", "AUTHOR", "ISBN", "CATEGORY")
				for _, b := range books.Books {
					t.addRow(b.BookID, b.Title, b.Author, b.ISBN, b.Category)
				}
				t.addFooter("%d book(s)", books.Count)
			})
		}),
	}

	cmd.Flags().StringVar(&category, "category", "", "only books of this category")

	return cmd
}

func newMemberCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "member", Short: "Manage members"}
	cmd.AddCommand(newMemberRegisterCommand(a), newMemberLoansCommand(a), newMemberFinesCommand(a))

	return cmd
}

func newMemberRegisterCommand(a *app) *cobra.Command {
	var id, name, nationalID string
	var number int64

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a member",
		Args:  exactArgs(0),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, _ []string) error {
			memberID, err := parseID("member", id, true)
			if err != nil {
				return err
			}

			now, err := a.now()
			if err != nil {
				return err
			}

			handler, err := observeCommand[registermember.Command](a, registermember.NewCommandHandler(store))
			if err != nil {
				return err
			}

			result, err := handler.Handle(ctx, registermember.BuildCommand(memberID, name, number, nationalID, now))
			if err != nil {
				return err
			}

			return a.printer.result(registermember.CommandType, memberID.String(), result)
		}),
	}

	cmd.Flags().StringVar(&id, "id", "", "member id (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().Int64Var(&number, "number", 0, "member number, unique")
	cmd.Flags().StringVar(&nationalID, "national-id", "", "national id, unique")

	return cmd
}

func newMemberLoansCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "loans <member-id>",
		Short: "List the loans of a member",
		Args:  exactArgs(1),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, args []string) error {
			memberID, err := parseID("member", args[0], false)
			if err != nil {
				return err
			}

			handler, err := observeQuery[loansbymember.Query, loansbymember.LoansByMember](
				a, loansbymember.NewQueryHandler(store))
			if err != nil {
				return err
			}

			loans, err := handler.Handle(ctx, loansbymember.BuildQuery(memberID))
			if err != nil {
				return err
			}

			return a.printer.value(loans, func(t *table) {
				t.withTitle("Loans of member "+loans.MemberID).
					withHeaders("LOAN", "BOOK", "STATUS", "START", "DUE", "RETURNED")
				for _, l := range loans.Loans {
					t.addRow(l.LoanID, l.BookID, l.Status,
						core.FormatDate(l.StartDate), optionalDate(l.DueDate), optionalDate(l.ReturnDate))
				}
				t.addFooter("%d loan(s), %d open", len(loans.Loans), loans.ActiveCount)
			})
		}),
	}
}

func newMemberFinesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fines <member-id>",
		Short: "List the unsettled fines of a member",
		Args:  exactArgs(1),
		RunE: storeRunE(a, func(ctx context.Context, store shell.LendingStore, args []string) error {
			memberID, err := parseID("member", args[0], false)
			if err != nil {
				return err
			}

			handler, err := observeQuery[memberfines.Query, memberfines.MemberFines](
				a, memberfines.NewQueryHandler(store))
			if err != nil {
				return err
			}

			fines, err := handler.Handle(ctx, memberfines.BuildQuery(memberID))
			if err != nil {
				return err
			}

			return a.printer.value(fines, func(t *table) {
				t.withTitle("Unsettled fines of member "+fines.MemberID).
					withHeaders("FINE", "LOAN", "AMOUNT", "ISSUED", "REASON")
				for _, f := range fines.Fines {
					t.addRow(f.FineID, f.LoanID, f.Amount.StringFixed(2), core.FormatDate(f.IssuedOn), f.Reason)
				}
				t.addFooter("owes %s in total", fines.Total.StringFixed(2))
			})
		}),
	}
}

func optionalDate(day *time.Time) string {
	if day == nil {
		return "-"
	}

	return core.FormatDate(*day)
}
