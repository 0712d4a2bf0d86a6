package acceptance_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/assessfine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/closeloan"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/createloan"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/createmanualfine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/markalloverdue"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/registermember"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/setbookmaintenance"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/settlefine"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/memberfines"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

type store interface {
	shell.LendingStore
}

type lendingTestContext struct {
	newStore func() store
	store    store

	today   time.Time
	books   map[string]uuid.UUID
	members map[string]uuid.UUID
	loans   map[string]uuid.UUID // by book title, the latest loan of the book

	result shell.HandlerResult
	err    error
}

var memberNumbers atomic.Int64

func (c *lendingTestContext) reset() {
	c.store = c.newStore()
	c.today = time.Now().UTC()
	c.books = make(map[string]uuid.UUID)
	c.members = make(map[string]uuid.UUID)
	c.loans = make(map[string]uuid.UUID)
	c.result = shell.HandlerResult{}
	c.err = nil
}

func (c *lendingTestContext) record(result shell.HandlerResult, err error) {
	c.result, c.err = result, err
}

// must turns a failed Given step into a failed scenario.
func must(_ shell.HandlerResult, err error) error {
	return err
}

/*** Given ***/

func (c *lendingTestContext) todayIs(date string) error {
	today, err := core.ParseDate(date)
	if err != nil {
		return err
	}

	c.today = today.Add(10 * time.Hour)

	return nil
}

func (c *lendingTestContext) theBookIsInTheCatalog(title string) error {
	bookID := uuid.New()
	c.books[title] = bookID
	isbn := "978-" + bookID.String()[:8]

	return must(addbook.NewCommandHandler(c.store).Handle(
		context.Background(),
		addbook.BuildCommand(bookID, title, "Various", isbn, "fiction", c.today)))
}

func (c *lendingTestContext) theMemberIsRegistered(name string) error {
	memberID := uuid.New()
	c.members[name] = memberID

	return must(registermember.NewCommandHandler(c.store).Handle(
		context.Background(),
		registermember.BuildCommand(memberID, name, memberNumbers.Add(1), "NID-"+memberID.String()[:8], c.today)))
}

func (c *lendingTestContext) borrowedDaysAgo(member, title string, days int) error {
	start := core.AddDays(c.today, -days)
	due := core.AddDays(start, core.LoanPeriodDays)

	return must(c.borrow(member, title, start, due))
}

func (c *lendingTestContext) theBookIsPutUnderMaintenance(title string) error {
	return must(setbookmaintenance.NewCommandHandler(c.store).Handle(
		context.Background(),
		setbookmaintenance.BuildCommand(c.books[title], true, c.today)))
}

/*** When ***/

func (c *lendingTestContext) borrowsToday(member, title string, dueInDays int) error {
	c.record(c.borrow(member, title, c.today, core.AddDays(c.today, dueInDays)))
	return nil
}

func (c *lendingTestContext) borrow(member, title string, start, due time.Time) (shell.HandlerResult, error) {
	loanID := uuid.New()
	result, err := createloan.NewCommandHandler(c.store).Handle(
		context.Background(),
		createloan.BuildCommand(loanID, c.books[title], c.members[member], &start, &due, c.today))
	if err == nil {
		c.loans[title] = loanID
	}

	return result, err
}

func (c *lendingTestContext) isReturnedInCondition(title, condition string) error {
	parsed, err := core.ParseReturnCondition(condition)
	if err != nil {
		return err
	}

	c.record(c.closeLoan(c.loans[title], parsed))

	return nil
}

func (c *lendingTestContext) isReturnedWithoutCondition(title string) error {
	c.record(c.closeLoan(c.loans[title], nil))
	return nil
}

func (c *lendingTestContext) anUnknownLoanIsReturned() error {
	c.record(c.closeLoan(uuid.New(), nil))
	return nil
}

func (c *lendingTestContext) closeLoan(loanID uuid.UUID, condition *core.ReturnCondition) (shell.HandlerResult, error) {
	handler, err := closeloan.NewCommandHandler(c.store, assessfine.NewCommandHandler(c.store))
	if err != nil {
		return shell.HandlerResult{}, err
	}

	return handler.Handle(context.Background(), closeloan.BuildCommand(loanID, uuid.New(), condition, "", c.today))
}

func (c *lendingTestContext) settlesTheFineFor(_ string, title string) error {
	fine, err := c.fineOf(title)
	if err != nil {
		return err
	}

	if fine == nil {
		return fmt.Errorf("no fine recorded for the loan of %q", title)
	}

	c.record(settlefine.NewCommandHandler(c.store).Handle(
		context.Background(),
		settlefine.BuildCommand(fine.ID, c.today)))

	return nil
}

func (c *lendingTestContext) entersAManualFine(amount, title, motive string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}

	c.record(createmanualfine.NewCommandHandler(c.store).Handle(
		context.Background(),
		createmanualfine.BuildCommand(uuid.New(), c.loans[title], value, motive, "", c.today)))

	return nil
}

func (c *lendingTestContext) theOverdueSweepRuns() error {
	c.record(markalloverdue.NewCommandHandler(c.store).Handle(
		context.Background(),
		markalloverdue.BuildCommand(c.today)))

	return nil
}

/*** Then ***/

func (c *lendingTestContext) theOperationSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success but got: %w", c.err)
	}

	if c.result.HasWarning() {
		return fmt.Errorf("expected no warning but got: %s", c.result.Warning)
	}

	return nil
}

func (c *lendingTestContext) theOperationFailsWith(kind string) error {
	sentinels := map[string]error{
		"Conflict":        core.ErrConflict,
		"NotFound":        core.ErrNotFound,
		"ValidationError": core.ErrValidation,
	}

	sentinel, ok := sentinels[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}

	if !errors.Is(c.err, sentinel) {
		return fmt.Errorf("expected %s but got: %v", kind, c.err)
	}

	return nil
}

func (c *lendingTestContext) theBookIs(title, status string) error {
	book, err := shell.LoadBook(context.Background(), c.store, c.books[title])
	if err != nil {
		return err
	}

	if book == nil || string(book.Status) != status {
		return fmt.Errorf("expected book %q to be %s, got %+v", title, status, book)
	}

	return nil
}

func (c *lendingTestContext) theLoanIs(title, status string) error {
	loan, err := shell.LoadLoan(context.Background(), c.store, c.loans[title])
	if err != nil {
		return err
	}

	if loan == nil || string(loan.Status) != status {
		return fmt.Errorf("expected loan of %q to be %s, got %+v", title, status, loan)
	}

	return nil
}

func (c *lendingTestContext) noFineIsRecorded(title string) error {
	fine, err := c.fineOf(title)
	if err != nil {
		return err
	}

	if fine != nil {
		return fmt.Errorf("expected no fine for %q, got %s", title, fine.Amount.StringFixed(2))
	}

	return nil
}

func (c *lendingTestContext) aFineIsRecorded(amount, title string) error {
	fine, err := c.fineOf(title)
	if err != nil {
		return err
	}

	if fine == nil {
		return fmt.Errorf("expected a fine of %s for %q, got none", amount, title)
	}

	if !fine.Amount.Equal(decimal.RequireFromString(amount)) {
		return fmt.Errorf("expected a fine of %s for %q, got %s", amount, title, fine.Amount.StringFixed(2))
	}

	return nil
}

func (c *lendingTestContext) theFineMotiveContains(title, text string) error {
	fine, err := c.fineOf(title)
	if err != nil || fine == nil {
		return fmt.Errorf("no fine for %q: %v", title, err)
	}

	if !strings.Contains(fine.Reason, text) {
		return fmt.Errorf("expected motive %q to contain %q", fine.Reason, text)
	}

	return nil
}

func (c *lendingTestContext) theFineIsSettled(title string) error {
	fine, err := c.fineOf(title)
	if err != nil || fine == nil {
		return fmt.Errorf("no fine for %q: %v", title, err)
	}

	if !fine.Settled {
		return fmt.Errorf("expected the fine for %q to be settled", title)
	}

	return nil
}

func (c *lendingTestContext) owesInTotal(member, amount string) error {
	result, err := memberfines.NewQueryHandler(c.store).Handle(
		context.Background(),
		memberfines.BuildQuery(c.members[member]))
	if err != nil {
		return err
	}

	if !result.Total.Equal(decimal.RequireFromString(amount)) {
		return fmt.Errorf("expected %q to owe %s, got %s", member, amount, result.Total.StringFixed(2))
	}

	return nil
}

func (c *lendingTestContext) loansWereMarkedOverdue(count int) error {
	if c.result.Affected != count {
		return fmt.Errorf("expected %d loans marked overdue, got %d", count, c.result.Affected)
	}

	return nil
}

func (c *lendingTestContext) fineOf(title string) (*core.Fine, error) {
	return shell.LoadFineOfLoan(context.Background(), c.store, c.loans[title])
}

func initializeScenario(newStore func() store) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		tc := &lendingTestContext{newStore: newStore}

		ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		// Given steps
		ctx.Step(`^today is "([^"]*)"$`, tc.todayIs)
		ctx.Step(`^the book "([^"]*)" is in the catalog$`, tc.theBookIsInTheCatalog)
		ctx.Step(`^the member "([^"]*)" is registered$`, tc.theMemberIsRegistered)
		ctx.Step(`^"([^"]*)" borrowed "([^"]*)" (\d+) days ago$`, tc.borrowedDaysAgo)
		ctx.Step(`^the book "([^"]*)" is put under maintenance$`, tc.theBookIsPutUnderMaintenance)

		// When steps
		ctx.Step(`^"([^"]*)" borrows "([^"]*)" today with a due date in (\d+) days$`, tc.borrowsToday)
		ctx.Step(`^"([^"]*)" is returned in (GOOD|MINOR_DAMAGE|MAJOR_DAMAGE|LOST) condition$`, tc.isReturnedInCondition)
		ctx.Step(`^"([^"]*)" is returned without a reported condition$`, tc.isReturnedWithoutCondition)
		ctx.Step(`^an unknown loan is returned$`, tc.anUnknownLoanIsReturned)
		ctx.Step(`^"([^"]*)" settles the fine for "([^"]*)"$`, tc.settlesTheFineFor)
		ctx.Step(`^a librarian enters a manual fine of (-?[\d.]+) for the loan of "([^"]*)" with motive "([^"]*)"$`, tc.entersAManualFine)
		ctx.Step(`^the overdue sweep runs$`, tc.theOverdueSweepRuns)

		// Then steps
		ctx.Step(`^the operation succeeds$`, tc.theOperationSucceeds)
		ctx.Step(`^the operation fails with (Conflict|NotFound|ValidationError)$`, tc.theOperationFailsWith)
		ctx.Step(`^the book "([^"]*)" is (AVAILABLE|LOANED|MAINTENANCE)$`, tc.theBookIs)
		ctx.Step(`^the loan of "([^"]*)" is (ACTIVE|OVERDUE|CLOSED)$`, tc.theLoanIs)
		ctx.Step(`^no fine is recorded for the loan of "([^"]*)"$`, tc.noFineIsRecorded)
		ctx.Step(`^a fine of ([\d.]+) is recorded for the loan of "([^"]*)"$`, tc.aFineIsRecorded)
		ctx.Step(`^the fine motive for "([^"]*)" contains "([^"]*)"$`, tc.theFineMotiveContains)
		ctx.Step(`^the fine for "([^"]*)" is settled$`, tc.theFineIsSettled)
		ctx.Step(`^"([^"]*)" owes ([\d.]+) in total$`, tc.owesInTotal)
		ctx.Step(`^(\d+) loans? (?:was|were) marked overdue$`, tc.loansWereMarkedOverdue)
	}
}

func runFeatures(t *testing.T, newStore func() store) {
	t.Helper()

	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario(newStore),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func TestFeatures_MemoryEngine(t *testing.T) {
	runFeatures(t, func() store { return GivenMemoryStore(t) })
}

func TestFeatures_SQLiteEngine(t *testing.T) {
	runFeatures(t, func() store { return GivenSQLiteStore(t) })
}
