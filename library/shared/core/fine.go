package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ManualFineSuffix marks the motive of a fine entered by a librarian.
const ManualFineSuffix = " (manual fine)"

// Fine is the single fine attached to a closed loan.
// Amount never changes after creation, only Settled goes from false to true.
type Fine struct {
	ID       uuid.UUID
	LoanID   uuid.UUID
	Amount   decimal.Decimal
	Reason   string
	Notes    string
	Settled  bool
	IssuedOn time.Time
	Version  int64
}

// AssessFine resolves the fine policy for a closed loan without a fine.
// It returns a nil fine when the policy yields nothing to record.
func AssessFine(id uuid.UUID, loan Loan, existing *Fine, asOf time.Time) (*Fine, FineAssessment, error) {
	if loan.IsOpen() {
		return nil, FineAssessment{}, Violation(ErrInvalidState, "cannot assess an open loan")
	}

	if existing != nil {
		return nil, FineAssessment{}, alreadyFined(existing)
	}

	if loan.FineID != nil {
		return nil, FineAssessment{}, alreadyFinedByID(*loan.FineID)
	}

	assessment := ResolveFinePolicy(loan.ReturnCondition, loan.LateDays(asOf))
	if !assessment.OwesFine() {
		return nil, assessment, nil
	}

	return &Fine{
		ID:       id,
		LoanID:   loan.ID,
		Amount:   assessment.Amount,
		Reason:   assessment.Motive,
		IssuedOn: ToDate(asOf),
	}, assessment, nil
}

// CreateManualFine creates a librarian-entered fine for a closed loan without a fine.
// The motive gets ManualFineSuffix appended.
func CreateManualFine(
	id uuid.UUID,
	loan Loan,
	existing *Fine,
	amount decimal.Decimal,
	motive string,
	notes string,
	issuedOn time.Time,
) (Fine, error) {
	if !amount.IsPositive() {
		return Fine{}, Violation(ErrValidation, "fine amount must be positive")
	}

	if existing != nil {
		return Fine{}, alreadyFined(existing)
	}

	if loan.FineID != nil {
		return Fine{}, alreadyFinedByID(*loan.FineID)
	}

	if loan.IsOpen() {
		return Fine{}, Violation(ErrInvalidState, "cannot create fine for an open loan")
	}

	return Fine{
		ID:       id,
		LoanID:   loan.ID,
		Amount:   amount.Round(2),
		Reason:   motive + ManualFineSuffix,
		Notes:    notes,
		IssuedOn: ToDate(issuedOn),
	}, nil
}

// Settle marks the fine as paid. It fails with ErrInvalidState if it already was.
func (f Fine) Settle() (Fine, error) {
	if f.Settled {
		return f, Violation(ErrInvalidState, "fine already settled")
	}

	f.Settled = true

	return f, nil
}

func alreadyFined(existing *Fine) error {
	return alreadyFinedByID(existing.ID)
}

func alreadyFinedByID(fineID uuid.UUID) error {
	return Violation(ErrAlreadyExists, fmt.Sprintf("fine already exists for loan (fine ID %s)", fineID))
}
