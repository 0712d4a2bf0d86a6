package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// GracePeriodDays is how many late days go unbilled by the late policy.
	GracePeriodDays = 2

	damageMotive = "fine for damage or loss of the book"
	lateMotive   = "late return: %d days late (%d billable days)"
	noFineMotive = "no fine applies: returned in good condition without significant delay"
)

// LateFeePerDay is billed for each late day beyond the grace period.
var LateFeePerDay = decimal.New(1000, -2)

var damageFines = map[ReturnCondition]decimal.Decimal{
	ConditionMinorDamage: decimal.New(5000, -2),
	ConditionMajorDamage: decimal.New(15000, -2),
	ConditionLost:        decimal.New(50000, -2),
}

// FinePolicyKind identifies one of the fine policies.
type FinePolicyKind string

const (
	DamagePolicy FinePolicyKind = "damage"
	LatePolicy   FinePolicyKind = "late"
	NoFinePolicy FinePolicyKind = "none"
)

// finePolicyOrder is the priority chain, the first policy that applies wins.
var finePolicyOrder = [...]FinePolicyKind{DamagePolicy, LatePolicy, NoFinePolicy}

// FineAssessment is the result of resolving the fine policy for a closed loan.
// An Amount of zero means there is no fine to record.
type FineAssessment struct {
	Policy       FinePolicyKind
	Amount       decimal.Decimal
	Motive       string
	LateDays     int
	BillableDays int
}

// OwesFine reports whether the assessment yields a fine.
func (a FineAssessment) OwesFine() bool {
	return a.Amount.IsPositive()
}

// ResolveFinePolicy evaluates damage, late and none in this order and returns the
// result of the first policy that applies. It always returns exactly one result.
func ResolveFinePolicy(condition *ReturnCondition, lateDays int) FineAssessment {
	for _, policy := range finePolicyOrder {
		if policy.applies(condition, lateDays) {
			return policy.assess(condition, lateDays)
		}
	}

	return NoFinePolicy.assess(condition, lateDays)
}

func (k FinePolicyKind) applies(condition *ReturnCondition, lateDays int) bool {
	switch k {
	case DamagePolicy:
		return condition != nil && condition.ImpliesFine()
	case LatePolicy:
		return condition == nil && lateDays > GracePeriodDays
	case NoFinePolicy:
		return true
	default:
		return false
	}
}

func (k FinePolicyKind) assess(condition *ReturnCondition, lateDays int) FineAssessment {
	switch k {
	case DamagePolicy:
		return FineAssessment{
			Policy:   DamagePolicy,
			Amount:   damageFines[*condition].Round(2),
			Motive:   damageMotive,
			LateDays: lateDays,
		}
	case LatePolicy:
		billable := lateDays - GracePeriodDays
		return FineAssessment{
			Policy:       LatePolicy,
			Amount:       LateFeePerDay.Mul(decimal.NewFromInt(int64(billable))).Round(2),
			Motive:       fmt.Sprintf(lateMotive, lateDays, billable),
			LateDays:     lateDays,
			BillableDays: billable,
		}
	default:
		return FineAssessment{
			Policy:   NoFinePolicy,
			Amount:   decimal.Zero,
			Motive:   noFineMotive,
			LateDays: lateDays,
		}
	}
}
