package ledger

import "time"

// EntryKind distinguishes income from expense records.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

// Record is the ledger's view of one stored finance record, with the amount
// already decoded to its domain value. Services map their storage models onto
// this struct so the same classification code backs both the balance totals
// and the rendered monthly list.
type Record struct {
	ID              uint
	Kind            EntryKind
	Amount          float64
	TransactionDate time.Time
	IsRecurring     bool
	DueDate         *time.Time
	PaymentMonths   int
}

// Classification is the result of projecting one record onto a queried month.
type Classification struct {
	Active bool
	// Amount is the portion attributable to the queried month.
	Amount float64
	// Date is the date to display for this occurrence.
	Date time.Time
	// PlanIndex is the 1-based position within a multi-month plan,
	// 0 for anything that is not an installment.
	PlanIndex int
}

// Inactive is the classification of a record that does not apply to the
// queried month.
var Inactive = Classification{}

// planMonths returns the number of months an installment spans, and whether
// the span came from an explicit payment-month count (which divides the
// amount) rather than a due-date range (which repeats the full amount).
func planMonths(r Record) (months int, explicit bool) {
	if r.PaymentMonths > 1 {
		return r.PaymentMonths, true
	}
	if r.DueDate != nil {
		span := MonthIndexOf(*r.DueDate) - MonthIndexOf(r.TransactionDate) + 1
		if span > 1 {
			return span, false
		}
	}
	return 0, false
}

// displayDate re-anchors a record onto the queried month. The day comes from
// the due date if present, else the transaction date, clamped to a day every
// month has.
func displayDate(r Record, month time.Month, year int) time.Time {
	day := r.TransactionDate.Day()
	if r.DueDate != nil {
		day = r.DueDate.Day()
	}
	if day == 0 {
		day = 1
	}
	return time.Date(year, month, ClampDay(day), 0, 0, 0, 0, time.UTC)
}

// Classify decides whether a record contributes to the queried month and with
// what amount and date. Exactly one rule applies, in fixed precedence:
//
//  1. Multi-month installment plan (explicit payment months, or a due-date
//     range spanning more than one month). The plan rule deliberately wins
//     over the recurring flag: nothing stops a stored record from carrying
//     both, and an installment must not repeat forever.
//  2. Recurring: active in every queried month with the undivided amount.
//  3. Plain: active only in its own transaction month.
func Classify(r Record, month time.Month, year int) Classification {
	target := MonthIndex(year, month)

	if months, explicit := planMonths(r); months > 1 {
		diff := target - MonthIndexOf(r.TransactionDate)
		if diff < 0 || diff >= months {
			return Inactive
		}
		amount := r.Amount
		if explicit {
			amount = RoundCurrency(r.Amount / float64(months))
		}
		return Classification{
			Active:    true,
			Amount:    amount,
			Date:      displayDate(r, month, year),
			PlanIndex: diff + 1,
		}
	}

	if r.IsRecurring {
		return Classification{
			Active: true,
			Amount: r.Amount,
			Date:   displayDate(r, month, year),
		}
	}

	if target == MonthIndexOf(r.TransactionDate) {
		return Classification{
			Active: true,
			Amount: r.Amount,
			Date:   r.TransactionDate,
		}
	}

	return Inactive
}
