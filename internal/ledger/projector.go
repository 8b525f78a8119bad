package ledger

import (
	"sort"
	"time"
)

// syntheticIDBase spaces synthetic occurrence IDs so that a plan index can be
// folded into the original record ID without collisions.
const syntheticIDBase = 1000

// Occurrence is one row of a rendered monthly list. Installment plans produce
// a derived row per month with a synthetic ID; edit and delete actions map
// back to the stored record through OriginalID.
type Occurrence struct {
	// ID is the record ID, or originalID*1000+planIndex for plan rows.
	ID uint
	// OriginalID is the stored record behind this row.
	OriginalID uint
	Kind       EntryKind
	Amount     float64
	Date       time.Time
	// PlanIndex is the 1-based installment position, 0 otherwise.
	PlanIndex int
	// PlanMonths is the total installment count, 0 otherwise.
	PlanMonths int
	// DateReprojected is true when the display date was re-anchored onto the
	// queried month (recurring and plan rows) rather than stored as-is.
	DateReprojected bool
}

// SyntheticID folds a plan index into a record ID.
func SyntheticID(recordID uint, planIndex int) uint {
	return recordID*syntheticIDBase + uint(planIndex)
}

// OriginalID recovers the stored record ID behind a possibly synthetic ID.
func OriginalID(id uint) uint {
	if id >= syntheticIDBase {
		return id / syntheticIDBase
	}
	return id
}

// ProjectMonth builds the display rows for every record active in the queried
// month, applying the same precedence and amount rules as Classify so the
// rendered list always reconciles with the aggregated balance. Rows are
// ordered by display date descending.
func ProjectMonth(records []Record, month time.Month, year int) []Occurrence {
	occurrences := make([]Occurrence, 0, len(records))
	for _, r := range records {
		c := Classify(r, month, year)
		if !c.Active {
			continue
		}

		occ := Occurrence{
			ID:         r.ID,
			OriginalID: r.ID,
			Kind:       r.Kind,
			Amount:     c.Amount,
			Date:       c.Date,
			PlanIndex:  c.PlanIndex,
		}
		if c.PlanIndex > 0 {
			months, _ := planMonths(r)
			occ.ID = SyntheticID(r.ID, c.PlanIndex)
			occ.PlanMonths = months
			occ.DateReprojected = true
		} else if r.IsRecurring {
			occ.DateReprojected = true
		}
		occurrences = append(occurrences, occ)
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Date.After(occurrences[j].Date)
	})
	return occurrences
}
