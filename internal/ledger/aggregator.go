package ledger

import "time"

// Summary holds the aggregated income and expenses of one queried month.
// It is derived on every request and never persisted.
type Summary struct {
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Balance       float64 `json:"balance"`
}

// Balance runs the classifier over a record set and sums the monthly
// contributions by kind. Callers pass only the records the requesting member
// is allowed to see; visibility is not this package's concern.
func Balance(records []Record, month time.Month, year int) Summary {
	s := Summary{Month: int(month), Year: year}
	for _, r := range records {
		c := Classify(r, month, year)
		if !c.Active {
			continue
		}
		switch r.Kind {
		case KindIncome:
			s.TotalIncome += c.Amount
		case KindExpense:
			s.TotalExpenses += c.Amount
		}
	}
	s.TotalIncome = RoundCurrency(s.TotalIncome)
	s.TotalExpenses = RoundCurrency(s.TotalExpenses)
	s.Balance = RoundCurrency(s.TotalIncome - s.TotalExpenses)
	return s
}
