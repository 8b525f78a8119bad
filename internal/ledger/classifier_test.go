package ledger

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthIndex(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"january_2024", 2024, time.January, 2024*12 + 0},
		{"december_2024", 2024, time.December, 2024*12 + 11},
		{"year_boundary", 2025, time.January, 2024*12 + 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthIndex(tt.year, tt.month); got != tt.want {
				t.Errorf("MonthIndex(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}

	// Adjacent months always differ by exactly one, including across years.
	if MonthIndex(2025, time.January)-MonthIndex(2024, time.December) != 1 {
		t.Error("expected Dec 2024 -> Jan 2025 distance of 1")
	}
}

func TestClampDay(t *testing.T) {
	if got := ClampDay(31); got != 28 {
		t.Errorf("ClampDay(31) = %d, want 28", got)
	}
	if got := ClampDay(0); got != 1 {
		t.Errorf("ClampDay(0) = %d, want 1", got)
	}
	if got := ClampDay(15); got != 15 {
		t.Errorf("ClampDay(15) = %d, want 15", got)
	}
}

func TestClassifyInstallmentPlan(t *testing.T) {
	rec := Record{
		ID:              1,
		Kind:            KindIncome,
		Amount:          1200,
		TransactionDate: date(2024, time.January, 15),
		PaymentMonths:   3,
	}

	t.Run("first_month", func(t *testing.T) {
		c := Classify(rec, time.January, 2024)
		if !c.Active {
			t.Fatal("expected active in January")
		}
		if c.Amount != 400 {
			t.Errorf("expected amount 400, got %v", c.Amount)
		}
		if c.PlanIndex != 1 {
			t.Errorf("expected plan index 1, got %d", c.PlanIndex)
		}
	})

	t.Run("second_month", func(t *testing.T) {
		c := Classify(rec, time.February, 2024)
		if !c.Active || c.Amount != 400 || c.PlanIndex != 2 {
			t.Errorf("expected active/400/2, got %+v", c)
		}
	})

	t.Run("after_plan_end", func(t *testing.T) {
		if c := Classify(rec, time.April, 2024); c.Active {
			t.Errorf("expected inactive in April, got %+v", c)
		}
	})

	t.Run("before_plan_start", func(t *testing.T) {
		if c := Classify(rec, time.December, 2023); c.Active {
			t.Errorf("expected inactive in December 2023, got %+v", c)
		}
	})

	t.Run("display_day_from_transaction_date", func(t *testing.T) {
		c := Classify(rec, time.February, 2024)
		if c.Date.Day() != 15 || c.Date.Month() != time.February || c.Date.Year() != 2024 {
			t.Errorf("expected 2024-02-15, got %v", c.Date)
		}
	})

	t.Run("display_day_clamped", func(t *testing.T) {
		late := rec
		late.TransactionDate = date(2024, time.January, 31)
		c := Classify(late, time.February, 2024)
		if c.Date.Day() != 28 {
			t.Errorf("expected day clamped to 28, got %d", c.Date.Day())
		}
	})
}

func TestClassifyPlanAmountReconstructs(t *testing.T) {
	// Summing the per-month installments must reproduce the original amount
	// within one cent per month of rounding drift.
	amounts := []float64{1200, 100, 999.99, 0.10, 70000.01}
	for _, amount := range amounts {
		for months := 2; months <= 12; months++ {
			rec := Record{
				Kind:            KindExpense,
				Amount:          amount,
				TransactionDate: date(2024, time.January, 1),
				PaymentMonths:   months,
			}
			var sum float64
			for i := 0; i < months; i++ {
				target := date(2024, time.January, 1).AddDate(0, i, 0)
				c := Classify(rec, target.Month(), target.Year())
				if !c.Active {
					t.Fatalf("amount %v months %d: expected active in month %d", amount, months, i)
				}
				sum += c.Amount
			}
			drift := sum - amount
			if drift < 0 {
				drift = -drift
			}
			if drift > float64(months)*0.01 {
				t.Errorf("amount %v over %d months: sum %v drifts %v", amount, months, sum, drift)
			}
		}
	}
}

func TestClassifyDueDateRange(t *testing.T) {
	due := date(2024, time.March, 10)
	rec := Record{
		ID:              2,
		Kind:            KindExpense,
		Amount:          300,
		TransactionDate: date(2024, time.January, 10),
		DueDate:         &due,
	}

	// Full amount each month of the range, never divided.
	for _, m := range []time.Month{time.January, time.February, time.March} {
		c := Classify(rec, m, 2024)
		if !c.Active {
			t.Fatalf("expected active in %v", m)
		}
		if c.Amount != 300 {
			t.Errorf("%v: expected full 300, got %v", m, c.Amount)
		}
	}

	if c := Classify(rec, time.April, 2024); c.Active {
		t.Errorf("expected inactive in April, got %+v", c)
	}

	// The display day follows the due date's day.
	c := Classify(rec, time.February, 2024)
	if c.Date.Day() != 10 {
		t.Errorf("expected display day 10, got %d", c.Date.Day())
	}
}

func TestClassifyExplicitMonthsBeatsDueDate(t *testing.T) {
	// With payment months set, the amount divides even when a due date is
	// also present, and the plan length follows the explicit count.
	due := date(2024, time.June, 1)
	rec := Record{
		Kind:            KindExpense,
		Amount:          600,
		TransactionDate: date(2024, time.January, 1),
		DueDate:         &due,
		PaymentMonths:   2,
	}

	c := Classify(rec, time.January, 2024)
	if !c.Active || c.Amount != 300 {
		t.Errorf("expected active with 300, got %+v", c)
	}
	if c := Classify(rec, time.March, 2024); c.Active {
		t.Errorf("expected inactive past the explicit plan, got %+v", c)
	}
}

func TestClassifyRecurring(t *testing.T) {
	rec := Record{
		ID:              3,
		Kind:            KindExpense,
		Amount:          50,
		TransactionDate: date(2024, time.March, 1),
		IsRecurring:     true,
	}

	t.Run("active_every_later_month", func(t *testing.T) {
		for _, q := range []struct {
			month time.Month
			year  int
		}{
			{time.March, 2024},
			{time.May, 2024},
			{time.December, 2024},
			{time.July, 2031},
		} {
			c := Classify(rec, q.month, q.year)
			if !c.Active {
				t.Fatalf("expected active in %v %d", q.month, q.year)
			}
			if c.Amount != 50 {
				t.Errorf("%v %d: expected undivided 50, got %v", q.month, q.year, c.Amount)
			}
			if c.PlanIndex != 0 {
				t.Errorf("recurring entry should carry no plan index, got %d", c.PlanIndex)
			}
		}
	})

	t.Run("active_before_transaction_month", func(t *testing.T) {
		// Recurring entries apply to any queried month, earlier ones included.
		if c := Classify(rec, time.January, 2024); !c.Active {
			t.Error("expected recurring record active before its transaction month")
		}
	})

	t.Run("date_reprojected_onto_query_month", func(t *testing.T) {
		c := Classify(rec, time.May, 2024)
		if c.Date.Month() != time.May || c.Date.Year() != 2024 || c.Date.Day() != 1 {
			t.Errorf("expected 2024-05-01, got %v", c.Date)
		}
	})
}

func TestClassifyPlanBeatsRecurring(t *testing.T) {
	// A record carrying both flags is an installment, not a forever-repeating
	// entry: the plan rule must win or it would never terminate.
	rec := Record{
		Kind:            KindExpense,
		Amount:          900,
		TransactionDate: date(2024, time.January, 5),
		IsRecurring:     true,
		PaymentMonths:   3,
	}

	c := Classify(rec, time.February, 2024)
	if !c.Active || c.Amount != 300 || c.PlanIndex != 2 {
		t.Errorf("expected plan classification 300/2, got %+v", c)
	}

	if c := Classify(rec, time.June, 2024); c.Active {
		t.Errorf("expected inactive past the plan despite recurring flag, got %+v", c)
	}
}

func TestClassifyPlain(t *testing.T) {
	rec := Record{
		Kind:            KindIncome,
		Amount:          1200,
		TransactionDate: date(2024, time.March, 31),
	}

	t.Run("own_month", func(t *testing.T) {
		c := Classify(rec, time.March, 2024)
		if !c.Active || c.Amount != 1200 {
			t.Fatalf("expected active with 1200, got %+v", c)
		}
		// Plain entries keep their stored date untouched, even day 31.
		if !c.Date.Equal(rec.TransactionDate) {
			t.Errorf("expected stored date %v, got %v", rec.TransactionDate, c.Date)
		}
	})

	t.Run("other_months", func(t *testing.T) {
		if c := Classify(rec, time.February, 2024); c.Active {
			t.Errorf("expected inactive in February, got %+v", c)
		}
		if c := Classify(rec, time.March, 2025); c.Active {
			t.Errorf("expected inactive in March of another year, got %+v", c)
		}
	})
}

func TestClassifySingleMonthDueDateIsPlain(t *testing.T) {
	// A due date inside the transaction month spans one month and therefore
	// does not create a plan.
	due := date(2024, time.January, 25)
	rec := Record{
		Kind:            KindExpense,
		Amount:          80,
		TransactionDate: date(2024, time.January, 5),
		DueDate:         &due,
	}

	c := Classify(rec, time.January, 2024)
	if !c.Active || c.PlanIndex != 0 || c.Amount != 80 {
		t.Errorf("expected plain classification, got %+v", c)
	}
	if c := Classify(rec, time.February, 2024); c.Active {
		t.Errorf("expected inactive in February, got %+v", c)
	}
}
