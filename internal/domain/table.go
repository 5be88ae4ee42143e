package domain

import "strconv"

// Table is an ordered set of named columns with one formatted row per entry
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Records returns the header followed by the rows, ready for a CSV writer
func (t *Table) Records() [][]string {
	if t == nil {
		return nil
	}
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Columns)
	return append(out, t.Rows...)
}

var bondColumns = []string{
	"ID", "Company", "Industry", "Ticker", "Type", "Market", "Seniority", "ISIN",
	"Currency", "State", "Moodys Rate", "SNP Rate", "Fitch Rate", "Country",
	"Ownership", "Maturity", "Next Payment", "Coupon Type", "Coupon Frequency",
	"Coupon", "Current Yield", "YTM/YTC", "Price", "Available",
}

func bondRow(b *Bond) []string {
	return []string{
		b.ID, b.Company, b.Industry, b.Ticker, b.Type, b.Market, b.Seniority, b.ISIN,
		b.Currency, b.State, b.MoodysRate, b.SNPRate, b.FitchRate, b.Country,
		b.Ownership, b.Maturity.Format(DateLayout), b.NextPayment.Format(DateLayout),
		b.CouponType, b.CouponFrequency,
		formatFloat(b.Coupon), formatFloat(b.CurrentYield), formatFloat(b.YTMYTC),
		b.Price.String(), b.Available.String(),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToTable projects every normalized field of every bond.
// Returns nil for an empty collection; callers must handle the no-data case.
func (bs *Bonds) ToTable() *Table {
	if bs.Len() == 0 {
		return nil
	}
	t := &Table{Columns: append([]string(nil), bondColumns...), Rows: make([][]string, 0, bs.Len())}
	for _, b := range bs.All() {
		t.Rows = append(t.Rows, bondRow(b))
	}
	return t
}
