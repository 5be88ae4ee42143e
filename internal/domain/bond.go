package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats/scalar"
)

// DateLayout is the dd-mm-yyyy format used by maturity and next payment dates
const DateLayout = "02-01-2006"

// ColumnCount is the number of positional fields in a raw bond row
const ColumnCount = 23

const (
	OwnershipPublic  = "Public"
	OwnershipPrivate = "Private"
	CouponTypeFixed  = "Fixed"
	BondTypeBond     = "Bond"
)

var (
	par     = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	errNeg  = errors.New("must not be negative")
	errCols = fmt.Errorf("expected %d columns", ColumnCount)
)

// RawBond is one input row before normalization, fields in file column order
type RawBond struct {
	Company         string
	Industry        string
	Ticker          string
	Type            string
	Market          string
	Seniority       string
	ISIN            string
	Currency        string
	State           string
	MoodysRate      string
	SNPRate         string
	FitchRate       string
	Country         string
	Ownership       string
	Maturity        string
	NextPayment     string
	CouponType      string
	CouponFrequency string
	Coupon          string
	CurrentYield    string
	YTMYTC          string
	Price           string
	Available       string
}

// Bond is a single security snapshot with normalized fields.
// Yields are estimated returns, pre-tax and fees.
// Fields are not modified after NewBond returns.
type Bond struct {
	ID  string    // company slug, coupon token and maturity
	UID uuid.UUID // name-based UUID of ID

	Company         string
	Industry        string
	Ticker          string
	Type            string
	Market          string
	Seniority       string // Secured or unsecured on the company's assets
	ISIN            string
	Currency        string
	State           string
	MoodysRate      string
	SNPRate         string
	FitchRate       string
	Country         string // ISO 3166-1 alpha-2 when resolvable
	Ownership       string
	Maturity        time.Time
	NextPayment     time.Time
	CouponType      string
	CouponFrequency string
	Coupon          float64 // fraction of par
	CurrentYield    float64 // coupon divided by price, as a fraction
	YTMYTC          float64 // yield to maturity or to call, as a fraction
	Price           decimal.Decimal
	Available       decimal.Decimal

	Rating Rating

	clock Clock
}

// ParseRow builds a Bond from a positional record
func ParseRow(row []string, clock Clock) (*Bond, error) {
	if len(row) != ColumnCount {
		return nil, &FormatError{Field: "row", Value: strings.Join(row, ","), Err: errCols}
	}
	return NewBond(RawBond{
		Company:         row[0],
		Industry:        row[1],
		Ticker:          row[2],
		Type:            row[3],
		Market:          row[4],
		Seniority:       row[5],
		ISIN:            row[6],
		Currency:        row[7],
		State:           row[8],
		MoodysRate:      row[9],
		SNPRate:         row[10],
		FitchRate:       row[11],
		Country:         row[12],
		Ownership:       row[13],
		Maturity:        row[14],
		NextPayment:     row[15],
		CouponType:      row[16],
		CouponFrequency: row[17],
		Coupon:          row[18],
		CurrentYield:    row[19],
		YTMYTC:          row[20],
		Price:           row[21],
		Available:       row[22],
	}, clock)
}

// NewBond validates and normalizes a raw row.
// A nil clock falls back to the system clock.
func NewBond(raw RawBond, clock Clock) (*Bond, error) {
	if clock == nil {
		clock = SystemClock{}
	}

	maturity, err := parseDate("maturity", raw.Maturity)
	if err != nil {
		return nil, err
	}
	nextPayment, err := parseDate("next_payment", raw.NextPayment)
	if err != nil {
		return nil, err
	}

	coupon, err := parsePercent("coupon", raw.Coupon)
	if err != nil {
		return nil, err
	}
	currentYield, err := parsePercent("current_yield", raw.CurrentYield)
	if err != nil {
		return nil, err
	}
	ytm, err := parsePercent("ytm_ytc", raw.YTMYTC)
	if err != nil {
		return nil, err
	}

	price, err := parseAmount("price", raw.Price)
	if err != nil {
		return nil, err
	}
	available, err := parseAmount("available", raw.Available)
	if err != nil {
		return nil, err
	}
	if available.IsNegative() {
		return nil, &FormatError{Field: "available", Value: raw.Available, Err: errNeg}
	}

	b := &Bond{
		Company:         strings.TrimSpace(raw.Company),
		Industry:        strings.TrimSpace(raw.Industry),
		Ticker:          strings.TrimSpace(raw.Ticker),
		Type:            strings.TrimSpace(raw.Type),
		Market:          strings.TrimSpace(raw.Market),
		Seniority:       strings.TrimSpace(raw.Seniority),
		ISIN:            strings.TrimSpace(raw.ISIN),
		Currency:        strings.TrimSpace(raw.Currency),
		State:           strings.TrimSpace(raw.State),
		MoodysRate:      strings.TrimSpace(raw.MoodysRate),
		SNPRate:         strings.TrimSpace(raw.SNPRate),
		FitchRate:       strings.TrimSpace(raw.FitchRate),
		Country:         ResolveCountry(raw.Country),
		Ownership:       strings.TrimSpace(raw.Ownership),
		Maturity:        maturity,
		NextPayment:     nextPayment,
		CouponType:      strings.TrimSpace(raw.CouponType),
		CouponFrequency: strings.TrimSpace(raw.CouponFrequency),
		Coupon:          coupon,
		CurrentYield:    scalar.RoundEven(currentYield, 5),
		YTMYTC:          scalar.RoundEven(ytm, 5),
		Price:           price,
		Available:       available,
		Rating:          NewRating(raw.SNPRate, raw.MoodysRate, raw.FitchRate),
		clock:           clock,
	}
	b.ID = bondID(b.Company, b.Coupon, b.Maturity)
	b.UID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.ID))

	return b, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &FormatError{Field: field, Value: value, Err: err}
	}
	return t, nil
}

// parsePercent converts "5.25%" to 0.0525. A floating coupon written as
// "<base>+<margin>%" keeps only the margin.
func parsePercent(field, value string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(value), "%", "")
	if _, margin, ok := strings.Cut(s, "+"); ok {
		s = margin
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &FormatError{Field: field, Value: value, Err: err}
	}
	return f / 100, nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, &FormatError{Field: field, Value: value, Err: err}
	}
	return d.Round(4), nil
}

// bondID renders e.g. "acme-plc-5_25-20280115"
func bondID(company string, coupon float64, maturity time.Time) string {
	token := strconv.FormatFloat(scalar.Round(coupon*100, 4), 'f', -1, 64)
	token = strings.ReplaceAll(token, ".", "_")
	return fmt.Sprintf("%s-%s-%s", slug.Make(company), token, maturity.Format("20060102"))
}

func (b *Bond) now() time.Time {
	if b.clock == nil {
		return time.Now()
	}
	return b.clock.Now()
}

// daysToMaturity is negative once the bond has matured
func (b *Bond) daysToMaturity() int {
	return int(math.Floor(b.Maturity.Sub(b.now()).Hours() / 24))
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

// MaturityMonths counts 30-day months until maturity
func (b *Bond) MaturityMonths() int { return floorDiv(b.daysToMaturity(), 30) }

// MaturityYears counts 365-day years until maturity
func (b *Bond) MaturityYears() int { return floorDiv(b.daysToMaturity(), 365) }

// MaturityBucket classifies time to maturity as short, medium or long
func (b *Bond) MaturityBucket() MaturityBucket {
	months := b.MaturityMonths()
	switch {
	case months < 6:
		return BucketShort
	case months < 12:
		return BucketMedium
	default:
		return BucketLong
	}
}

// TotalYield estimates coupon income accrued to maturity on top of a par
// redemption: (price * currentYield / 12) * months + 100. Non-compounding.
func (b *Bond) TotalYield() decimal.Decimal {
	monthly := b.Price.Mul(decimal.NewFromFloat(b.CurrentYield)).Div(twelve)
	return monthly.Mul(decimal.NewFromInt(int64(b.MaturityMonths()))).Add(par)
}

// MaturityGrowth is |price - totalYield| / totalYield.
// Returns +Inf when the total yield is exactly zero.
func (b *Bond) MaturityGrowth() float64 {
	total := b.TotalYield()
	if total.IsZero() {
		return math.Inf(1)
	}
	return b.Price.Sub(total).Abs().Div(total).InexactFloat64()
}

// RiskScore is an additive heuristic, higher means riskier
func (b *Bond) RiskScore() int {
	score := 0
	if years := b.MaturityYears(); years > 0 {
		score += int(math.RoundToEven(float64(years) / 3))
	}
	if !b.IsPublicCompany() {
		score += 2
	}
	if !b.IsSecured() {
		score += 10
	}
	if b.Rating.IsBRate() {
		score += 5
	}
	if b.Rating.IsCRate() {
		score += 20
	}
	return score
}

func (b *Bond) RatingScore() int { return b.Rating.Score() }

func (b *Bond) IsInvestmentGrade() bool { return b.Rating.IsInvestmentGrade() }

func (b *Bond) IsHighYieldGrade() bool { return b.Rating.IsHighYieldGrade() }

// IsPremium reports a price above par
func (b *Bond) IsPremium() bool { return b.Price.GreaterThan(par) }

// IsDiscount reports a price below par
func (b *Bond) IsDiscount() bool { return b.Price.LessThan(par) }

func (b *Bond) IsAvailable() bool { return b.Available.IsPositive() }

func (b *Bond) IsPublicCompany() bool { return b.Ownership == OwnershipPublic }

func (b *Bond) IsSecured() bool { return strings.Contains(b.Seniority, "Secured") }

// IsRate reports whether all three agencies rate the bond in the tier
// starting with the given letter
func (b *Bond) IsRate(tier string) bool {
	count := 0
	for _, sym := range []string{b.SNPRate, b.MoodysRate, b.FitchRate} {
		if tier != "" && strings.HasPrefix(sym, tier) {
			count++
		}
	}
	return count > 2
}
