package domain

import "sort"

// Bonds is an ordered collection of bonds.
// Filters return new collections; only the Sort* methods reorder the receiver.
type Bonds struct {
	items []*Bond
}

// NewBonds builds a collection holding the given bonds in order
func NewBonds(items ...*Bond) *Bonds {
	out := make([]*Bond, 0, len(items))
	for _, b := range items {
		if b != nil {
			out = append(out, b)
		}
	}
	return &Bonds{items: out}
}

func (bs *Bonds) Len() int {
	if bs == nil {
		return 0
	}
	return len(bs.items)
}

// All returns a copy of the bonds in collection order
func (bs *Bonds) All() []*Bond {
	out := make([]*Bond, bs.Len())
	if bs != nil {
		copy(out, bs.items)
	}
	return out
}

// Filter keeps the bonds matching keep, preserving their relative order
func (bs *Bonds) Filter(keep func(*Bond) bool) *Bonds {
	res := &Bonds{items: make([]*Bond, 0, bs.Len())}
	for _, b := range bs.All() {
		if keep(b) {
			res.items = append(res.items, b)
		}
	}
	return res
}

func (bs *Bonds) OnlySecuredSeniority() *Bonds {
	return bs.Filter((*Bond).IsSecured)
}

func (bs *Bonds) OnlyBondType() *Bonds {
	return bs.Filter(func(b *Bond) bool { return b.Type == BondTypeBond })
}

func (bs *Bonds) OnlyGBPCurrency() *Bonds {
	return bs.Filter(func(b *Bond) bool { return b.Currency == "GBP" })
}

func (bs *Bonds) OnlyUKBased() *Bonds {
	return bs.OnlyCountry("GB")
}

// OnlyCountry matches the resolved 2-letter country code
func (bs *Bonds) OnlyCountry(code string) *Bonds {
	return bs.Filter(func(b *Bond) bool { return b.Country == code })
}

func (bs *Bonds) OnlyPublicCompanies() *Bonds {
	return bs.Filter((*Bond).IsPublicCompany)
}

func (bs *Bonds) OnlyPrivateCompanies() *Bonds {
	return bs.Filter(func(b *Bond) bool { return b.Ownership == OwnershipPrivate })
}

func (bs *Bonds) OnlyFixedCoupon() *Bonds {
	return bs.Filter(func(b *Bond) bool { return b.CouponType == CouponTypeFixed })
}

// OnlyCouponGT keeps coupons strictly above value (a fraction, 0.05 = 5%)
func (bs *Bonds) OnlyCouponGT(value float64) *Bonds {
	return bs.Filter(func(b *Bond) bool { return b.Coupon > value })
}

func (bs *Bonds) OnlyCurrentYieldGT(value float64) *Bonds {
	return bs.Filter(func(b *Bond) bool { return b.CurrentYield > value })
}

func (bs *Bonds) OnlyAvailable() *Bonds {
	return bs.Filter((*Bond).IsAvailable)
}

func (bs *Bonds) OnlyInvestmentGrade() *Bonds {
	return bs.Filter((*Bond).IsInvestmentGrade)
}

func (bs *Bonds) OnlyHighYieldGrade() *Bonds {
	return bs.Filter((*Bond).IsHighYieldGrade)
}

func (bs *Bonds) OnlyPremiumPrice() *Bonds {
	return bs.Filter((*Bond).IsPremium)
}

func (bs *Bonds) OnlyDiscountPrice() *Bonds {
	return bs.Filter((*Bond).IsDiscount)
}

// OnlyMaxMaturityMonths keeps bonds maturing in fewer than months
func (bs *Bonds) OnlyMaxMaturityMonths(months int) *Bonds {
	return bs.Filter(func(b *Bond) bool { return b.MaturityMonths() < months })
}

func (bs *Bonds) OnlyMaxMaturityYears(years int) *Bonds {
	return bs.Filter(func(b *Bond) bool { return b.MaturityYears() < years })
}

// OnlyMaturity keeps bonds in the given maturity bucket.
// Anything other than s, m or l is rejected before filtering.
func (bs *Bonds) OnlyMaturity(bucket MaturityBucket) (*Bonds, error) {
	bucket, err := ParseMaturityBucket(string(bucket))
	if err != nil {
		return nil, err
	}
	return bs.Filter(func(b *Bond) bool { return b.MaturityBucket() == bucket }), nil
}

// OnlyGrade applies the investment or high-yield filter; GradeAny is a copy
func (bs *Bonds) OnlyGrade(grade Grade) (*Bonds, error) {
	grade, err := ParseGrade(string(grade))
	if err != nil {
		return nil, err
	}
	switch grade {
	case GradeInvestment:
		return bs.OnlyInvestmentGrade(), nil
	case GradeHighYield:
		return bs.OnlyHighYieldGrade(), nil
	default:
		return bs.Filter(func(*Bond) bool { return true }), nil
	}
}

// sortBy stable-sorts in place; cmp returns <0, 0, >0 for ascending order
func (bs *Bonds) sortBy(cmp func(a, b *Bond) int, dir Direction) {
	if bs == nil {
		return
	}
	sort.SliceStable(bs.items, func(i, j int) bool {
		c := cmp(bs.items[i], bs.items[j])
		if dir == Asc {
			return c < 0
		}
		return c > 0
	})
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (bs *Bonds) SortByMaturity(dir Direction) {
	bs.sortBy(func(a, b *Bond) int { return a.Maturity.Compare(b.Maturity) }, dir)
}

func (bs *Bonds) SortByLength(dir Direction) {
	bs.sortBy(func(a, b *Bond) int { return compareInts(a.MaturityMonths(), b.MaturityMonths()) }, dir)
}

// SortByRatingScore orders by numeric rank, so desc puts the worst rated first
func (bs *Bonds) SortByRatingScore(dir Direction) {
	bs.sortBy(func(a, b *Bond) int { return compareInts(a.RatingScore(), b.RatingScore()) }, dir)
}

func (bs *Bonds) SortByTotalYield(dir Direction) {
	bs.sortBy(func(a, b *Bond) int { return a.TotalYield().Cmp(b.TotalYield()) }, dir)
}

func (bs *Bonds) SortByRiskScore(dir Direction) {
	bs.sortBy(func(a, b *Bond) int { return compareInts(a.RiskScore(), b.RiskScore()) }, dir)
}

// Sort dispatches to the sorter for key. SortNone leaves the order unchanged.
func (bs *Bonds) Sort(key SortKey, dir Direction) error {
	key, err := ParseSortKey(string(key))
	if err != nil {
		return err
	}
	dir, err = ParseDirection(string(dir))
	if err != nil {
		return err
	}

	switch key {
	case SortLength:
		bs.SortByLength(dir)
	case SortMaturity:
		bs.SortByMaturity(dir)
	case SortScore:
		bs.SortByRatingScore(dir)
	case SortYield:
		bs.SortByTotalYield(dir)
	case SortRisk:
		bs.SortByRiskScore(dir)
	}
	return nil
}

// First returns up to count bonds from the front
func (bs *Bonds) First(count int) *Bonds {
	all := bs.All()
	count = max(0, min(count, len(all)))
	return NewBonds(all[:count]...)
}

// FindByTicker returns the first bond with the ticker, or false
func (bs *Bonds) FindByTicker(ticker string) (*Bond, bool) {
	return bs.find(func(b *Bond) bool { return b.Ticker == ticker })
}

// FindByISIN returns the first bond with the ISIN, or false
func (bs *Bonds) FindByISIN(isin string) (*Bond, bool) {
	return bs.find(func(b *Bond) bool { return b.ISIN == isin })
}

func (bs *Bonds) find(match func(*Bond) bool) (*Bond, bool) {
	for _, b := range bs.All() {
		if match(b) {
			return b, true
		}
	}
	return nil, false
}

// Concat returns the receiver's bonds followed by other's
func (bs *Bonds) Concat(other *Bonds) *Bonds {
	return NewBonds(append(bs.All(), other.All()...)...)
}

func (bs *Bonds) Tickers() []string {
	out := make([]string, 0, bs.Len())
	for _, b := range bs.All() {
		out = append(out, b.Ticker)
	}
	return out
}

func (bs *Bonds) CompanyNames() []string {
	out := make([]string, 0, bs.Len())
	for _, b := range bs.All() {
		out = append(out, b.Company)
	}
	return out
}
