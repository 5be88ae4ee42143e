package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBond_Normalization(t *testing.T) {
	b := newTestBond(t, func(r *RawBond) {
		r.Price = "95.123456"
		r.Available = "1234.56789"
	})

	assert.InDelta(t, 0.0525, b.Coupon, 1e-12)
	assert.InDelta(t, 0.06, b.CurrentYield, 1e-12)
	assert.InDelta(t, 0.07123, b.YTMYTC, 1e-12)
	assert.True(t, decimal.RequireFromString("95.1235").Equal(b.Price), b.Price.String())
	assert.True(t, decimal.RequireFromString("1234.5679").Equal(b.Available), b.Available.String())
	assert.Equal(t, "GB", b.Country)
	assert.Equal(t, time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC), b.Maturity)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), b.NextPayment)
	assert.Equal(t, AgencySNP, b.Rating.Agency())
	assert.Equal(t, 9, b.RatingScore())
}

func TestNewBond_ID(t *testing.T) {
	b := newTestBond(t, nil)

	assert.Equal(t, "acme-holdings-plc-5_25-20251221", b.ID)
	assert.Equal(t, uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.ID)), b.UID)

	again := newTestBond(t, nil)
	assert.Equal(t, b.ID, again.ID)
	assert.Equal(t, b.UID, again.UID)
}

func TestNewBond_FloatingCouponKeepsMargin(t *testing.T) {
	b := newTestBond(t, func(r *RawBond) { r.Coupon = "3m+4.5%" })

	assert.InDelta(t, 0.045, b.Coupon, 1e-12)
	assert.Equal(t, "acme-holdings-plc-4_5-20251221", b.ID)
}

func TestNewBond_PercentRoundTrip(t *testing.T) {
	inputs := []string{"0", "1", "4.5", "5.25%", "7.125", "12.34567", "0.001%"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			b := newTestBond(t, func(r *RawBond) {
				r.Coupon = in
				r.CurrentYield = in
				r.YTMYTC = in
			})
			want, err := parsePercent("coupon", in)
			require.NoError(t, err)

			assert.InDelta(t, want*100, b.Coupon*100, 1e-9)
			assert.InDelta(t, want*100, b.CurrentYield*100, 1e-3)
			assert.InDelta(t, want*100, b.YTMYTC*100, 1e-3)
		})
	}
}

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UK", "GB"},
		{"USA", "US"},
		{"France", "FR"},
		{"Germany", "DE"},
		{"GB", "GB"},
		{"Isle of Man", "IM"},
		{"Virgin Islands, British", "VG"},
		{"Korea, Republic of", "KR"},
		{"Viet Nam", "VN"},
		{"Bolivia, Plurinational State of", "BO"},
		{" Isle of Man ", "IM"},
		{"Atlantis", "Atlantis"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCountry(tt.in))
		})
	}
}

func TestNewBond_FormatErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RawBond)
		wantField string
	}{
		{name: "iso maturity", mutate: func(r *RawBond) { r.Maturity = "2025-12-21" }, wantField: "maturity"},
		{name: "blank next payment", mutate: func(r *RawBond) { r.NextPayment = "" }, wantField: "next_payment"},
		{name: "text coupon", mutate: func(r *RawBond) { r.Coupon = "n/a" }, wantField: "coupon"},
		{name: "text yield", mutate: func(r *RawBond) { r.CurrentYield = "high" }, wantField: "current_yield"},
		{name: "text ytm", mutate: func(r *RawBond) { r.YTMYTC = "-" }, wantField: "ytm_ytc"},
		{name: "text price", mutate: func(r *RawBond) { r.Price = "abc" }, wantField: "price"},
		{name: "negative available", mutate: func(r *RawBond) { r.Available = "-5" }, wantField: "available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawBond()
			tt.mutate(&raw)

			b, err := NewBond(raw, testClock)

			assert.Nil(t, b)
			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantField, fe.Field)
		})
	}
}

func TestParseRow(t *testing.T) {
	row := []string{
		"Acme Holdings PLC", "Industrials", "ACME1", "Bond", "Main", "Senior Secured",
		"GB0000000001", "GBP", "Active", "Baa2", "", "BBB", "France", "Private",
		"21-12-2025", "15-06-2024", "Fixed", "Quarterly", "3m+4.5%", "6", "7", "95", "0",
	}

	b, err := ParseRow(row, testClock)

	require.NoError(t, err)
	assert.Equal(t, "ACME1", b.Ticker)
	assert.Equal(t, "FR", b.Country)
	assert.Equal(t, AgencyMoodys, b.Rating.Agency())
	assert.Equal(t, "Quarterly", b.CouponFrequency)
	assert.InDelta(t, 0.045, b.Coupon, 1e-12)
	assert.False(t, b.IsAvailable())

	_, err = ParseRow(row[:10], testClock)
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "row", fe.Field)
}

func TestBond_MaturityMetrics(t *testing.T) {
	tests := []struct {
		maturity   string
		wantMonths int
		wantYears  int
		wantBucket MaturityBucket
	}{
		{"10-04-2024", 3, 0, BucketShort},
		{"19-07-2024", 6, 0, BucketMedium},
		{"04-02-2025", 13, 1, BucketLong},
		{"21-12-2025", 24, 1, BucketLong},
		{"09-01-2030", 73, 6, BucketLong},
		{"22-11-2023", -2, -1, BucketShort},
	}

	for _, tt := range tests {
		t.Run(tt.maturity, func(t *testing.T) {
			b := newTestBond(t, func(r *RawBond) { r.Maturity = tt.maturity })

			assert.Equal(t, tt.wantMonths, b.MaturityMonths())
			assert.Equal(t, tt.wantYears, b.MaturityYears())
			assert.Equal(t, tt.wantBucket, b.MaturityBucket())
		})
	}
}

func TestBond_TotalYieldAndGrowth(t *testing.T) {
	b := newTestBond(t, nil) // price 95, current yield 6%, 24 months

	require.Equal(t, 24, b.MaturityMonths())
	assert.True(t, decimal.RequireFromString("111.4").Equal(b.TotalYield()), b.TotalYield().String())
	assert.InDelta(t, 0.1472, b.MaturityGrowth(), 0.0001)
}

// A total yield of exactly zero has no defined growth; it reports +Inf.
func TestBond_MaturityGrowthWithZeroTotalYield(t *testing.T) {
	b := newTestBond(t, func(r *RawBond) {
		r.Price = "100"
		r.CurrentYield = "12"
		r.Maturity = "25-10-2015" // -100 months
	})

	require.Equal(t, -100, b.MaturityMonths())
	assert.True(t, b.TotalYield().IsZero())
	assert.True(t, math.IsInf(b.MaturityGrowth(), 1))
}

func TestBond_RiskScore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawBond)
		want   int
	}{
		{
			name: "unsecured private B-tier six years",
			mutate: func(r *RawBond) {
				r.Seniority = "Unsecured"
				r.Ownership = OwnershipPrivate
				r.Maturity = "09-01-2030"
			},
			want: 19,
		},
		{
			name:   "secured public B-tier one year",
			mutate: func(r *RawBond) {},
			want:   5, // round(1/3) = 0
		},
		{
			name: "C-tier adds twenty",
			mutate: func(r *RawBond) {
				r.SNPRate = "CCC"
				r.Maturity = "29-12-2033"
			},
			want: 3 + 20,
		},
		{
			name: "A-tier and past maturity add nothing",
			mutate: func(r *RawBond) {
				r.SNPRate = "A"
				r.Maturity = "22-11-2023"
			},
			want: 0,
		},
		{
			name: "not rated contributes nothing",
			mutate: func(r *RawBond) {
				r.SNPRate, r.MoodysRate, r.FitchRate = "", "", ""
				r.Seniority = "Senior Unsecured"
			},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newTestBond(t, tt.mutate).RiskScore())
		})
	}
}

func TestBond_Classifiers(t *testing.T) {
	par := newTestBond(t, func(r *RawBond) { r.Price = "100" })
	assert.False(t, par.IsPremium())
	assert.False(t, par.IsDiscount())

	premium := newTestBond(t, func(r *RawBond) { r.Price = "100.0001" })
	assert.True(t, premium.IsPremium())

	discount := newTestBond(t, nil)
	assert.True(t, discount.IsDiscount())
	assert.True(t, discount.IsAvailable())
	assert.True(t, discount.IsPublicCompany())
	assert.True(t, discount.IsSecured())

	unsecured := newTestBond(t, func(r *RawBond) {
		r.Seniority = "Unsecured"
		r.Available = "0"
		r.Ownership = OwnershipPrivate
	})
	assert.False(t, unsecured.IsSecured())
	assert.False(t, unsecured.IsAvailable())
	assert.False(t, unsecured.IsPublicCompany())
}

func TestBond_IsRate(t *testing.T) {
	allB := newTestBond(t, nil) // Baa2 / BBB / BBB
	assert.True(t, allB.IsRate("B"))
	assert.False(t, allB.IsRate("A"))
	assert.False(t, allB.IsRate(""))

	split := newTestBond(t, func(r *RawBond) { r.FitchRate = "A" })
	assert.False(t, split.IsRate("B"))
}

func TestNewBond_NilClockUsesSystemTime(t *testing.T) {
	raw := rawBond()
	raw.Maturity = time.Now().AddDate(3, 0, 0).Format(DateLayout)

	b, err := NewBond(raw, nil)

	require.NoError(t, err)
	assert.Equal(t, BucketLong, b.MaturityBucket())
}
