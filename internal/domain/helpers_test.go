package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var testClock = FixedClock(testNow)

// rawBond is a secured, public, fixed-coupon GBP bond maturing in 24 months
func rawBond() RawBond {
	return RawBond{
		Company:         "Acme Holdings PLC",
		Industry:        "Industrials",
		Ticker:          "ACME1",
		Type:            BondTypeBond,
		Market:          "Main",
		Seniority:       "Senior Secured",
		ISIN:            "GB0000000001",
		Currency:        "GBP",
		State:           "Active",
		MoodysRate:      "Baa2",
		SNPRate:         "BBB",
		FitchRate:       "BBB",
		Country:         "UK",
		Ownership:       OwnershipPublic,
		Maturity:        "21-12-2025",
		NextPayment:     "15-06-2024",
		CouponType:      CouponTypeFixed,
		CouponFrequency: "Semi-Annual",
		Coupon:          "5.25%",
		CurrentYield:    "6",
		YTMYTC:          "7.123456",
		Price:           "95",
		Available:       "1000",
	}
}

func newTestBond(t *testing.T, mutate func(*RawBond)) *Bond {
	t.Helper()
	raw := rawBond()
	if mutate != nil {
		mutate(&raw)
	}
	b, err := NewBond(raw, testClock)
	require.NoError(t, err)
	return b
}
