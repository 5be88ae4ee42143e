package domain

import (
	"math"
	"strings"
)

// Agency identifies the credit rating agency that issued a symbol
type Agency string

const (
	AgencySNP    Agency = "S&P"
	AgencyMoodys Agency = "Moody's"
	AgencyFitch  Agency = "Fitch"
)

// Not-rated sentinels, one per agency
const (
	NotRatedSNP    = "NR"
	NotRatedMoodys = "WR"
	NotRatedFitch  = "WD"
)

// snpScale ranks S&P symbols. Lower rank = better credit quality, 0 = not rated.
var snpScale = map[string]int{
	"NR":   0,
	"AAA":  1,
	"AA+":  2,
	"AA":   3,
	"AA-":  4,
	"A+":   5,
	"A":    6,
	"A-":   7,
	"BBB+": 8,
	"BBB":  9,
	"BBB-": 10,
	"BB+":  11,
	"BB":   12,
	"BB-":  13,
	"B+":   14,
	"B":    15,
	"B-":   16,
	"CCC+": 17,
	"CCC":  18,
	"CCC-": 19,
	"CC+":  20,
	"CC":   21,
	"CC-":  22,
	"C+":   23,
	"C":    24,
	"C-":   25,
}

var moodysScale = map[string]int{
	"WR":   0,
	"Aaa":  1,
	"Aa1":  2,
	"Aa2":  3,
	"Aa3":  4,
	"A1":   5,
	"A2":   6,
	"A3":   7,
	"Baa1": 8,
	"Baa2": 9,
	"Baa3": 10,
	"Ba1":  11,
	"Ba2":  12,
	"Ba3":  13,
	"B1":   14,
	"B2":   15,
	"B3":   16,
	"Caa1": 17,
	"Caa2": 18,
	"Caa3": 19,
	"Ca":   20,
	"C":    21,
}

// fitchScale is the S&P scale with Fitch's own withdrawn sentinel
var fitchScale = func() map[string]int {
	m := make(map[string]int, len(snpScale)+1)
	for k, v := range snpScale {
		m[k] = v
	}
	m[NotRatedFitch] = 0
	return m
}()

type agencyTable struct {
	agency   Agency
	notRated string
	scale    map[string]int
}

// agencyPreference is the order in which agencies are consulted
var agencyPreference = []agencyTable{
	{AgencySNP, NotRatedSNP, snpScale},
	{AgencyMoodys, NotRatedMoodys, moodysScale},
	{AgencyFitch, NotRatedFitch, fitchScale},
}

// Rating holds the three agency symbols of a bond and the one used for scoring.
// A zero Rating scores as not rated.
type Rating struct {
	snp    string
	moodys string
	fitch  string

	agency Agency
	symbol string
	score  int
}

// NewRating records the agency symbols, replacing blanks with each agency's
// not-rated sentinel, and resolves the effective symbol S&P → Moody's → Fitch.
// Unknown symbols are skipped the same way as sentinels.
func NewRating(snp, moodys, fitch string) Rating {
	r := Rating{
		snp:    orSentinel(snp, NotRatedSNP),
		moodys: orSentinel(moodys, NotRatedMoodys),
		fitch:  orSentinel(fitch, NotRatedFitch),
		agency: AgencySNP,
		symbol: NotRatedSNP,
	}

	symbols := []string{r.snp, r.moodys, r.fitch}
	for i, t := range agencyPreference {
		sym := symbols[i]
		if sym == t.notRated {
			continue
		}
		if rank, ok := t.scale[sym]; ok {
			r.agency = t.agency
			r.symbol = sym
			r.score = rank
			break
		}
	}
	return r
}

// SNP returns the S&P symbol as recorded, NR when absent
func (r Rating) SNP() string { return orSentinel(r.snp, NotRatedSNP) }

// Moodys returns the Moody's symbol as recorded, WR when absent
func (r Rating) Moodys() string { return orSentinel(r.moodys, NotRatedMoodys) }

// Fitch returns the Fitch symbol as recorded, WD when absent
func (r Rating) Fitch() string { return orSentinel(r.fitch, NotRatedFitch) }

func orSentinel(symbol, sentinel string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return sentinel
	}
	return symbol
}

// Agency returns the agency whose symbol is used for scoring
func (r Rating) Agency() Agency {
	if r.agency == "" {
		return AgencySNP
	}
	return r.agency
}

// Symbol returns the effective rating symbol
func (r Rating) Symbol() string {
	if r.symbol == "" {
		return NotRatedSNP
	}
	return r.symbol
}

// Score returns the rank of the effective symbol
func (r Rating) Score() int { return r.score }

// IsARate reports the upper investment grade tiers (AA+ through A-)
func (r Rating) IsARate() bool { return 1 < r.score && r.score <= 7 }

func (r Rating) IsBRate() bool { return 7 < r.score && r.score <= 16 }

func (r Rating) IsCRate() bool { return 16 < r.score && r.score <= 19 }

// IsInvestmentGrade is false for unrated bonds
func (r Rating) IsInvestmentGrade() bool { return 0 < r.score && r.score <= 10 }

// IsHighYieldGrade is false for unrated bonds
func (r Rating) IsHighYieldGrade() bool { return r.score > 10 }

// qualityRank places unrated bonds below every rated symbol
func (r Rating) qualityRank() int {
	if r.score == 0 {
		return math.MaxInt
	}
	return r.score
}

// Compare orders ratings by credit quality: +1 when r is better than o,
// -1 when worse, 0 when the ranks match. Not rated sorts below C-.
func (r Rating) Compare(o Rating) int {
	a, b := r.qualityRank(), o.qualityRank()
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}

func (r Rating) Equal(o Rating) bool { return r.score == o.score }

// Less reports whether r is a worse rating than o
func (r Rating) Less(o Rating) bool { return r.Compare(o) < 0 }

// Greater reports whether r is a better rating than o
func (r Rating) Greater(o Rating) bool { return r.Compare(o) > 0 }
