package domain

import "strings"

// MaturityBucket is a coarse time-to-maturity class
type MaturityBucket string

const (
	BucketShort  MaturityBucket = "s"
	BucketMedium MaturityBucket = "m"
	BucketLong   MaturityBucket = "l"
)

// ParseMaturityBucket accepts only s, m or l.
// Like every selector parser here it is case-sensitive: names are lower case.
func ParseMaturityBucket(s string) (MaturityBucket, error) {
	b := MaturityBucket(strings.TrimSpace(s))
	switch b {
	case BucketShort, BucketMedium, BucketLong:
		return b, nil
	default:
		return "", ErrInvalidBucket
	}
}

// SortKey selects the metric a collection is ordered by
type SortKey string

const (
	SortNone     SortKey = ""
	SortLength   SortKey = "length"   // maturity in months
	SortMaturity SortKey = "maturity" // maturity date
	SortScore    SortKey = "score"    // rating score
	SortYield    SortKey = "yield"    // total yield
	SortRisk     SortKey = "risk"     // risk score
)

// ParseSortKey validates a sort name. An empty name means no sorting.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.TrimSpace(s))
	switch k {
	case SortNone, SortLength, SortMaturity, SortScore, SortYield, SortRisk:
		return k, nil
	default:
		return "", ErrInvalidSortKey
	}
}

// Direction is the sort order
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection validates a direction name, defaulting to Desc when empty
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.TrimSpace(s)) {
	case "", Desc:
		return Desc, nil
	case Asc:
		return Asc, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Grade narrows a screen to one credit quality tier
type Grade string

const (
	GradeAny        Grade = ""
	GradeInvestment Grade = "investment"
	GradeHighYield  Grade = "high-yield"
)

func ParseGrade(s string) (Grade, error) {
	g := Grade(strings.TrimSpace(s))
	switch g {
	case GradeAny, GradeInvestment, GradeHighYield:
		return g, nil
	default:
		return "", ErrInvalidGrade
	}
}

// OutputMode selects how a screened collection is presented
type OutputMode string

const (
	OutputTable   OutputMode = "table"
	OutputTicker  OutputMode = "ticker"
	OutputCompany OutputMode = "company"
)

// ParseOutputMode validates an output mode, defaulting to OutputTable when
// empty. "dataframe" is accepted as an alias of table.
func ParseOutputMode(s string) (OutputMode, error) {
	switch m := OutputMode(strings.TrimSpace(s)); m {
	case "", OutputTable, "dataframe":
		return OutputTable, nil
	case OutputTicker, OutputCompany:
		return m, nil
	default:
		return "", ErrInvalidOutputMode
	}
}
