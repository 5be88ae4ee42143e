package domain

import (
	"strings"
	"sync"

	"github.com/biter777/countries"
)

// countryOverrides take precedence over the dataset lookup
var countryOverrides = map[string]string{
	"UK":  "GB",
	"USA": "US",
}

// countryCodes maps English country names to ISO 3166-1 alpha-2 codes.
// Built once on first use and never mutated afterwards.
var countryCodes = sync.OnceValue(func() map[string]string {
	all := countries.All()
	codes := make(map[string]string, len(all))
	for _, c := range all {
		alpha2 := c.Alpha2()
		if alpha2 == "" {
			continue
		}
		codes[c.String()] = alpha2
	}
	return codes
})

// ResolveCountry turns a raw country value into its 2-letter code.
// Lookup order: overrides, exact dataset name, then the dataset's own name
// matching, which also knows ISO forms like "Korea, Republic of".
// Values that cannot be resolved pass through unchanged.
func ResolveCountry(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if code, ok := countryOverrides[value]; ok {
		return code
	}
	if code, ok := countryCodes()[value]; ok {
		return code
	}
	if c := countries.ByName(value); c != countries.Unknown {
		if alpha2 := c.Alpha2(); alpha2 != "" {
			return alpha2
		}
	}
	return value
}
