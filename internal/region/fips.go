package region

import (
	"sort"
	"strings"
)

// fipsByPostal maps postal codes to two-digit state FIPS codes.
var fipsByPostal = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06", "CO": "08", "CT": "09", "DE": "10",
	"DC": "11", "FL": "12", "GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18", "IA": "19",
	"KS": "20", "KY": "21", "LA": "22", "ME": "23", "MD": "24", "MA": "25", "MI": "26", "MN": "27",
	"MS": "28", "MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33", "NJ": "34", "NM": "35",
	"NY": "36", "NC": "37", "ND": "38", "OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44",
	"SC": "45", "SD": "46", "TN": "47", "TX": "48", "UT": "49", "VT": "50", "VA": "51", "WA": "53",
	"WV": "54", "WI": "55", "WY": "56",
	"AS": "60", "GU": "66", "MP": "69", "PR": "72", "VI": "78",
}

var postalByFIPS = func() map[string]string {
	m := make(map[string]string, len(fipsByPostal))
	for p, f := range fipsByPostal {
		m[f] = p
	}
	return m
}()

// FIPS returns the state FIPS code for a postal code. Lookup is
// case-insensitive.
func FIPS(postal string) (string, bool) {
	f, ok := fipsByPostal[strings.ToUpper(strings.TrimSpace(postal))]
	return f, ok
}

// Postal is the reverse of FIPS.
func Postal(fips string) (string, bool) {
	p, ok := postalByFIPS[strings.TrimSpace(fips)]
	return p, ok
}

// PostalCodes lists every known postal code, sorted.
func PostalCodes() []string {
	out := make([]string, 0, len(fipsByPostal))
	for p := range fipsByPostal {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
