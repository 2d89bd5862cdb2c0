// Package country maps between ISO 3166-1 alpha-2 and alpha-3 country
// codes. The table is a fixed, immutable mapping covering the
// countries present in the supported datasets; lookups never fail
// with an error — a miss is reported through the second return value
// and callers decide whether to drop or keep the row.
package country

import "strings"

// ============================================================================
// ISO2 ↔ ISO3 LOOKUP — Immutable static mapping, built once
// ============================================================================

var iso2ToISO3 = map[string]string{
	"AF": "AFG", "AL": "ALB", "DZ": "DZA", "AR": "ARG", "AM": "ARM",
	"AU": "AUS", "AT": "AUT", "AZ": "AZE", "BH": "BHR", "BD": "BGD",
	"BY": "BLR", "BE": "BEL", "BJ": "BEN", "BO": "BOL", "BA": "BIH",
	"BW": "BWA", "BR": "BRA", "BG": "BGR", "BF": "BFA", "BI": "BDI",
	"KH": "KHM", "CM": "CMR", "CA": "CAN", "CF": "CAF", "TD": "TCD",
	"CL": "CHL", "CN": "CHN", "CO": "COL", "CG": "COG", "CD": "COD",
	"CR": "CRI", "CI": "CIV", "HR": "HRV", "CY": "CYP", "CZ": "CZE",
	"DK": "DNK", "DO": "DOM", "EC": "ECU", "EG": "EGY", "SV": "SLV",
	"EE": "EST", "ET": "ETH", "FI": "FIN", "FR": "FRA", "GA": "GAB",
	"GE": "GEO", "DE": "DEU", "GH": "GHA", "GR": "GRC", "GT": "GTM",
	"GN": "GIN", "HT": "HTI", "HN": "HND", "HK": "HKG", "HU": "HUN",
	"IS": "ISL", "IN": "IND", "ID": "IDN", "IR": "IRN", "IQ": "IRQ",
	"IE": "IRL", "IL": "ISR", "IT": "ITA", "JM": "JAM", "JP": "JPN",
	"JO": "JOR", "KZ": "KAZ", "KE": "KEN", "KR": "KOR", "KW": "KWT",
	"KG": "KGZ", "LA": "LAO", "LV": "LVA", "LB": "LBN", "LR": "LBR",
	"LY": "LBY", "LT": "LTU", "LU": "LUX", "MG": "MDG", "MW": "MWI",
	"MY": "MYS", "ML": "MLI", "MT": "MLT", "MR": "MRT", "MU": "MUS",
	"MX": "MEX", "MD": "MDA", "MN": "MNG", "ME": "MNE", "MA": "MAR",
	"MZ": "MOZ", "MM": "MMR", "NA": "NAM", "NP": "NPL", "NL": "NLD",
	"NZ": "NZL", "NI": "NIC", "NE": "NER", "NG": "NGA", "NO": "NOR",
	"OM": "OMN", "PK": "PAK", "PA": "PAN", "PY": "PRY", "PE": "PER",
	"PH": "PHL", "PL": "POL", "PT": "PRT", "QA": "QAT", "RO": "ROU",
	"RU": "RUS", "RW": "RWA", "SA": "SAU", "SN": "SEN", "RS": "SRB",
	"SL": "SLE", "SG": "SGP", "SK": "SVK", "SI": "SVN", "ZA": "ZAF",
	"ES": "ESP", "LK": "LKA", "SD": "SDN", "SE": "SWE", "CH": "CHE",
	"SY": "SYR", "TW": "TWN", "TJ": "TJK", "TZ": "TZA", "TH": "THA",
	"TG": "TGO", "TN": "TUN", "TR": "TUR", "UG": "UGA", "UA": "UKR",
	"AE": "ARE", "GB": "GBR", "US": "USA", "UY": "URY", "UZ": "UZB",
	"VE": "VEN", "VN": "VNM", "YE": "YEM", "ZM": "ZMB", "ZW": "ZWE",
}

// Reverse index, built once at process start.
var iso3ToISO2 = func() map[string]string {
	m := make(map[string]string, len(iso2ToISO3))
	for k2, k3 := range iso2ToISO3 {
		m[k3] = k2
	}
	return m
}()

// ToISO3 converts a two-letter code to its three-letter form.
// Case-insensitive. The bool is false when the code is unknown.
func ToISO3(iso2 string) (string, bool) {
	code, ok := iso2ToISO3[strings.ToUpper(strings.TrimSpace(iso2))]
	return code, ok
}

// ToISO2 converts a three-letter code to its two-letter form.
// Case-insensitive. The bool is false when the code is unknown.
func ToISO2(iso3 string) (string, bool) {
	code, ok := iso3ToISO2[strings.ToUpper(strings.TrimSpace(iso3))]
	return code, ok
}

// KnownISO3 reports whether a three-letter code is in the table.
func KnownISO3(iso3 string) bool {
	_, ok := ToISO2(iso3)
	return ok
}
