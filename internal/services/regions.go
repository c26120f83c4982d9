package services

import "strings"

// Fallbacks used when a location string omits its parts.
const (
	DefaultCity   = "Dallas"
	DefaultRegion = "TX"
)

var stateCodes = map[string]string{
	"alabama":        "AL",
	"alaska":         "AK",
	"arizona":        "AZ",
	"arkansas":       "AR",
	"california":     "CA",
	"colorado":       "CO",
	"connecticut":    "CT",
	"delaware":       "DE",
	"florida":        "FL",
	"georgia":        "GA",
	"hawaii":         "HI",
	"idaho":          "ID",
	"illinois":       "IL",
	"indiana":        "IN",
	"iowa":           "IA",
	"kansas":         "KS",
	"kentucky":       "KY",
	"louisiana":      "LA",
	"maine":          "ME",
	"maryland":       "MD",
	"massachusetts":  "MA",
	"michigan":       "MI",
	"minnesota":      "MN",
	"mississippi":    "MS",
	"missouri":       "MO",
	"montana":        "MT",
	"nebraska":       "NE",
	"nevada":         "NV",
	"new hampshire":  "NH",
	"new jersey":     "NJ",
	"new mexico":     "NM",
	"new york":       "NY",
	"north carolina": "NC",
	"north dakota":   "ND",
	"ohio":           "OH",
	"oklahoma":       "OK",
	"oregon":         "OR",
	"pennsylvania":   "PA",
	"rhode island":   "RI",
	"south carolina": "SC",
	"south dakota":   "SD",
	"tennessee":      "TN",
	"texas":          "TX",
	"utah":           "UT",
	"vermont":        "VT",
	"virginia":       "VA",
	"washington":     "WA",
	"west virginia":  "WV",
	"wisconsin":      "WI",
	"wyoming":        "WY",
}

// RegionCode maps a state name or code to its two-letter code.
//
// Two-letter input is upper-cased and passed through; unknown names yield fallback.
func RegionCode(name, fallback string) string {
	name = strings.TrimSpace(name)
	if len(name) == 2 {
		return strings.ToUpper(name)
	}
	if code, ok := stateCodes[strings.ToLower(name)]; ok {
		return code
	}
	return fallback
}

// SplitLocation splits "City, Region" into a locality and a region code.
//
// Missing parts fall back to fallbackCity and fallbackRegion.
func SplitLocation(location, fallbackCity, fallbackRegion string) (city, region string) {
	parts := strings.Split(location, ",")

	city = strings.TrimSpace(parts[0])
	if city == "" {
		city = fallbackCity
	}

	region = fallbackRegion
	if len(parts) > 1 {
		if r := strings.TrimSpace(parts[1]); r != "" {
			region = RegionCode(r, fallbackRegion)
		}
	}
	return city, region
}
