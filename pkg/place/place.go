/*
place turns free-form place text into something a geocoder can resolve:
normalized text, a direct coordinate pair, or an ordered list of
candidate queries to try in turn.
*/
package place

import (
	"regexp"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	reSpace    = regexp.MustCompile(`[\s\v\x{85}\pZ]+`)
	reTrailing = regexp.MustCompile(`[,\s\v\x{85}\pZ]+$`)
	reLatLon   = regexp.MustCompile(`^\s*([+-]?\d+(?:\.\d+)?)\s*[, ]\s*([+-]?\d+(?:\.\d+)?)\s*$`)
	rePunct    = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\-']`)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Normalize collapses runs of whitespace into a single space, trims the
// result and removes any trailing run of commas and whitespace.
func Normalize(s string) string {
	s = strings.TrimSpace(reSpace.ReplaceAllString(s, " "))
	return reTrailing.ReplaceAllString(s, "")
}

// ParseLatLon matches the whole string against a "lat,lon" or "lat lon"
// pair and returns the two numbers in the order given. The values are not
// range checked.
func ParseLatLon(s string) (float64, float64, bool) {
	m := reLatLon.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// Candidates returns the queries to send to a geocoder for normalized text,
// most trusted first: the text itself, the part before the first comma,
// and the text with punctuation replaced by spaces (whitespace collapsed
// again afterwards). Empty and repeated queries are dropped.
func Candidates(s string) []string {
	result := make([]string, 0, 3)
	add := func(q string) {
		if q == "" {
			return
		}
		for _, existing := range result {
			if existing == q {
				return
			}
		}
		result = append(result, q)
	}

	add(s)
	if prefix, _, found := strings.Cut(s, ","); found {
		add(strings.TrimSpace(prefix))
	}
	add(strings.TrimSpace(reSpace.ReplaceAllString(rePunct.ReplaceAllString(s, " "), " ")))

	return result
}
