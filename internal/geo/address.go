package geo

import (
	"strings"
	"unicode"
)

// ResolveCityState decides the displayed city/state for an attraction.
// Stored values win whenever both are present and the state is not the
// importer's "US" placeholder; otherwise the free-text address is scanned and
// parsed values fill in whichever of the two is missing.
func ResolveCityState(city, state, address *string) (*string, *string) {
	storedCity := trimmedOrNil(city)
	storedState := trimmedOrNil(state)
	if storedState != nil && strings.EqualFold(*storedState, "US") {
		storedState = nil
	}
	if storedCity != nil && storedState != nil {
		return storedCity, storedState
	}

	var parsedCity, parsedState *string
	if address != nil {
		if c, s, ok := ParseCityState(*address); ok {
			if c != "" {
				parsedCity = &c
			}
			parsedState = &s
		}
	}

	if storedCity == nil {
		storedCity = parsedCity
	}
	if storedState == nil {
		storedState = parsedState
	}
	return storedCity, storedState
}

// ParseCityState scans the comma-separated segments of a free-text address
// from the end, looking for a segment that starts with a 2-letter alphabetic
// state token (a trailing ZIP in the same segment is tolerated). The segment
// before it, if any, is taken as the city. Best effort only; malformed
// addresses yield ok=false.
func ParseCityState(address string) (city, state string, ok bool) {
	segments := strings.Split(address, ",")
	for i := len(segments) - 1; i >= 0; i-- {
		fields := strings.Fields(segments[i])
		if len(fields) == 0 {
			continue
		}
		token := fields[0]
		if !isStateToken(token) {
			continue
		}
		state = strings.ToUpper(token)
		if i > 0 {
			city = strings.TrimSpace(segments[i-1])
		}
		return city, state, true
	}
	return "", "", false
}

func isStateToken(token string) bool {
	if len(token) != 2 {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
