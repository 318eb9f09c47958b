// internal/booking/names.go
package booking

import (
	"regexp"
	"strconv"
	"strings"
)

// fallbackCourtBase names courts when there is no existing court to derive
// a sequence from.
const fallbackCourtBase = "Court"

var trailingNumberRegex = regexp.MustCompile(`^(.*?)(\d+)$`)

// splitTrailingNumber splits a court name into a prefix and its trailing
// decimal run. ok is false when the name has no trailing digits.
func splitTrailingNumber(name string) (prefix string, number int, ok bool) {
	match := trailingNumberRegex.FindStringSubmatch(name)
	if match == nil {
		return "", 0, false
	}
	number, err := strconv.Atoi(match[2])
	if err != nil {
		// A digit run too long for int; treat the name as non-numeric.
		return "", 0, false
	}
	return match[1], number, true
}

// GenerateNames produces count court names from a base name. A base with a
// trailing number continues the numeric series ("Pista 14" -> "Pista 15", no
// zero padding). Otherwise the first name is the literal base and later names
// get a positional suffix ("Court A" -> "Court A 2").
func GenerateNames(base string, count int) []string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = fallbackCourtBase + " 1"
	}
	if count <= 0 {
		return nil
	}

	names := make([]string, count)
	prefix, number, numeric := splitTrailingNumber(base)
	for i := range names {
		switch {
		case numeric:
			names[i] = prefix + strconv.Itoa(number+i)
		case i == 0:
			names[i] = base
		default:
			names[i] = base + " " + strconv.Itoa(i+1)
		}
	}
	return names
}

// ExtendNames produces count names for courts appended after existing ones,
// continuing the series of lastName, the name of the final existing court.
// A numeric lastName continues its number run; a non-numeric one gets
// positional suffixes counted from existing. An empty lastName means every
// court was removed, so names fall back to "Court N".
func ExtendNames(lastName string, existing, count int) []string {
	lastName = strings.TrimSpace(lastName)
	if count <= 0 {
		return nil
	}

	names := make([]string, count)
	prefix, number, numeric := splitTrailingNumber(lastName)
	for i := range names {
		switch {
		case lastName == "":
			names[i] = fallbackCourtBase + " " + strconv.Itoa(existing+i+1)
		case numeric:
			names[i] = prefix + strconv.Itoa(number+i+1)
		default:
			names[i] = lastName + " " + strconv.Itoa(existing+i+1)
		}
	}
	return names
}
