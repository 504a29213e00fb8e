package utils

import (
	"regexp"
	"strings"
)

const (
	phoneDigits      = 10
	vehicleRawMaxLen = 10
)

var (
	nonDigitRE   = regexp.MustCompile(`[^0-9]`)
	nonAlnumRE   = regexp.MustCompile(`[^A-Z0-9]`)
	seriesRE     = regexp.MustCompile(`^([A-Z]{2})([0-9]{2})([A-Z]{1,2})([0-9]{0,4})$`)
	vehicleRE    = regexp.MustCompile(`^[A-Z]{2}-[0-9]{2}-[A-Z]{1,2}-[0-9]{4}$`)
	vehicleLaxRE = regexp.MustCompile(`^([A-Z]{2})[ -]?([0-9]{2})[ -]?([A-Z]{1,2})[ -]?([0-9]{4})$`)
)

// FormatPhone strips everything that is not a digit and keeps the first 10.
func FormatPhone(raw string) string {
	digits := nonDigitRE.ReplaceAllString(raw, "")
	if len(digits) > phoneDigits {
		digits = digits[:phoneDigits]
	}
	return digits
}

// ValidPhone reports whether a formatted phone has exactly 10 digits.
func ValidPhone(phone string) bool {
	return len(phone) == phoneDigits && nonDigitRE.FindStringIndex(phone) == nil
}

// FormatVehicleNumber canonicalizes keystrokes toward AA-99-A[A]-9999.
// Separators are inserted progressively: after the state code, after the
// district digits, and after the letter series once the trailing run is
// unambiguous. Idempotent on fully formatted plates.
func FormatVehicleNumber(raw string) string {
	clean := nonAlnumRE.ReplaceAllString(strings.ToUpper(raw), "")
	if len(clean) > vehicleRawMaxLen {
		clean = clean[:vehicleRawMaxLen]
	}

	formatted := clean
	if len(clean) > 2 {
		formatted = clean[:2] + "-" + clean[2:]
	}
	if len(clean) > 4 {
		formatted = clean[:2] + "-" + clean[2:4] + "-" + clean[4:]
	}
	if len(clean) > 6 {
		// series ends where the trailing digits begin
		if m := seriesRE.FindStringSubmatch(clean); m != nil {
			formatted = m[1] + "-" + m[2] + "-" + m[3] + "-" + m[4]
		}
	}
	return formatted
}

// ValidVehicleNumber checks the strict dashed plate format.
func ValidVehicleNumber(plate string) bool {
	return vehicleRE.MatchString(plate)
}

// CanonicalVehicleNumber accepts the relaxed submission-time plate form
// (separators optional, spaces allowed) and returns the dashed canonical
// form. ok is false when the input is not a plate at all.
func CanonicalVehicleNumber(raw string) (string, bool) {
	m := vehicleLaxRE.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(raw)))
	if m == nil {
		return "", false
	}
	return m[1] + "-" + m[2] + "-" + m[3] + "-" + m[4], true
}
