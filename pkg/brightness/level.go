package brightness

import (
	"math"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ParseLevel parses s the way strtof(3) does: leading whitespace is
// skipped, the longest numeric prefix wins, and input without one yields 0.
func ParseLevel(s string) float32 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")

	n := scanLevel(s)
	if n.length == 0 {
		return 0
	}

	switch {
	case n.nan:
		return float32(math.NaN())
	case n.inf && n.negative:
		return float32(math.Inf(-1))
	case n.inf:
		return float32(math.Inf(1))
	}

	prefix := s[:n.length]
	if n.hex && !n.exponent {
		// strconv requires a binary exponent on hex floats.
		prefix += "p0"
	}

	v, err := strconv.ParseFloat(prefix, 32)
	if err != nil && !pkgerrors.Is(err, strconv.ErrRange) {
		return 0
	}
	// On overflow ParseFloat already returns the signed infinity.
	return float32(v)
}

// HasLevelPrefix reports whether s starts with something ParseLevel reads
// as a number.
func HasLevelPrefix(s string) bool {
	return scanLevel(s).length > 0
}

type scannedLevel struct {
	length   int
	negative bool
	hex      bool
	exponent bool
	inf      bool
	nan      bool
}

// scanLevel matches the strtof(3) grammar at the start of s: an optional
// sign, then a decimal float, a hex float, "inf", "infinity" or "nan".
// Digit separators are not part of it.
func scanLevel(s string) scannedLevel {
	var n scannedLevel
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		n.negative = s[i] == '-'
		i++
	}

	rest := strings.ToLower(s[i:])
	switch {
	case strings.HasPrefix(rest, "infinity"):
		n.inf, n.length = true, i+len("infinity")
		return n
	case strings.HasPrefix(rest, "inf"):
		n.inf, n.length = true, i+len("inf")
		return n
	case strings.HasPrefix(rest, "nan"):
		n.nan, n.length = true, i+len("nan")
		return n
	}

	if strings.HasPrefix(rest, "0x") {
		j, digits := scanDigits(s, i+2, isHexDigit)
		if digits > 0 {
			n.hex = true
			n.length, n.exponent = scanExponent(s, j, 'p')
			return n
		}
		// "0x" without hex digits reads as "0".
	}

	j, digits := scanDigits(s, i, isDecimalDigit)
	if digits == 0 {
		return scannedLevel{}
	}
	n.length, n.exponent = scanExponent(s, j, 'e')

	return n
}

// scanDigits consumes digits with at most one '.' starting at i. It returns
// the end offset and the number of digits seen.
func scanDigits(s string, i int, isDigit func(byte) bool) (int, int) {
	digits := 0
	dot := false
	for ; i < len(s); i++ {
		switch {
		case isDigit(s[i]):
			digits++
		case s[i] == '.' && !dot:
			dot = true
		default:
			return i, digits
		}
	}
	return i, digits
}

// scanExponent consumes an exponent introduced by marker (case-insensitive)
// at i, if a complete one is present.
func scanExponent(s string, i int, marker byte) (int, bool) {
	if i >= len(s) || (s[i] != marker && s[i] != marker-'a'+'A') {
		return i, false
	}

	j := i + 1
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	end, digits := j, 0
	for end < len(s) && isDecimalDigit(s[end]) {
		end++
		digits++
	}
	if digits == 0 {
		return i, false
	}
	return end, true
}

func isDecimalDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecimalDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ParseLevelStrict requires s to be a number in [0, 1].
func ParseLevelStrict(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, pkgerrors.Wrapf(ErrInvalidLevel, "%q", s)
	}
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, pkgerrors.Wrapf(ErrLevelOutOfRange, "%v is not between 0 and 1", v)
	}

	return float32(v), nil
}

// Clamp limits v to [0, 1]. NaN becomes 0.
func Clamp(v float32) float32 {
	switch {
	case math.IsNaN(float64(v)), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// FromPercent converts a percentage to a level, clamped to [0, 1].
func FromPercent(p float32) float32 {
	return Clamp(p / 100)
}
