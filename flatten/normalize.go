package flatten

import "strings"

// Normalize canonicalizes a scalar value for comparison. The empty string
// and the literal sentinels "None" and "null" (the textual forms a null
// takes on its way through CSV round-trips) fold to the empty value;
// boolean-like text folds to lowercase "true"/"false"; everything else is
// compared as-is. Raw values are kept for display; normalization is only
// ever applied when comparing.
func Normalize(value string) string {
	switch value {
	case "", "None", "null":
		return ""
	}
	switch lower := strings.ToLower(value); lower {
	case "true", "false":
		return lower
	}
	return value
}

// EqualValues reports whether two raw values are equal after normalization.
func EqualValues(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// IsEmpty reports whether a raw value normalizes to the empty value.
func IsEmpty(value string) bool {
	return Normalize(value) == ""
}

// IsTrue reports whether a raw value normalizes to boolean true.
func IsTrue(value string) bool {
	return Normalize(value) == "true"
}
