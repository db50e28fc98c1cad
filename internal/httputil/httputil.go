// Package httputil classifies the response status keys of an operation.
package httputil

import (
	"strconv"
	"strings"
)

const (
	statusCodeLength = 3
	minStatusCode    = 100
	maxStatusCode    = 599
	wildcardChar     = 'X'
)

// ValidateStatusCode reports whether code is a usable response key:
// "default", an extension ("x-..."), a wildcard class such as "2XX", or a
// numeric code in 100-599.
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	if len(code) != statusCodeLength {
		return false
	}
	if isWildcard(code) {
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	return err == nil && code[0] != '+' && code[0] != '-' && n >= minStatusCode && n <= maxStatusCode
}

// IsSuccessStatus reports whether code names a 2xx response, either exact
// ("201") or as a class ("2XX"). "default" is not a success status.
func IsSuccessStatus(code string) bool {
	return ValidateStatusCode(code) && len(code) == statusCodeLength && code[0] == '2'
}

func isWildcard(code string) bool {
	return strings.EqualFold(code[1:], string([]byte{wildcardChar, wildcardChar}))
}
