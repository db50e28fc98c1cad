// Package options holds option validation shared by the generator entry points.
package options

import "errors"

// ValidateSingleInputSource ensures exactly one input source is set.
// noSourceMsg and multiSourceMsg become the error text of the two failure
// cases.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	switch n := CountSources(sources...); {
	case n == 0:
		return errors.New(noSourceMsg)
	case n > 1:
		return errors.New(multiSourceMsg)
	}
	return nil
}

// CountSources returns how many of sources are set.
func CountSources(sources ...bool) int {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	return n
}
