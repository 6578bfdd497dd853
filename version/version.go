// Package version tracks the version of the gphist source and checks that
// config files were written against it.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the semantic version number of the source code.
const SourceVersion = "0.2.0"

// ErrVersion is wrapped by every error returned from this package.
var ErrVersion = errors.New("version: invalid version string")

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(s, ".")
	if len(toks) != 3 {
		return -1, -1, -1, fmt.Errorf("%w: '%s' does not take the form of "+
			"three period-separated non-negative numbers", ErrVersion, s)
	}

	var v [3]int
	for i := range toks {
		v[i], err = strconv.Atoi(toks[i])
		if err != nil || v[i] < 0 {
			return -1, -1, -1, fmt.Errorf("%w: component %d of '%s' is "+
				"not a non-negative number", ErrVersion, i+1, s)
		}
	}
	return v[0], v[1], v[2], nil
}

// Compare returns -1, 0 or +1 depending on whether s1 is an earlier, equal,
// or later version than s2.
func Compare(s1, s2 string) (int, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return 0, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return 0, err
	}

	switch {
	case major1 != major2:
		return sign(major1 - major2), nil
	case minor1 != minor2:
		return sign(minor1 - minor2), nil
	default:
		return sign(patch1 - patch2), nil
	}
}

// Later returns true if s1 represents a later version of the source than s2.
func Later(s1, s2 string) (bool, error) {
	c, err := Compare(s1, s2)
	return c > 0, err
}

// Compatible checks that a file written for version s can be read by this
// source: same major version, and not from a newer minor version.
func Compatible(s string) error {
	major, minor, _, err := Parse(s)
	if err != nil {
		return err
	}
	smajor, sminor, _, _ := Parse(SourceVersion)
	if major != smajor || minor > sminor {
		return fmt.Errorf("%w: '%s' is not compatible with source "+
			"version %s", ErrVersion, s, SourceVersion)
	}
	return nil
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
