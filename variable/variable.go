package variable

import (
	"errors"
	"fmt"
	"regexp"
)

// Well-known variable sorts.
const (
	// UnknownSort is used when nothing is known about a variable.
	UnknownSort = "u"
	// HandleSort is the sort of scope handles and holes.
	HandleSort = "h"
	// EventSort is the sort of eventualities.
	EventSort = "e"
	// IndividualSort is the sort of instances (individuals).
	IndividualSort = "x"
	// SemargSort is the common supersort of events and individuals.
	SemargSort = "i"
)

// ErrInvalidIdentifier indicates a variable string does not match the
// required sort+digits shape (e.g. "h3", "ref-ind12").
var ErrInvalidIdentifier = errors.New("variable: invalid identifier")

// varRe matches a sort (ending in a non-digit) followed by a numeric id.
var varRe = regexp.MustCompile(`^([-\w]*\D)(\d+)$`)

// Split parses a variable string into its sort and numeric id.
//
//	Split("h3")        → "h", 3
//	Split("ref-ind12") → "ref-ind", 12
//
// Returns ErrInvalidIdentifier if the trailing digits are absent or the
// prefix is empty.
func Split(v string) (sort string, id int, err error) {
	m := varRe.FindStringSubmatch(v)
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, v)
	}
	id = 0
	for _, r := range m[2] {
		id = id*10 + int(r-'0')
	}
	return m[1], id, nil
}

// Sort returns the sort component of a variable string.
func Sort(v string) (string, error) {
	sort, _, err := Split(v)
	return sort, err
}

// ID returns the numeric id component of a variable string.
func ID(v string) (int, error) {
	_, id, err := Split(v)
	return id, err
}

// IsValid reports whether v parses as a variable string.
func IsValid(v string) bool {
	return varRe.MatchString(v)
}
