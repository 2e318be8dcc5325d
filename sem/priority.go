package sem

import (
	"sort"
	"strings"
)

// commonProperties is the conventional ordering of morphosemantic
// properties in textual output.
var commonProperties = map[string]int{
	"PERS": 0, "NUM": 1, "GEND": 2, "IND": 3, "PT": 4, "PRONTYPE": 5,
	"SF": 6, "TENSE": 7, "MOOD": 8, "PROG": 9, "PERF": 10,
}

// RolePriority returns a sort key ordering roles conventionally:
// LBL first, then ARG0..ARGn and other roles alphabetically, with BODY and
// CARG last.
func RolePriority(role string) (int, string) {
	role = strings.ToUpper(role)
	switch {
	case role == "LBL":
		return 0, role
	case role == BodyRole || role == ConstantRole:
		return 2, role
	default:
		return 1, role
	}
}

// RoleLess reports whether role a sorts before role b under RolePriority.
func RoleLess(a, b string) bool {
	pa, ka := RolePriority(a)
	pb, kb := RolePriority(b)
	if pa != pb {
		return pa < pb
	}
	return ka < kb
}

// PropertyLess reports whether property a sorts before property b: the
// well-known morphosemantic properties in conventional order first, then
// the rest alphabetically.
func PropertyLess(a, b string) bool {
	ia, oka := commonProperties[strings.ToUpper(a)]
	ib, okb := commonProperties[strings.ToUpper(b)]
	switch {
	case oka && okb:
		return ia < ib
	case oka:
		return true
	case okb:
		return false
	default:
		return strings.ToUpper(a) < strings.ToUpper(b)
	}
}

// SortedRoles returns the keys of an argument map ordered by RoleLess.
func SortedRoles[V any](args map[string]V) []string {
	roles := make([]string, 0, len(args))
	for role := range args {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return RoleLess(roles[i], roles[j]) })
	return roles
}

// SortedProperties returns the keys of a property map ordered by
// PropertyLess.
func SortedProperties(props map[string]string) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return PropertyLess(keys[i], keys[j]) })
	return keys
}
