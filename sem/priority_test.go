package sem

import (
	"reflect"
	"testing"
)

func TestSortedRoles(t *testing.T) {
	args := map[string]string{
		"CARG": "", "ARG0": "", "LBL": "", "BODY": "", "RSTR": "", "ARG1": "",
	}
	got := SortedRoles(args)
	want := []string{"LBL", "ARG0", "ARG1", "RSTR", "BODY", "CARG"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedRoles = %v; want %v", got, want)
	}
}

func TestRoleLess(t *testing.T) {
	if !RoleLess("LBL", "ARG0") {
		t.Error("LBL must sort before ARG0")
	}
	if !RoleLess("arg1", "RSTR") {
		t.Error("role comparison must ignore case")
	}
	if RoleLess("BODY", "ARG9") {
		t.Error("BODY must sort after numbered arguments")
	}
}

func TestSortedProperties(t *testing.T) {
	props := map[string]string{
		"TENSE": "pres", "NUM": "sg", "SF": "prop", "FOO": "bar", "BAR": "baz",
	}
	got := SortedProperties(props)
	want := []string{"NUM", "SF", "TENSE", "BAR", "FOO"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedProperties = %v; want %v", got, want)
	}
}

func TestPropertyLess(t *testing.T) {
	if !PropertyLess("PERS", "NUM") {
		t.Error("PERS must sort before NUM")
	}
	if !PropertyLess("tense", "ZZZZ") {
		t.Error("known properties must sort before unknown ones")
	}
	if PropertyLess("ZED", "ABC") {
		t.Error("unknown properties must sort alphabetically")
	}
}
