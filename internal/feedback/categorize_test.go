package feedback

import (
	"reflect"
	"testing"
)

func TestCategorize(t *testing.T) {
	t.Parallel()

	fields := map[string]Scalar{
		"1_readability":            "Good use of variable names",
		"1_testing":                8,
		"2_hasStrongCommunication": true,
		"10_system_design":         6,
		"overall":                  "Solid candidate",
		"_leading":                 "no section",
		"3_":                       "no field name",
	}

	got := Categorize(fields)
	want := CategorizedFields{
		"1": {
			"readability": "Good use of variable names",
			"testing":     8,
		},
		"2":  {"hasStrongCommunication": true},
		"10": {"system_design": 6},
		GeneralSection: {
			"overall":  "Solid candidate",
			"_leading": "no section",
			"3_":       "no field name",
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected categorization:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestCategorizeIsPartition(t *testing.T) {
	t.Parallel()

	fields := map[string]Scalar{
		"1_a": 1, "1_b": "x", "2_a": true, "general_note": "n", "7_z": nil, "x": "",
	}

	got := Categorize(fields)

	total := 0
	for _, section := range got {
		total += len(section)
	}
	if total != len(fields) {
		t.Fatalf("expected %d fields across sections, got %d", len(fields), total)
	}

	for key := range fields {
		section, name := splitKey(key)
		if _, ok := got[section][name]; !ok {
			t.Fatalf("key %q missing from section %q", key, section)
		}
	}
}

func TestCategorizeCollisionLastSortedKeyWins(t *testing.T) {
	t.Parallel()

	fields := map[string]Scalar{
		"01_testing": 2,
		"1_testing":  9,
	}

	for i := 0; i < 20; i++ {
		got := Categorize(fields)
		if len(got["1"]) != 1 {
			t.Fatalf("expected collided keys to share one field, got %#v", got["1"])
		}
		if got["1"]["testing"] != 9 {
			t.Fatalf("expected 1_testing to win, got %v", got["1"]["testing"])
		}
	}
}

func TestSectionKeysOrder(t *testing.T) {
	t.Parallel()

	c := CategorizedFields{
		GeneralSection: {}, "10": {}, "2": {}, "1": {}, "9": {},
	}

	got := c.SectionKeys()
	want := []string{"1", "2", "9", "10", GeneralSection}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
