package feedback

import (
	"regexp"
	"sort"
	"strings"
)

var sectionPrefix = regexp.MustCompile(`^(\d+)_(.+)$`)

// Categorize partitions raw fields into sections by their numeric prefix
// ("1_readability" goes to section "1" as "readability"). Keys without a
// prefix land in GeneralSection.
//
// Keys are processed in sorted order. When two raw keys resolve to the same
// section and field name ("01_testing" and "1_testing"), the one sorted last wins.
func Categorize(fields map[string]Scalar) CategorizedFields {
	categorized := make(CategorizedFields)

	for _, key := range sortedKeys(fields) {
		section, name := splitKey(key)
		if categorized[section] == nil {
			categorized[section] = make(map[string]Scalar)
		}
		categorized[section][name] = fields[key]
	}

	return categorized
}

// SectionKeys returns the section keys in display order: numeric sections
// ascending, then any other keys alphabetically, GeneralSection last.
func (c CategorizedFields) SectionKeys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return sectionLess(keys[i], keys[j])
	})

	return keys
}

func splitKey(key string) (section, name string) {
	match := sectionPrefix.FindStringSubmatch(key)
	if match == nil {
		return GeneralSection, key
	}
	return canonicalSection(match[1]), match[2]
}

// canonicalSection strips leading zeros from numeric section keys.
func canonicalSection(key string) string {
	if !isNumeric(key) {
		return key
	}
	trimmed := strings.TrimLeft(key, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func sectionLess(a, b string) bool {
	if a == GeneralSection || b == GeneralSection {
		return b == GeneralSection && a != GeneralSection
	}

	aNumeric, bNumeric := isNumeric(a), isNumeric(b)
	switch {
	case aNumeric && bNumeric:
		a, b = canonicalSection(a), canonicalSection(b)
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	case aNumeric != bNumeric:
		return aNumeric
	default:
		return a < b
	}
}

func isNumeric(key string) bool {
	return key != "" && strings.Trim(key, "0123456789") == ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
