package feedback

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FieldKind is the inferred semantic type of a feedback field.
type FieldKind int

const (
	KindRating FieldKind = iota
	KindBoolean
	KindText
)

func (k FieldKind) String() string {
	switch k {
	case KindRating:
		return "rating"
	case KindBoolean:
		return "boolean"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Field is a classified feedback field. Only the value matching Kind is set.
type Field struct {
	Name   string
	Kind   FieldKind
	Rating float64
	Flag   bool
	Text   string
}

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// Classify infers the kind of a single raw field. The second return value is
// false when the value is empty, nil or of an unusable shape and must be dropped.
func Classify(cfg *Config, key string, value Scalar) (Field, bool) {
	if value == nil {
		return Field{}, false
	}

	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return Field{}, false
	}

	if n, ok := numeric(value); ok {
		return Field{Name: key, Kind: KindRating, Rating: n}, true
	}

	switch val := value.(type) {
	case bool:
		return Field{Name: key, Kind: KindBoolean, Flag: val}, true
	case string:
		if val == "true" || val == "false" {
			return Field{Name: key, Kind: KindBoolean, Flag: val == "true"}, true
		}
		if cfg.booleanKey(key) {
			return Field{Name: key, Kind: KindBoolean, Flag: false}, true
		}
		return Field{Name: key, Kind: KindText, Text: val}, true
	}

	return Field{}, false
}

// numeric reports whether value is a finite number or a string holding one.
func numeric(value Scalar) (float64, bool) {
	var n float64
	switch val := value.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		trimmed := strings.TrimSpace(val)
		if !decimalPattern.MatchString(trimmed) {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		n = f
	case int:
		n = float64(val)
	case int8:
		n = float64(val)
	case int16:
		n = float64(val)
	case int32:
		n = float64(val)
	case int64:
		n = float64(val)
	case uint:
		n = float64(val)
	case uint8:
		n = float64(val)
	case uint16:
		n = float64(val)
	case uint32:
		n = float64(val)
	case uint64:
		n = float64(val)
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
