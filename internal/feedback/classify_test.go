package feedback

import (
	"encoding/json"
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	tests := []struct {
		name   string
		key    string
		value  Scalar
		kind   FieldKind
		rating float64
		flag   bool
		text   string
	}{
		{name: "float", key: "testing", value: 8.0, kind: KindRating, rating: 8},
		{name: "int", key: "testing", value: 7, kind: KindRating, rating: 7},
		{name: "json number", key: "testing", value: json.Number("6.5"), kind: KindRating, rating: 6.5},
		{name: "numeric string", key: "testing", value: " 9 ", kind: KindRating, rating: 9},
		{name: "negative decimal string", key: "testing", value: "-1.25", kind: KindRating, rating: -1.25},
		{name: "numeric wins over boolean key", key: "isFast", value: 4, kind: KindRating, rating: 4},
		{name: "bool", key: "teamPlayer", value: true, kind: KindBoolean, flag: true},
		{name: "string true", key: "teamPlayer", value: "true", kind: KindBoolean, flag: true},
		{name: "string false", key: "teamPlayer", value: "false", kind: KindBoolean, flag: false},
		{name: "boolean key with text", key: "hasPortfolio", value: "yes", kind: KindBoolean, flag: false},
		{name: "snake boolean key", key: "is_remote", value: "maybe", kind: KindBoolean, flag: false},
		{name: "capitalized True is text", key: "teamPlayer", value: "True", kind: KindText, text: "True"},
		{name: "word starting with is", key: "issues", value: "none found", kind: KindText, text: "none found"},
		{name: "partial number is text", key: "testing", value: "8 out of 10", kind: KindText, text: "8 out of 10"},
		{name: "hex is text", key: "testing", value: "0x10", kind: KindText, text: "0x10"},
		{name: "infinity string is text", key: "testing", value: "Inf", kind: KindText, text: "Inf"},
		{name: "text", key: "readability", value: "Good use of variable names", kind: KindText, text: "Good use of variable names"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			field, ok := Classify(cfg, tt.key, tt.value)
			if !ok {
				t.Fatalf("expected field to be kept")
			}
			if field.Kind != tt.kind {
				t.Fatalf("expected kind %s, got %s", tt.kind, field.Kind)
			}
			if field.Name != tt.key {
				t.Fatalf("expected name %q, got %q", tt.key, field.Name)
			}
			switch tt.kind {
			case KindRating:
				if field.Rating != tt.rating {
					t.Fatalf("expected rating %v, got %v", tt.rating, field.Rating)
				}
			case KindBoolean:
				if field.Flag != tt.flag {
					t.Fatalf("expected flag %v, got %v", tt.flag, field.Flag)
				}
			case KindText:
				if field.Text != tt.text {
					t.Fatalf("expected text %q, got %q", tt.text, field.Text)
				}
			}
		})
	}
}

func TestClassifyDropsUnusableValues(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	values := map[string]Scalar{
		"nil":          nil,
		"empty":        "",
		"blank":        "   ",
		"nan":          math.NaN(),
		"inf":          math.Inf(1),
		"nested map":   map[string]any{"a": 1},
		"nested slice": []any{1, 2},
		"bad number":   json.Number("1e999"),
	}

	for name, value := range values {
		if _, ok := Classify(cfg, "isSomething", value); ok {
			t.Fatalf("%s: expected value to be dropped", name)
		}
	}
}

func TestClassifyCustomBooleanPattern(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(nil, `^flag`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	field, ok := Classify(cfg, "flagRaised", "whatever")
	if !ok || field.Kind != KindBoolean {
		t.Fatalf("expected boolean field, got %+v", field)
	}

	field, ok = Classify(cfg, "isRemote", "whatever")
	if !ok || field.Kind != KindText {
		t.Fatalf("expected text field with custom pattern, got %+v", field)
	}
}

func TestNewConfigRejectsInvalidPattern(t *testing.T) {
	t.Parallel()

	if _, err := NewConfig(nil, "("); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestClassifyWithoutConfigUsesDefaultPattern(t *testing.T) {
	t.Parallel()

	for name, cfg := range map[string]*Config{"nil": nil, "zero": {}} {
		field, ok := Classify(cfg, "isRemote", "maybe")
		if !ok || field.Kind != KindBoolean || field.Flag {
			t.Fatalf("%s: expected false boolean field, got %+v", name, field)
		}

		field, ok = Classify(cfg, "island", "Crete")
		if !ok || field.Kind != KindText {
			t.Fatalf("%s: expected text field, got %+v", name, field)
		}
	}
}
