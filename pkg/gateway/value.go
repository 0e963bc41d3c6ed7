package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Value is a programmatic SBOR JSON value as returned by the gateway.
type Value struct {
	Kind        string          `json:"kind"`
	TypeName    string          `json:"type_name,omitempty"`
	FieldName   string          `json:"field_name,omitempty"`
	Raw         json.RawMessage `json:"value,omitempty"`
	Hex         string          `json:"hex,omitempty"`
	Fields      []Value         `json:"fields,omitempty"`
	VariantID   string          `json:"variant_id,omitempty"`
	VariantName string          `json:"variant_name,omitempty"`
	ElementKind string          `json:"element_kind,omitempty"`
	Elements    []Value         `json:"elements,omitempty"`
	KeyKind     string          `json:"key_kind,omitempty"`
	ValueKind   string          `json:"value_kind,omitempty"`
	Entries     []MapEntry      `json:"entries,omitempty"`
}

// MapEntry is one key/value pair of a Map value.
type MapEntry struct {
	Key   Value `json:"key"`
	Value Value `json:"value"`
}

// U64Key builds a U64 key for key-value-store lookups.
func U64Key(n uint64) Value {
	return Value{Kind: "U64", Raw: json.RawMessage(strconv.Quote(strconv.FormatUint(n, 10)))}
}

// ReferenceKey builds a Reference key for key-value-store lookups.
func ReferenceKey(address string) Value {
	return Value{Kind: "Reference", Raw: json.RawMessage(strconv.Quote(address))}
}

// Field returns the tuple field named name.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.FieldName == name {
			return f, true
		}
	}
	return Value{}, false
}

// MustField is Field returning an error naming the missing field.
func (v Value) MustField(name string) (Value, error) {
	f, ok := v.Field(name)
	if !ok {
		return Value{}, fmt.Errorf("field %q missing from %s", name, v.describe())
	}
	return f, nil
}

// Index returns the i-th tuple or enum field.
func (v Value) Index(i int) (Value, error) {
	if i < 0 || i >= len(v.Fields) {
		return Value{}, fmt.Errorf("field %d out of range for %s with %d fields", i, v.describe(), len(v.Fields))
	}
	return v.Fields[i], nil
}

// Text returns the scalar payload as a string, whatever the scalar kind.
func (v Value) Text() (string, error) {
	if len(v.Raw) == 0 {
		return "", fmt.Errorf("%s has no scalar value", v.describe())
	}
	var s string
	if err := json.Unmarshal(v.Raw, &s); err == nil {
		return s, nil
	}
	// Bool and some numeric renderings arrive unquoted.
	return string(v.Raw), nil
}

// Uint64 reads an unsigned integer kind.
func (v Value) Uint64() (uint64, error) {
	switch v.Kind {
	case "U8", "U16", "U32", "U64":
	default:
		return 0, fmt.Errorf("expected unsigned integer, got %s", v.describe())
	}
	s, err := v.Text()
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(s, 10, 64)
}

// Int64 reads any integer kind.
func (v Value) Int64() (int64, error) {
	switch v.Kind {
	case "I8", "I16", "I32", "I64", "U8", "U16", "U32", "U64":
	default:
		return 0, fmt.Errorf("expected integer, got %s", v.describe())
	}
	s, err := v.Text()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}

// Decimal reads a Decimal or PreciseDecimal.
func (v Value) Decimal() (decimal.Decimal, error) {
	if v.Kind != "Decimal" && v.Kind != "PreciseDecimal" {
		return decimal.Zero, fmt.Errorf("expected decimal, got %s", v.describe())
	}
	s, err := v.Text()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(s)
}

// Address reads a Reference, Own or address-bearing string.
func (v Value) Address() (string, error) {
	switch v.Kind {
	case "Reference", "Own", "String":
		return v.Text()
	default:
		return "", fmt.Errorf("expected address, got %s", v.describe())
	}
}

// Variant returns the enum variant name, e.g. "Some", "None", "For".
func (v Value) Variant() (string, error) {
	if v.Kind != "Enum" {
		return "", fmt.Errorf("expected enum, got %s", v.describe())
	}
	if v.VariantName != "" {
		return v.VariantName, nil
	}
	return v.VariantID, nil
}

// Option unwraps an Option enum, reporting false for None.
func (v Value) Option() (Value, bool, error) {
	variant, err := v.Variant()
	if err != nil {
		return Value{}, false, err
	}
	switch variant {
	case "None", "0":
		return Value{}, false, nil
	case "Some", "1":
		inner, err := v.Index(0)
		if err != nil {
			return Value{}, false, err
		}
		return inner, true, nil
	default:
		return Value{}, false, fmt.Errorf("unexpected option variant %q", variant)
	}
}

func (v Value) describe() string {
	if v.FieldName != "" {
		return fmt.Sprintf("%s(%s)", v.Kind, v.FieldName)
	}
	if v.TypeName != "" {
		return fmt.Sprintf("%s(%s)", v.Kind, v.TypeName)
	}
	if v.Kind == "" {
		return "empty value"
	}
	return v.Kind
}
