package domain

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// FieldType enumerates the closed set of value types a field may declare.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldNumber      FieldType = "number"
	FieldBoolean     FieldType = "boolean"
	FieldDate        FieldType = "date"
	FieldSelect      FieldType = "select"
	FieldMultiselect FieldType = "multiselect"
	FieldEmail       FieldType = "email"
	FieldPhone       FieldType = "phone"
	FieldCurrency    FieldType = "currency"
	FieldRelation    FieldType = "relation"
	FieldLongtext    FieldType = "longtext"
	FieldURL         FieldType = "url"
	FieldFile        FieldType = "file"
)

var fieldTypes = map[FieldType]struct{}{
	FieldText: {}, FieldNumber: {}, FieldBoolean: {}, FieldDate: {},
	FieldSelect: {}, FieldMultiselect: {}, FieldEmail: {}, FieldPhone: {},
	FieldCurrency: {}, FieldRelation: {}, FieldLongtext: {}, FieldURL: {},
	FieldFile: {},
}

// KnownFieldType reports whether t is one of the declared field types.
func KnownFieldType(t FieldType) bool {
	_, ok := fieldTypes[t]
	return ok
}

// CoerceValue normalises a dynamically-typed payload value to the canonical Go
// representation for the field's type, or fails with a ValidationError.
// Canonical representations:
//
//	text, longtext, email, phone, url, file, relation, select → string
//	number, currency                                          → float64
//	boolean                                                   → bool
//	date                                                      → time.Time (UTC)
//	multiselect                                               → []string
//
// Nil is returned unchanged: presence of required values is checked
// separately so that merge-patches can carry explicit nulls.
func CoerceValue(f Field, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	fail := func() (any, error) {
		return nil, &ValidationError{Field: f.Name, Reason: ReasonType}
	}

	switch f.Type {
	case FieldText, FieldLongtext, FieldPhone, FieldFile, FieldRelation:
		s, ok := v.(string)
		if !ok {
			return fail()
		}
		return s, nil

	case FieldEmail:
		s, ok := v.(string)
		if !ok {
			return fail()
		}
		if s != "" {
			if _, err := mail.ParseAddress(s); err != nil {
				return fail()
			}
		}
		return s, nil

	case FieldURL:
		s, ok := v.(string)
		if !ok {
			return fail()
		}
		if s != "" && !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
			return fail()
		}
		return s, nil

	case FieldNumber, FieldCurrency:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case string:
			// JSON clients frequently send numerics as strings.
			parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return fail()
			}
			return parsed, nil
		default:
			return fail()
		}

	case FieldBoolean:
		b, ok := v.(bool)
		if !ok {
			return fail()
		}
		return b, nil

	case FieldDate:
		switch d := v.(type) {
		case time.Time:
			return d.UTC(), nil
		case string:
			for _, layout := range []string{time.RFC3339, "2006-01-02"} {
				if t, err := time.Parse(layout, d); err == nil {
					return t.UTC(), nil
				}
			}
			return fail()
		default:
			return fail()
		}

	case FieldSelect:
		s, ok := v.(string)
		if !ok {
			return fail()
		}
		if s != "" && !containsOption(f.Options, s) {
			return nil, &ValidationError{Field: f.Name, Reason: ReasonOption}
		}
		return s, nil

	case FieldMultiselect:
		items, err := toStringSlice(v)
		if err != nil {
			return fail()
		}
		for _, item := range items {
			if !containsOption(f.Options, item) {
				return nil, &ValidationError{Field: f.Name, Reason: ReasonOption}
			}
		}
		return items, nil
	}

	return nil, fmt.Errorf("field %q has unknown type %q", f.Name, f.Type)
}

// IsEmptyValue reports whether v counts as "no value" for required checks.
func IsEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case time.Time:
		return t.IsZero()
	default:
		return false
	}
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func toStringSlice(v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("non-string element")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not a list")
	}
}
