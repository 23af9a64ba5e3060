package domain

import (
	"sort"
	"strings"
	"time"
)

// ProjectedRow is one display-ready row produced by view evaluation. Data
// contains only the view's columns, in declared order (column order is
// tracked by the view itself; maps carry no order).
type ProjectedRow struct {
	RecordID string         `json:"record_id"`
	Data     map[string]any `json:"data"`
}

// EvaluateView applies the view's filters, sort and column projection to a
// record set. It is a pure transform: the input slice is not modified and
// repeated evaluation over the same inputs yields the identical sequence.
// Unknown column names are skipped, since a field may have been deleted after
// the view was configured.
func EvaluateView(view View, fields []Field, records []*Record) []ProjectedRow {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
	}

	// Filter: AND-combined, short-circuit on first miss.
	matched := make([]*Record, 0, len(records))
	for _, r := range records {
		ok := true
		for _, flt := range view.Filters {
			if !matchFilter(flt, fieldValue(r, flt.FieldName)) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, r)
		}
	}

	// Stable multi-key sort with creation-order final tiebreak.
	sort.SliceStable(matched, func(i, j int) bool {
		for _, key := range view.Sort {
			c := compareValues(fieldValue(matched[i], key.FieldName), fieldValue(matched[j], key.FieldName))
			if c == 0 {
				continue
			}
			if key.Direction == SortDesc {
				return c > 0
			}
			return c < 0
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	// Column projection.
	rows := make([]ProjectedRow, 0, len(matched))
	for _, r := range matched {
		data := make(map[string]any, len(view.Columns))
		for _, col := range view.Columns {
			if _, ok := known[col]; !ok {
				continue
			}
			data[col] = r.Data[col]
		}
		rows = append(rows, ProjectedRow{RecordID: r.ID, Data: data})
	}
	return rows
}

// fieldValue resolves a filter/sort key against a record. The timestamp keys
// are reserved: they always read the record's own createdAt/updatedAt, never
// a data key of the same name.
func fieldValue(r *Record, name string) any {
	switch name {
	case "createdAt", "created_at":
		return r.CreatedAt
	case "updatedAt", "updated_at":
		return r.UpdatedAt
	}
	return r.Data[name]
}

func matchFilter(f ViewFilter, value any) bool {
	switch f.Operator {
	case OpEquals:
		return compareValues(value, f.Value) == 0 && !IsEmptyValue(value)
	case OpNotEquals:
		return compareValues(value, f.Value) != 0 || IsEmptyValue(value)
	case OpContains:
		return containsValue(value, f.Value)
	case OpGreaterThan:
		return !IsEmptyValue(value) && compareValues(value, f.Value) > 0
	case OpLessThan:
		return !IsEmptyValue(value) && compareValues(value, f.Value) < 0
	case OpIsEmpty:
		return IsEmptyValue(value)
	case OpIsNotEmpty:
		return !IsEmptyValue(value)
	default:
		// Unknown operators never match; a misconfigured filter must not
		// leak every record.
		return false
	}
}

// containsValue implements "contains" for strings (substring, case-insensitive)
// and multiselect lists (membership).
func containsValue(value, needle any) bool {
	want, ok := needle.(string)
	if !ok {
		return false
	}
	switch v := value.(type) {
	case string:
		return strings.Contains(strings.ToLower(v), strings.ToLower(want))
	case []string:
		for _, item := range v {
			if item == want {
				return true
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

// compareValues orders two dynamic values of the same field type. Returns
// -1, 0 or 1. Mismatched or unsupported types compare equal so that sorting
// stays deterministic and filters fall back to "no match" via the callers.
func compareValues(a, b any) int {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := asTime(b); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return strings.Compare(as, bs)
		}
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case ab == bb:
				return 0
			case bb:
				return -1
			default:
				return 1
			}
		}
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
