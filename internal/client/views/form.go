package views

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Form is the set of raw input values of one form, keyed by field name.
type Form map[string]string

// Get returns the trimmed value of name.
func (f Form) Get(name string) string {
	return strings.TrimSpace(f[name])
}

// Clone returns an independent copy of f.
func (f Form) Clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the field names in sorted order.
func (f Form) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type FieldKind int

const (
	KindText FieldKind = iota
	// KindInt is a positive integer id.
	KindInt
	// KindAmount is a positive money amount.
	KindAmount
	// KindDate is a yyyy-mm-dd date, sent as text.
	KindDate
	// KindDigits is a digits-only string, sent as text.
	KindDigits
	// KindSecret is text that is never echoed or kept after submission.
	KindSecret
)

const DateLayout = "2006-01-02"

// Field describes one input of a form and how it maps to the request body.
type Field struct {
	Name  string
	Label string
	// Key is the JSON key in the request body; Name is used when empty.
	Key  string
	Kind FieldKind
	// Required fields must be non-empty.
	Required bool
	// OneShot fields are cleared after a successful submission.
	OneShot bool
	// OmitEmpty drops an empty field from the body instead of sending null.
	OmitEmpty bool
	// SendEmpty sends an empty value as "" instead of null.
	SendEmpty bool
	// Skip keeps the field in the form but out of the body.
	Skip bool
	// Select, when set, lists the valid choices for the field.
	Select *Select
}

func (f Field) key() string {
	if f.Key != "" {
		return f.Key
	}
	return f.Name
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Convert parses a non-empty raw value according to the field kind.
func (f Field) Convert(raw string) (any, error) {
	switch f.Kind {
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, invalid(f.Name, f.label()+" must be a positive whole number")
		}
		return n, nil
	case KindAmount:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return nil, invalid(f.Name, "Please enter a valid amount")
		}
		return v, nil
	case KindDate:
		if _, err := time.Parse(DateLayout, raw); err != nil {
			return nil, invalid(f.Name, f.label()+" must be a date (YYYY-MM-DD)")
		}
		return raw, nil
	case KindDigits:
		if SanitizeDigits(raw) != raw {
			return nil, invalid(f.Name, f.label()+" must contain digits only")
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// BuildPayload validates form against fields and returns the request body.
// Empty optional fields are sent as JSON null unless marked OmitEmpty.
func BuildPayload(fields []Field, form Form) (map[string]any, error) {
	body := make(map[string]any, len(fields))
	for _, f := range fields {
		raw := form.Get(f.Name)
		if f.Kind == KindSecret {
			raw = form[f.Name]
		}

		if raw == "" {
			if f.Required {
				return nil, invalid(f.Name, f.label()+" is required")
			}
			switch {
			case f.OmitEmpty || f.Skip:
			case f.SendEmpty:
				body[f.key()] = ""
			default:
				body[f.key()] = nil
			}
			continue
		}

		v, err := f.Convert(raw)
		if err != nil {
			return nil, err
		}
		if f.Select != nil && !f.Select.Has(raw) {
			return nil, invalid(f.Name, f.label()+" is not a valid choice")
		}
		if !f.Skip {
			body[f.key()] = v
		}
	}
	return body, nil
}

// ClearFields blanks the named values of form.
func ClearFields(form Form, fields []Field, all bool) {
	for _, f := range fields {
		if all || f.OneShot || f.Kind == KindSecret {
			delete(form, f.Name)
		}
	}
}
