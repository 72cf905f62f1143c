package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reporting currency for all dashboard aggregates.
const ReportingCurrency = "PYG"

const millisPerDay = 24 * 60 * 60 * 1000

// RecordString reads the first key that coerces to a non-empty string.
// Core API records are loosely typed; numbers are formatted, everything
// else degrades to "".
func RecordString(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				return s
			}
		case json.Number:
			if s := val.String(); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		case int:
			return strconv.Itoa(val)
		case int64:
			return strconv.FormatInt(val, 10)
		case bool:
			return strconv.FormatBool(val)
		}
	}
	return ""
}

// RecordDecimal reads the first key that coerces to a decimal amount.
// Malformed or missing values degrade to zero, never an error.
func RecordDecimal(rec map[string]any, keys ...string) decimal.Decimal {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case float64:
			if math.IsNaN(val) || math.IsInf(val, 0) {
				continue
			}
			return decimal.NewFromFloat(val)
		case int:
			return decimal.NewFromInt(int64(val))
		case int64:
			return decimal.NewFromInt(val)
		case json.Number:
			if d, err := decimal.NewFromString(val.String()); err == nil {
				return d
			}
		case string:
			s := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
			if s == "" {
				continue
			}
			if d, err := decimal.NewFromString(s); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

// RecordBool accepts bool, string and numeric truthy forms.
func RecordBool(rec map[string]any, keys ...string) bool {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case bool:
			return val
		case string:
			s := strings.ToLower(strings.TrimSpace(val))
			if s == "" {
				continue
			}
			return s == "true" || s == "1" || s == "yes" || s == "y"
		case float64:
			return val != 0
		case int:
			return val != 0
		case json.Number:
			return val.String() != "0" && val.String() != ""
		}
	}
	return false
}

// RecordTime reads the first key holding a parseable ISO date or datetime.
func RecordTime(rec map[string]any, keys ...string) *time.Time {
	for _, key := range keys {
		if t := ParseISODate(RecordString(rec, key)); t != nil {
			return t
		}
	}
	return nil
}

// ParseISODate parses RFC3339 timestamps and bare YYYY-MM-DD dates.
// Invalid input yields nil.
func ParseISODate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// DaysUntil is the ceiling of the millisecond difference divided by one day.
// A date exactly N*24h ahead returns N; anything past returns <= 0.
func DaysUntil(now time.Time, t time.Time) int {
	diff := t.Sub(now).Milliseconds()
	return int(math.Ceil(float64(diff) / float64(millisPerDay)))
}

// MonthKey returns the YYYY-MM prefix used for calendar-month bucketing.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// SameMonth reports whether t falls in the same calendar month as now.
// Nil dates are never in any month.
func SameMonth(t *time.Time, now time.Time) bool {
	if t == nil {
		return false
	}
	return MonthKey(*t) == MonthKey(now)
}

func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ProcessValidationErrors(err error) map[string]string {

	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

// FormatPyg renders a whole-guarani amount with thousands separators for
// labels ("Gs. 1.500.000"). Dashboard display only.
func FormatPyg(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	negative := whole < 0
	if negative {
		whole = -whole
	}
	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune('.')
		}
		b.WriteRune(r)
	}
	if negative {
		return fmt.Sprintf("Gs. -%s", b.String())
	}
	return fmt.Sprintf("Gs. %s", b.String())
}
