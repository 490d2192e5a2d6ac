// Package validation contiene las reglas por campo que aplican los servicios
// antes de tocar el store (frontera parse-or-reject).
package validation

import (
	"regexp"
	"strings"

	"vet-practice-management/internal/domain/apperr"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add registra solo el primer mensaje por campo.
func (v Violations) Add(field, msg string) {
	if _, exists := v[field]; exists {
		return
	}
	v[field] = msg
}

// Err devuelve nil o un *apperr.ValidationError.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return apperr.Invalid(map[string]string(v))
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Required(field, value string, v Violations) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
		return false
	}
	return true
}

func MinLen(field, value string, n int, v Violations) {
	if len([]rune(strings.TrimSpace(value))) < n {
		v.Add(field, "too_short")
	}
}

func Email(field, value string, v Violations) {
	if !emailRe.MatchString(strings.TrimSpace(value)) {
		v.Add(field, "invalid_email")
	}
}

// Phone exige al menos 10 dígitos (se ignoran separadores).
func Phone(field, value string, v Violations) {
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 10 {
		v.Add(field, "invalid_phone")
	}
}

func RequiredID(field string, id int64, v Violations) {
	if id <= 0 {
		v.Add(field, "required")
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v.Add(field, "must_be_non_negative")
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v.Add(field, "must_be_positive")
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v.Add(field, "must_be_non_negative")
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Add(field, "not_allowed")
}
