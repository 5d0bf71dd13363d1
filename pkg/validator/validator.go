// Package validator holds the field rules shared by every entity service.
// Each rule either returns a normalized value or an *errors.AppError.
package validator

import (
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/errors"
)

const (
	DateLayout = "02-01-2006"
	TimeLayout = "15:04"

	nationalIDLength = 11
	minNameTerm      = 2
	minSpecialtyTerm = 3
)

var (
	engine     = playground.New()
	emailShape = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)
)

// Field pairs a field name with its raw value for presence checks.
type Field struct {
	Name  string
	Value interface{}
}

// Required checks fields in order and reports the first missing one.
func Required(fields ...Field) error {
	for _, f := range fields {
		if s, ok := f.Value.(string); ok {
			f.Value = strings.TrimSpace(s)
		}
		if err := engine.Var(f.Value, "required"); err != nil {
			return errors.MissingField(f.Name)
		}
	}
	return nil
}

// ParseDate parses DD-MM-YYYY.
func ParseDate(field, s string) (model.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return model.Date{}, errors.InvalidFormat(field, "DD-MM-YYYY")
	}
	return model.Date{Time: t}, nil
}

// ParseTime parses HH:MM.
func ParseTime(field, s string) (model.ClockTime, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return model.ClockTime{}, errors.InvalidFormat(field, "HH:MM")
	}
	return model.ClockTime{Time: t}, nil
}

// NormalizeNationalID strips the usual punctuation and requires 11 digits.
// "123.456.789-00" becomes "12345678900".
func NormalizeNationalID(s string) (string, error) {
	digits := strings.NewReplacer(".", "", "-", "").Replace(strings.TrimSpace(s))
	if len(digits) != nationalIDLength {
		return "", errors.InvalidIdentifier("national ID must have 11 digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", errors.InvalidIdentifier("national ID must contain only digits")
		}
	}
	return digits, nil
}

func CheckEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !emailShape.MatchString(s) {
		return "", errors.InvalidFormat("email", "")
	}
	return s, nil
}

// CheckNameTerm validates a name search term.
func CheckNameTerm(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < minNameTerm {
		return "", errors.InvalidInput("name must have at least 2 characters")
	}
	return s, nil
}

func CheckSpecialtyTerm(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < minSpecialtyTerm {
		return "", errors.InvalidInput("specialty must have at least 3 characters")
	}
	return s, nil
}

// ParseID parses a UUID path or body value.
func ParseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, errors.InvalidFormat(field, "a UUID")
	}
	return id, nil
}

// CheckStatus returns the appointment status, defaulting empty input to scheduled.
func CheckStatus(s string) (model.AppointmentStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.AppointmentStatusScheduled, nil
	}
	status := model.AppointmentStatus(strings.ToLower(s))
	if !status.Valid() {
		return "", errors.InvalidInput("status must be one of scheduled, completed, cancelled")
	}
	return status, nil
}

// OptionalString trims s and returns nil when it is empty.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// OptionalEmail validates a non-empty email and returns nil for an empty one.
func OptionalEmail(s string) (*string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	email, err := CheckEmail(s)
	if err != nil {
		return nil, err
	}
	return &email, nil
}
