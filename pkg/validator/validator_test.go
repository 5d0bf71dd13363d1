package validator

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/errors"
)

func TestRequired(t *testing.T) {
	err := Required(
		Field{Name: "name", Value: "Ana"},
		Field{Name: "birth_date", Value: "   "},
		Field{Name: "national_id", Value: ""},
	)
	require.Error(t, err)

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrMissingField, appErr.Code)
	assert.Equal(t, "birth_date", appErr.Field)

	assert.NoError(t, Required(Field{Name: "name", Value: "Ana"}))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("birth_date", "31-12-2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 31, d.Day())

	for _, in := range []string{"2024-12-31", "31/12/2024", "1-2-2024", "32-01-2024", ""} {
		_, err := ParseDate("birth_date", in)
		assert.True(t, errors.HasCode(err, errors.ErrInvalidFormat), in)
	}
}

func TestParseTime(t *testing.T) {
	c, err := ParseTime("time", "09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Hour())
	assert.Equal(t, 30, c.Minute())

	_, err = ParseTime("time", "9h30")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidFormat))
	_, err = ParseTime("time", "25:00")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidFormat))
}

func TestNormalizeNationalID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "punctuated", input: "123.456.789-00", want: "12345678900"},
		{name: "digits only", input: "12345678900", want: "12345678900"},
		{name: "too short", input: "123", wantErr: "national ID must have 11 digits"},
		{name: "letters", input: "1234567890a", wantErr: "national ID must contain only digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeNationalID(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrInvalidIdentifier))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckEmail(t *testing.T) {
	email, err := CheckEmail(" ana@clinic.com ")
	require.NoError(t, err)
	assert.Equal(t, "ana@clinic.com", email)

	for _, in := range []string{"ana", "ana@clinic", "@clinic.com"} {
		_, err := CheckEmail(in)
		assert.True(t, errors.HasCode(err, errors.ErrInvalidFormat), in)
	}
}

func TestSearchTerms(t *testing.T) {
	name, err := CheckNameTerm("an")
	require.NoError(t, err)
	assert.Equal(t, "an", name)

	_, err = CheckNameTerm("a")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))

	_, err = CheckSpecialtyTerm("ca")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))

	term, err := CheckSpecialtyTerm(" card ")
	require.NoError(t, err)
	assert.Equal(t, "card", term)
}

func TestParseID(t *testing.T) {
	id := uuid.New()
	got, err := ParseID("patient_id", id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("patient_id", "42")
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "patient_id", appErr.Field)
}

func TestCheckStatus(t *testing.T) {
	status, err := CheckStatus("")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, status)

	status, err = CheckStatus("Completed")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatus("completed"), status)

	_, err = CheckStatus("postponed")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
}

func TestOptionalValues(t *testing.T) {
	assert.Nil(t, OptionalString("  "))
	assert.Equal(t, "x", *OptionalString(" x "))

	email, err := OptionalEmail("")
	require.NoError(t, err)
	assert.Nil(t, email)

	_, err = OptionalEmail("nope")
	assert.Error(t, err)
}
