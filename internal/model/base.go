package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewBase assigns a fresh id and a creation time at the precision Postgres
// keeps for TIMESTAMPTZ columns.
func NewBase(at time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: at.UTC().Truncate(time.Microsecond)}
}

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// Date is a calendar date without a time of day. It serializes as ISO-8601 (YYYY-MM-DD).
type Date struct {
	time.Time
}

// NewDate builds a Date in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) parse(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ClockTime is a time of day. It serializes as ISO-8601 (HH:MM:SS).
type ClockTime struct {
	time.Time
}

// NewClockTime builds a ClockTime on the zero date.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Time: time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)}
}

func (c ClockTime) String() string {
	return c.Format(clockLayout)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return c.parse(s)
}

func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *ClockTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		c.Time = time.Time{}
		return nil
	case time.Time:
		c.Time = time.Date(0, 1, 1, v.Hour(), v.Minute(), v.Second(), 0, time.UTC)
		return nil
	case []byte:
		return c.parse(string(v))
	case string:
		return c.parse(v)
	}
	return fmt.Errorf("cannot scan %T into ClockTime", src)
}

func (c *ClockTime) parse(s string) error {
	if len(s) > len(clockLayout) {
		s = s[:len(clockLayout)]
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return err
	}
	c.Time = t
	return nil
}

// EntityID returns the surrogate key.
func (b Base) EntityID() uuid.UUID {
	return b.ID
}
