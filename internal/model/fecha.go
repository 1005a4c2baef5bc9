package model

import (
	"time"

	"gorm.io/datatypes"
)

// FechaLayout is the wire format for calendar dates.
const FechaLayout = "2006-01-02"

// DiaCivil returns the calendar day of t as observed in loc, normalized to
// midnight UTC so the same day always maps to the same stored value.
func DiaCivil(t time.Time, loc *time.Location) datatypes.Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseFecha parses a YYYY-MM-DD string into a normalized calendar day.
func ParseFecha(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(FechaLayout, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatFecha renders a stored calendar day as YYYY-MM-DD.
func FormatFecha(d datatypes.Date) string {
	return time.Time(d).UTC().Format(FechaLayout)
}
