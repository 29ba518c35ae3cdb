package entity

import (
	"time"
)

const DateLayout = "2006-01-02"

type Movie struct {
	Base
	Title       string     `db:"title" validate:"notblank"`
	Description *string    `db:"description"`
	Director    *string    `db:"director"`
	Genre       *string    `db:"genre"`
	Rating      *float64   `db:"rating" validate:"omitempty,gte=0,lte=10"`
	ReleaseDate *time.Time `db:"release_date"`
}

// Clone returns a deep copy so callers never share optional field storage.
func (m *Movie) Clone() *Movie {
	if m == nil {
		return nil
	}
	out := *m
	out.Description = cloneString(m.Description)
	out.Director = cloneString(m.Director)
	out.Genre = cloneString(m.Genre)
	if m.Rating != nil {
		r := *m.Rating
		out.Rating = &r
	}
	if m.ReleaseDate != nil {
		d := *m.ReleaseDate
		out.ReleaseDate = &d
	}
	return &out
}

// ReplaceFields overwrites every caller-mutable field with the values from
// src, including the ones src leaves unset. Identity and timestamps stay.
func (m *Movie) ReplaceFields(src *Movie) {
	m.Title = src.Title
	m.Description = cloneString(src.Description)
	m.Director = cloneString(src.Director)
	m.Genre = cloneString(src.Genre)
	m.Rating = nil
	if src.Rating != nil {
		r := *src.Rating
		m.Rating = &r
	}
	m.ReleaseDate = nil
	if src.ReleaseDate != nil {
		d := DateOf(*src.ReleaseDate)
		m.ReleaseDate = &d
	}
}

// DateOf drops the clock part of t, keeping its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
