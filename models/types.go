package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of release dates
const DateLayout = "2006-01-02"

// PlaceholderImage is shown when an entry has no cover image
const PlaceholderImage = "placeholder.jpg"

// Domain types

type Entry struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Developer   string  `json:"developer"`
	Genre       string  `json:"genre"`
	ReleaseDate *Date   `json:"releaseDate"`
	CoverImage  *string `json:"coverImage"`
	VoteCount   int64   `json:"voteCount"`
}

// CoverOrPlaceholder returns the cover image filename, or the placeholder
// when the entry has none
func (e Entry) CoverOrPlaceholder() string {
	if e.CoverImage == nil || *e.CoverImage == "" {
		return PlaceholderImage
	}
	return *e.CoverImage
}

// Date is a calendar date without time of day
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Response types

type ListEntriesResponse struct {
	Success bool    `json:"success"`
	Data    []Entry `json:"data"`
	Total   int     `json:"total"`
}

// Field names follow the envelope the web widget already consumes
type VoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Votes   int64  `json:"votos"`
	EntryID int64  `json:"juego_id"`
}

// Error response

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
