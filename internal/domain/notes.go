package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// NoteSeparator joins notes in the notes column.
const NoteSeparator = ";"

// Notes is an ordered list of free-text notes persisted as one column.
//
// Encoding joins the notes with NoteSeparator and decoding splits on it and
// drops empty segments. A note that itself contains NoteSeparator comes back
// as several notes; empty notes are dropped.
type Notes []string

// Value implements driver.Valuer.
func (n Notes) Value() (driver.Value, error) {
	return strings.Join(n, NoteSeparator), nil
}

// Scan implements sql.Scanner.
func (n *Notes) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*n = Notes{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Notes", src)
	}

	parts := strings.Split(raw, NoteSeparator)
	notes := make(Notes, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		notes = append(notes, p)
	}
	*n = notes
	return nil
}

// GormDataType tells gorm the column type for Notes.
func (Notes) GormDataType() string {
	return "text"
}
