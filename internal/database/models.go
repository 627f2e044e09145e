package database

import "database/sql"

// Stats holds the row counts of the current snapshot.
type Stats struct {
	Bills       int `json:"leis"`
	Events      int `json:"eventos"`
	Votes       int `json:"votos"`
	Legislators int `json:"deputados"`
}

// NullString is a helper to convert a string to sql.NullString, mapping the
// empty string to NULL for nullable columns.
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
