package handlers

import "database/sql"

// nullString scans nullable text columns and collapses NULL to ""
type nullString struct {
	sql.NullString
}

func (n nullString) value() string {
	if n.Valid {
		return n.String
	}
	return ""
}
