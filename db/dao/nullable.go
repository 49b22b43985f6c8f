package dao

import "database/sql"

type NullInt64 struct {
	sql.NullInt64
}

func NewNullInt64(v int64) NullInt64 {
	return NullInt64{sql.NullInt64{Int64: v, Valid: true}}
}

// AsInt if parent is nil, returns 0
func (ni *NullInt64) AsInt() int64 {
	if !ni.NullInt64.Valid {
		return 0
	}
	return ni.NullInt64.Int64
}

type NullString struct {
	sql.NullString
}

func NewNullString(v string) NullString {
	return NullString{sql.NullString{String: v, Valid: true}}
}

func (ns *NullString) AsString() string {
	if !ns.NullString.Valid {
		return ""
	}
	return ns.NullString.String
}
