package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// NullText is a nullable text column that implements sql.Scanner and
// driver.Valuer, plus JSON marshaling that renders an empty value as
// null so optional fields drop cleanly from API responses.
type NullText struct {
	Text  string
	Valid bool
}

// Text builds a valid NullText from s; an empty string is stored as NULL.
func Text(s string) NullText {
	return NullText{Text: s, Valid: s != ""}
}

// String returns the text, or "" when NULL.
func (n NullText) String() string {
	if !n.Valid {
		return ""
	}
	return n.Text
}

// Scan implements sql.Scanner.
func (n *NullText) Scan(src interface{}) error {
	if n == nil {
		return fmt.Errorf("dbtypes: Scan on nil *NullText")
	}
	if src == nil {
		*n = NullText{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		*n = NullText{Text: string(v), Valid: true}
		return nil
	case string:
		*n = NullText{Text: v, Valid: true}
		return nil
	default:
		return fmt.Errorf("dbtypes: cannot scan type %T into NullText", src)
	}
}

// Value implements driver.Valuer.
func (n NullText) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Text, nil
}

// MarshalJSON implements json.Marshaler.
func (n NullText) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Text)
}

// UnmarshalJSON implements json.Unmarshaler; JSON null maps to NULL.
func (n *NullText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullText{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = NullText{Text: s, Valid: true}
	return nil
}
