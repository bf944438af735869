package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings persisted as JSON array text in a
// plain text column.
type StringList []string

// EncodeStringList serializes a list into its stored text form. Nil and empty
// lists both encode to "[]".
func EncodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}

// DecodeStringList parses stored text back into a list. Empty text decodes to
// an empty, non-nil list.
func DecodeStringList(text string) ([]string, error) {
	if text == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, fmt.Errorf("failed to decode string list %q: %w", text, err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

// GormDataType keeps the column a text column on every dialect.
func (StringList) GormDataType() string {
	return "text"
}

// Value implements driver.Valuer. A nil list is written as NULL.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return EncodeStringList(l)
}

// Scan implements sql.Scanner. NULL reads back as an empty list.
func (l *StringList) Scan(src interface{}) error {
	var text string
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("unsupported type %T for string list", src)
	}

	list, err := DecodeStringList(text)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

// MarshalJSON always renders a JSON array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
