package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores an unordered set of strings (tags, keywords,
// sub-clauses) as a JSON array column.
type StringList []string

// Value implements driver.Valuer for database storage.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner for database retrieval.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*l = StringList(arr)
	return nil
}

// Contains reports set membership.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// GormDataType tells GORM to create a jsonb column.
func (StringList) GormDataType() string {
	return "jsonb"
}

// IDList stores weak references to other entities as a JSON array of ids.
// The referenced rows are not guaranteed to exist; resolve them through
// service.RefResolver.
type IDList []int64

// Value implements driver.Valuer for database storage.
func (l IDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal([]int64(l))
}

// Scan implements sql.Scanner for database retrieval.
func (l *IDList) Scan(value any) error {
	if value == nil {
		*l = IDList{}
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IDList", value)
	}

	var arr []int64
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*l = IDList(arr)
	return nil
}

// GormDataType tells GORM to create a jsonb column.
func (IDList) GormDataType() string {
	return "jsonb"
}
