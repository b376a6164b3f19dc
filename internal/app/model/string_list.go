package model

import (
	"database/sql/driver"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is an ordered list of strings stored as a PostgreSQL text array.
// Other dialects keep the array literal in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(l).Value()
}

func (l *StringList) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*l = StringList(arr)
	return nil
}

func (StringList) GormDataType() string {
	return "text[]"
}

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Compact drops blank entries and trims the rest, keeping order.
func (l StringList) Compact() StringList {
	out := make(StringList, 0, len(l))
	for _, s := range l {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// InsertAt places value at index i, clamping i into [0, len].
func (l StringList) InsertAt(i int, value string) StringList {
	if i < 0 {
		i = 0
	}
	if i > len(l) {
		i = len(l)
	}
	out := make(StringList, 0, len(l)+1)
	out = append(out, l[:i]...)
	out = append(out, value)
	return append(out, l[i:]...)
}

// RemoveAt drops the entry at index i. Out of range indexes leave the list unchanged.
func (l StringList) RemoveAt(i int) StringList {
	if i < 0 || i >= len(l) {
		return l
	}
	out := make(StringList, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...)
}
