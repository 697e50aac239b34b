package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalDateTime renders timestamps in East Africa Time without an offset,
// the way the dashboard history shows them.
type LocalDateTime struct {
	time.Time
}

const layout = "2006-01-02T15:04:05"

var darEsSalaam *time.Location

func init() {
	var err error
	darEsSalaam, err = time.LoadLocation("Africa/Dar_es_Salaam")
	if err != nil {
		darEsSalaam = time.FixedZone("EAT", 3*60*60)
	}
}

func Location() *time.Location {
	return darEsSalaam
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

func Parse(s string) (LocalDateTime, error) {
	t, err := time.ParseInLocation(layout, s, darEsSalaam)
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{Time: t}, nil
}

func (ldt LocalDateTime) String() string {
	if ldt.IsZero() {
		return ""
	}
	return ldt.In(darEsSalaam).Format(layout)
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*ldt = parsed
	return nil
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	if ldt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ldt.String() + `"`), nil
}

func (ldt LocalDateTime) Value() (driver.Value, error) {
	if ldt.IsZero() {
		return nil, nil
	}
	return ldt.Time, nil
}

func (ldt *LocalDateTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		ldt.Time = time.Time{}
		return nil
	case time.Time:
		ldt.Time = v
		return nil
	case []byte:
		return ldt.scanString(string(v))
	case string:
		return ldt.scanString(v)
	default:
		return fmt.Errorf("cannot scan type %T into LocalDateTime", value)
	}
}

func (ldt *LocalDateTime) scanString(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*ldt = parsed
	return nil
}
