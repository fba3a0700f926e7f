package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"roomslot/shared/constant"
)

// Date is a calendar day (YYYY-MM-DD) stored in a postgres DATE column.
// It has no timezone; callers derive it from wall time in the application zone.
type Date string

func DateOf(t time.Time) Date {
	return Date(t.Format(constant.DayFormat))
}

func (d Date) String() string {
	return string(d)
}

func (d Date) Time(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constant.DayFormat, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", string(d), err)
	}

	return t, nil
}

// Scan implements sql.Scanner. lib/pq hands DATE columns over as midnight UTC.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(constant.DayFormat))
	case []byte:
		return d.Scan(string(v))
	case string:
		if len(v) < len(constant.DayFormat) {
			return fmt.Errorf("cannot scan %q into Date", v)
		}

		*d = Date(v[:len(constant.DayFormat)])
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}

	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}

	return string(d), nil
}
