package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/validator"
)

type Record struct {
	ID           int64  `json:"id"`
	EmployeeDBID int64  `json:"employee_db_id"`
	Date         Date   `json:"date"`
	Status       Status `json:"status"`
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// PendingLabel is shown for an employee without a record; it is never stored.
const PendingLabel = "Pending"

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Date is a calendar day serialized as yyyy-MM-dd.
type Date struct {
	t time.Time
}

func ParseDate(s string) (Date, error) {
	t, ok := validator.IsValidDate(s)
	if !ok {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// DateOf drops the clock part of t, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Time() time.Time { return d.t }

func (d Date) Format(layout string) string { return d.t.Format(layout) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(validator.DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
