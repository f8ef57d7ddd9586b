package calendar

import (
	"fmt"
	"time"
)

// Period identifies one monthly evaluation cycle in the Persian calendar.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CurrentPeriod returns the Persian period containing now.
func CurrentPeriod(now time.Time) (Period, error) {
	d, err := ToPersian(now)
	if err != nil {
		return Period{}, err
	}
	return Period{Year: d.Year, Month: d.Month}, nil
}

func (p Period) Valid() bool {
	return p.Year >= MinPersianYear && p.Month >= 1 && p.Month <= 12
}

// Before reports whether p is an earlier period than o.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d/%02d", p.Year, p.Month)
}

// Label is the human form, e.g. "مهر ۱۴۰۳".
func (p Period) Label() string {
	if !p.Valid() {
		return Unknown
	}
	return MonthName(p.Month) + " " + PersianDigits(fmt.Sprintf("%d", p.Year))
}

// Start is the first day of the period at midnight in loc.
func (p Period) Start(loc *time.Location) (time.Time, error) {
	return ToGregorian(p.Year, p.Month, 1, loc)
}

// FromGregorianMonth anchors a Gregorian (year, month) on its first day and
// returns the Persian period that day falls in.
func FromGregorianMonth(year, month int) (Period, error) {
	if month < 1 || month > 12 || year < 1 {
		return Period{}, ErrInvalidDate
	}
	anchor := time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC)
	d, err := ToPersian(anchor)
	if err != nil {
		return Period{}, err
	}
	return Period{Year: d.Year, Month: d.Month}, nil
}
