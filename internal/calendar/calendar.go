// Package calendar converts between the Gregorian and the Persian (Jalaali)
// calendars and models evaluation periods.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Unknown is shown in place of a date that cannot be converted.
const Unknown = "نامشخص"

// MinPersianYear is the first year the adapter accepts in either direction.
const MinPersianYear = 1

var ErrInvalidDate = errors.New("calendar: invalid date")

// Date is a Persian calendar day. Month is one-based (1 = Farvardin).
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// ToPersian converts a Gregorian instant to its Persian calendar day in the
// instant's own location.
func ToPersian(t time.Time) (d Date, err error) {
	if t.IsZero() {
		return Date{}, ErrInvalidDate
	}
	defer func() {
		if r := recover(); r != nil {
			d, err = Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, r)
		}
	}()

	pt := ptime.New(t)
	if pt.Year() < MinPersianYear {
		return Date{}, ErrInvalidDate
	}
	return Date{Year: pt.Year(), Month: int(pt.Month()), Day: pt.Day()}, nil
}

// ToGregorian returns midnight of the given Persian day in loc. Components
// that do not name a real day (month 13, Esfand 30 in a common year) are
// rejected rather than normalized.
func ToGregorian(year, month, day int, loc *time.Location) (t time.Time, err error) {
	if year < MinPersianYear || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}
	defer func() {
		if r := recover(); r != nil {
			t, err = time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, r)
		}
	}()

	g := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, loc).Time()

	back, err := ToPersian(g)
	if err != nil {
		return time.Time{}, err
	}
	if back.Year != year || back.Month != month || back.Day != day {
		return time.Time{}, ErrInvalidDate
	}
	return g, nil
}

// ParseDate reads a Persian day written as yyyy/mm/dd (or with dashes) and
// returns midnight of that day in loc. Persian digits are accepted.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = latinDigits.Replace(strings.TrimSpace(s))
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidDate
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		nums[i] = n
	}
	return ToGregorian(nums[0], nums[1], nums[2], loc)
}

// Format renders t in the Persian calendar using ptime's layout tokens
// (yyyy, MM, dd, MMM, hh, mm ...). Conversion failures yield Unknown.
func Format(t time.Time, pattern string) (s string) {
	if _, err := ToPersian(t); err != nil {
		return Unknown
	}
	defer func() {
		if r := recover(); r != nil {
			s = Unknown
		}
	}()
	return ptime.New(t).Format(pattern)
}

// FormatDate renders t as yyyy/MM/dd.
func FormatDate(t time.Time) string {
	return Format(t, "yyyy/MM/dd")
}

var monthNames = [...]string{
	"فروردین", "اردیبهشت", "خرداد",
	"تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر",
	"دی", "بهمن", "اسفند",
}

// MonthName returns the Persian name of a one-based month, or Unknown.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return Unknown
	}
	return monthNames[month-1]
}

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

var latinDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

// PersianDigits rewrites ASCII digits in s with Persian ones.
func PersianDigits(s string) string {
	return persianDigits.Replace(s)
}
