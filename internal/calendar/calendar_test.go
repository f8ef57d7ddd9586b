package calendar_test

import (
	"time"

	"github.com/frahmantamala/kpi-portal/internal/calendar"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Calendar", func() {
	nowruz1403 := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	Describe("ToPersian", func() {
		It("should convert Nowruz 1403", func() {
			d, err := calendar.ToPersian(nowruz1403)
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(calendar.Date{Year: 1403, Month: 1, Day: 1}))
		})

		It("should keep months one-based", func() {
			d, err := calendar.ToPersian(time.Date(2024, time.October, 15, 10, 0, 0, 0, time.UTC))
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(calendar.Date{Year: 1403, Month: 7, Day: 24}))
		})

		It("should reject the zero time", func() {
			_, err := calendar.ToPersian(time.Time{})
			Expect(err).To(MatchError(calendar.ErrInvalidDate))
		})
	})

	Describe("ToGregorian", func() {
		It("should round-trip a known date", func() {
			d, err := calendar.ToPersian(nowruz1403)
			Expect(err).NotTo(HaveOccurred())

			back, err := calendar.ToGregorian(d.Year, d.Month, d.Day, time.UTC)
			Expect(err).NotTo(HaveOccurred())
			Expect(back.Equal(nowruz1403)).To(BeTrue())
		})

		It("should round-trip every day of a year", func() {
			start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 366; i++ {
				day := start.AddDate(0, 0, i)
				d, err := calendar.ToPersian(day)
				Expect(err).NotTo(HaveOccurred())
				back, err := calendar.ToGregorian(d.Year, d.Month, d.Day, time.UTC)
				Expect(err).NotTo(HaveOccurred())
				Expect(back.Equal(day)).To(BeTrue(), "day %s", day.Format(time.DateOnly))
			}
		})

		It("should reject components out of range", func() {
			_, err := calendar.ToGregorian(1403, 13, 1, time.UTC)
			Expect(err).To(MatchError(calendar.ErrInvalidDate))

			_, err = calendar.ToGregorian(1403, 1, 0, time.UTC)
			Expect(err).To(MatchError(calendar.ErrInvalidDate))
		})

		It("should reject Esfand 30 in a common year", func() {
			_, err := calendar.ToGregorian(1402, 12, 30, time.UTC)
			Expect(err).To(MatchError(calendar.ErrInvalidDate))
		})

		It("should accept Esfand 30 in a leap year", func() {
			g, err := calendar.ToGregorian(1403, 12, 30, time.UTC)
			Expect(err).NotTo(HaveOccurred())
			Expect(g).To(Equal(time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)))
		})
	})

	Describe("ParseDate", func() {
		It("should parse slashed and dashed dates", func() {
			t, err := calendar.ParseDate("1403/01/01", time.UTC)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Equal(nowruz1403)).To(BeTrue())

			t, err = calendar.ParseDate("1403-1-1", time.UTC)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Equal(nowruz1403)).To(BeTrue())
		})

		It("should accept Persian digits", func() {
			t, err := calendar.ParseDate("۱۴۰۳/۰۱/۰۱", time.UTC)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Equal(nowruz1403)).To(BeTrue())
		})

		It("should reject malformed input", func() {
			for _, s := range []string{"", "1403/01", "1403/xx/01", "1403/13/01"} {
				_, err := calendar.ParseDate(s, time.UTC)
				Expect(err).To(MatchError(calendar.ErrInvalidDate), s)
			}
		})
	})

	Describe("Format", func() {
		It("should format with a pattern", func() {
			Expect(calendar.Format(nowruz1403, "yyyy/MM/dd")).To(Equal("1403/01/01"))
			Expect(calendar.FormatDate(nowruz1403)).To(Equal("1403/01/01"))
		})

		It("should fall back to the placeholder for an invalid date", func() {
			Expect(calendar.Format(time.Time{}, "yyyy/MM/dd")).To(Equal(calendar.Unknown))
		})
	})

	Describe("MonthName", func() {
		It("should name months", func() {
			Expect(calendar.MonthName(1)).To(Equal("فروردین"))
			Expect(calendar.MonthName(12)).To(Equal("اسفند"))
			Expect(calendar.MonthName(0)).To(Equal(calendar.Unknown))
		})
	})
})

var _ = Describe("Period", func() {
	It("should derive the current period", func() {
		p, err := calendar.CurrentPeriod(time.Date(2024, time.October, 15, 9, 0, 0, 0, time.UTC))
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(calendar.Period{Year: 1403, Month: 7}))
	})

	It("should label and print a period", func() {
		p := calendar.Period{Year: 1403, Month: 7}
		Expect(p.Label()).To(Equal("مهر ۱۴۰۳"))
		Expect(p.String()).To(Equal("1403/07"))
		Expect(calendar.Period{Year: 1403, Month: 0}.Label()).To(Equal(calendar.Unknown))
	})

	It("should order periods", func() {
		Expect(calendar.Period{Year: 1402, Month: 12}.Before(calendar.Period{Year: 1403, Month: 1})).To(BeTrue())
		Expect(calendar.Period{Year: 1403, Month: 2}.Before(calendar.Period{Year: 1403, Month: 1})).To(BeFalse())
	})

	It("should start on the first day of the month", func() {
		start, err := calendar.Period{Year: 1403, Month: 1}.Start(time.UTC)
		Expect(err).NotTo(HaveOccurred())
		Expect(start).To(Equal(time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)))
	})

	DescribeTable("FromGregorianMonth",
		func(year, month int, expected calendar.Period) {
			p, err := calendar.FromGregorianMonth(year, month)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(expected))
		},
		Entry("March 2024 falls in Esfand 1402", 2024, 3, calendar.Period{Year: 1402, Month: 12}),
		Entry("April 2024 falls in Farvardin 1403", 2024, 4, calendar.Period{Year: 1403, Month: 1}),
		Entry("October 2024 falls in Mehr 1403", 2024, 10, calendar.Period{Year: 1403, Month: 7}),
	)

	It("should reject an invalid Gregorian month", func() {
		_, err := calendar.FromGregorianMonth(2024, 13)
		Expect(err).To(MatchError(calendar.ErrInvalidDate))
	})
})
