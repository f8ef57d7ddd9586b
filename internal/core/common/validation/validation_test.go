package validation_test

import (
	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type scoredForm struct {
	Name   string `json:"name" validate:"notblank"`
	Score  int    `json:"score" validate:"score"`
	Rating int    `json:"rating" validate:"rating"`
	Year   int    `json:"year" validate:"pyear"`
	Month  int    `json:"month" validate:"pmonth"`
	Role   string `json:"role" validate:"member_role"`
}

func validForm() scoredForm {
	return scoredForm{Name: "x", Score: 7, Rating: 3, Year: 1403, Month: 7, Role: "WRITER"}
}

func fields(err *internal.AppError) []string {
	details, ok := err.Details.(internal.ValidationErrors)
	Expect(ok).To(BeTrue())
	var names []string
	for _, e := range details.Errors {
		names = append(names, e.Field)
	}
	return names
}

var _ = Describe("Struct", func() {
	It("accepts a valid form", func() {
		Expect(validation.Struct(validForm())).To(BeNil())
	})

	DescribeTable("score bounds",
		func(score int, ok bool) {
			f := validForm()
			f.Score = score
			err := validation.Struct(f)
			if ok {
				Expect(err).To(BeNil())
				return
			}
			Expect(err).NotTo(BeNil())
			Expect(err.Code).To(Equal(internal.ErrCodeInvalidScore))
			Expect(fields(err)).To(ConsistOf("score"))
		},
		Entry("zero", 0, false),
		Entry("one", 1, true),
		Entry("ten", 10, true),
		Entry("eleven", 11, false),
	)

	It("rejects ratings outside 1..5", func() {
		f := validForm()
		f.Rating = 6
		err := validation.Struct(f)
		Expect(err).NotTo(BeNil())
		Expect(err.Code).To(Equal(internal.ErrCodeInvalidScore))
	})

	It("reports period errors with their own code", func() {
		f := validForm()
		f.Month = 13
		f.Year = 2024
		err := validation.Struct(f)
		Expect(err).NotTo(BeNil())
		Expect(err.Code).To(Equal(internal.ErrCodeInvalidPeriod))
		Expect(fields(err)).To(ConsistOf("month", "year"))
	})

	It("rejects blank strings and unknown roles", func() {
		f := validForm()
		f.Name = "   "
		f.Role = "ADMIN"
		err := validation.Struct(f)
		Expect(err).NotTo(BeNil())
		Expect(err.Code).To(Equal(internal.ErrCodeValidationFailed))
		Expect(fields(err)).To(ConsistOf("name", "role"))
		Expect(err.GetDetailedMessage()).To(ContainSubstring("خالی"))
	})
})

var _ = Describe("ValidationBuilder", func() {
	It("collects every failing rule", func() {
		v := validation.NewValidator()
		v.Field("title", "").Required()
		v.Field("count", 3).MinInt(5, internal.ErrCodeValidationFailed)
		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(fields(err)).To(Equal([]string{"title", "count"}))
	})

	It("counts runes for length checks", func() {
		Expect(validation.ValidatePassword("password", "رمزعبورقوی")).To(BeNil())
		err := validation.ValidatePassword("password", "کوتاه")
		Expect(err).NotTo(BeNil())
		Expect(fields(err)).To(ConsistOf("password"))
	})

	It("validates periods", func() {
		Expect(validation.ValidatePeriod(1403, 12)).To(BeNil())
		err := validation.ValidatePeriod(1399, 0)
		Expect(err).NotTo(BeNil())
		Expect(err.Code).To(Equal(internal.ErrCodeInvalidPeriod))
	})
})
