package evaluation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/kpi-portal/internal/evaluation"
)

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

var _ = Describe("Score aggregation", func() {
	DescribeTable("Average and Classify",
		func(scores []int, avg int, grade evaluation.Grade) {
			got := evaluation.Average(scores...)
			Expect(got).To(Equal(avg))
			Expect(evaluation.Classify(got)).To(Equal(grade))
		},
		Entry("all tens", repeat(10, 7), 10, evaluation.GradeGood),
		Entry("all fours", repeat(4, 6), 4, evaluation.GradePoor),
		Entry("sum 41 over six rounds up", []int{7, 7, 7, 7, 7, 6}, 7, evaluation.GradeGood),
		Entry("half rounds away from zero", []int{6, 7}, 7, evaluation.GradeGood),
		Entry("just below half rounds down", []int{5, 5, 6}, 5, evaluation.GradeFair),
		Entry("all fives", repeat(5, 6), 5, evaluation.GradeFair),
		Entry("4.4 is poor", []int{4, 4, 4, 5, 5}, 4, evaluation.GradePoor),
	)

	It("averages an empty set to zero", func() {
		Expect(evaluation.Average()).To(BeZero())
	})

	It("labels grades in Persian", func() {
		Expect(evaluation.GradeGood.Label()).To(Equal("خوب"))
		Expect(evaluation.GradeFair.Label()).To(Equal("متوسط"))
		Expect(evaluation.GradePoor.Label()).To(Equal("ضعیف"))
	})
})
