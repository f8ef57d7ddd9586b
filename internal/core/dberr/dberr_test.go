package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
)

func TestDBErr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DB Error Suite")
}

var _ = Describe("IsUniqueViolation", func() {
	DescribeTable("classification",
		func(err error, expected bool) {
			Expect(dberr.IsUniqueViolation(err)).To(Equal(expected))
		},
		Entry("nil", nil, false),
		Entry("gorm translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true),
		Entry("postgres unique", &pgconn.PgError{Code: "23505"}, true),
		Entry("postgres fk", &pgconn.PgError{Code: "23503"}, false),
		Entry("sqlite message", errors.New("UNIQUE constraint failed: users.email"), true),
		Entry("other", errors.New("connection refused"), false),
	)

	It("recognises not found", func() {
		Expect(dberr.IsNotFound(fmt.Errorf("x: %w", gorm.ErrRecordNotFound))).To(BeTrue())
		Expect(dberr.IsNotFound(errors.New("x"))).To(BeFalse())
	})
})
