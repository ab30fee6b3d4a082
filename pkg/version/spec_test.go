package version_test

import (
	"errors"

	. "github.com/mandelsoft/relplan/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/relplan/pkg/version"
)

var _ = Describe("spec", func() {
	Context("parse", func() {
		DescribeTable("normalizes",
			func(text, norm string) {
				s := Must(me.ParseSpec(text))
				Expect(s.String()).To(Equal(norm))
				Expect(Must(me.ParseSpec(norm))).To(Equal(s))
			},
			Entry("compatible", "~> 1.0", "~> 1.0"),
			Entry("compact", "~>1.0.2", "~> 1.0.2"),
			Entry("bare", "1.0.0", "== 1.0.0"),
			Entry("range", ">= 1.2.0  and <2.0.0", ">= 1.2.0 and < 2.0.0"),
			Entry("alternatives", "== 1.0.0 or ~> 2.1", "== 1.0.0 or ~> 2.1"),
			Entry("pre-release", "~> 2.0.0-rc.1", "~> 2.0.0-rc.1"),
		)

		DescribeTable("rejects malformed specs",
			func(text string) {
				_, err := me.ParseSpec(text)
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, me.ErrSpecSyntax)).To(BeTrue())
				Expect(errors.Is(err, me.ErrVersionSyntax)).To(BeFalse())
			},
			Entry("empty", ""),
			Entry("operator only", "~>"),
			Entry("unknown operator", "=> 1.0"),
			Entry("single component", "~> 1"),
			Entry("partial pre-release", "~> 1.0-rc"),
			Entry("trailing and", "~> 1.0 and"),
			Entry("bad version", "~> 1.x"),
		)
	})

	Context("satisfies", func() {
		DescribeTable("matches versions",
			func(spec, v string, ok bool) {
				Expect(me.MustParseSpec(spec).Satisfies(me.MustParse(v))).To(Equal(ok))
			},
			Entry("stable compatible minor", "~> 1.0", "1.2.3", true),
			Entry("stable compatible major", "~> 1.0", "2.0.0", false),
			Entry("stable compatible below", "~> 1.2", "1.1.9", false),
			Entry("stable full compatible", "~> 1.0.0", "1.5.0", true),
			Entry("pre compatible patch", "~> 0.1.0", "0.1.1", true),
			Entry("pre compatible minor", "~> 0.1.0", "0.2.0", false),
			Entry("pre-release of upper bound", "~> 1.0", "2.0.0-rc.1", false),
			Entry("pre-release inside", "~> 1.0", "1.5.0-rc.1", true),
			Entry("exact", "== 1.0.0", "1.0.0", true),
			Entry("exact mismatch", "== 1.0.0", "1.0.1", false),
			Entry("not equal", "!= 1.0.0", "1.0.1", true),
			Entry("and", ">= 1.0.0 and < 1.5.0", "1.4.0", true),
			Entry("and upper", ">= 1.0.0 and < 1.5.0", "1.5.0", false),
			Entry("or", "== 1.0.0 or ~> 2.1", "2.3.0", true),
			Entry("or none", "== 1.0.0 or ~> 2.1", "2.0.0", false),
			Entry("less or equal", "<= 1.0.0", "1.0.0", true),
			Entry("greater", "> 1.0.0", "1.0.0", false),
		)

		It("zero spec matches nothing", func() {
			Expect(me.Spec{}.Satisfies(me.MustParse("1.0.0"))).To(BeFalse())
		})
	})

	Context("targeting", func() {
		DescribeTable("creates canonical compatible specs",
			func(from, v, to string) {
				s := me.MustParseSpec(from).Targeting(me.MustParse(v))
				Expect(s.String()).To(Equal(to))
				Expect(s.Satisfies(me.MustParse(v))).To(BeTrue())
			},
			Entry("stable", "~> 1.0", "2.0.0", "~> 2.0"),
			Entry("stable minor", "~> 1.0", "1.3.2", "~> 1.3"),
			Entry("pre", "~> 0.1.0", "0.2.0", "~> 0.2.0"),
			Entry("pre patch", "~> 0.1.0", "0.1.4", "~> 0.1.4"),
			Entry("pre-release", "~> 1.0", "2.0.0-rc.1", "~> 2.0.0-rc.1"),
		)
	})
})
