package version_test

import (
	"errors"

	. "github.com/mandelsoft/relplan/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/relplan/pkg/version"
)

var _ = Describe("version", func() {
	Context("parse", func() {
		It("parses full versions", func() {
			v := Must(me.Parse("1.2.3-rc.1+build.5"))
			Expect(v).To(Equal(me.Version{Major: 1, Minor: 2, Patch: 3, Pre: "rc.1", Build: "build.5"}))
			Expect(v.String()).To(Equal("1.2.3-rc.1+build.5"))
		})

		DescribeTable("rejects malformed versions",
			func(text string) {
				_, err := me.Parse(text)
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, me.ErrVersionSyntax)).To(BeTrue())
				Expect(errors.Is(err, me.ErrSpecSyntax)).To(BeFalse())
				var perr *me.ParseError
				Expect(errors.As(err, &perr)).To(BeTrue())
				Expect(perr.Text).To(Equal(text))
			},
			Entry("empty", ""),
			Entry("partial", "1.0"),
			Entry("prefix", "v1.0.0"),
			Entry("leading zero", "01.0.0"),
			Entry("garbage", "one.two.three"),
		)
	})

	Context("compare", func() {
		It("orders by precedence", func() {
			Expect(me.Compare(me.MustParse("1.0.0"), me.MustParse("1.0.1"))).To(Equal(-1))
			Expect(me.Compare(me.MustParse("1.0.0-rc.1"), me.MustParse("1.0.0"))).To(Equal(-1))
			Expect(me.Compare(me.MustParse("2.0.0"), me.MustParse("1.9.9"))).To(Equal(1))
			Expect(me.Compare(me.MustParse("1.0.0+a"), me.MustParse("1.0.0+b"))).To(Equal(0))
		})
	})

	Context("severity", func() {
		DescribeTable("classifies changes",
			func(from, to string, sev me.Severity) {
				Expect(me.MustParse(from).BumpSeverity(me.MustParse(to))).To(Equal(sev))
			},
			Entry("stable patch", "1.0.0", "1.0.1", me.PATCH),
			Entry("stable minor", "1.0.0", "1.1.0", me.MINOR),
			Entry("stable major", "1.0.0", "2.0.0", me.MAJOR),
			Entry("pre patch", "0.1.0", "0.1.1", me.PATCH),
			Entry("pre minor is breaking", "0.1.0", "0.2.0", me.MAJOR),
			Entry("leaving initial development", "0.9.0", "1.0.0", me.MAJOR),
			Entry("pre-release only", "1.0.0-rc.1", "1.0.0", me.PATCH),
		)

		It("determines the maximum", func() {
			Expect(me.MaxSeverity()).To(Equal(me.Severity(0)))
			Expect(me.MaxSeverity(me.PATCH, me.MAJOR, me.MINOR)).To(Equal(me.MAJOR))
		})
	})

	Context("bump", func() {
		DescribeTable("increments fields",
			func(from string, sev me.Severity, to string) {
				Expect(me.MustParse(from).Bump(sev)).To(Equal(me.MustParse(to)))
			},
			Entry("patch", "1.2.3", me.PATCH, "1.2.4"),
			Entry("minor", "1.2.3", me.MINOR, "1.3.0"),
			Entry("major", "1.2.3", me.MAJOR, "2.0.0"),
			Entry("pre minor", "0.1.0", me.MINOR, "0.2.0"),
			Entry("release of pre-release", "1.2.3-rc.1", me.PATCH, "1.2.3"),
			Entry("drops build", "1.2.3+x", me.MINOR, "1.3.0"),
		)
	})

	Context("text", func() {
		It("round trips", func() {
			v := me.MustParse("1.2.3-alpha")
			data := Must(v.MarshalText())
			var r me.Version
			MustBeSuccessful(r.UnmarshalText(data))
			Expect(r).To(Equal(v))
		})
	})
})
