package format_test

import (
	. "github.com/mandelsoft/relplan/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/relplan/pkg/format"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/version"
)

type doc struct {
	Project project.Handle  `json:"project"`
	Version version.Version `json:"version"`
	Spec    version.Spec    `json:"spec"`
}

var _ = Describe("formats", func() {
	value := &doc{
		Project: project.New("core", "acme"),
		Version: version.MustParse("1.2.3-rc.1"),
		Spec:    version.MustParseSpec(">= 1.0.0 and < 2.0.0 or ~> 3.1"),
	}

	DescribeTable("round trips", func(f me.Format) {
		var r doc
		MustBeSuccessful(f.Load(Must(f.Dump(value)), &r))
		Expect(&r).To(Equal(value))
	},
		Entry("json", me.JSON{}),
		Entry("yaml", me.YAML{}),
		Entry("autogenerated yaml", me.YAML{Autogenerated: true}),
	)

	It("writes text forms", func() {
		Expect(string(Must(me.YAML{}.Dump(value)))).To(Equal(`project: acme/core
spec: '>= 1.0.0 and < 2.0.0 or ~> 3.1'
version: 1.2.3-rc.1
`))
		Expect(string(Must(me.JSON{}.Dump(value)))).To(HaveSuffix("}\n"))
	})

	It("handles lines", func() {
		var list []string
		MustBeSuccessful(me.Lines{}.Load([]byte("# comment\n a \n\nb\n"), &list))
		Expect(list).To(Equal([]string{"a", "b"}))
		Expect(string(Must(me.Lines{}.Dump(list)))).To(Equal("a\nb\n"))
		Expect(me.Lines{}.Load(nil, &doc{})).NotTo(Succeed())
	})

	It("resolves names", func() {
		Expect(me.ForName("YAML")).To(Equal(me.YAML{}))
		Expect(me.ForName("json")).To(Equal(me.JSON{}))
		Expect(me.ForName("xml")).Error().To(HaveOccurred())
		Expect(me.FullPath("/meta", "release", me.YAML{})).To(Equal("/meta/release.yaml"))
	})
})
