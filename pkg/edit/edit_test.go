package edit_test

import (
	. "github.com/mandelsoft/relplan/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/vfs"

	me "github.com/mandelsoft/relplan/pkg/edit"
)

const MANIFEST = `@version "1.0.0"
{:core, "~> 1.0"}
`

var _ = Describe("edit", func() {
	var fs vfs.FileSystem

	BeforeEach(func() {
		fs = Must(MemoryFileSystem(map[string]string{
			"/ws/a/mix.exs": MANIFEST,
			"/ws/b/mix.exs": MANIFEST,
		}))
	})

	version := me.Span{File: "a/mix.exs", Start: 10, End: 15}
	spec := me.Span{File: "a/mix.exs", Start: 26, End: 32}

	It("reads spans", func() {
		Expect(me.Text(fs, "/ws", version)).To(Equal("1.0.0"))
		Expect(me.Text(fs, "/ws", spec)).To(Equal("~> 1.0"))
		Expect(me.Text(fs, "/ws", me.Span{File: "a/mix.exs", Start: 10, End: 100})).Error().To(HaveOccurred())
	})

	It("rewrites files", func() {
		MustBeSuccessful(me.Apply(fs, "/ws",
			me.Edit{Span: version, Text: "1.1.0-rc.1"},
			me.Edit{Span: spec, Text: "~> 2.0"},
			me.Edit{Span: me.Span{File: "b/mix.exs", Start: 10, End: 15}, Text: "2.0.0"},
		))
		Expect(string(Must(vfs.ReadFile(fs, "/ws/a/mix.exs")))).To(Equal(`@version "1.1.0-rc.1"
{:core, "~> 2.0"}
`))
		Expect(string(Must(vfs.ReadFile(fs, "/ws/b/mix.exs")))).To(HavePrefix(`@version "2.0.0"`))
	})

	It("rejects overlapping edits", func() {
		err := me.Apply(fs, "/ws",
			me.Edit{Span: version, Text: "1.1.0"},
			me.Edit{Span: me.Span{File: "a/mix.exs", Start: 12, End: 20}, Text: "x"},
		)
		Expect(err).To(MatchError(ContainSubstring("overlapping")))
		Expect(string(Must(vfs.ReadFile(fs, "/ws/a/mix.exs")))).To(Equal(MANIFEST))
	})

	It("rejects edits without location", func() {
		Expect(me.Apply(fs, "/ws", me.Edit{Text: "1.1.0"})).To(HaveOccurred())
		Expect(version.String()).To(Equal("a/mix.exs[10:15]"))
	})
})
