package release_test

import (
	"errors"

	. "github.com/mandelsoft/relplan/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/relplan/pkg/release"
)

var _ = Describe("stage", func() {
	It("advances monotonically", func() {
		s := me.STAGE_NOT_STARTED
		var seen []me.Stage
		for !s.IsFinal() {
			n := Must(s.Next())
			Expect(me.CompareStage(n, s)).To(BeNumerically(">", 0))
			seen = append(seen, n)
			s = n
		}
		Expect(seen).To(Equal(me.STAGE_NOT_STARTED.Remaining()))
		Expect(me.Stages()).To(HaveLen(4))
	})

	It("refuses to advance a done stage", func() {
		_, err := me.STAGE_DONE.Next()
		var te *me.StageTransitionError
		Expect(errors.As(err, &te)).To(BeTrue())
		Expect(te.Stage).To(Equal(me.STAGE_DONE))
		Expect(me.STAGE_DONE.Remaining()).To(BeEmpty())
	})

	It("lists remaining stages", func() {
		Expect(me.STAGE_PULL_REQUEST_OPENED.Remaining()).To(Equal([]me.Stage{me.STAGE_PULL_REQUEST_MERGED, me.STAGE_DONE}))
		Expect(me.STAGE_PULL_REQUEST_MERGED.Remaining(true)).To(Equal([]me.Stage{me.STAGE_PULL_REQUEST_MERGED, me.STAGE_DONE}))
	})

	It("marshals its name", func() {
		for _, s := range me.Stages() {
			var r me.Stage
			MustBeSuccessful(r.UnmarshalText(Must(s.MarshalText())))
			Expect(r).To(Equal(s))
		}
		Expect(me.STAGE_PULL_REQUEST_OPENED.String()).To(Equal("pull-request-opened"))
		Expect(me.ParseStage("merged")).Error().To(HaveOccurred())
		Expect(me.Stage(7).MarshalText()).Error().To(HaveOccurred())
	})
})
