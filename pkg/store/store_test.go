package store_test

import (
	"github.com/go-test/deep"
	. "github.com/mandelsoft/relplan/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/relplan/pkg/analysis"
	"github.com/mandelsoft/relplan/pkg/analysis/testdb"
	"github.com/mandelsoft/relplan/pkg/format"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/release"
	me "github.com/mandelsoft/relplan/pkg/store"
	"github.com/mandelsoft/relplan/pkg/version"
)

func plan() *release.ReleaseState {
	db := testdb.Triangle()
	return Must(release.Plan(project.New("c"), version.New(2, 0, 0), db, analysis.BuildDependentsGraph(db)))
}

var _ = Describe("store", func() {
	var fs vfs.FileSystem
	var s *me.Store

	BeforeEach(func() {
		fs = memoryfs.New()
		s = Must(me.New("/ws/.relplan", fs))
	})

	It("reports a missing release", func() {
		Expect(s.Load()).Error().To(MatchError(me.ErrNotExist))
		Expect(s.Exists()).To(BeFalse())
		Expect(s.Delete()).To(MatchError(me.ErrNotExist))
	})

	It("saves and loads a release", func() {
		r := plan()
		MustBeSuccessful(s.Save(r))
		Expect(r.Generation).To(Equal(int64(1)))
		Expect(s.Path()).To(Equal("/ws/.relplan/release.yaml"))

		data := Must(vfs.ReadFile(fs, s.Path()))
		Expect(string(data)).To(HavePrefix(format.AutogeneratedHeader))

		loaded := Must(s.Load())
		Expect(deep.Equal(loaded, r)).To(BeNil())
		Expect(loaded).To(Equal(r))

		entries := Must(vfs.ReadDir(fs, "/ws/.relplan"))
		Expect(entries).To(HaveLen(1))
	})

	It("detects concurrent modifications", func() {
		r := plan()
		MustBeSuccessful(s.Save(r))

		other := Must(s.Load())
		Must(other.Advance(project.New("c")))
		MustBeSuccessful(s.Save(other))
		Expect(other.Generation).To(Equal(int64(2)))

		Must(r.Advance(project.New("c")))
		Expect(s.Save(r)).To(MatchError(me.ErrModified))
		Expect(r.Generation).To(Equal(int64(1)))

		fresh := plan()
		Expect(s.Save(fresh)).To(MatchError(me.ErrModified))
	})

	It("refuses invalid states", func() {
		r := plan()
		r.Phases[1].Projects[0].DependencyUpdates = nil
		Expect(s.Save(r)).To(MatchError(ContainSubstring("invalid release state")))
		Expect(s.Exists()).To(BeFalse())
	})

	It("updates the stored state", func() {
		MustBeSuccessful(s.Save(plan()))

		r := Must(s.Update(func(r *release.ReleaseState) (bool, error) {
			_, err := r.Advance(project.New("c"))
			return true, err
		}))
		Expect(r.Generation).To(Equal(int64(2)))
		Expect(Must(s.Load()).Phases[0].Projects[0].Stage).To(Equal(release.STAGE_PULL_REQUEST_OPENED))

		_, err := s.Update(func(r *release.ReleaseState) (bool, error) {
			_, err := r.Advance(project.New("a"))
			return err == nil, err
		})
		Expect(err).To(HaveOccurred())
		Expect(Must(s.Load()).Generation).To(Equal(int64(2)))
	})

	It("rewrites the stored document", func() {
		r := plan()
		for i := 1; i <= 3; i++ {
			MustBeSuccessful(s.Save(r))
			Expect(r.Generation).To(Equal(int64(i)))
		}
		Expect(Must(s.Load()).Generation).To(Equal(int64(3)))
		Expect(Must(vfs.ReadDir(fs, "/ws/.relplan"))).To(HaveLen(1))
	})

	It("deletes the release", func() {
		MustBeSuccessful(s.Save(plan()))
		MustBeSuccessful(s.Delete())
		Expect(s.Exists()).To(BeFalse())
		MustBeSuccessful(s.Save(plan()))
	})
})

var _ = Describe("store on a layered file system", func() {
	var fs vfs.FileSystem
	var s *me.Store

	BeforeEach(func() {
		fs = Must(TestFileSystem("testdata", false))
		s = Must(me.New("testdata/ws/.relplan", fs))
	})

	AfterEach(func() {
		vfs.Cleanup(fs)
	})

	It("saves and updates a release", func() {
		r := plan()
		MustBeSuccessful(s.Save(r))
		MustBeSuccessful(s.Save(r))
		Expect(r.Generation).To(Equal(int64(2)))

		u := Must(s.Update(func(r *release.ReleaseState) (bool, error) {
			_, err := r.Advance(project.New("c"))
			return true, err
		}))
		Expect(u.Generation).To(Equal(int64(3)))
		Expect(Must(s.Load())).To(Equal(u))

		MustBeSuccessful(s.Delete())
		Expect(s.Exists()).To(BeFalse())
	})
})
