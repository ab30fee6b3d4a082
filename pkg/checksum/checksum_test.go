package checksum_test

import (
	"crypto/sha256"

	"github.com/goombaio/namegenerator"
	. "github.com/mandelsoft/relplan/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/relplan/pkg/analysis"
	"github.com/mandelsoft/relplan/pkg/analysis/testdb"
	me "github.com/mandelsoft/relplan/pkg/checksum"
)

type fixed string

func (f fixed) Generate() string {
	return string(f)
}

var _ = Describe("checksum", func() {
	It("hashes raw data verbatim", func() {
		Expect(Must(me.Of("test"))).To(Equal(me.Checksum(sha256.Sum256([]byte("test")))))
		Expect(Must(me.Of([]byte("test")))).To(Equal(me.Checksum(sha256.Sum256([]byte("test")))))
	})

	It("hashes nil to zero", func() {
		Expect(Must(me.Of(nil)).IsZero()).To(BeTrue())
	})

	It("ignores formatting and map order", func() {
		a := map[string]interface{}{"b": 1, "a": []int{1, 2}}
		b := map[string]interface{}{"a": []int{1, 2}, "b": 1}
		Expect(Must(me.Of(a))).To(Equal(Must(me.Of(b))))
		Expect(Must(me.Of(a))).NotTo(Equal(Must(me.Of(map[string]interface{}{"a": []int{2, 1}, "b": 1}))))
	})

	It("is equal for equal databases", func() {
		db1 := testdb.Triangle()
		db2 := analysis.NewDatabase(
			testdb.Project("a", "1.0.0", testdb.On("b", "~> 1.0"), testdb.On("c", "~> 1.0")),
			testdb.Project("c", "1.0.0"),
			testdb.Project("b", "1.0.0", testdb.On("c", "~> 1.0")),
		)

		c1 := Must(me.Of(db1.Snapshot()))
		c2 := Must(me.Of(db2.Snapshot()))
		Expect(c1).To(Equal(c2))
		Expect(c1.Codename()).To(Equal(c2.Codename()))
		Expect(Must(me.Of(testdb.Chain(2, 1).Snapshot()))).NotTo(Equal(c1))
	})

	It("round trips text", func() {
		c := Must(me.Of("test"))
		Expect(c.String()).To(HaveLen(2 * me.Size))
		var r me.Checksum
		MustBeSuccessful(r.UnmarshalText(Must(c.MarshalText())))
		Expect(r).To(Equal(c))
		Expect(me.Parse("abcd")).Error().To(HaveOccurred())
	})

	Context("codename", func() {
		It("is deterministic", func() {
			c := Must(me.Of("test"))
			Expect(c.Codename()).To(Equal(c.Codename()))
			Expect(c.Codename()).To(ContainSubstring("-"))
			Expect(c.Codename()).To(Equal(namegenerator.NewNameGenerator(c.Seed()).Generate()))
		})

		It("uses an injected generator", func() {
			var seed int64
			gen := func(s int64) namegenerator.Generator {
				seed = s
				return fixed("code-name")
			}
			c := Must(me.Of("test"))
			Expect(c.Codename(gen)).To(Equal("code-name"))
			Expect(seed).To(Equal(c.Seed()))
		})
	})
})
