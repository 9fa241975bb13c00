package multizone

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chemevo/ism"
	"github.com/sarchlab/chemevo/yields"
	"github.com/sarchlab/chemevo/zone"
)

func gasZone(name string, gas float64) *zone.Zone {
	o := zone.NewElement("o", 0.0057, &yields.Settings{
		CCSNeModel: yields.ConstantCCSNe(0.015),
	})
	o.InitialMass = 0.01 * gas

	return zone.MakeBuilder().
		WithName(name).
		WithEvolution(ism.GasMode{
			Gas:     ism.Constant(gas),
			TauStar: ism.Constant(2),
		}).
		WithElements(o).
		Build()
}

var _ = Describe("Gas migration", func() {
	var (
		zones []*zone.Zone
		m     *Multizone
	)

	BeforeEach(func() {
		zones = []*zone.Zone{
			gasZone("a", 10),
			gasZone("b", 20),
			gasZone("c", 40),
		}

		matrix := NewMigrationMatrix(3)
		matrix.Gas[0][1] = 0.1
		matrix.Gas[1][2] = 0.25
		matrix.Gas[2][0] = 0.05
		matrix.Gas[2][1] = 0.05

		m = New(zones, matrix)
		Expect(m.Setup([]float64{1})).To(Succeed())
	})

	It("should move fractions of the gas before the move", func() {
		m.migrateGas()

		Expect(zones[0].ISM().Mass).To(BeNumerically("~", 10-1+2, 1e-12))
		Expect(zones[1].ISM().Mass).To(BeNumerically("~", 20+1-5+2, 1e-12))
		Expect(zones[2].ISM().Mass).To(BeNumerically("~", 40+5-4, 1e-12))
	})

	It("should conserve gas and element mass", func() {
		gas, metals := 0.0, 0.0
		for _, z := range zones {
			gas += z.ISM().Mass
			metals += z.Element(0).Mass
		}

		m.migrateGas()

		gasAfter, metalsAfter := 0.0, 0.0
		for _, z := range zones {
			gasAfter += z.ISM().Mass
			metalsAfter += z.Element(0).Mass
		}

		Expect(gasAfter).To(BeNumerically("~", gas, 1e-12))
		Expect(metalsAfter).To(BeNumerically("~", metals, 1e-14))
	})

	It("should carry metals with the gas", func() {
		m.migrateGas()

		for _, z := range zones {
			Expect(z.Element(0).Mass / z.ISM().Mass).
				To(BeNumerically("~", 0.01, 1e-14))
		}
	})
})

var _ = Describe("MatrixMigrator", func() {
	It("should always move with probability one", func() {
		migrator := NewMatrixMigrator([][]float64{{0, 1}, {1, 0}}, DefaultSeed)
		t := &Tracer{ZoneCurrent: 0}

		for i := 0; i < 100; i++ {
			Expect(migrator.Migrate(t, i)).To(Equal(1))
		}
	})

	It("should never move with probability zero", func() {
		migrator := NewMatrixMigrator([][]float64{{0, 0}, {0, 0}}, DefaultSeed)
		t := &Tracer{ZoneCurrent: 1}

		for i := 0; i < 100; i++ {
			Expect(migrator.Migrate(t, i)).To(Equal(1))
		}
	})

	It("should stay when no matrix is given", func() {
		migrator := NewMatrixMigrator(nil, DefaultSeed)
		t := &Tracer{ZoneCurrent: 2}

		Expect(migrator.Migrate(t, 0)).To(Equal(2))
	})

	It("should follow the probabilities", func() {
		migrator := NewMatrixMigrator([][]float64{
			{0, 0.3, 0.2},
			{0, 0, 0},
			{0, 0, 0},
		}, DefaultSeed)
		t := &Tracer{ZoneCurrent: 0}

		counts := make([]int, 3)
		draws := 10000
		for i := 0; i < draws; i++ {
			counts[migrator.Migrate(t, i)]++
		}

		Expect(float64(counts[1]) / float64(draws)).
			To(BeNumerically("~", 0.3, 0.02))
		Expect(float64(counts[2]) / float64(draws)).
			To(BeNumerically("~", 0.2, 0.02))
		Expect(float64(counts[0]) / float64(draws)).
			To(BeNumerically("~", 0.5, 0.02))
	})

	It("should repeat draws with the same seed", func() {
		probs := [][]float64{{0, 0.5}, {0.5, 0}}
		a := NewMatrixMigrator(probs, 42)
		b := NewMatrixMigrator(probs, 42)

		for i := 0; i < 100; i++ {
			ta := &Tracer{ZoneCurrent: i % 2}
			tb := &Tracer{ZoneCurrent: i % 2}
			Expect(a.Migrate(ta, i)).To(Equal(b.Migrate(tb, i)))
		}
	})
})

var _ = Describe("Cohort bookkeeping", func() {
	It("should keep tracer mass in origin and current cells", func() {
		c := &cohorts{n: 2}

		t1 := &Tracer{Mass: 1, ZoneOrigin: 0, TimestepOrigin: 0}
		t2 := &Tracer{Mass: 2, ZoneOrigin: 1, TimestepOrigin: 2, ZoneCurrent: 1}
		c.spawned(t1)
		c.spawned(t2)

		Expect(c.cells).To(HaveLen(3))
		Expect(c.cells[0]).To(Equal([]float64{1, 0, 0, 0}))
		Expect(c.cells[1]).To(Equal([]float64{0, 0, 0, 0}))
		Expect(c.cells[2]).To(Equal([]float64{0, 0, 0, 2}))

		t1.ZoneCurrent = 1
		c.moved(t1, 0)
		t2.ZoneCurrent = 0
		c.moved(t2, 1)

		Expect(c.cells[0]).To(Equal([]float64{0, 1, 0, 0}))
		Expect(c.cells[2]).To(Equal([]float64{0, 0, 2, 0}))
	})
})

var _ = Describe("Strategy", func() {
	DescribeTable("parsing",
		func(name string, expected Strategy) {
			s, err := ParseStrategy(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal(expected))
		},
		Entry("default", "", Cohort),
		Entry("cohort", "cohort", Cohort),
		Entry("brute force", "brute-force", BruteForce),
	)

	It("should reject unknown strategies", func() {
		_, err := ParseStrategy("random")
		Expect(err).To(HaveOccurred())
	})

	It("should print names", func() {
		Expect(Cohort.String()).To(Equal("cohort"))
		Expect(BruteForce.String()).To(Equal("brute-force"))
	})
})
