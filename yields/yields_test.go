package yields_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chemevo/yields"
)

var _ = Describe("Delay time distributions", func() {
	It("should normalize over the horizon", func() {
		dt := 0.01
		ria, err := yields.Tabulate(
			yields.PowerLawDTD{Index: 1.1, MinDelay: 0.15}, dt, 1500)
		Expect(err).NotTo(HaveOccurred())

		sum := 0.0
		for _, r := range ria {
			sum += r
		}
		Expect(sum).To(BeNumerically("~", 1, 1e-9))
	})

	It("should release nothing before the minimum delay", func() {
		ria, err := yields.Tabulate(
			yields.ExponentialDTD{Timescale: 1.5, MinDelay: 0.2}, 0.1, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(ria[0]).To(BeZero())
		Expect(ria[1]).To(BeZero())
		Expect(ria[2]).To(BeNumerically(">", 0))
		Expect(ria[3]).To(BeNumerically("<", ria[2]))
	})

	It("should reject bad sizes", func() {
		_, err := yields.Tabulate(yields.PowerLawDTD{Index: 1.1}, 0, 10)
		Expect(err).To(MatchError(yields.ErrBadDTD))
	})

	It("should reject distributions that never switch on", func() {
		_, err := yields.Tabulate(
			yields.PowerLawDTD{Index: 1.1, MinDelay: 100}, 0.1, 10)
		Expect(err).To(MatchError(yields.ErrBadDTD))
	})
})

var _ = Describe("Settings", func() {
	It("should report zero for missing channels", func() {
		s := &yields.Settings{}
		Expect(s.Setup(0.01, 100)).To(Succeed())
		Expect(s.CCSNe(0.01)).To(BeZero())
		Expect(s.AGB(0.01, 2)).To(BeZero())
		Expect(s.SNeIa(5)).To(BeZero())
	})

	It("should scale the DTD by the type Ia yield", func() {
		s := &yields.Settings{
			CCSNeModel: yields.ConstantCCSNe(0.015),
			AGBModel: yields.AGBFunc(func(z, m float64) float64 {
				return z * m
			}),
			SNeIaYield: 0.0012,
			DTD:        yields.ExponentialDTD{Timescale: 1.5},
		}
		Expect(s.Setup(0.1, 200)).To(Succeed())

		ria, err := yields.Tabulate(yields.ExponentialDTD{Timescale: 1.5},
			0.1, 200)
		Expect(err).NotTo(HaveOccurred())

		Expect(s.CCSNe(0.5)).To(Equal(0.015))
		Expect(s.AGB(0.01, 3)).To(BeNumerically("~", 0.03, 1e-15))
		Expect(s.SNeIa(4)).To(BeNumerically("~", 0.0012*ria[4], 1e-18))
		Expect(s.SNeIa(-1)).To(BeZero())
		Expect(s.SNeIa(200)).To(BeZero())
	})
})

var _ = Describe("Interpolation", func() {
	It("should interpolate and extrapolate core collapse yields", func() {
		p, err := yields.NewInterp1D(
			[]float64{0, 0.01, 0.02}, []float64{0.01, 0.02, 0.02})
		Expect(err).NotTo(HaveOccurred())

		Expect(p.Yield(0.005)).To(BeNumerically("~", 0.015, 1e-12))
		Expect(p.Yield(0.015)).To(BeNumerically("~", 0.02, 1e-12))
		Expect(p.Yield(-0.01)).To(BeNumerically("~", 0, 1e-12))
		Expect(p.Yield(0.03)).To(BeNumerically("~", 0.02, 1e-12))
	})

	It("should reject unsorted axes", func() {
		_, err := yields.NewInterp1D([]float64{0.02, 0.01}, []float64{1, 2})
		Expect(err).To(MatchError(yields.ErrBadGrid))
	})

	It("should interpolate AGB yields bilinearly", func() {
		g, err := yields.NewAGBGrid(
			[]float64{1, 3},
			[]float64{0, 0.02},
			[][]float64{
				{0, 2},
				{4, 6},
			})
		Expect(err).NotTo(HaveOccurred())

		Expect(g.Yield(0, 1)).To(BeNumerically("~", 0, 1e-12))
		Expect(g.Yield(0.01, 2)).To(BeNumerically("~", 3, 1e-12))
		Expect(g.Yield(0.02, 3)).To(BeNumerically("~", 6, 1e-12))
		Expect(g.Yield(0.02, 5)).To(BeNumerically("~", 10, 1e-12))
	})

	It("should reject ragged grids", func() {
		_, err := yields.NewAGBGrid(
			[]float64{1, 3},
			[]float64{0, 0.02},
			[][]float64{{0, 2}, {4}})
		Expect(err).To(MatchError(yields.ErrBadGrid))
	})
})
