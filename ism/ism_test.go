package ism_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chemevo/ism"
)

var _ = Describe("SFRMode", func() {
	var (
		mode ism.SFRMode
		s    *ism.State
	)

	BeforeEach(func() {
		mode = ism.SFRMode{
			SFR:     ism.Constant(1),
			TauStar: ism.Constant(2),
			Eta:     ism.Constant(0.5),
		}
		s = &ism.State{}
	})

	It("should derive the gas from the star formation rate", func() {
		Expect(mode.Setup(s, 0.01, 10)).To(Succeed())

		Expect(s.SFR).To(Equal(1.0))
		Expect(s.Mass).To(Equal(2.0))
		Expect(s.OFR).To(Equal(0.5))
		Expect(s.SFH[0]).To(Equal(1.0))
		Expect(s.SFH).To(HaveLen(10))
	})

	It("should balance the budget with infall", func() {
		Expect(mode.Setup(s, 0.01, 10)).To(Succeed())
		Expect(mode.Update(s, 0.004)).To(Succeed())

		Expect(s.Timestep).To(Equal(1))
		Expect(s.Mass).To(Equal(2.0))
		Expect(s.IFR).To(BeNumerically("~", 1.5-0.4, 1e-12))
		Expect(s.Inflow).To(BeNumerically("~", 0.011, 1e-12))
		Expect(s.SFH[1]).To(Equal(1.0))
	})

	It("should fail on negative rates", func() {
		mode.SFR = func(t float64) float64 {
			if t > 0.015 {
				return -1
			}
			return 1
		}

		Expect(mode.Setup(s, 0.01, 10)).To(Succeed())
		Expect(mode.Update(s, 0)).To(Succeed())
		Expect(mode.Update(s, 0)).To(MatchError(ism.ErrGasEvolution))
	})

	It("should fail past the end of the history", func() {
		Expect(mode.Setup(s, 0.01, 2)).To(Succeed())
		Expect(mode.Update(s, 0)).To(Succeed())
		Expect(mode.Update(s, 0)).To(MatchError(ism.ErrGasEvolution))
	})

	It("should reject bad sizes", func() {
		Expect(mode.Setup(s, 0, 2)).To(MatchError(ism.ErrGasEvolution))
	})
})

var _ = Describe("InfallMode", func() {
	It("should form stars from the gas", func() {
		mode := ism.InfallMode{
			IFR:        ism.Constant(10),
			TauStar:    ism.Constant(2),
			Eta:        ism.Constant(1),
			InitialGas: 4,
		}
		s := &ism.State{}

		Expect(mode.Setup(s, 0.1, 10)).To(Succeed())
		Expect(s.SFR).To(Equal(2.0))
		Expect(s.OFR).To(Equal(2.0))

		Expect(mode.Update(s, 0.1)).To(Succeed())
		Expect(s.Inflow).To(BeNumerically("~", 1, 1e-12))
		Expect(s.Mass).To(BeNumerically("~", 4+(10-2-2)*0.1+0.1, 1e-12))
		Expect(s.SFR).To(BeNumerically("~", s.Mass/2, 1e-12))
		Expect(s.SFH[1]).To(Equal(s.SFR))
	})

	It("should not let the gas go negative", func() {
		mode := ism.InfallMode{
			IFR:        ism.Constant(0),
			TauStar:    ism.Constant(0.01),
			Eta:        ism.Constant(10),
			InitialGas: 1,
		}
		s := &ism.State{}

		Expect(mode.Setup(s, 0.1, 10)).To(Succeed())
		Expect(mode.Update(s, 0)).To(Succeed())
		Expect(s.Mass).To(Equal(ism.MinGasMass))
		Expect(math.IsInf(s.SFR, 0)).To(BeFalse())
	})

	It("should reject a zero star formation timescale", func() {
		mode := ism.InfallMode{
			IFR:        ism.Constant(0),
			TauStar:    ism.Constant(0),
			InitialGas: 1,
		}

		err := mode.Setup(&ism.State{}, 0.1, 10)
		Expect(err).To(MatchError(ism.ErrGasEvolution))
	})
})

var _ = Describe("GasMode", func() {
	It("should derive star formation from the gas", func() {
		mode := ism.GasMode{
			Gas:     func(t float64) float64 { return 10 + t },
			TauStar: ism.Constant(2),
		}
		s := &ism.State{}

		Expect(mode.Setup(s, 1, 4)).To(Succeed())
		Expect(s.SFR).To(Equal(5.0))

		Expect(mode.Update(s, 0)).To(Succeed())
		Expect(s.Mass).To(Equal(11.0))
		Expect(s.SFR).To(Equal(5.5))
		Expect(s.IFR).To(BeNumerically("~", 1+5, 1e-12))
		Expect(s.Time()).To(Equal(1.0))
	})
})

var _ = Describe("Outflow", func() {
	It("should follow a time dependent mass loading and enhancement", func() {
		mode := ism.SFRMode{
			SFR:         ism.Constant(2),
			TauStar:     ism.Constant(1),
			Eta:         func(t float64) float64 { return 1 + t },
			Enhancement: func(t float64) float64 { return 2 + t },
		}
		s := &ism.State{}

		Expect(mode.Setup(s, 0.5, 4)).To(Succeed())
		Expect(s.OFR).To(Equal(2.0))
		Expect(s.Enhancement).To(Equal(2.0))

		Expect(mode.Update(s, 0)).To(Succeed())
		Expect(s.OFR).To(Equal(3.0))
		Expect(s.Enhancement).To(Equal(2.5))
	})

	It("should default to no outflow at the gas metallicity", func() {
		mode := ism.InfallMode{
			IFR:        ism.Constant(1),
			TauStar:    ism.Constant(1),
			InitialGas: 1,
		}
		s := &ism.State{}

		Expect(mode.Setup(s, 0.1, 4)).To(Succeed())
		Expect(s.OFR).To(BeZero())
		Expect(s.Enhancement).To(Equal(1.0))
	})

	It("should reject a negative mass loading", func() {
		mode := ism.GasMode{
			Gas:     ism.Constant(1),
			TauStar: ism.Constant(1),
			Eta:     ism.Constant(-1),
		}

		err := mode.Setup(&ism.State{}, 0.1, 4)
		Expect(err).To(MatchError(ism.ErrGasEvolution))
	})
})
