package mdf_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chemevo/mdf"
)

var _ = Describe("MDF", func() {
	var m *mdf.MDF

	BeforeEach(func() {
		var err error
		m, err = mdf.New([]float64{-1, -0.5, 0, 0.5}, []string{"o", "fe"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should find bins", func() {
		Expect(mdf.BinNumber(m.Bins, -1)).To(Equal(0))
		Expect(mdf.BinNumber(m.Bins, -0.25)).To(Equal(1))
		Expect(mdf.BinNumber(m.Bins, 0)).To(Equal(2))
		Expect(mdf.BinNumber(m.Bins, 0.5)).To(Equal(-1))
		Expect(mdf.BinNumber(m.Bins, -2)).To(Equal(-1))
		Expect(mdf.BinNumber(m.Bins, math.Inf(-1))).To(Equal(-1))
		Expect(mdf.BinNumber(m.Bins, math.NaN())).To(Equal(-1))
	})

	It("should label ratios", func() {
		Expect(m.RatioLabels()).To(Equal([]string{"[fe/o]"}))
	})

	It("should bin abundances and ratios", func() {
		m.Add([]float64{-0.25, 0.2}, 2)
		m.Add([]float64{math.Inf(-1), 0.1}, 1)

		Expect(m.Abundance[0]).To(Equal([]float64{0, 2, 0}))
		Expect(m.Abundance[1]).To(Equal([]float64{0, 0, 3}))
		Expect(m.Ratio[0]).To(Equal([]float64{0, 0, 2}))
	})

	It("should normalize to unit integral", func() {
		m.Add([]float64{-0.25, 0.2}, 2)
		m.Add([]float64{-0.75, -0.5}, 6)
		m.Normalize()

		Expect(m.Integral(m.Abundance[0])).To(BeNumerically("~", 1, 1e-12))
		Expect(m.Abundance[0][0]).To(BeNumerically("~", 1.5, 1e-12))
		Expect(m.Integral(m.Ratio[0])).To(BeNumerically("~", 1, 1e-12))
	})

	It("should leave empty distributions at zero", func() {
		m.Normalize()
		Expect(m.Abundance[0]).To(Equal([]float64{0, 0, 0}))
	})

	It("should reset", func() {
		m.Add([]float64{-0.25, 0.25}, 2)
		m.Reset()
		Expect(m.Integral(m.Abundance[0])).To(BeZero())
		Expect(m.Integral(m.Ratio[0])).To(BeZero())
	})

	It("should reject bad bins", func() {
		_, err := mdf.New([]float64{0}, nil)
		Expect(err).To(MatchError(mdf.ErrBadBins))

		_, err = mdf.New([]float64{0, 0, 1}, nil)
		Expect(err).To(MatchError(mdf.ErrBadBins))

		_, err = mdf.New([]float64{1, 0}, nil)
		Expect(err).To(MatchError(mdf.ErrBadBins))
	})

	It("should compute [X/H]", func() {
		Expect(mdf.OnH(0.0014, 0.014)).To(BeNumerically("~", -1, 1e-12))
	})
})
