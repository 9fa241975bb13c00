package zone

import (
	"github.com/sarchlab/chemevo/ism"
	"github.com/sarchlab/chemevo/mdf"
	"github.com/sarchlab/chemevo/yields"
)

// Element is an element tracked by a zone.
type Element struct {
	Symbol string

	// Solar is the solar abundance by mass, the zero point of [X/H].
	Solar float64

	Yields yields.Table

	// Zin gives the abundance of infalling gas. Nil means pristine gas.
	Zin ism.Func

	// InitialMass is the mass of the element in the gas at time zero.
	InitialMass float64

	// Mass is the current mass of the element in the gas.
	Mass float64

	// Z[i] is the abundance of the element in the gas at timestep i.
	Z []float64

	Escape Escape

	// Unretained is the mass produced during the last timestep that left
	// with the outflow.
	Unretained float64
}

// Escape holds, per enrichment channel, the fraction of the newly produced
// mass that leaves the zone directly instead of mixing into the gas. The zero
// value keeps everything.
type Escape struct {
	CCSNe float64
	SNeIa float64
	AGB   float64
}

func (f Escape) valid() bool {
	for _, v := range []float64{f.CCSNe, f.SNeIa, f.AGB} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}

	return true
}

// NewElement creates an element with pristine infall.
func NewElement(symbol string, solar float64, table yields.Table) Element {
	return Element{
		Symbol: symbol,
		Solar:  solar,
		Yields: table,
	}
}

// OnH returns [X/H] at timestep step.
func (e *Element) OnH(step int) float64 {
	return mdf.OnH(e.Z[step], e.Solar)
}

func (e *Element) infallZ(t float64) float64 {
	if e.Zin == nil {
		return 0
	}

	return e.Zin(t)
}
