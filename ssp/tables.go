package ssp

import (
	"fmt"
	"log"
)

// Tables hold the CRF and MSMF of a population sampled every dt since
// formation: CRF[i] and MSMF[i] are the values at age i*dt.
type Tables struct {
	CRF  []float64
	MSMF []float64

	// Denominator is the total initial mass shared by both fractions.
	Denominator float64

	// Converged is false if any numerical integral stopped before reaching
	// its tolerance. The best-effort values are kept.
	Converged bool
}

// BuildTables tabulates n entries of the CRF and MSMF of pop with spacing dt.
// Callers size n to cover the run plus a margin, so that lookups one entry
// past the last age stay in bounds.
func BuildTables(pop *Population, dt float64, n int) (*Tables, error) {
	if n <= 0 || !(dt > 0) {
		return nil, fmt.Errorf("%w: n=%d dt=%g", ErrBadTableSize, n, dt)
	}

	g, err := newIntegrator(pop)
	if err != nil {
		return nil, err
	}

	t := &Tables{
		CRF:         make([]float64, n),
		MSMF:        make([]float64, n),
		Denominator: g.denominator,
	}

	for i := 0; i < n; i++ {
		age := float64(i) * dt

		t.CRF[i], err = g.crf(age)
		if err != nil {
			return nil, err
		}

		t.MSMF[i], err = g.msmf(age)
		if err != nil {
			return nil, err
		}
	}

	t.Converged = g.converged
	if !t.Converged {
		log.Printf("ssp: quadrature did not converge for some ages; " +
			"using best-effort CRF/MSMF values")
	}

	return t, nil
}

// Len returns the number of tabulated ages.
func (t *Tables) Len() int {
	return len(t.CRF)
}

// ReturnedBetween returns CRF[age+1] - CRF[age], the fraction of a
// population's initial mass returned during the timestep at which it has age
// steps.
func (t *Tables) ReturnedBetween(age int) float64 {
	return t.CRF[age+1] - t.CRF[age]
}

// DiedBetween returns MSMF[age] - MSMF[age+1], the fraction of a population's
// initial mass leaving the main sequence during the timestep at which it has
// age steps.
func (t *Tables) DiedBetween(age int) float64 {
	return t.MSMF[age] - t.MSMF[age+1]
}
