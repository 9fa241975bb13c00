// Package ism evolves the gas reservoir of a zone: its mass, star formation
// rate, infall and outflow. Rates are in solar masses per Gyr.
package ism

import (
	"fmt"
	"math"
)

// MinGasMass is the smallest gas mass a reservoir is allowed to reach. It
// keeps abundances finite when a reservoir is exhausted.
const MinGasMass = 1e-12

// State is the gas reservoir of a zone.
type State struct {
	Mass float64
	SFR  float64
	IFR  float64
	OFR  float64

	// Enhancement is the metallicity of the outflow relative to the gas.
	Enhancement float64

	// Inflow is the gas mass accreted during the last Update.
	Inflow float64

	// SFH[i] is the star formation rate during timestep i.
	SFH []float64

	Timestep int
	Dt       float64
}

// Time returns the time of the current timestep.
func (s *State) Time() float64 {
	return float64(s.Timestep) * s.Dt
}

// Func is a quantity given as a function of time in Gyr.
type Func func(t float64) float64

// Constant returns a Func that always returns v.
func Constant(v float64) Func {
	return func(float64) float64 { return v }
}

// Evolution advances a gas reservoir.
type Evolution interface {
	// Setup sizes the state for n timesteps of size dt and sets its initial
	// values.
	Setup(s *State, dt float64, n int) error

	// Update advances the state by one timestep, adding the recycled gas
	// mass returned by stars.
	Update(s *State, recycled float64) error
}

func prepare(s *State, dt float64, n int) error {
	if !(dt > 0) || n <= 0 {
		return fmt.Errorf("%w: n=%d dt=%g", ErrGasEvolution, n, dt)
	}

	s.SFH = make([]float64, n)
	s.Inflow = 0
	s.Timestep = 0
	s.Dt = dt

	return nil
}

func checkRate(name string, t, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s=%g at t=%g", ErrGasEvolution, name, v, t)
	}

	return nil
}

// outflow sets the outflow rate and enhancement at time t. It must be called
// after the star formation rate is known.
func (s *State) outflow(eta, enhancement Func, t float64) error {
	loading := 0.0
	if eta != nil {
		loading = eta(t)
	}

	if err := checkRate("eta", t, loading); err != nil {
		return err
	}

	enh := 1.0
	if enhancement != nil {
		enh = enhancement(t)
	}

	if err := checkRate("enhancement", t, enh); err != nil {
		return err
	}

	s.OFR = loading * s.SFR
	s.Enhancement = enh

	return nil
}

func record(s *State) error {
	next := s.Timestep + 1
	if next >= len(s.SFH) {
		return fmt.Errorf("%w: timestep %d beyond history of %d",
			ErrGasEvolution, next, len(s.SFH))
	}

	s.Timestep = next
	s.SFH[next] = s.SFR

	return nil
}
