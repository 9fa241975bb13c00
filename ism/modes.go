package ism

import (
	"fmt"
	"math"
)

// SFRMode evolves a reservoir whose star formation rate is given. The gas
// mass follows from the star formation efficiency timescale and the infall
// rate is whatever balances the mass budget.
//
// In every mode the outflow rate is Eta(t) times the star formation rate and
// the outflow metallicity is Enhancement(t) times that of the gas. A nil Eta
// means no outflow and a nil Enhancement means 1.
type SFRMode struct {
	SFR         Func
	TauStar     Func
	Eta         Func
	Enhancement Func
}

// Setup implements Evolution.
func (m SFRMode) Setup(s *State, dt float64, n int) error {
	if err := prepare(s, dt, n); err != nil {
		return err
	}

	if err := m.evaluate(s, 0); err != nil {
		return err
	}

	s.IFR = 0
	s.SFH[0] = s.SFR

	return nil
}

// Update implements Evolution.
func (m SFRMode) Update(s *State, recycled float64) error {
	before := s.Mass
	spent := (s.SFR + s.OFR) * s.Dt
	t := s.Time() + s.Dt

	if err := m.evaluate(s, t); err != nil {
		return err
	}

	s.IFR = math.Max(0, (s.Mass-before+spent-recycled)/s.Dt)
	s.Inflow = s.IFR * s.Dt

	return record(s)
}

func (m SFRMode) evaluate(s *State, t float64) error {
	sfr := m.SFR(t)
	if err := checkRate("sfr", t, sfr); err != nil {
		return err
	}

	tau := m.TauStar(t)
	if err := checkRate("tau_star", t, tau); err != nil {
		return err
	}

	s.SFR = sfr
	s.Mass = math.Max(MinGasMass, sfr*tau)

	return s.outflow(m.Eta, m.Enhancement, t)
}

// InfallMode evolves a reservoir whose infall rate is given. Stars form from
// the gas on the timescale TauStar.
type InfallMode struct {
	IFR         Func
	TauStar     Func
	Eta         Func
	Enhancement Func
	InitialGas  float64
}

// Setup implements Evolution.
func (m InfallMode) Setup(s *State, dt float64, n int) error {
	if err := prepare(s, dt, n); err != nil {
		return err
	}

	if err := checkRate("initial_gas", 0, m.InitialGas); err != nil {
		return err
	}

	s.Mass = math.Max(MinGasMass, m.InitialGas)
	if err := m.rates(s, 0); err != nil {
		return err
	}

	s.SFH[0] = s.SFR

	return nil
}

// Update implements Evolution.
func (m InfallMode) Update(s *State, recycled float64) error {
	s.Inflow = s.IFR * s.Dt
	s.Mass += s.Inflow - (s.SFR+s.OFR)*s.Dt + recycled
	if math.IsNaN(s.Mass) || math.IsInf(s.Mass, 0) {
		return checkRate("gas", s.Time(), s.Mass)
	}

	s.Mass = math.Max(MinGasMass, s.Mass)
	if err := m.rates(s, s.Time()+s.Dt); err != nil {
		return err
	}

	return record(s)
}

func (m InfallMode) rates(s *State, t float64) error {
	ifr := m.IFR(t)
	if err := checkRate("ifr", t, ifr); err != nil {
		return err
	}

	tau := m.TauStar(t)
	if err := checkRate("tau_star", t, tau); err != nil {
		return err
	}

	if tau == 0 {
		return fmt.Errorf("%w: tau_star=0 at t=%g", ErrGasEvolution, t)
	}

	s.IFR = ifr
	s.SFR = s.Mass / tau

	return s.outflow(m.Eta, m.Enhancement, t)
}

// GasMode evolves a reservoir whose gas mass is given.
type GasMode struct {
	Gas         Func
	TauStar     Func
	Eta         Func
	Enhancement Func
}

// Setup implements Evolution.
func (m GasMode) Setup(s *State, dt float64, n int) error {
	if err := prepare(s, dt, n); err != nil {
		return err
	}

	if err := m.evaluate(s, 0); err != nil {
		return err
	}

	s.IFR = 0
	s.SFH[0] = s.SFR

	return nil
}

// Update implements Evolution.
func (m GasMode) Update(s *State, recycled float64) error {
	before := s.Mass
	spent := (s.SFR + s.OFR) * s.Dt
	t := s.Time() + s.Dt

	if err := m.evaluate(s, t); err != nil {
		return err
	}

	s.IFR = math.Max(0, (s.Mass-before+spent-recycled)/s.Dt)
	s.Inflow = s.IFR * s.Dt

	return record(s)
}

func (m GasMode) evaluate(s *State, t float64) error {
	gas := m.Gas(t)
	if err := checkRate("gas", t, gas); err != nil {
		return err
	}

	tau := m.TauStar(t)
	if err := checkRate("tau_star", t, tau); err != nil {
		return err
	}

	if tau == 0 {
		return fmt.Errorf("%w: tau_star=0 at t=%g", ErrGasEvolution, t)
	}

	s.Mass = math.Max(MinGasMass, gas)
	s.SFR = gas / tau

	return s.outflow(m.Eta, m.Enhancement, t)
}
