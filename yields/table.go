package yields

// Table answers the yield queries for one element.
type Table interface {
	// Setup prepares per-timestep data for a run of n timesteps of size dt.
	Setup(dt float64, n int) error

	// CCSNe returns the core collapse yield of a population formed at
	// metallicity z.
	CCSNe(z float64) float64

	// AGB returns the yield of AGB stars of initial mass m and metallicity
	// z, per unit mass of stars leaving the main sequence.
	AGB(z, m float64) float64

	// SNeIa returns the type Ia yield released during the timestep at which
	// a population is age timesteps old.
	SNeIa(age int) float64
}

// CCSNeModel gives a core collapse yield as a function of metallicity.
type CCSNeModel interface {
	Yield(z float64) float64
}

// AGBModel gives an AGB yield as a function of metallicity and mass.
type AGBModel interface {
	Yield(z, m float64) float64
}

// ConstantCCSNe is a metallicity-independent core collapse yield.
type ConstantCCSNe float64

// Yield returns the constant.
func (c ConstantCCSNe) Yield(_ float64) float64 {
	return float64(c)
}

// AGBFunc adapts a function to an AGBModel.
type AGBFunc func(z, m float64) float64

// Yield calls f(z, m).
func (f AGBFunc) Yield(z, m float64) float64 {
	return f(z, m)
}

// Settings is a Table assembled from per-channel models. A nil model stands
// for a channel that does not produce the element.
type Settings struct {
	CCSNeModel CCSNeModel
	AGBModel   AGBModel

	// SNeIaYield is the mass yield of type Ia supernovae per unit stellar
	// mass formed, released over time following DTD.
	SNeIaYield float64
	DTD        DTD

	ria []float64
}

// Setup tabulates the delay time distribution for the run.
func (s *Settings) Setup(dt float64, n int) error {
	s.ria = nil
	if s.DTD == nil || s.SNeIaYield == 0 {
		return nil
	}

	ria, err := Tabulate(s.DTD, dt, n)
	if err != nil {
		return err
	}

	s.ria = ria

	return nil
}

// CCSNe implements Table.
func (s *Settings) CCSNe(z float64) float64 {
	if s.CCSNeModel == nil {
		return 0
	}

	return s.CCSNeModel.Yield(z)
}

// AGB implements Table.
func (s *Settings) AGB(z, m float64) float64 {
	if s.AGBModel == nil {
		return 0
	}

	return s.AGBModel.Yield(z, m)
}

// SNeIa implements Table.
func (s *Settings) SNeIa(age int) float64 {
	if age < 0 || age >= len(s.ria) {
		return 0
	}

	return s.SNeIaYield * s.ria[age]
}
