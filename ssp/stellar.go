package ssp

import "math"

// SolarLifetime is the main sequence lifetime of the sun in Gyr, and
// MassLifetimeIndex the power-law index of the mass-lifetime relation.
const (
	SolarLifetime     = 10.0
	MassLifetimeIndex = 3.5
)

// Kalirai et al. (2008) initial-final mass relation.
const (
	remnantBreakMass   = 8.0
	massiveRemnantMass = 1.44
	remnantIntercept   = 0.394
	remnantSlope       = 0.109
)

// MaxAGBMass is the largest initial mass of stars that end their lives on
// the asymptotic giant branch. Heavier stars explode as core collapse
// supernovae.
const MaxAGBMass = remnantBreakMass

// TurnoffMass returns the mass in Msun of the stars dying at age t (Gyr) of a
// population whose post main sequence lifetimes are postMS times their main
// sequence lifetimes. It is +Inf at t = 0.
func TurnoffMass(t, postMS float64) float64 {
	return math.Pow(t/((1+postMS)*SolarLifetime), -1/MassLifetimeIndex)
}

// RemnantMass returns the Kalirai et al. (2008) remnant mass of a star with
// initial mass m.
func RemnantMass(m float64) float64 {
	switch {
	case m >= remnantBreakMass:
		return massiveRemnantMass
	case m > 0:
		return remnantIntercept + remnantSlope*m
	default:
		return 0
	}
}

// powerIntegral returns the integral of m^k from lo to hi.
func powerIntegral(lo, hi, k float64) float64 {
	if k == -1 {
		return math.Log(hi / lo)
	}

	return (math.Pow(hi, k+1) - math.Pow(lo, k+1)) / (k + 1)
}

// returnedAbove8 integrates (m - 1.44) m^-a from turnoff to upper, both at or
// above the remnant break.
func returnedAbove8(upper, turnoff, a float64) float64 {
	return powerIntegral(turnoff, upper, 1-a) -
		massiveRemnantMass*powerIntegral(turnoff, upper, -a)
}

// returnedBelow8 integrates (0.891 m - 0.394) m^-a from turnoff to upper,
// both at or below the remnant break.
func returnedBelow8(upper, turnoff, a float64) float64 {
	return (1-remnantSlope)*powerIntegral(turnoff, upper, 1-a) -
		remnantIntercept*powerIntegral(turnoff, upper, -a)
}

// returnedInRange is the mass returned by stars of one power-law segment
// [lower, upper] with index a once the turnoff mass has dropped to turnoff.
// A turnoff below the segment counts the whole segment as dead; a turnoff
// above it counts none.
func returnedInRange(upper, turnoff, lower, a float64) float64 {
	switch {
	case turnoff < lower:
		return returnedInRange(upper, lower, lower, a)
	case turnoff > upper:
		return 0
	case turnoff >= remnantBreakMass:
		return returnedAbove8(upper, turnoff, a)
	case upper > remnantBreakMass:
		return returnedAbove8(upper, remnantBreakMass, a) +
			returnedBelow8(remnantBreakMass, turnoff, a)
	default:
		return returnedBelow8(upper, turnoff, a)
	}
}

// massInRange is the initial mass formed in one power-law segment.
func massInRange(upper, lower, a float64) float64 {
	return powerIntegral(lower, upper, 1-a)
}
