// Package ssp computes how a single stellar population returns mass to the
// interstellar medium as it ages.
//
// Two fractions are tabulated per timestep since formation: the cumulative
// return fraction (CRF), the share of the population's initial mass returned
// to the gas by a given age, and the main sequence mass fraction (MSMF), the
// share still on the main sequence. Both use the Kalirai et al. (2008)
// initial-final remnant mass relation and a power-law mass-lifetime relation.
//
// For Salpeter and Kroupa IMFs the integrals are solved in closed form on each
// power-law segment. Custom IMFs are integrated numerically.
package ssp
