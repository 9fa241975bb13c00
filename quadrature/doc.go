// Package quadrature integrates one-dimensional functions over a finite
// interval to a requested relative tolerance.
//
// An Integral starts with NMin subintervals and doubles the count until two
// successive estimates agree within Tolerance or the count would exceed NMax.
// Running out of subdivisions is not an error: the last estimate is returned
// with Converged set to false.
package quadrature
