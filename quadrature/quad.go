package quadrature

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/integrate/quad"
)

// Default settings, used when the corresponding Integral field is zero.
const (
	DefaultTolerance = 1e-3
	DefaultNMin      = 64
	DefaultNMax      = 1 << 20
)

// Integral describes the definite integral of Func from A to B.
type Integral struct {
	Func      func(x float64) float64
	A, B      float64
	Tolerance float64
	Method    Method
	NMin      int
	NMax      int
}

// Result is the outcome of an integration.
type Result struct {
	Value float64

	// Error is the relative difference between the last two estimates.
	Error float64

	// Iterations counts the refinements performed.
	Iterations int

	// N is the number of subintervals used by the final estimate.
	N int

	Converged bool
}

// Integrate evaluates the integral. Reversed bounds flip the sign of the
// result; equal bounds give zero.
func Integrate(in Integral) (Result, error) {
	in, err := withDefaults(in)
	if err != nil {
		return Result{}, err
	}

	if in.A == in.B {
		return Result{Converged: true}, nil
	}

	sign := 1.0
	if in.A > in.B {
		in.A, in.B = in.B, in.A
		sign = -1
	}

	nMax := in.NMax
	if in.Method == GaussLegendre && nMax > maxLegendreNodes {
		nMax = maxLegendreNodes
	}

	res := Result{Error: math.Inf(1)}
	old := math.NaN()
	for n := in.NMin; n <= nMax; n *= 2 {
		value := estimate(in, n)
		res.Iterations++
		res.N = n
		res.Value = value

		if !math.IsNaN(old) {
			res.Error = relativeDifference(old, value)
			if res.Error < in.Tolerance {
				res.Converged = true
				break
			}
		}

		old = value
	}

	res.Value *= sign

	return res, nil
}

func withDefaults(in Integral) (Integral, error) {
	if in.Func == nil {
		return in, ErrNilFunc
	}

	if math.IsNaN(in.A) || math.IsNaN(in.B) ||
		math.IsInf(in.A, 0) || math.IsInf(in.B, 0) {
		return in, ErrNonFinite
	}

	if _, ok := methodNames[in.Method]; !ok {
		return in, ErrUnknownMethod
	}

	if in.Tolerance == 0 {
		in.Tolerance = DefaultTolerance
	}

	if in.NMin == 0 {
		in.NMin = DefaultNMin
	}

	if in.NMax == 0 {
		in.NMax = DefaultNMax
	}

	if in.Tolerance <= 0 || in.Tolerance >= 1 {
		return in, ErrBadTolerance
	}

	if in.NMin < 0 || in.NMax < 0 || in.NMin > in.NMax {
		return in, ErrBadSubdivision
	}

	// Simpson's rule needs an even number of subintervals.
	if in.NMin%2 == 1 {
		in.NMin++
	}

	return in, nil
}

func relativeDifference(old, value float64) float64 {
	if value == 0 {
		return math.Abs(value - old)
	}

	return math.Abs((value - old) / value)
}

func estimate(in Integral, n int) float64 {
	switch in.Method {
	case Euler:
		return euler(in.Func, in.A, in.B, n)
	case Midpoint:
		return midpoint(in.Func, in.A, in.B, n)
	case Trapezoid:
		x, y := sample(in.Func, in.A, in.B, n)
		return integrate.Trapezoidal(x, y)
	case Simpson:
		x, y := sample(in.Func, in.A, in.B, n)
		return integrate.Simpsons(x, y)
	case GaussLegendre:
		return quad.Fixed(in.Func, in.A, in.B, n, quad.Legendre{}, 0)
	default:
		panic("unknown quadrature method")
	}
}

func sample(f func(float64) float64, a, b float64, n int) (x, y []float64) {
	x = floats.Span(make([]float64, n+1), a, b)
	y = make([]float64, n+1)

	for i, xi := range x {
		y[i] = f(xi)
	}

	return x, y
}

func euler(f func(float64) float64, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	values := make([]float64, n)

	for i := range values {
		values[i] = f(a + float64(i)*h)
	}

	return floats.Sum(values) * h
}

func midpoint(f func(float64) float64, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	values := make([]float64, n)

	for i := range values {
		values[i] = f(a + (float64(i)+0.5)*h)
	}

	return floats.Sum(values) * h
}
