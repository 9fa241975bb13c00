package quadrature

import (
	"fmt"
	"strings"
)

// Method selects the rule used on each refinement.
type Method int

// The supported rules.
const (
	Euler Method = iota
	Trapezoid
	Midpoint
	Simpson
	GaussLegendre
)

// maxLegendreNodes bounds Gauss-Legendre refinement; node generation grows
// faster than linearly.
const maxLegendreNodes = 2048

var methodNames = map[Method]string{
	Euler:         "euler",
	Trapezoid:     "trapezoid",
	Midpoint:      "midpoint",
	Simpson:       "simpson",
	GaussLegendre: "gauss-legendre",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod converts a case-insensitive method name to a Method.
func ParseMethod(name string) (Method, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for m, s := range methodNames {
		if s == lower {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}
