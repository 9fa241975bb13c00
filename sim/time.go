// Package sim provides the pieces shared by every evolving object in chemevo:
// the hook system, the time teller, and ID generation.
package sim

// Gyr is a time or a duration in billions of years.
type Gyr = float64

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() Gyr
}

// Named describes an object that has a name.
type Named interface {
	Name() string
}
