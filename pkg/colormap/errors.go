package colormap

import "fmt"

// NotFoundError is returned when a colormap name is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("colormap %q not found", e.Name)
}

// OutOfRangeError is returned by Eval when the position is outside [0, 1].
type OutOfRangeError struct {
	T float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("colormap position %v out of range [0, 1]", e.T)
}

// InvalidMapError is returned when a stop list violates the colormap
// invariants (positions from 0 to 1, strictly increasing, channels in
// [0, 1]).
type InvalidMapError struct {
	Name   string
	Reason string
}

func (e *InvalidMapError) Error() string {
	return fmt.Sprintf("invalid colormap %q: %s", e.Name, e.Reason)
}
