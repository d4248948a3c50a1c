// Package fade drives two-endpoint linear transitions of an arbitrary
// property (alpha, color, volume) toward an "in" or an "out" state.
//
// A [Controller] owns at most one active transition. Requesting a new one
// cancels the previous transition synchronously; a cancelled transition never
// fires a completion notification. Transitions advance once per call to
// [Scheduler.Step], which the host calls once per frame.
//
// Two execution forms share the same step function:
//
//   - FadeIn/FadeOut schedule a stepped transition and return immediately.
//   - FadeInAsync/FadeOutAsync run the transition as a suspendable routine
//     and return a [Handle] that can be awaited from another goroutine.
//
// Dynamic timing assumes the normalized value of the "out" endpoint is 0 and
// of the "in" endpoint is 1. Targets whose out value is numerically above the
// in value must supply a Normalize function that inverts the scale.
package fade

import "fmt"

// Direction names the endpoint a transition moves toward.
type Direction int

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Target is the property a controller interpolates.
type Target[T any] interface {
	Value() T
	SetValue(v T)
}

// Flagger is implemented by targets that carry auxiliary endpoint state, such
// as interactivity. In flags are applied when a fade-in starts; out flags
// when a fade-out completes.
type Flagger interface {
	ApplyEndpoint(dir Direction)
}

// Lerp interpolates between a and b at t in [0, 1].
type Lerp[T any] func(a, b T, t float64) T

// Normalizer maps a value to its progress toward the in endpoint, where 0 is
// fully out and 1 is fully in.
type Normalizer[T any] func(v T) float64
