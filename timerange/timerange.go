// Package timerange generates arithmetic sequences of time.Time values,
// the way the integer range works for integers.
//
// A sequence is built either from an explicit step:
//
//	seq, err := timerange.WithStep(start, stop, time.Hour)
//
// or from a desired number of steps across the span:
//
//	seq, err := timerange.WithCount(start, stop, 10)
//
// Sequences include start, exclude stop, and can run backwards with a
// negative step. The returned iter.Seq is re-iterable and lazy.
package timerange

import (
	"errors"
	"iter"
	"time"
)

var (
	// ErrZeroStep is returned when a zero step duration is supplied.
	ErrZeroStep = errors.New("step must not be zero")

	// ErrStepDirection is returned when the step sign does not point from start towards stop.
	ErrStepDirection = errors.New("step direction must match the direction from start to stop")

	// ErrCountNotPositive is returned when a non-positive step count is supplied.
	ErrCountNotPositive = errors.New("count must be a positive integer")

	// ErrZeroSpan is returned when start equals stop, leaving no span to divide into steps.
	ErrZeroSpan = errors.New("start and stop must differ")
)

// WithStep returns the sequence start, start+step, ... up to but
// excluding stop. A negative step walks backwards from start down to
// but excluding stop. When start equals stop the sequence is empty.
func WithStep(start, stop time.Time, step time.Duration) (iter.Seq[time.Time], error) {
	if step == 0 {
		return nil, ErrZeroStep
	}

	if stop.After(start) && step < 0 {
		return nil, ErrStepDirection
	}

	if stop.Before(start) && step > 0 {
		return nil, ErrStepDirection
	}

	return sequence(start, stop, step), nil
}

// WithCount returns the sequence dividing the span from start to stop
// into count equal steps. The direction follows the sign of the span.
// When the span divides evenly the sequence yields exactly count
// values.
func WithCount(start, stop time.Time, count int) (iter.Seq[time.Time], error) {
	if count <= 0 {
		return nil, ErrCountNotPositive
	}

	span := stop.Sub(start)
	if span == 0 {
		return nil, ErrZeroSpan
	}

	return sequence(start, stop, span/time.Duration(count)), nil
}

func sequence(start, stop time.Time, step time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if step > 0 {
			for current := start; current.Before(stop); current = current.Add(step) {
				if !yield(current) {
					return
				}
			}

			return
		}

		for current := start; current.After(stop); current = current.Add(step) {
			if !yield(current) {
				return
			}
		}
	}
}
