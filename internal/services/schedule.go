package services

import (
	"errors"
	"fmt"
)

const (
	DefaultInitialTemp = 1800.0
	DefaultAlpha       = 0.99
	DefaultIterations  = 2000
	DefaultInnerMoves  = 10
)

var ErrInvalidSchedule = errors.New("invalid annealing schedule")

// Schedule controls the annealing run: Iterations outer batches of InnerMoves
// swaps each, with temperature cooled geometrically by Alpha after every batch.
type Schedule struct {
	InitialTemp float64
	Alpha       float64
	Iterations  int
	InnerMoves  int
}

func DefaultSchedule() Schedule {
	return Schedule{
		InitialTemp: DefaultInitialTemp,
		Alpha:       DefaultAlpha,
		Iterations:  DefaultIterations,
		InnerMoves:  DefaultInnerMoves,
	}
}

func (s Schedule) Validate() error {
	if s.InitialTemp <= 0 {
		return fmt.Errorf("%w: initial temperature must be > 0, got %g", ErrInvalidSchedule, s.InitialTemp)
	}
	if s.Alpha <= 0 || s.Alpha >= 1 {
		return fmt.Errorf("%w: alpha must be in (0,1), got %g", ErrInvalidSchedule, s.Alpha)
	}
	if s.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be >= 0, got %d", ErrInvalidSchedule, s.Iterations)
	}
	if s.InnerMoves < 1 {
		return fmt.Errorf("%w: inner moves must be >= 1, got %d", ErrInvalidSchedule, s.InnerMoves)
	}
	return nil
}
