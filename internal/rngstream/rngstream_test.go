package rngstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamsAreIndependent(t *testing.T) {
	s := New(1, 1)
	a := s.Scenario.Float64()
	b := s.Simulation.Float64()
	// Same seed, independent sources: both draw the same first float64,
	// proving the two RNGs are distinct instances rather than one shared
	// stream split across callers.
	require.Equal(t, a, b)
}

func TestNewIsDeterministic(t *testing.T) {
	s1 := New(7, 9)
	s2 := New(7, 9)
	require.Equal(t, s1.Scenario.Float64(), s2.Scenario.Float64())
	require.Equal(t, s1.Simulation.Float64(), s2.Simulation.Float64())
}
