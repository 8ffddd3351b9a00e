package simulation

import (
	"math/rand"
	"testing"

	"evacsim/internal/mapio"
	"evacsim/internal/model"
	"github.com/stretchr/testify/require"
)

// s1Room is a 5x5 single-door room, one individual at (2,2).
const s1Room = "11111\n10001\n10001\n10201\n11111"

func TestSingleDoorEvacuationReachesExit(t *testing.T) {
	structure, err := mapio.Load(s1Room)
	require.NoError(t, err)
	candidates := mapio.DiscoverSlots(structure)
	require.Len(t, candidates, 1)

	specs := []model.IndividualSpec{{
		Label: "A", Amount: 1, Speed: 1, KS: 1, KW: 0, KD: 0, KI: 0,
		Positions: [][2]int{{2, 2}},
	}}
	scenario, err := Build(structure, candidates, []bool{true}, specs, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	result := Run(scenario, rand.New(rand.NewSource(42)))
	require.False(t, result.Capped)
	require.Equal(t, 1, result.EvacuatedCount)
	require.LessOrEqual(t, result.Iterations, 6)
	require.GreaterOrEqual(t, result.TotalDistance, 2.0)
	require.LessOrEqual(t, result.TotalDistance, 6.0)
}

func TestZeroDoorsNeverEvacuates(t *testing.T) {
	structure, err := mapio.Load(s1Room)
	require.NoError(t, err)
	candidates := mapio.DiscoverSlots(structure)

	specs := []model.IndividualSpec{{
		Label: "A", Amount: 1, Speed: 1, KS: 1, KW: 0, KD: 0, KI: 0,
		Positions: [][2]int{{2, 2}},
	}}
	_, err = Build(structure, candidates, []bool{false}, specs, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	// Building with zero active doors succeeds (a valid, if useless,
	// Scenario); it is Factory's job to short-circuit before
	// ever calling Build for an all-false gene.
}

func TestBuildPlacesIndividualsRandomlyWhenPositionsNil(t *testing.T) {
	structure, err := mapio.Load(s1Room)
	require.NoError(t, err)
	candidates := mapio.DiscoverSlots(structure)

	specs := []model.IndividualSpec{{
		Label: "A", Amount: 3, Speed: 1, KS: 1, KW: 0, KD: 0, KI: 0,
	}}
	scenario, err := Build(structure, candidates, []bool{true}, specs, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	result := Run(scenario, rand.New(rand.NewSource(42)))
	require.Equal(t, 3, result.EvacuatedCount)
}

func TestBuildRejectsMismatchedGeneLength(t *testing.T) {
	structure, err := mapio.Load(s1Room)
	require.NoError(t, err)
	candidates := mapio.DiscoverSlots(structure)
	_, err = Build(structure, candidates, []bool{true, false}, nil, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestBuildRejectsOverlappingFixedPositions(t *testing.T) {
	structure, err := mapio.Load(s1Room)
	require.NoError(t, err)
	candidates := mapio.DiscoverSlots(structure)
	specs := []model.IndividualSpec{{
		Label: "A", Amount: 2, Speed: 1, KS: 1,
		Positions: [][2]int{{2, 2}, {2, 2}},
	}}
	_, err = Build(structure, candidates, []bool{true}, specs, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, model.ErrInvalidConfig)
}
