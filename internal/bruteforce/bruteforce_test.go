package bruteforce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"evacsim/internal/evo"
	"evacsim/internal/mapio"
	"evacsim/internal/model"
)

const s2Room = "11111\n10201\n10001\n10201\n11111"

func TestRunRejectsTooManyDoors(t *testing.T) {
	structure, err := mapio.Load(s2Room)
	require.NoError(t, err)
	factory := evo.NewFactory(evo.Config{
		Structure:      structure,
		Candidates:     mapio.DiscoverSlots(structure),
		Individuals:    []model.IndividualSpec{{Label: "A", Amount: 1, Speed: 1, KS: 1, Positions: [][2]int{{2, 2}}}},
		ScenarioSeeds:  []uint64{1},
		SimulationSeed: 42,
	})
	_, err = Run(factory, model.MaxDoors+1, false)
	require.ErrorIs(t, err, model.ErrTooLarge)
}

func TestRunS2ParetoFrontIncludesBothSingleDoorConfigs(t *testing.T) {
	structure, err := mapio.Load(s2Room)
	require.NoError(t, err)
	candidates := mapio.DiscoverSlots(structure)
	require.Len(t, candidates, 2)

	factory := evo.NewFactory(evo.Config{
		Structure:      structure,
		Candidates:     candidates,
		Individuals:    []model.IndividualSpec{{Label: "A", Amount: 1, Speed: 1, KS: 1, Positions: [][2]int{{2, 2}}}},
		ScenarioSeeds:  []uint64{1},
		SimulationSeed: 42,
	})

	front, err := Run(factory, 2, false)
	require.NoError(t, err)

	var sawA, sawB, sawBoth bool
	for _, c := range front {
		switch {
		case c.Gene.PopCount() == 1 && c.Gene[0]:
			sawA = true
		case c.Gene.PopCount() == 1 && c.Gene[1]:
			sawB = true
		case c.Gene.PopCount() == 2:
			sawBoth = true
		}
	}
	require.True(t, sawA, "front must include {A=true,B=false}")
	require.True(t, sawB, "front must include {A=false,B=true}")
	require.True(t, sawBoth, "front must include {A=true,B=true}")
}

func TestRunFrontSortedByDoorsThenDistance(t *testing.T) {
	structure, err := mapio.Load(s2Room)
	require.NoError(t, err)
	candidates := mapio.DiscoverSlots(structure)

	factory := evo.NewFactory(evo.Config{
		Structure:      structure,
		Candidates:     candidates,
		Individuals:    []model.IndividualSpec{{Label: "A", Amount: 1, Speed: 1, KS: 1, Positions: [][2]int{{2, 2}}}},
		ScenarioSeeds:  []uint64{1},
		SimulationSeed: 42,
	})

	front, err := Run(factory, 2, false)
	require.NoError(t, err)
	for i := 1; i < len(front); i++ {
		prevDoors := front[i-1].Gene.PopCount()
		curDoors := front[i].Gene.PopCount()
		require.LessOrEqual(t, prevDoors, curDoors)
	}
}
