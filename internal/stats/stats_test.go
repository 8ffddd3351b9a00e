package stats

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"evacsim/internal/evo"
	"evacsim/internal/genotype"
	"evacsim/internal/mapio"
	"evacsim/internal/model"
)

const s2Room = "11111\n10201\n10001\n10201\n11111"

func s2Factory(t *testing.T) (*evo.Factory, []model.DoorSlot) {
	t.Helper()
	structure, err := mapio.Load(s2Room)
	require.NoError(t, err)
	candidates := mapio.DiscoverSlots(structure)
	require.Len(t, candidates, 2)

	cfg := evo.Config{
		Structure:  structure,
		Candidates: candidates,
		Individuals: []model.IndividualSpec{{
			Label: "A", Amount: 1, Speed: 1, KS: 1,
			Positions: [][2]int{{2, 2}},
		}},
		ScenarioSeeds:  []uint64{1},
		SimulationSeed: 7,
	}
	return evo.NewFactory(cfg), candidates
}

func TestRecorderAccumulatesPerGeneration(t *testing.T) {
	structure, err := mapio.Load(s2Room)
	require.NoError(t, err)
	candidates := mapio.DiscoverSlots(structure)
	cfg := evo.Config{
		Structure:  structure,
		Candidates: candidates,
		Individuals: []model.IndividualSpec{{
			Label: "A", Amount: 1, Speed: 1, KS: 1,
			Positions: [][2]int{{2, 2}},
		}},
		ScenarioSeeds:  []uint64{1},
		SimulationSeed: 7,
	}
	engine := evo.NewEngine(evo.EngineConfig{
		PopSize: 4, MaxGenerations: 3, CrossoverRate: 0.9, MutationRate: 0.1, NumGenes: 2,
	}, evo.NewFactory(cfg), rand.New(rand.NewSource(1)))

	rec := NewRecorder()
	engine.OnProgress(rec.Observe)
	_, err = engine.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rec.Entries(), 3)
	require.Equal(t, 1, rec.Entries()[0].Generation)
	require.Equal(t, 3, rec.Entries()[2].Generation)
	require.Len(t, rec.FrontSizeByGeneration(), 3)
	for _, e := range rec.Entries() {
		require.Equal(t, 4, e.PopulationSize)
		require.Greater(t, e.FrontSize, 0)
	}
}

func TestBuildResultsUncodesActiveDoorsOnly(t *testing.T) {
	factory, candidates := s2Factory(t)
	front := []*genotype.Chromosome{
		{Gene: genotype.Gene{true, false}, Obj: []float64{1, 0}, Generation: 5},
	}

	results, err := BuildResults(front, candidates, factory)
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	require.Equal(t, []bool{true, false}, got.Gene)
	require.Equal(t, []model.DoorSlot{candidates[0]}, got.DoorPositionsGrouped)
	require.Equal(t, 1, got.NumDoors)
	require.Equal(t, uint32(5), got.Generation)
	require.Greater(t, got.Iterations, 0.0)
}

func TestBuildResultsZeroDoorsYieldsEmptyGroup(t *testing.T) {
	factory, candidates := s2Factory(t)
	front := []*genotype.Chromosome{
		{Gene: genotype.Gene{false, false}, Obj: []float64{0, 0}},
	}

	results, err := BuildResults(front, candidates, factory)
	require.NoError(t, err)
	require.Empty(t, results[0].DoorPositionsGrouped)
	require.Equal(t, float64(model.MaxIterations), results[0].Iterations)
}

func TestSummarizeEmptyFront(t *testing.T) {
	require.Equal(t, FrontSummary{}, Summarize(nil))
}

func TestSummarizeComputesMinMaxMean(t *testing.T) {
	results := []model.Result{
		{NumDoors: 1, Distance: 10},
		{NumDoors: 2, Distance: 20},
		{NumDoors: 1, Distance: 30},
	}
	summary := Summarize(results)
	require.Equal(t, 3, summary.Members)
	require.Equal(t, 1, summary.MinDoors)
	require.Equal(t, 2, summary.MaxDoors)
	require.Equal(t, 10.0, summary.MinDistance)
	require.Equal(t, 30.0, summary.MaxDistance)
	require.InDelta(t, 20.0, summary.MeanDistance, 1e-9)
}
