package evacsim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"evacsim/internal/driver"
	"evacsim/internal/model"
)

const s2Room = "11111\n10201\n10001\n10201\n11111"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(Options{})
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))
	return c
}

func TestLoadMapDiscoversTwoDoorSlots(t *testing.T) {
	m, err := LoadMap(s2Room)
	require.NoError(t, err)
	require.Len(t, m.Candidates, 2)
}

func TestLoadMapRejectsRaggedRows(t *testing.T) {
	_, err := LoadMap("111\n10\n111")
	require.ErrorIs(t, err, model.ErrInvalidMap)
}

func TestClientSimulate(t *testing.T) {
	c := newTestClient(t)
	m, err := LoadMap(s2Room)
	require.NoError(t, err)

	individuals := []model.IndividualSpec{{Label: "A", Amount: 1, Speed: 1, KS: 1, Positions: [][2]int{{2, 2}}}}
	result, err := c.Simulate(m, []bool{true, false}, individuals, driver.ExperimentConfig{
		Experiment: "s2", ScenarioSeed: driver.ScenarioSeeds{1}, SimulationSeed: 3,
	})
	require.NoError(t, err)
	require.Greater(t, result.Iterations, 0)
}

func TestClientOptimizeNSGAAndBruteAgreeOnBestFront(t *testing.T) {
	c := newTestClient(t)
	m, err := LoadMap(s2Room)
	require.NoError(t, err)
	individuals := []model.IndividualSpec{{Label: "A", Amount: 1, Speed: 1, KS: 1, Positions: [][2]int{{2, 2}}}}
	exp := driver.ExperimentConfig{Experiment: "s2", ScenarioSeed: driver.ScenarioSeeds{1}, SimulationSeed: 3}

	brute, err := c.OptimizeBrute(context.Background(), m, individuals, exp)
	require.NoError(t, err)
	require.NotEmpty(t, brute.Front)

	nsga, err := c.OptimizeNSGA(context.Background(), m, individuals, exp,
		driver.NSGAConfig{PopulationSize: 6, Generations: 4, CrossoverRate: 0.9, MutationRate: 0.2}, 11)
	require.NoError(t, err)
	require.NotEmpty(t, nsga.Front)

	minDistance := func(front []model.Result) float64 {
		best := front[0].Distance
		for _, r := range front[1:] {
			if r.Distance < best {
				best = r.Distance
			}
		}
		return best
	}
	require.LessOrEqual(t, minDistance(brute.Front), minDistance(nsga.Front)+1e-9)
}
