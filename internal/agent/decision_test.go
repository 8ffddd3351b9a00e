package agent

import (
	"math/rand"
	"testing"

	"evacsim/internal/fields"
	"evacsim/internal/mapio"
	"evacsim/internal/model"
	"github.com/stretchr/testify/require"
)

const room = "11111\n10001\n10001\n10201\n11111"

func buildFields(t *testing.T) Fields {
	t.Helper()
	m, err := mapio.Load(room)
	require.NoError(t, err)
	return Fields{
		Structure: m,
		Wall:      fields.DeriveWallMap(m),
		Static:    fields.DeriveStaticMap(m, [][2]int{{3, 2}}),
		Dynamic:   fields.NewDynamicMap(m.Rows(), m.Cols()),
		Crowd:     fields.NewCrowdMap(m.Rows(), m.Cols()),
	}
}

func TestCandidatesExcludesWallsAndStays(t *testing.T) {
	f := buildFields(t)
	ind := New("A", 1, 2, 1, 1, 1, 1, 1)
	candidates := ind.Candidates(f)
	var sawStay bool
	for _, c := range candidates {
		require.NotEqual(t, model.Wall, f.Structure.NormalizedAt(c.Row, c.Col))
		if c.Stay {
			sawStay = true
			require.Equal(t, 1, c.Row)
			require.Equal(t, 2, c.Col)
		}
	}
	require.True(t, sawStay)
}

func TestCandidatesExcludesOccupiedCells(t *testing.T) {
	f := buildFields(t)
	require.NoError(t, f.Crowd.Place(0, 2, 2))
	ind := New("A", 1, 2, 1, 1, 1, 1, 1)
	candidates := ind.Candidates(f)
	for _, c := range candidates {
		if c.Row == 2 && c.Col == 2 {
			t.Fatalf("occupied cell (2,2) must not be a candidate")
		}
	}
}

func TestBestPrefersLowerStaticDistance(t *testing.T) {
	f := buildFields(t)
	ind := New("A", 2, 2, 1, 1, 0, 0, 0)
	best := Best(ind.Candidates(f))
	require.Less(t, f.Static.Value(best.Row, best.Col), f.Static.Value(2, 2))
}

func TestSoftmaxPicksAmongCandidates(t *testing.T) {
	f := buildFields(t)
	ind := New("A", 2, 2, 1, 1, 0, 0, 0)
	rng := rand.New(rand.NewSource(7))
	candidates := ind.Candidates(f)
	picked := Softmax(rng, candidates)
	var found bool
	for _, c := range candidates {
		if c.Row == picked.Row && c.Col == picked.Col {
			found = true
		}
	}
	require.True(t, found)
}

func TestSoftmaxDeterministicGivenSeed(t *testing.T) {
	f := buildFields(t)
	ind := New("A", 2, 2, 1, 1, 0.2, 0.3, 0.1)
	candidates := ind.Candidates(f)
	p1 := Softmax(rand.New(rand.NewSource(99)), candidates)
	p2 := Softmax(rand.New(rand.NewSource(99)), candidates)
	require.Equal(t, p1, p2)
}
