package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"evacsim/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store, err := NewStore("", "")
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Init(ctx))

	run := RunRecord{
		RunID:      "run-1",
		Experiment: "s2-room",
		Algorithm:  "nsga2",
		Front: []model.Result{
			{Gene: []bool{true, false}, NumDoors: 1, Iterations: 4, Distance: 3.5},
		},
	}
	require.NoError(t, store.SaveRun(ctx, run))

	got, ok, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, run, got)

	ids, err := store.ListRuns(ctx, "s2-room")
	require.NoError(t, err)
	require.Contains(t, ids, "run-1")
}

func TestUnsupportedBackendRejected(t *testing.T) {
	_, err := NewStore("postgres", "")
	require.Error(t, err)
}

func TestSqliteBackendUnavailableWithoutBuildTag(t *testing.T) {
	_, err := NewStore("sqlite", "/tmp/evacsim-test.db")
	require.Error(t, err)
}
